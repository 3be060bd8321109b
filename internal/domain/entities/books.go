package entities

import (
	"slices"
	"strings"
)

// canonicalBooks is the Protestant 66-book order.
var canonicalBooks = []string{
	"Genesis", "Exodus", "Leviticus", "Numbers", "Deuteronomy",
	"Joshua", "Judges", "Ruth", "1 Samuel", "2 Samuel",
	"1 Kings", "2 Kings", "1 Chronicles", "2 Chronicles", "Ezra",
	"Nehemiah", "Esther", "Job", "Psalms", "Proverbs",
	"Ecclesiastes", "Song of Solomon", "Isaiah", "Jeremiah", "Lamentations",
	"Ezekiel", "Daniel", "Hosea", "Joel", "Amos",
	"Obadiah", "Jonah", "Micah", "Nahum", "Habakkuk",
	"Zephaniah", "Haggai", "Zechariah", "Malachi",
	"Matthew", "Mark", "Luke", "John", "Acts",
	"Romans", "1 Corinthians", "2 Corinthians", "Galatians", "Ephesians",
	"Philippians", "Colossians", "1 Thessalonians", "2 Thessalonians",
	"1 Timothy", "2 Timothy", "Titus", "Philemon", "Hebrews",
	"James", "1 Peter", "2 Peter", "1 John", "2 John", "3 John", "Jude", "Revelation",
}

var bookRank = func() map[string]int {
	m := make(map[string]int, len(canonicalBooks))
	for i, b := range canonicalBooks {
		m[b] = i
	}
	return m
}()

// SortBooks orders books canonically; unknown books follow, alphabetically.
func SortBooks(books []string) {
	slices.SortStableFunc(books, func(a, b string) int {
		ra, okA := bookRank[a]
		rb, okB := bookRank[b]
		switch {
		case okA && okB:
			return ra - rb
		case okA:
			return -1
		case okB:
			return 1
		default:
			return strings.Compare(a, b)
		}
	})
}

// FindBook matches a user-typed book name case-insensitively against books.
func FindBook(books []string, name string) (string, bool) {
	name = strings.TrimSpace(name)
	for _, b := range books {
		if strings.EqualFold(b, name) {
			return b, true
		}
	}
	return "", false
}

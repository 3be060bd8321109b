package entities

import "fmt"

// Question is a single prompt/answer pair attached to a verse.
// It is identified by (Book, Chapter, Verse, ID).
type Question struct {
	Book    string
	Chapter int
	Verse   int
	ID      string
	Prompt  string
	Answer  string
}

// Ref returns the "Book C:V" reference of the question.
func (q Question) Ref() string {
	return fmt.Sprintf("%s %d:%d", q.Book, q.Chapter, q.Verse)
}

// Key returns the unique identity of the question.
func (q Question) Key() string {
	return fmt.Sprintf("%s|%d|%d|%s", q.Book, q.Chapter, q.Verse, q.ID)
}

// Verse is the reference text of one verse.
type Verse struct {
	Book    string
	Chapter int
	Verse   int
	Content string
}

// Ref returns the "Book C:V" reference of the verse.
func (v Verse) Ref() string {
	return fmt.Sprintf("%s %d:%d", v.Book, v.Chapter, v.Verse)
}

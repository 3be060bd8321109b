package entities

import "slices"

// BookProgress records which chapters and verse numbers of a book the user
// has marked as known. Verse numbers apply to every known chapter of the
// book; the selection editor produces prefixes but any subset is valid here.
type BookProgress struct {
	Book          string `json:"book"`
	KnownChapters []int  `json:"knownChapters"`
	KnownVerses   []int  `json:"knownVerses"`
}

// HasChapter reports whether chapter is marked as known.
func (bp BookProgress) HasChapter(chapter int) bool {
	return slices.Contains(bp.KnownChapters, chapter)
}

// HasVerse reports whether verse is marked as known.
func (bp BookProgress) HasVerse(verse int) bool {
	return slices.Contains(bp.KnownVerses, verse)
}

// Covers reports whether the question falls inside this progress record.
func (bp BookProgress) Covers(q Question) bool {
	return bp.Book == q.Book && bp.HasChapter(q.Chapter) && bp.HasVerse(q.Verse)
}

// Normalize sorts and deduplicates the chapter and verse sets.
func (bp *BookProgress) Normalize() {
	slices.Sort(bp.KnownChapters)
	bp.KnownChapters = slices.Compact(bp.KnownChapters)
	slices.Sort(bp.KnownVerses)
	bp.KnownVerses = slices.Compact(bp.KnownVerses)
	if bp.KnownChapters == nil {
		bp.KnownChapters = []int{}
	}
	if bp.KnownVerses == nil {
		bp.KnownVerses = []int{}
	}
}

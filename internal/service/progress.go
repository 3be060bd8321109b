package service

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/aliskhannn/quizzible/internal/domain/entities"
)

var (
	ErrDuplicateBook    = errors.New("book already selected")
	ErrDuplicateChapter = errors.New("chapter already selected")
	ErrBookNotSelected  = errors.New("book not selected")
	ErrUnknownBook      = errors.New("unknown book")
	ErrUnknownChapter   = errors.New("unknown chapter")
	ErrIncomplete       = errors.New("every chapter needs a highest known verse")
)

// EligibleQuestions returns the questions covered by progress, in dataset order.
func EligibleQuestions(questions []entities.Question, progress []entities.BookProgress) []entities.Question {
	byBook := make(map[string][]entities.BookProgress, len(progress))
	for _, bp := range progress {
		byBook[bp.Book] = append(byBook[bp.Book], bp)
	}

	var out []entities.Question
	for _, q := range questions {
		for _, bp := range byBook[q.Book] {
			if bp.Covers(q) {
				out = append(out, q)
				break
			}
		}
	}
	return out
}

// versePrefix returns the existing verses up to and including highest.
// verses must be sorted ascending.
func versePrefix(verses []int, highest int) []int {
	var out []int
	for _, v := range verses {
		if v > highest {
			break
		}
		out = append(out, v)
	}
	return out
}

// ChapterSelection is one chapter row of the selection editor.
// HighestVerse 0 means not chosen yet.
type ChapterSelection struct {
	Chapter      int
	HighestVerse int
}

// BookSelection groups the chapter rows of one book.
type BookSelection struct {
	Book     string
	Chapters []ChapterSelection
}

// Selection edits a user's known progress against the question dataset.
type Selection struct {
	verses map[string]map[int][]int // book -> chapter -> sorted distinct verses
	books  []BookSelection
}

// NewSelection seeds the editor from stored progress. A chapter's highest
// verse is the largest known verse that exists in it, or its last verse.
func NewSelection(questions []entities.Question, progress []entities.BookProgress) *Selection {
	s := &Selection{verses: make(map[string]map[int][]int)}
	for _, q := range questions {
		chapters, ok := s.verses[q.Book]
		if !ok {
			chapters = make(map[int][]int)
			s.verses[q.Book] = chapters
		}
		chapters[q.Chapter] = append(chapters[q.Chapter], q.Verse)
	}
	for _, chapters := range s.verses {
		for c, vs := range chapters {
			slices.Sort(vs)
			chapters[c] = slices.Compact(vs)
		}
	}

	for _, bp := range progress {
		if s.indexOf(bp.Book) >= 0 {
			continue
		}
		book := BookSelection{Book: bp.Book}
		for _, c := range bp.KnownChapters {
			inChapter := s.VersesIn(bp.Book, c)
			highest := 0
			for _, v := range inChapter {
				if bp.HasVerse(v) {
					highest = v
				}
			}
			if highest == 0 && len(inChapter) > 0 {
				highest = inChapter[len(inChapter)-1]
			}
			book.Chapters = append(book.Chapters, ChapterSelection{Chapter: c, HighestVerse: highest})
		}
		s.books = append(s.books, book)
	}

	return s
}

// AvailableBooks lists books present in the dataset, canonically ordered.
func (s *Selection) AvailableBooks() []string {
	books := make([]string, 0, len(s.verses))
	for b := range s.verses {
		books = append(books, b)
	}
	entities.SortBooks(books)
	return books
}

// AvailableChapters lists the chapters of book that have questions.
func (s *Selection) AvailableChapters(book string) []int {
	chapters := make([]int, 0, len(s.verses[book]))
	for c := range s.verses[book] {
		chapters = append(chapters, c)
	}
	slices.Sort(chapters)
	return chapters
}

// VersesIn lists the verses of a chapter that have questions.
func (s *Selection) VersesIn(book string, chapter int) []int {
	return slices.Clone(s.verses[book][chapter])
}

// Books returns a copy of the current rows.
func (s *Selection) Books() []BookSelection {
	out := make([]BookSelection, 0, len(s.books))
	for _, b := range s.books {
		out = append(out, BookSelection{Book: b.Book, Chapters: slices.Clone(b.Chapters)})
	}
	return out
}

// AddBook starts tracking book. A book can only be added once.
func (s *Selection) AddBook(book string) error {
	if _, ok := s.verses[book]; !ok {
		return fmt.Errorf("%w: %s", ErrUnknownBook, book)
	}
	if s.indexOf(book) >= 0 {
		return fmt.Errorf("%w: %s", ErrDuplicateBook, book)
	}
	s.books = append(s.books, BookSelection{Book: book})
	return nil
}

// RemoveBook drops the book with all its chapters and verses.
func (s *Selection) RemoveBook(book string) {
	if i := s.indexOf(book); i >= 0 {
		s.books = slices.Delete(s.books, i, i+1)
	}
}

// AddChapter adds a chapter row with no highest verse chosen.
func (s *Selection) AddChapter(book string, chapter int) error {
	i := s.indexOf(book)
	if i < 0 {
		return fmt.Errorf("%w: %s", ErrBookNotSelected, book)
	}
	if _, ok := s.verses[book][chapter]; !ok {
		return fmt.Errorf("%w: %s %d", ErrUnknownChapter, book, chapter)
	}
	for _, c := range s.books[i].Chapters {
		if c.Chapter == chapter {
			return fmt.Errorf("%w: %s %d", ErrDuplicateChapter, book, chapter)
		}
	}
	s.books[i].Chapters = append(s.books[i].Chapters, ChapterSelection{Chapter: chapter})
	return nil
}

// RemoveChapter drops one chapter row.
func (s *Selection) RemoveChapter(book string, chapter int) {
	i := s.indexOf(book)
	if i < 0 {
		return
	}
	s.books[i].Chapters = slices.DeleteFunc(s.books[i].Chapters, func(c ChapterSelection) bool {
		return c.Chapter == chapter
	})
}

// SetHighestVerse sets the highest known verse of a chapter row.
func (s *Selection) SetHighestVerse(book string, chapter, verse int) error {
	i := s.indexOf(book)
	if i < 0 {
		return fmt.Errorf("%w: %s", ErrBookNotSelected, book)
	}
	for j := range s.books[i].Chapters {
		if s.books[i].Chapters[j].Chapter == chapter {
			s.books[i].Chapters[j].HighestVerse = max(verse, 0)
			return nil
		}
	}
	return fmt.Errorf("%w: %s %d", ErrUnknownChapter, book, chapter)
}

// Validate reports whether the selection is ready to be saved.
func (s *Selection) Validate() error {
	if len(s.books) == 0 {
		return ErrIncomplete
	}
	for _, b := range s.books {
		if len(b.Chapters) == 0 {
			return fmt.Errorf("%w: %s has no chapters", ErrIncomplete, b.Book)
		}
		for _, c := range b.Chapters {
			if c.HighestVerse == 0 {
				return fmt.Errorf("%w: %s %d", ErrIncomplete, b.Book, c.Chapter)
			}
		}
	}
	return nil
}

// Progress converts the rows into stored progress. Known verses of a book are
// the union of each chapter's existing verses up to its highest verse.
func (s *Selection) Progress() []entities.BookProgress {
	out := make([]entities.BookProgress, 0, len(s.books))
	for _, b := range s.books {
		bp := entities.BookProgress{Book: b.Book}
		for _, c := range b.Chapters {
			bp.KnownChapters = append(bp.KnownChapters, c.Chapter)
			bp.KnownVerses = append(bp.KnownVerses, versePrefix(s.verses[b.Book][c.Chapter], c.HighestVerse)...)
		}
		bp.Normalize()
		out = append(out, bp)
	}
	return out
}

func (s *Selection) indexOf(book string) int {
	return slices.IndexFunc(s.books, func(b BookSelection) bool { return b.Book == book })
}

// ProgressService ties the selection editor to the profile store.
type ProgressService struct {
	questions QuestionRepository
	profiles  *ProfileStore
}

func NewProgressService(questions QuestionRepository, profiles *ProfileStore) *ProgressService {
	return &ProgressService{questions: questions, profiles: profiles}
}

// Eligible returns the questions the named user can be quizzed on.
func (s *ProgressService) Eligible(ctx context.Context, name string) ([]entities.Question, error) {
	p, err := s.profiles.Get(name)
	if err != nil {
		return nil, err
	}
	all, err := s.questions.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	return EligibleQuestions(all, p.BookProgress), nil
}

// Selection opens the editor for the named user.
func (s *ProgressService) Selection(ctx context.Context, name string) (*Selection, error) {
	p, err := s.profiles.Get(name)
	if err != nil {
		return nil, err
	}
	all, err := s.questions.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	return NewSelection(all, p.BookProgress), nil
}

// Save stores the edited progress and commits the profile store.
func (s *ProgressService) Save(ctx context.Context, name string, sel *Selection) error {
	if err := s.profiles.SetProgress(name, sel.Progress()); err != nil {
		return err
	}
	return s.profiles.Commit(ctx)
}

// Know marks chapter of book as known up to highest and saves.
func (s *ProgressService) Know(ctx context.Context, name, book string, chapter, highest int) (*Selection, error) {
	sel, err := s.Selection(ctx, name)
	if err != nil {
		return nil, err
	}

	if err := sel.AddBook(book); err != nil && !errors.Is(err, ErrDuplicateBook) {
		return nil, err
	}
	if err := sel.AddChapter(book, chapter); err != nil && !errors.Is(err, ErrDuplicateChapter) {
		return nil, err
	}
	if err := sel.SetHighestVerse(book, chapter, highest); err != nil {
		return nil, err
	}

	return sel, s.Save(ctx, name, sel)
}

// Forget removes a chapter, or the whole book when chapter is 0, and saves.
func (s *ProgressService) Forget(ctx context.Context, name, book string, chapter int) (*Selection, error) {
	sel, err := s.Selection(ctx, name)
	if err != nil {
		return nil, err
	}

	if chapter == 0 {
		sel.RemoveBook(book)
	} else {
		sel.RemoveChapter(book, chapter)
	}

	return sel, s.Save(ctx, name, sel)
}

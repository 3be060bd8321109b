package repository

import (
	"context"
	"errors"
	"slices"

	"github.com/aliskhannn/quizzible/internal/domain/entities"
)

var ErrVerseNotFound = errors.New("verse not found")

// QuestionRepository provides access to the bundled questions.
// The dataset is immutable and held in memory.
type QuestionRepository struct {
	questions []entities.Question
}

// NewQuestionRepository wraps an already loaded question list.
func NewQuestionRepository(questions []entities.Question) *QuestionRepository {
	return &QuestionRepository{questions: questions}
}

// GetAll returns every question in dataset order.
func (r *QuestionRepository) GetAll(_ context.Context) ([]entities.Question, error) {
	return r.questions, nil
}

// GetByVerse returns the questions attached to one verse.
func (r *QuestionRepository) GetByVerse(_ context.Context, book string, chapter, verse int) ([]entities.Question, error) {
	var out []entities.Question
	for _, q := range r.questions {
		if q.Book == book && q.Chapter == chapter && q.Verse == verse {
			out = append(out, q)
		}
	}
	return out, nil
}

// VerseRepository provides access to the bundled verse texts.
type VerseRepository struct {
	verses []entities.Verse
	byRef  map[verseRef]entities.Verse
}

type verseRef struct {
	book    string
	chapter int
	verse   int
}

// NewVerseRepository indexes an already loaded verse list.
func NewVerseRepository(verses []entities.Verse) *VerseRepository {
	byRef := make(map[verseRef]entities.Verse, len(verses))
	for _, v := range verses {
		byRef[verseRef{v.Book, v.Chapter, v.Verse}] = v
	}

	return &VerseRepository{verses: verses, byRef: byRef}
}

// Get returns a single verse, or ErrVerseNotFound.
func (r *VerseRepository) Get(_ context.Context, book string, chapter, verse int) (entities.Verse, error) {
	v, ok := r.byRef[verseRef{book, chapter, verse}]
	if !ok {
		return entities.Verse{}, ErrVerseNotFound
	}
	return v, nil
}

// Books returns the distinct books in canonical order.
func (r *VerseRepository) Books(_ context.Context) ([]string, error) {
	seen := make(map[string]struct{})
	var books []string
	for _, v := range r.verses {
		if _, ok := seen[v.Book]; ok {
			continue
		}
		seen[v.Book] = struct{}{}
		books = append(books, v.Book)
	}

	entities.SortBooks(books)
	return books, nil
}

// Chapters returns the distinct chapters of book, ascending.
func (r *VerseRepository) Chapters(_ context.Context, book string) ([]int, error) {
	var chapters []int
	for _, v := range r.verses {
		if v.Book == book {
			chapters = append(chapters, v.Chapter)
		}
	}

	slices.Sort(chapters)
	return slices.Compact(chapters), nil
}

// Chapter returns the verses of one chapter ordered by verse number.
func (r *VerseRepository) Chapter(_ context.Context, book string, chapter int) ([]entities.Verse, error) {
	var out []entities.Verse
	for _, v := range r.verses {
		if v.Book == book && v.Chapter == chapter {
			out = append(out, v)
		}
	}

	slices.SortStableFunc(out, func(a, b entities.Verse) int {
		return a.Verse - b.Verse
	})
	return out, nil
}

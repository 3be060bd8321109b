package service

import (
	"context"
	"fmt"

	"github.com/aliskhannn/quizzible/internal/domain/entities"
)

// Browser walks the verses of one chapter.
type Browser struct {
	verses    VerseRepository
	questions QuestionRepository

	book    string
	chapter int
	list    []entities.Verse
	index   int
}

func NewBrowser(verses VerseRepository, questions QuestionRepository) *Browser {
	return &Browser{verses: verses, questions: questions}
}

func (b *Browser) Books(ctx context.Context) ([]string, error) {
	return b.verses.Books(ctx)
}

// Chapters lists the chapters of the selected book.
func (b *Browser) Chapters(ctx context.Context) ([]int, error) {
	if b.book == "" {
		return nil, nil
	}
	return b.verses.Chapters(ctx, b.book)
}

// SelectBook switches book and clears the chapter.
func (b *Browser) SelectBook(book string) {
	b.book = book
	b.chapter = 0
	b.list = nil
	b.index = 0
}

// SelectChapter loads the chapter's verses and moves to the first one.
func (b *Browser) SelectChapter(ctx context.Context, chapter int) error {
	list, err := b.verses.Chapter(ctx, b.book, chapter)
	if err != nil {
		return fmt.Errorf("load chapter: %w", err)
	}
	b.chapter = chapter
	b.list = list
	b.index = 0
	return nil
}

func (b *Browser) Book() string { return b.book }
func (b *Browser) Chapter() int { return b.chapter }
func (b *Browser) Index() int   { return b.index }
func (b *Browser) Len() int     { return len(b.list) }

// Verses returns the loaded chapter.
func (b *Browser) Verses() []entities.Verse {
	return b.list
}

func (b *Browser) Next() { b.Jump(b.index + 1) }
func (b *Browser) Prev() { b.Jump(b.index - 1) }

// Jump moves to i, clamped to the chapter bounds.
func (b *Browser) Jump(i int) {
	b.index = max(0, min(i, len(b.list)-1))
}

// Current returns the verse under the cursor.
func (b *Browser) Current() (entities.Verse, bool) {
	if len(b.list) == 0 {
		return entities.Verse{}, false
	}
	return b.list[b.index], true
}

// QuestionsForCurrent returns the questions attached to the current verse.
func (b *Browser) QuestionsForCurrent(ctx context.Context) ([]entities.Question, error) {
	v, ok := b.Current()
	if !ok {
		return nil, nil
	}
	return b.questions.GetByVerse(ctx, v.Book, v.Chapter, v.Verse)
}

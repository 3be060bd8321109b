package service

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"go.uber.org/zap"

	"github.com/aliskhannn/quizzible/internal/domain/entities"
	"github.com/aliskhannn/quizzible/internal/repository"
	"github.com/aliskhannn/quizzible/internal/storage"
)

func q(book string, chapter, verse int, id string) entities.Question {
	return entities.Question{
		Book:    book,
		Chapter: chapter,
		Verse:   verse,
		ID:      id,
		Prompt:  "prompt " + id,
		Answer:  "answer " + id,
	}
}

func sampleQuestions() []entities.Question {
	return []entities.Question{
		q("John", 3, 16, "a"),
		q("John", 3, 17, "b"),
		q("John", 1, 1, "c"),
		q("Luke", 2, 1, "d"),
		q("Luke", 2, 2, "e"),
		q("Luke", 2, 3, "f"),
		q("Luke", 2, 5, "g"),
		q("Luke", 2, 7, "h"),
		q("Genesis", 1, 1, "i"),
	}
}

func newTestStore(t *testing.T, names ...string) *ProfileStore {
	t.Helper()

	repo := repository.NewProfileRepository(storage.NewMemoryKV(), "Luke", zap.NewNop())
	store, err := NewProfileStore(context.Background(), repo, zap.NewNop())
	if err != nil {
		t.Fatalf("NewProfileStore() error = %v", err)
	}
	for _, n := range names {
		if _, err := store.Create(n); err != nil {
			t.Fatalf("Create(%q) error = %v", n, err)
		}
	}
	return store
}

func TestEligibleQuestions(t *testing.T) {
	progress := []entities.BookProgress{
		{Book: "John", KnownChapters: []int{3}, KnownVerses: []int{16}},
	}

	got := EligibleQuestions(sampleQuestions(), progress)
	if len(got) != 1 || got[0].Key() != q("John", 3, 16, "a").Key() {
		t.Fatalf("EligibleQuestions() = %+v, want only John 3:16", got)
	}

	if got := EligibleQuestions(sampleQuestions(), nil); len(got) != 0 {
		t.Fatalf("EligibleQuestions(nil) = %+v, want empty", got)
	}
}

func TestSelectionHighestVersePrefix(t *testing.T) {
	sel := NewSelection(sampleQuestions(), nil)

	if err := sel.AddBook("Luke"); err != nil {
		t.Fatalf("AddBook() error = %v", err)
	}
	if err := sel.AddChapter("Luke", 2); err != nil {
		t.Fatalf("AddChapter() error = %v", err)
	}
	if got := sel.VersesIn("Luke", 2); !reflect.DeepEqual(got, []int{1, 2, 3, 5, 7}) {
		t.Fatalf("VersesIn() = %v", got)
	}

	cases := []struct {
		highest int
		want    []int
	}{
		{5, []int{1, 2, 3, 5}},
		{4, []int{1, 2, 3}},
		{7, []int{1, 2, 3, 5, 7}},
		{1, []int{1}},
	}
	for _, c := range cases {
		if err := sel.SetHighestVerse("Luke", 2, c.highest); err != nil {
			t.Fatalf("SetHighestVerse(%d) error = %v", c.highest, err)
		}
		progress := sel.Progress()
		if len(progress) != 1 {
			t.Fatalf("Progress() = %+v", progress)
		}
		if !reflect.DeepEqual(progress[0].KnownVerses, c.want) {
			t.Errorf("highest %d: KnownVerses = %v, want %v", c.highest, progress[0].KnownVerses, c.want)
		}
		if !reflect.DeepEqual(progress[0].KnownChapters, []int{2}) {
			t.Errorf("highest %d: KnownChapters = %v", c.highest, progress[0].KnownChapters)
		}
	}
}

func TestSelectionEditing(t *testing.T) {
	sel := NewSelection(sampleQuestions(), nil)

	if got := sel.AvailableBooks(); !reflect.DeepEqual(got, []string{"Genesis", "Luke", "John"}) {
		t.Fatalf("AvailableBooks() = %v", got)
	}
	if got := sel.AvailableChapters("John"); !reflect.DeepEqual(got, []int{1, 3}) {
		t.Fatalf("AvailableChapters() = %v", got)
	}

	if err := sel.AddBook("John"); err != nil {
		t.Fatalf("AddBook() error = %v", err)
	}
	if err := sel.AddBook("John"); !errors.Is(err, ErrDuplicateBook) {
		t.Fatalf("AddBook() duplicate error = %v, want ErrDuplicateBook", err)
	}
	if err := sel.AddBook("Exodus"); !errors.Is(err, ErrUnknownBook) {
		t.Fatalf("AddBook() unknown error = %v, want ErrUnknownBook", err)
	}
	if err := sel.AddChapter("Luke", 2); !errors.Is(err, ErrBookNotSelected) {
		t.Fatalf("AddChapter() error = %v, want ErrBookNotSelected", err)
	}

	_ = sel.AddChapter("John", 3)
	_ = sel.AddChapter("John", 1)
	if err := sel.Validate(); !errors.Is(err, ErrIncomplete) {
		t.Fatalf("Validate() error = %v, want ErrIncomplete", err)
	}

	_ = sel.SetHighestVerse("John", 3, 16)
	_ = sel.SetHighestVerse("John", 1, 1)
	if err := sel.Validate(); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}

	sel.RemoveChapter("John", 1)
	progress := sel.Progress()
	if !reflect.DeepEqual(progress[0].KnownChapters, []int{3}) || !reflect.DeepEqual(progress[0].KnownVerses, []int{16}) {
		t.Fatalf("Progress() after RemoveChapter = %+v", progress)
	}

	sel.RemoveBook("John")
	if len(sel.Progress()) != 0 {
		t.Fatalf("Progress() after RemoveBook = %+v", sel.Progress())
	}
	if err := sel.AddBook("John"); err != nil {
		t.Fatalf("AddBook() after remove error = %v", err)
	}
}

func TestNewSelectionSeedsHighestVerse(t *testing.T) {
	progress := []entities.BookProgress{
		{Book: "Luke", KnownChapters: []int{2}, KnownVerses: []int{1, 2, 3, 5}},
	}

	books := NewSelection(sampleQuestions(), progress).Books()
	if len(books) != 1 || len(books[0].Chapters) != 1 {
		t.Fatalf("Books() = %+v", books)
	}
	if got := books[0].Chapters[0].HighestVerse; got != 5 {
		t.Fatalf("HighestVerse = %d, want 5", got)
	}
}

func TestProgressServiceKnowAndForget(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t, "anna")
	svc := NewProgressService(repository.NewQuestionRepository(sampleQuestions()), store)

	if _, err := svc.Know(ctx, "anna", "Luke", 2, 3); err != nil {
		t.Fatalf("Know() error = %v", err)
	}
	eligible, err := svc.Eligible(ctx, "anna")
	if err != nil {
		t.Fatalf("Eligible() error = %v", err)
	}
	if len(eligible) != 3 {
		t.Fatalf("Eligible() = %d questions, want 3", len(eligible))
	}

	if _, err := svc.Know(ctx, "anna", "Luke", 2, 7); err != nil {
		t.Fatalf("Know() again error = %v", err)
	}
	eligible, _ = svc.Eligible(ctx, "anna")
	if len(eligible) != 5 {
		t.Fatalf("Eligible() after raising highest = %d questions, want 5", len(eligible))
	}

	if _, err := svc.Forget(ctx, "anna", "Luke", 0); err != nil {
		t.Fatalf("Forget() error = %v", err)
	}
	eligible, _ = svc.Eligible(ctx, "anna")
	if len(eligible) != 0 {
		t.Fatalf("Eligible() after Forget = %d questions, want 0", len(eligible))
	}

	if _, err := svc.Eligible(ctx, "nobody"); !errors.Is(err, ErrProfileNotFound) {
		t.Fatalf("Eligible() error = %v, want ErrProfileNotFound", err)
	}
}

package service

import (
	"context"
	"sync"
	"testing"

	"go.uber.org/zap"

	"github.com/aliskhannn/quizzible/internal/domain/entities"
	"github.com/aliskhannn/quizzible/internal/repository"
	"github.com/aliskhannn/quizzible/internal/storage"
)

type fakeNotifier struct {
	mu   sync.Mutex
	sent map[int64]entities.Verse
}

func (n *fakeNotifier) SendDailyVerse(chatID int64, verse entities.Verse) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.sent[chatID] = verse
	return nil
}

func TestReminderServiceSendDailyVerses(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t, "anna", "ben")
	_ = store.SetProgress("anna", []entities.BookProgress{
		{Book: "John", KnownChapters: []int{3}, KnownVerses: []int{16, 17}},
	})

	progress := NewProgressService(repository.NewQuestionRepository(sampleQuestions()), store)
	verses := repository.NewVerseRepository(sampleVerses())
	reminders := repository.NewReminderRepository(storage.NewMemoryKV())

	svc := NewReminderService(reminders, progress, verses, "0 8 * * *", zap.NewNop())
	notifier := &fakeNotifier{sent: make(map[int64]entities.Verse)}
	svc.SetNotifier(notifier)
	svc.pick = func(int) int { return 1 }

	_ = svc.Subscribe(ctx, 1, "anna")
	_ = svc.Subscribe(ctx, 2, "ben")     // nothing known yet
	_ = svc.Subscribe(ctx, 3, "deleted") // profile gone

	if err := svc.sendDailyVerses(ctx); err != nil {
		t.Fatalf("sendDailyVerses() error = %v", err)
	}

	if len(notifier.sent) != 1 {
		t.Fatalf("sent to %d chats, want 1", len(notifier.sent))
	}
	// John 3:17 has no text in the sample verses.
	if v := notifier.sent[1]; v.Ref() != "John 3:17" || v.Content != HintPlaceholder {
		t.Fatalf("sent verse = %+v", v)
	}

	_ = svc.Unsubscribe(ctx, 1)
	notifier.sent = make(map[int64]entities.Verse)
	_ = svc.sendDailyVerses(ctx)
	if len(notifier.sent) != 0 {
		t.Fatalf("sent after unsubscribe = %+v", notifier.sent)
	}
}

func TestReminderServiceWithoutNotifier(t *testing.T) {
	svc := NewReminderService(repository.NewReminderRepository(storage.NewMemoryKV()), nil, nil, "0 8 * * *", zap.NewNop())
	if err := svc.sendDailyVerses(context.Background()); err == nil {
		t.Fatal("sendDailyVerses() without notifier succeeded")
	}
}

package repository

import (
	"context"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/aliskhannn/quizzible/internal/domain/entities"
	"github.com/aliskhannn/quizzible/internal/storage"
)

func TestProfileRepositoryRoundTrip(t *testing.T) {
	ctx := context.Background()
	repo := NewProfileRepository(storage.NewMemoryKV(), "Luke", zap.NewNop())

	date := time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)
	in := []entities.UserProfile{{
		Name: "anna",
		BookProgress: []entities.BookProgress{
			{Book: "John", KnownChapters: []int{3}, KnownVerses: []int{16, 1}},
		},
		Stats: []entities.SessionStats{{Date: date, CorrectAnswers: 3, TotalQuestions: 4, LongestStreak: 2}},
	}}
	if err := repo.Save(ctx, in); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	out, err := repo.Load(ctx)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(out) != 1 || out[0].Name != "anna" {
		t.Fatalf("Load() = %+v", out)
	}
	bp := out[0].BookProgress[0]
	if bp.KnownVerses[0] != 1 || bp.KnownVerses[1] != 16 {
		t.Errorf("KnownVerses = %v, want normalized [1 16]", bp.KnownVerses)
	}
	if !out[0].Stats[0].Date.Equal(date) {
		t.Errorf("Date = %v, want %v", out[0].Stats[0].Date, date)
	}
}

func TestProfileRepositoryFiltersAndMigrates(t *testing.T) {
	ctx := context.Background()
	payload := `[
		{"name":"current","bookProgress":[{"book":"John","knownChapters":[3],"knownVerses":[16]}],"stats":[]},
		{"name":"legacy","knownChapters":[2],"knownVerses":[1,2],"stats":[]},
		{"name":"","bookProgress":[]},
		{"name":"shapeless","stats":[]},
		"garbage",
		{"name":"current","bookProgress":[]}
	]`

	cases := []struct {
		legacyBook string
		want       []string
	}{
		{"Luke", []string{"current", "legacy"}},
		{"", []string{"current"}},
	}

	for _, c := range cases {
		kv := storage.NewMemoryKV()
		if err := kv.Save(ctx, ProfilesKey, []byte(payload)); err != nil {
			t.Fatalf("Save() error = %v", err)
		}

		profiles, err := NewProfileRepository(kv, c.legacyBook, zap.NewNop()).Load(ctx)
		if err != nil {
			t.Fatalf("Load() error = %v", err)
		}
		if len(profiles) != len(c.want) {
			t.Fatalf("legacyBook=%q: got %d profiles, want %v", c.legacyBook, len(profiles), c.want)
		}
		for i, name := range c.want {
			if profiles[i].Name != name {
				t.Errorf("legacyBook=%q: profiles[%d] = %q, want %q", c.legacyBook, i, profiles[i].Name, name)
			}
		}

		if c.legacyBook != "" {
			bp := profiles[1].BookProgress
			if len(bp) != 1 || bp[0].Book != "Luke" || !bp[0].HasChapter(2) || !bp[0].HasVerse(2) {
				t.Errorf("migrated progress = %+v", bp)
			}
		}
	}
}

func TestProfileRepositoryUnreadablePayload(t *testing.T) {
	ctx := context.Background()
	kv := storage.NewMemoryKV()
	_ = kv.Save(ctx, ProfilesKey, []byte("{not json"))

	profiles, err := NewProfileRepository(kv, "Luke", zap.NewNop()).Load(ctx)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(profiles) != 0 {
		t.Fatalf("Load() = %+v, want empty", profiles)
	}
}

func TestSettingsRepositoryDefaults(t *testing.T) {
	ctx := context.Background()
	repo := NewSettingsRepository(storage.NewMemoryKV())
	defaults := NarrationSettings{Rate: 1, Voice: "en"}

	got, err := repo.GetNarration(ctx, defaults)
	if err != nil || got != defaults {
		t.Fatalf("GetNarration() = %+v, %v", got, err)
	}

	want := NarrationSettings{Rate: 1.5, Voice: "en-gb"}
	if err := repo.SaveNarration(ctx, want); err != nil {
		t.Fatalf("SaveNarration() error = %v", err)
	}
	got, _ = repo.GetNarration(ctx, defaults)
	if got != want {
		t.Fatalf("GetNarration() = %+v, want %+v", got, want)
	}
}

func TestReminderRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewReminderRepository(storage.NewMemoryKV())

	_ = repo.Set(ctx, ReminderSubscription{ChatID: 1, Profile: "a"})
	_ = repo.Set(ctx, ReminderSubscription{ChatID: 2, Profile: "b"})
	_ = repo.Set(ctx, ReminderSubscription{ChatID: 1, Profile: "c"})

	subs, err := repo.GetAll(ctx)
	if err != nil || len(subs) != 2 || subs[0].Profile != "c" {
		t.Fatalf("GetAll() = %+v, %v", subs, err)
	}

	if err := repo.Delete(ctx, 1); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	subs, _ = repo.GetAll(ctx)
	if len(subs) != 1 || subs[0].ChatID != 2 {
		t.Fatalf("GetAll() after delete = %+v", subs)
	}
}

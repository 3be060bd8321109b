package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/aliskhannn/quizzible/internal/domain/entities"
	"github.com/aliskhannn/quizzible/internal/repository"
	"github.com/aliskhannn/quizzible/internal/storage"
)

func TestProfileStoreCreate(t *testing.T) {
	store := newTestStore(t)

	if _, err := store.Create("  "); !errors.Is(err, ErrEmptyName) {
		t.Fatalf("Create() error = %v, want ErrEmptyName", err)
	}
	p, err := store.Create(" anna ")
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if p.Name != "anna" {
		t.Fatalf("Name = %q, want trimmed", p.Name)
	}
	if _, err := store.Create("anna"); !errors.Is(err, ErrProfileExists) {
		t.Fatalf("Create() error = %v, want ErrProfileExists", err)
	}

	_, created, err := store.GetOrCreate("anna")
	if err != nil || created {
		t.Fatalf("GetOrCreate(existing) = created %v, %v", created, err)
	}
	_, created, err = store.GetOrCreate("ben")
	if err != nil || !created {
		t.Fatalf("GetOrCreate(new) = created %v, %v", created, err)
	}

	if got := len(store.List()); got != 2 {
		t.Fatalf("List() = %d profiles, want 2", got)
	}
}

func TestProfileStoreCommit(t *testing.T) {
	ctx := context.Background()
	kv := storage.NewMemoryKV()
	repo := repository.NewProfileRepository(kv, "Luke", zap.NewNop())

	store, err := NewProfileStore(ctx, repo, zap.NewNop())
	if err != nil {
		t.Fatalf("NewProfileStore() error = %v", err)
	}
	_, _ = store.Create("anna")
	if err := store.AppendSession("anna", entities.SessionStats{Date: time.Now(), TotalQuestions: 2}); err != nil {
		t.Fatalf("AppendSession() error = %v", err)
	}
	if err := store.AppendSession("nobody", entities.SessionStats{}); !errors.Is(err, ErrProfileNotFound) {
		t.Fatalf("AppendSession() error = %v, want ErrProfileNotFound", err)
	}

	if _, ok, _ := kv.Load(ctx, repository.ProfilesKey); ok {
		t.Fatal("profiles persisted before Commit")
	}
	if err := store.Commit(ctx); err != nil {
		t.Fatalf("Commit() error = %v", err)
	}

	reloaded, err := NewProfileStore(ctx, repo, zap.NewNop())
	if err != nil {
		t.Fatalf("NewProfileStore() error = %v", err)
	}
	p, err := reloaded.Get("anna")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if len(p.Stats) != 1 || p.Stats[0].TotalQuestions != 2 {
		t.Fatalf("reloaded stats = %+v", p.Stats)
	}
}

func TestProfileStoreReturnsCopies(t *testing.T) {
	store := newTestStore(t, "anna")
	_ = store.SetProgress("anna", []entities.BookProgress{
		{Book: "John", KnownChapters: []int{3}, KnownVerses: []int{16}},
	})

	p, _ := store.Get("anna")
	p.BookProgress[0].KnownVerses[0] = 99
	p.Name = "changed"

	again, _ := store.Get("anna")
	if again.BookProgress[0].KnownVerses[0] != 16 {
		t.Fatal("Get() exposed stored progress")
	}
	if err := store.SetProgress(p.Name, p.BookProgress); !errors.Is(err, ErrProfileNotFound) {
		t.Fatalf("SetProgress() error = %v, want ErrProfileNotFound", err)
	}
}

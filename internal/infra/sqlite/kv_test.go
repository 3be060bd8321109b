package sqlite_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/aliskhannn/quizzible/internal/infra/sqlite"
)

func TestKVStoreBasicFlow(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "data", "quizzible.db")
	st, err := sqlite.Open(path)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	t.Cleanup(func() {
		_ = st.Close()
	})

	ctx := context.Background()

	if _, ok, err := st.Load(ctx, "userProfiles"); err != nil || ok {
		t.Fatalf("Load() on empty store ok=%v err=%v", ok, err)
	}

	if err := st.Save(ctx, "userProfiles", []byte(`[]`)); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if err := st.Save(ctx, "userProfiles", []byte(`[{"name":"anna"}]`)); err != nil {
		t.Fatalf("Save() overwrite error = %v", err)
	}

	got, ok, err := st.Load(ctx, "userProfiles")
	if err != nil || !ok {
		t.Fatalf("Load() ok=%v err=%v", ok, err)
	}
	if string(got) != `[{"name":"anna"}]` {
		t.Fatalf("Load() = %s", got)
	}
}

func TestKVStoreReopen(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "quizzible.db")
	ctx := context.Background()

	st, err := sqlite.Open(path)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	if err := st.Save(ctx, "speechRate", []byte("1.25")); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	_ = st.Close()

	st, err = sqlite.Open(path)
	if err != nil {
		t.Fatalf("reopen error = %v", err)
	}
	defer st.Close()

	got, ok, err := st.Load(ctx, "speechRate")
	if err != nil || !ok || string(got) != "1.25" {
		t.Fatalf("Load() = %q ok=%v err=%v", got, ok, err)
	}
}

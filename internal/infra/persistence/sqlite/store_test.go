package sqlite

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"culturecore/pkg/domain"
)

func openTestStore(t *testing.T, path string) *Store {
	t.Helper()
	store, err := NewStore(path)
	if err != nil {
		t.Skipf("sqlite unavailable: %v", err)
	}
	t.Cleanup(func() { _ = store.DB().Close() })
	return store
}

func TestAppendSurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "manifests.db")
	store := openTestStore(t, path)
	ctx := context.Background()

	m := domain.RunManifest{
		RunID:     "run-a",
		PlateID:   "PL-001",
		Seed:      42,
		NWells:    96,
		NSuccess:  95,
		NFailed:   1,
		CreatedAt: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
	}
	if err := store.Append(ctx, m); err != nil {
		t.Fatalf("append: %v", err)
	}
	if err := store.DB().Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	reloaded, err := NewStore(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer reloaded.DB().Close()
	got, ok := reloaded.Get(ctx, "run-a")
	if !ok {
		t.Fatalf("manifest missing after reopen")
	}
	if !got.CreatedAt.Equal(m.CreatedAt) {
		t.Fatalf("created at %v want %v", got.CreatedAt, m.CreatedAt)
	}
	got.CreatedAt = m.CreatedAt
	if got != m {
		t.Fatalf("got %+v want %+v", got, m)
	}
}

func TestDuplicateAppendLeavesSnapshotIntact(t *testing.T) {
	path := filepath.Join(t.TempDir(), "manifests.db")
	store := openTestStore(t, path)
	ctx := context.Background()

	m := domain.RunManifest{RunID: "run-a", PlateID: "PL-001", CreatedAt: time.Now().UTC()}
	if err := store.Append(ctx, m); err != nil {
		t.Fatalf("append: %v", err)
	}
	if err := store.Append(ctx, m); err == nil {
		t.Fatalf("expected duplicate run id to be rejected")
	}
	listed, err := store.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(listed) != 1 {
		t.Fatalf("have %d manifests, want 1", len(listed))
	}
}

func TestSnapshotRowWritten(t *testing.T) {
	path := filepath.Join(t.TempDir(), "manifests.db")
	store := openTestStore(t, path)
	ctx := context.Background()

	var n int
	if err := store.DB().QueryRow(`SELECT COUNT(*) FROM state`).Scan(&n); err != nil {
		t.Fatalf("count state: %v", err)
	}
	if n != 0 {
		t.Fatalf("fresh store has %d state rows", n)
	}
	if err := store.Append(ctx, domain.RunManifest{RunID: "run-a", CreatedAt: time.Now().UTC()}); err != nil {
		t.Fatalf("append: %v", err)
	}
	if err := store.DB().QueryRow(`SELECT COUNT(*) FROM state WHERE bucket = ?`, "manifests").Scan(&n); err != nil {
		t.Fatalf("count state: %v", err)
	}
	if n != 1 {
		t.Fatalf("have %d snapshot rows, want 1", n)
	}
}

func TestDefaultPath(t *testing.T) {
	store := openTestStore(t, filepath.Join(t.TempDir(), "named.db"))
	if store.Path() == "" {
		t.Fatalf("path not recorded")
	}
}

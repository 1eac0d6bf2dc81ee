package postgres

import (
	"context"
	"os"
	"testing"
	"time"

	"culturecore/pkg/domain"
)

// Tests require a reachable Postgres instance; set CULTURECORE_TEST_POSTGRES_DSN
// to run them.
func openTestStore(t *testing.T, ctx context.Context) *Store {
	t.Helper()
	dsn := os.Getenv("CULTURECORE_TEST_POSTGRES_DSN")
	if dsn == "" {
		t.Skip("CULTURECORE_TEST_POSTGRES_DSN not set")
	}
	store, err := NewStore(ctx, dsn)
	if err != nil {
		t.Skipf("postgres unavailable: %v", err)
	}
	t.Cleanup(func() {
		_, _ = store.DB().ExecContext(ctx, `DELETE FROM state WHERE bucket = $1`, manifestBucket)
		_ = store.DB().Close()
	})
	return store
}

func TestAppendAndReload(t *testing.T) {
	ctx := context.Background()
	store := openTestStore(t, ctx)

	m := domain.RunManifest{
		RunID:     "run-pg-a",
		PlateID:   "PL-001",
		Seed:      42,
		NWells:    96,
		NSuccess:  96,
		CreatedAt: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
	}
	if err := store.Append(ctx, m); err != nil {
		t.Fatalf("append: %v", err)
	}

	reloaded, err := NewStore(ctx, os.Getenv("CULTURECORE_TEST_POSTGRES_DSN"))
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer reloaded.DB().Close()
	got, ok := reloaded.Get(ctx, "run-pg-a")
	if !ok {
		t.Fatalf("manifest missing after reload")
	}
	if got.PlateID != m.PlateID || got.Seed != m.Seed || !got.CreatedAt.Equal(m.CreatedAt) {
		t.Fatalf("got %+v want %+v", got, m)
	}
}

func TestDuplicateAppendRejected(t *testing.T) {
	ctx := context.Background()
	store := openTestStore(t, ctx)

	m := domain.RunManifest{RunID: "run-pg-dup", CreatedAt: time.Now().UTC()}
	if err := store.Append(ctx, m); err != nil {
		t.Fatalf("append: %v", err)
	}
	if err := store.Append(ctx, m); err == nil {
		t.Fatalf("expected duplicate run id to be rejected")
	}
}

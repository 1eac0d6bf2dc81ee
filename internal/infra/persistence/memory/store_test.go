package memory

import (
	"context"
	"testing"
	"time"

	"culturecore/pkg/domain"
)

func manifest(runID string, createdAt time.Time) domain.RunManifest {
	return domain.RunManifest{
		RunID:     runID,
		PlateID:   "PL-001",
		Seed:      42,
		NWells:    96,
		NSuccess:  96,
		CreatedAt: createdAt,
	}
}

func TestAppendAndGet(t *testing.T) {
	store := NewStore()
	ctx := context.Background()
	m := manifest("run-a", time.Now().UTC())
	if err := store.Append(ctx, m); err != nil {
		t.Fatalf("append: %v", err)
	}
	got, ok := store.Get(ctx, "run-a")
	if !ok {
		t.Fatalf("manifest not found after append")
	}
	if got != m {
		t.Fatalf("got %+v want %+v", got, m)
	}
	if _, ok := store.Get(ctx, "run-missing"); ok {
		t.Fatalf("unexpected hit for unknown run id")
	}
}

func TestAppendRejectsDuplicateRunID(t *testing.T) {
	store := NewStore()
	ctx := context.Background()
	m := manifest("run-a", time.Now().UTC())
	if err := store.Append(ctx, m); err != nil {
		t.Fatalf("append: %v", err)
	}
	if err := store.Append(ctx, m); err == nil {
		t.Fatalf("expected duplicate run id to be rejected")
	}
}

func TestAppendRejectsEmptyRunID(t *testing.T) {
	store := NewStore()
	if err := store.Append(context.Background(), domain.RunManifest{PlateID: "PL-001"}); err == nil {
		t.Fatalf("expected empty run id to be rejected")
	}
}

func TestListOrdersByCreationTime(t *testing.T) {
	store := NewStore()
	ctx := context.Background()
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	// Appended out of order, and two share a timestamp to exercise the id
	// tie break.
	for _, m := range []domain.RunManifest{
		manifest("run-c", base.Add(2*time.Hour)),
		manifest("run-b", base),
		manifest("run-a", base),
	} {
		if err := store.Append(ctx, m); err != nil {
			t.Fatalf("append %s: %v", m.RunID, err)
		}
	}
	listed, err := store.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	var ids []string
	for _, m := range listed {
		ids = append(ids, m.RunID)
	}
	want := []string{"run-a", "run-b", "run-c"}
	for i := range want {
		if ids[i] != want[i] {
			t.Fatalf("order %v want %v", ids, want)
		}
	}
}

func TestSnapshotRoundTrip(t *testing.T) {
	store := NewStore()
	ctx := context.Background()
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	for _, id := range []string{"run-a", "run-b"} {
		if err := store.Append(ctx, manifest(id, base)); err != nil {
			t.Fatalf("append %s: %v", id, err)
		}
	}
	snapshot := store.ExportState()
	if len(snapshot.Manifests) != 2 {
		t.Fatalf("snapshot has %d manifests", len(snapshot.Manifests))
	}

	restored := NewStore()
	restored.ImportState(snapshot)
	for _, id := range []string{"run-a", "run-b"} {
		got, ok := restored.Get(ctx, id)
		if !ok {
			t.Fatalf("manifest %s missing after import", id)
		}
		if got != manifest(id, base) {
			t.Fatalf("manifest %s mutated by round trip", id)
		}
	}

	// Import replaces, it does not merge.
	restored.ImportState(Snapshot{})
	if _, ok := restored.Get(ctx, "run-a"); ok {
		t.Fatalf("import of empty snapshot should clear the store")
	}
}

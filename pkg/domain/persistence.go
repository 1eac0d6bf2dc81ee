package domain

import (
	"context"
	"time"
)

// RunManifest is the one-record-per-run summary appended after plate
// execution. The kernel supplies seed, run id and plate id as opaque
// identifiers; external collaborators own any richer manifest format.
type RunManifest struct {
	RunID     string    `json:"run_id"`
	PlateID   string    `json:"plate_id"`
	Seed      uint64    `json:"seed"`
	NWells    int       `json:"n_wells"`
	NSuccess  int       `json:"n_success"`
	NFailed   int       `json:"n_failed"`
	CreatedAt time.Time `json:"created_at"`
}

// ManifestStore is the minimal durable surface for run manifests. Memory is
// the canonical implementation; SQLite and Postgres backends mirror its
// semantics and snapshot after every successful append.
type ManifestStore interface {
	Append(ctx context.Context, manifest RunManifest) error
	Get(ctx context.Context, runID string) (RunManifest, bool)
	List(ctx context.Context) ([]RunManifest, error)
}

package plate

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"culturecore/internal/artifact/core"
	"culturecore/internal/observability"
	"culturecore/pkg/domain"
)

// Persister writes the flattened plate result to the artifact store and
// appends the run manifest. Both writes are create-only; a duplicate run id
// fails instead of overwriting history.
type Persister struct {
	artifacts core.Store
	manifests domain.ManifestStore
	log       observability.Logger
	now       func() time.Time
}

// NewPersister constructs a Persister over an artifact store and a manifest
// store.
func NewPersister(artifacts core.Store, manifests domain.ManifestStore, log observability.Logger) *Persister {
	if log == nil {
		log = observability.NopLogger{}
	}
	return &Persister{artifacts: artifacts, manifests: manifests, log: log, now: func() time.Time { return time.Now().UTC() }}
}

// Persist stores the result payload under runs/<run-id>/results.json and
// appends the manifest record. The artifact lands first so a manifest never
// references a missing payload.
func (p *Persister) Persist(ctx context.Context, result domain.PlateResult) (domain.RunManifest, core.Info, error) {
	payload, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return domain.RunManifest{}, core.Info{}, fmt.Errorf("encode plate result: %w", err)
	}
	info, err := p.artifacts.Put(ctx, core.ResultsKey(result.RunID), bytes.NewReader(payload), core.PutOptions{
		ContentType: "application/json",
		Metadata:    map[string]string{"plate_id": result.PlateID},
	})
	if err != nil {
		return domain.RunManifest{}, core.Info{}, fmt.Errorf("store results artifact: %w", err)
	}
	manifest := domain.RunManifest{
		RunID:     result.RunID,
		PlateID:   result.PlateID,
		Seed:      result.Seed,
		NWells:    result.NWells,
		NSuccess:  result.NSuccess,
		NFailed:   result.NFailed,
		CreatedAt: p.now(),
	}
	if err := p.manifests.Append(ctx, manifest); err != nil {
		return domain.RunManifest{}, core.Info{}, fmt.Errorf("append run manifest: %w", err)
	}
	p.log.Info("run persisted", "run", manifest.RunID, "artifact", info.Key, "size", info.Size)
	return manifest, info, nil
}

package plate

import (
	"context"
	"encoding/json"
	"io"
	"testing"

	"culturecore/internal/artifact/core"
	artifactmem "culturecore/internal/infra/artifact/memory"
	manifestmem "culturecore/internal/infra/persistence/memory"
	"culturecore/pkg/domain"
)

func TestPersistWritesArtifactAndManifest(t *testing.T) {
	ctx := context.Background()
	artifacts := artifactmem.New()
	manifests := manifestmem.NewStore()

	result := runPlate(t, fullPlateDesign(5005))
	manifest, info, err := NewPersister(artifacts, manifests, nil).Persist(ctx, result)
	if err != nil {
		t.Fatalf("persist: %v", err)
	}
	if manifest.RunID != result.RunID || manifest.NWells != 384 || manifest.NFailed != 0 {
		t.Fatalf("manifest: %+v", manifest)
	}
	if manifest.CreatedAt.IsZero() {
		t.Fatalf("manifest missing creation time")
	}
	if info.Key != core.ResultsKey(result.RunID) {
		t.Fatalf("artifact key %s", info.Key)
	}

	_, rc, err := artifacts.Get(ctx, info.Key)
	if err != nil {
		t.Fatalf("read artifact: %v", err)
	}
	defer func() { _ = rc.Close() }()
	payload, err := io.ReadAll(rc)
	if err != nil {
		t.Fatalf("read artifact body: %v", err)
	}
	var stored domain.PlateResult
	if err := json.Unmarshal(payload, &stored); err != nil {
		t.Fatalf("decode artifact: %v", err)
	}
	if stored.RunID != result.RunID || len(stored.Wells) != len(result.Wells) {
		t.Fatalf("stored result truncated: %d wells", len(stored.Wells))
	}

	got, ok := manifests.Get(ctx, result.RunID)
	if !ok || got.PlateID != result.PlateID {
		t.Fatalf("manifest not retrievable: %+v ok=%v", got, ok)
	}
}

func TestPersistRejectsDuplicateRun(t *testing.T) {
	ctx := context.Background()
	artifacts := artifactmem.New()
	manifests := manifestmem.NewStore()
	persister := NewPersister(artifacts, manifests, nil)

	result := runPlate(t, fullPlateDesign(6006))
	if _, _, err := persister.Persist(ctx, result); err != nil {
		t.Fatalf("first persist: %v", err)
	}
	if _, _, err := persister.Persist(ctx, result); err == nil {
		t.Fatalf("duplicate run id accepted")
	}
}

// Package memory implements the canonical in-memory manifest store. The
// SQLite and Postgres backends embed this store and snapshot its state after
// every successful append.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"culturecore/pkg/domain"
)

// Snapshot is the serializable form of the store state.
type Snapshot struct {
	Manifests []domain.RunManifest `json:"manifests"`
}

// Store keeps run manifests in process memory.
type Store struct {
	mu        sync.RWMutex
	manifests map[string]domain.RunManifest
}

var _ domain.ManifestStore = (*Store)(nil)

// NewStore returns an empty in-memory manifest store.
func NewStore() *Store {
	return &Store{manifests: make(map[string]domain.RunManifest)}
}

// Append records a run manifest. Run ids are unique; appending a duplicate
// fails rather than silently overwriting history.
func (s *Store) Append(_ context.Context, manifest domain.RunManifest) error {
	if manifest.RunID == "" {
		return fmt.Errorf("manifest run id required")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.manifests[manifest.RunID]; exists {
		return fmt.Errorf("manifest %s already recorded", manifest.RunID)
	}
	s.manifests[manifest.RunID] = manifest
	return nil
}

// Get returns the manifest for a run id.
func (s *Store) Get(_ context.Context, runID string) (domain.RunManifest, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	m, ok := s.manifests[runID]
	return m, ok
}

// List returns all manifests ordered by creation time, then run id.
func (s *Store) List(_ context.Context) ([]domain.RunManifest, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.RunManifest, 0, len(s.manifests))
	for _, m := range s.manifests {
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].RunID < out[j].RunID
	})
	return out, nil
}

// ExportState returns a snapshot of the current state.
func (s *Store) ExportState() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.RunManifest, 0, len(s.manifests))
	for _, m := range s.manifests {
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].RunID < out[j].RunID })
	return Snapshot{Manifests: out}
}

// ImportState replaces the current state with a snapshot.
func (s *Store) ImportState(snapshot Snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.manifests = make(map[string]domain.RunManifest, len(snapshot.Manifests))
	for _, m := range snapshot.Manifests {
		s.manifests[m.RunID] = m
	}
}

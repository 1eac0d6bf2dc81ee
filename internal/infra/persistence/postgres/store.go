// Package postgres provides a Postgres-backed manifest store mirroring the
// in-memory semantics, snapshotting state JSON after every append.
package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	_ "github.com/jackc/pgx/v5/stdlib" // register pgx as a database/sql driver

	"culturecore/internal/infra/persistence/memory"
	"culturecore/pkg/domain"
)

const (
	defaultDriver  = "pgx"
	defaultDSN     = "postgres://localhost/culturecore?sslmode=disable"
	manifestBucket = "manifests"
)

// Store persists manifests to Postgres while reusing the in-memory
// implementation for all read semantics.
type Store struct {
	*memory.Store
	db *sql.DB
	mu sync.Mutex
}

var _ domain.ManifestStore = (*Store)(nil)

// NewStore opens a Postgres-backed store using the provided DSN (falls back
// to a local default), ensures the snapshot table exists, and hydrates the
// in-memory store from any existing snapshot.
func NewStore(ctx context.Context, dsn string) (*Store, error) {
	if dsn == "" {
		dsn = defaultDSN
	}
	db, err := sql.Open(defaultDriver, dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	if _, err := db.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS state (
		bucket TEXT PRIMARY KEY,
		payload JSONB NOT NULL
	)`); err != nil {
		return nil, fmt.Errorf("ensure state table: %w", err)
	}
	s := &Store{Store: memory.NewStore(), db: db}
	if err := s.load(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Store) load(ctx context.Context) error {
	var payload []byte
	err := s.db.QueryRowContext(ctx, `SELECT payload FROM state WHERE bucket = $1`, manifestBucket).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("select state: %w", err)
	}
	var snapshot memory.Snapshot
	if err := json.Unmarshal(payload, &snapshot); err != nil {
		return fmt.Errorf("decode manifests: %w", err)
	}
	s.ImportState(snapshot)
	return nil
}

func (s *Store) persist(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	payload, err := json.Marshal(s.ExportState())
	if err != nil {
		return err
	}
	if _, err := s.db.ExecContext(ctx, `INSERT INTO state(bucket,payload) VALUES($1,$2) ON CONFLICT(bucket) DO UPDATE SET payload=excluded.payload`, manifestBucket, payload); err != nil {
		return fmt.Errorf("upsert %s: %w", manifestBucket, err)
	}
	return nil
}

// Append records the manifest in memory, then snapshots to Postgres.
func (s *Store) Append(ctx context.Context, manifest domain.RunManifest) error {
	if err := s.Store.Append(ctx, manifest); err != nil {
		return err
	}
	return s.persist(ctx)
}

// DB exposes the underlying sql.DB for integration testing hooks.
func (s *Store) DB() *sql.DB { return s.db }

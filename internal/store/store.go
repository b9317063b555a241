package store

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite" // pure go sqlite driver

	apperrors "github.com/omermarcel/renaltrack/pkg/errors"
	"github.com/omermarcel/renaltrack/pkg/metrics"
)

// Record is one persisted entry of a collection: an id plus its JSON
// payload. The store does not interpret payloads.
type Record struct {
	ID      string `db:"id"`
	Payload []byte `db:"payload"`
}

// RecordStore is durable key-value persistence over named collections.
// Reading a collection that was never written yields an empty result,
// never an error. Mutations are durable when the call returns.
type RecordStore interface {
	GetAll(ctx context.Context, collection string) ([]Record, error)
	Put(ctx context.Context, collection, id string, payload []byte) error
	Delete(ctx context.Context, collection, id string) error
	Clear(ctx context.Context, collection string) error
}

// Store backs RecordStore with a single embedded SQLite file. Every
// collection lives in one table keyed by (collection, id), which keeps
// collections independent without cross-collection transactions.
type Store struct {
	db      *sqlx.DB
	mu      sync.Mutex
	metrics *metrics.Metrics
}

const schema = `
CREATE TABLE IF NOT EXISTS records (
	collection TEXT NOT NULL,
	id         TEXT NOT NULL,
	payload    BLOB NOT NULL,
	PRIMARY KEY (collection, id)
)`

// Open opens or creates the store at path. Use ":memory:" for tests.
func Open(path string, m *metrics.Metrics) (*Store, error) {
	if path != ":memory:" {
		if dir := filepath.Dir(path); dir != "." {
			if err := os.MkdirAll(dir, 0o750); err != nil {
				return nil, fmt.Errorf("create store directory: %w", err)
			}
		}
	}

	db, err := sqlx.Connect("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	// The sqlite driver serializes access through a single connection; a
	// larger pool just trades errors for lock contention.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create records table: %w", err)
	}

	return &Store{db: db, metrics: m}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// GetAll returns every record in the collection. A collection that has
// never been written is an empty slice, not an error.
func (s *Store) GetAll(ctx context.Context, collection string) ([]Record, error) {
	defer s.observe(collection, "get_all", time.Now())

	var records []Record
	query := `SELECT id, payload FROM records WHERE collection = ? ORDER BY id`
	if err := s.db.SelectContext(ctx, &records, query, collection); err != nil {
		s.countError(collection, "get_all")
		return nil, apperrors.Persistence("read "+collection, err)
	}
	if records == nil {
		records = []Record{}
	}
	return records, nil
}

// Put inserts the record or replaces the one already stored under the same
// id (last write wins). Identical input is idempotent.
func (s *Store) Put(ctx context.Context, collection, id string, payload []byte) error {
	defer s.observe(collection, "put", time.Now())
	s.mu.Lock()
	defer s.mu.Unlock()

	query := `
		INSERT INTO records (collection, id, payload) VALUES (?, ?, ?)
		ON CONFLICT (collection, id) DO UPDATE SET payload = excluded.payload
	`
	if _, err := s.db.ExecContext(ctx, query, collection, id, payload); err != nil {
		s.countError(collection, "put")
		return apperrors.Persistence("write "+collection, err)
	}
	return nil
}

// Delete removes the record with that id. Deleting an absent id is a no-op.
func (s *Store) Delete(ctx context.Context, collection, id string) error {
	defer s.observe(collection, "delete", time.Now())
	s.mu.Lock()
	defer s.mu.Unlock()

	query := `DELETE FROM records WHERE collection = ? AND id = ?`
	if _, err := s.db.ExecContext(ctx, query, collection, id); err != nil {
		s.countError(collection, "delete")
		return apperrors.Persistence("delete from "+collection, err)
	}
	return nil
}

// Clear removes every record in the collection; the collection remains
// usable afterward.
func (s *Store) Clear(ctx context.Context, collection string) error {
	defer s.observe(collection, "clear", time.Now())
	s.mu.Lock()
	defer s.mu.Unlock()

	query := `DELETE FROM records WHERE collection = ?`
	if _, err := s.db.ExecContext(ctx, query, collection); err != nil {
		s.countError(collection, "clear")
		return apperrors.Persistence("clear "+collection, err)
	}
	return nil
}

func (s *Store) observe(collection, operation string, start time.Time) {
	if s.metrics == nil {
		return
	}
	s.metrics.StoreOperations.WithLabelValues(collection, operation).Inc()
	s.metrics.StoreLatency.WithLabelValues(collection, operation).Observe(time.Since(start).Seconds())
}

func (s *Store) countError(collection, operation string) {
	if s.metrics == nil {
		return
	}
	s.metrics.StoreErrors.WithLabelValues(collection, operation).Inc()
}

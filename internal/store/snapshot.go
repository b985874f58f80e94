package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"sync"

	"serpentaware/internal/catalog"
)

// dialect carries the only SQL that differs between backends.
type dialect struct {
	name        string
	createTable string
	upsert      string
}

const (
	bucketSnakes    = "snakes"
	bucketEmergency = "emergency_info"
)

// snapshotStore serves reads from memory and writes the whole catalog to a
// state(bucket, payload) table on every Replace.
type snapshotStore struct {
	*Memory
	db      *sql.DB
	dialect dialect
	mu      sync.Mutex
}

func newSnapshotStore(ctx context.Context, db *sql.DB, d dialect) (*snapshotStore, error) {
	if _, err := db.ExecContext(ctx, d.createTable); err != nil {
		return nil, fmt.Errorf("create state table: %w", err)
	}
	s := &snapshotStore{Memory: NewMemory(), db: db, dialect: d}
	if err := s.load(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *snapshotStore) load(ctx context.Context) error {
	rows, err := s.db.QueryContext(ctx, `SELECT bucket, payload FROM state`)
	if err != nil {
		return fmt.Errorf("select state: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var d catalog.Dataset
	found := false
	for rows.Next() {
		var bucket string
		var payload []byte
		if err := rows.Scan(&bucket, &payload); err != nil {
			return fmt.Errorf("scan: %w", err)
		}
		switch bucket {
		case bucketSnakes:
			err = json.Unmarshal(payload, &d.Snakes)
		case bucketEmergency:
			err = json.Unmarshal(payload, &d.EmergencyInfo)
		default:
			continue
		}
		if err != nil {
			return fmt.Errorf("decode %s: %w", bucket, err)
		}
		found = true
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterate state: %w", err)
	}
	if !found {
		return nil
	}
	return s.Memory.Replace(ctx, d)
}

// Replace validates d, then persists it before swapping memory so a rejected
// or failed write leaves memory and disk agreeing.
func (s *snapshotStore) Replace(ctx context.Context, d catalog.Dataset) (retErr error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := indexSnakes(d.Snakes); err != nil {
		return err
	}

	snakes, err := json.Marshal(d.Snakes)
	if err != nil {
		return fmt.Errorf("encode snakes: %w", err)
	}
	emergency, err := json.Marshal(d.EmergencyInfo)
	if err != nil {
		return fmt.Errorf("encode emergency info: %w", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer func() {
		if retErr != nil {
			_ = tx.Rollback()
		}
	}()
	for _, row := range []struct {
		bucket  string
		payload []byte
	}{{bucketSnakes, snakes}, {bucketEmergency, emergency}} {
		if _, err := tx.ExecContext(ctx, s.dialect.upsert, row.bucket, row.payload); err != nil {
			return fmt.Errorf("upsert %s: %w", row.bucket, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return s.Memory.Replace(ctx, d)
}

// DB exposes the underlying handle for integration tests.
func (s *snapshotStore) DB() *sql.DB { return s.db }

func (s *snapshotStore) Close() error { return s.db.Close() }

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite" // pure go sqlite driver
)

const defaultSQLitePath = "serpentaware.db"

var sqliteDialect = dialect{
	name: "sqlite",
	createTable: `CREATE TABLE IF NOT EXISTS state (
		bucket TEXT PRIMARY KEY,
		payload BLOB NOT NULL
	)`,
	upsert: `INSERT INTO state(bucket,payload) VALUES(?,?) ON CONFLICT(bucket) DO UPDATE SET payload=excluded.payload`,
}

// SQLite is a snapshotting store backed by a single database file.
type SQLite struct {
	*snapshotStore
	path string
}

var _ Store = (*SQLite)(nil)

func NewSQLite(ctx context.Context, path string) (*SQLite, error) {
	if path == "" {
		path = defaultSQLitePath
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil && !errors.Is(err, os.ErrExist) {
		return nil, fmt.Errorf("create dirs: %w", err)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	// one writer; avoids SQLITE_BUSY between the snapshot tx and readers
	db.SetMaxOpenConns(1)
	ss, err := newSnapshotStore(ctx, db, sqliteDialect)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return &SQLite{snapshotStore: ss, path: path}, nil
}

// Path returns the database file path.
func (s *SQLite) Path() string { return s.path }

// Package store keeps the catalog that the API serves. The memory store is the
// source of truth at runtime; the SQL stores snapshot it so a reseeded or
// file-loaded catalog survives restarts.
package store

import (
	"context"
	"errors"
	"fmt"

	"serpentaware/internal/catalog"
	"serpentaware/internal/config"
	"serpentaware/internal/models"
)

var ErrNotFound = errors.New("not found")

// Store is the read API plus the single write the service needs: replacing the
// whole catalog.
type Store interface {
	ListSnakes(ctx context.Context, q catalog.Query) ([]models.Snake, error)
	GetSnake(ctx context.Context, id string) (models.Snake, error)
	ListEmergency(ctx context.Context) ([]models.EmergencyInfo, error)
	Snapshot(ctx context.Context) (catalog.Dataset, error)
	Replace(ctx context.Context, d catalog.Dataset) error
	Counts(ctx context.Context) (snakes, emergency int, err error)
	Close() error
}

// Open selects a Store implementation from cfg.Driver.
func Open(ctx context.Context, cfg config.StoreConfig) (Store, error) {
	switch cfg.Driver {
	case "", "memory":
		return NewMemory(), nil
	case "sqlite":
		return NewSQLite(ctx, cfg.DSN)
	case "postgres":
		return NewPostgres(ctx, cfg.DSN)
	default:
		return nil, fmt.Errorf("unknown store driver %s", cfg.Driver)
	}
}

package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"serpentaware/internal/catalog"
	"serpentaware/internal/config"
)

func TestSQLiteSnapshotSurvivesReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "nested", "snakes.db")

	s, err := NewSQLite(ctx, path)
	require.NoError(t, err)
	assert.Equal(t, path, s.Path())

	n, _, err := s.Counts(ctx)
	require.NoError(t, err)
	assert.Zero(t, n, "fresh database starts empty")

	d := catalog.MustSeed()
	require.NoError(t, s.Replace(ctx, d))
	require.NoError(t, s.Close())

	reopened, err := NewSQLite(ctx, path)
	require.NoError(t, err)
	defer reopened.Close()

	got, err := reopened.GetSnake(ctx, d.Snakes[2].ID)
	require.NoError(t, err)
	assert.Equal(t, d.Snakes[2].Name, got.Name)

	infos, err := reopened.ListEmergency(ctx)
	require.NoError(t, err)
	require.Len(t, infos, 3)
	assert.Equal(t, "Snake Bite Emergency", infos[0].Title)
}

func TestSQLiteReplaceOverwritesSnapshot(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "snakes.db")
	s, err := NewSQLite(ctx, path)
	require.NoError(t, err)
	defer s.Close()

	require.NoError(t, s.Replace(ctx, catalog.MustSeed()))
	second := catalog.MustSeed()
	second.Snakes = second.Snakes[:3]
	require.NoError(t, s.Replace(ctx, second))

	var rows int
	require.NoError(t, s.DB().QueryRowContext(ctx, `SELECT COUNT(*) FROM state`).Scan(&rows))
	assert.Equal(t, 2, rows)

	n, _, err := s.Counts(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, n)
}

func TestSQLiteReplaceFailureKeepsMemory(t *testing.T) {
	ctx := context.Background()
	s, err := NewSQLite(ctx, filepath.Join(t.TempDir(), "snakes.db"))
	require.NoError(t, err)
	require.NoError(t, s.Replace(ctx, catalog.MustSeed()))

	require.NoError(t, s.DB().Close())
	assert.Error(t, s.Replace(ctx, catalog.MustSeed()))

	n, _, err := s.Counts(ctx)
	require.NoError(t, err)
	assert.Equal(t, 11, n)
}

func TestOpenSQLite(t *testing.T) {
	s, err := Open(context.Background(), config.StoreConfig{Driver: "sqlite", DSN: filepath.Join(t.TempDir(), "x.db")})
	require.NoError(t, err)
	defer s.Close()
	assert.IsType(t, &SQLite{}, s)
}

func TestSQLiteDuplicateReplaceLeavesSnapshot(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "snakes.db")
	s, err := NewSQLite(ctx, path)
	require.NoError(t, err)
	require.NoError(t, s.Replace(ctx, catalog.MustSeed()))

	bad := catalog.MustSeed()
	bad.Snakes = bad.Snakes[:4]
	bad.Snakes[1].ID = bad.Snakes[0].ID
	assert.ErrorContains(t, s.Replace(ctx, bad), "duplicate snake id")

	n, _, err := s.Counts(ctx)
	require.NoError(t, err)
	assert.Equal(t, 11, n)
	require.NoError(t, s.Close())

	reopened, err := NewSQLite(ctx, path)
	require.NoError(t, err, "rejected dataset must not reach the database")
	defer reopened.Close()
	n, _, err = reopened.Counts(ctx)
	require.NoError(t, err)
	assert.Equal(t, 11, n)
}

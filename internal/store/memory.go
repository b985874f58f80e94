package store

import (
	"context"
	"fmt"
	"sync"

	"serpentaware/internal/catalog"
	"serpentaware/internal/models"
)

// Memory is an in-process Store. Reads hand out deep copies.
type Memory struct {
	mu        sync.RWMutex
	snakes    []models.Snake
	byID      map[string]int
	emergency []models.EmergencyInfo
}

var _ Store = (*Memory)(nil)

func NewMemory() *Memory {
	return &Memory{byID: map[string]int{}}
}

func (m *Memory) ListSnakes(ctx context.Context, q catalog.Query) ([]models.Snake, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := catalog.Filter(m.snakes, q)
	for i := range out {
		out[i] = out[i].Clone()
	}
	return out, nil
}

func (m *Memory) GetSnake(ctx context.Context, id string) (models.Snake, error) {
	if err := ctx.Err(); err != nil {
		return models.Snake{}, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	i, ok := m.byID[id]
	if !ok {
		return models.Snake{}, fmt.Errorf("snake %s: %w", id, ErrNotFound)
	}
	return m.snakes[i].Clone(), nil
}

func (m *Memory) ListEmergency(ctx context.Context) ([]models.EmergencyInfo, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]models.EmergencyInfo, len(m.emergency))
	for i, e := range m.emergency {
		out[i] = e.Clone()
	}
	return out, nil
}

func (m *Memory) Snapshot(ctx context.Context) (catalog.Dataset, error) {
	if err := ctx.Err(); err != nil {
		return catalog.Dataset{}, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return catalog.Dataset{Snakes: m.snakes, EmergencyInfo: m.emergency}.Clone(), nil
}

// Replace clears the catalog and installs a copy of d. Emergency records are
// kept sorted by priority.
func (m *Memory) Replace(ctx context.Context, d catalog.Dataset) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	d = d.Clone()
	catalog.SortEmergency(d.EmergencyInfo)
	byID, err := indexSnakes(d.Snakes)
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.snakes = d.Snakes
	m.emergency = d.EmergencyInfo
	m.byID = byID
	return nil
}

// indexSnakes maps ids to positions and rejects duplicates.
func indexSnakes(snakes []models.Snake) (map[string]int, error) {
	byID := make(map[string]int, len(snakes))
	for i, s := range snakes {
		if _, dup := byID[s.ID]; dup {
			return nil, fmt.Errorf("duplicate snake id %s", s.ID)
		}
		byID[s.ID] = i
	}
	return byID, nil
}

func (m *Memory) Counts(ctx context.Context) (int, int, error) {
	if err := ctx.Err(); err != nil {
		return 0, 0, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.snakes), len(m.emergency), nil
}

func (m *Memory) Close() error { return nil }

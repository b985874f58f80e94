package files

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"serpentaware/internal/catalog"
	"serpentaware/internal/models"
)

const yamlDataset = `
snakes:
  - name: Grass Snake
    scientific_name: Natrix natrix
    continent: Europe
    countries: [United Kingdom]
    danger_level: Harmless
    is_venomous: false
    image_url: https://images.example.com/grass.jpg
emergency_info:
  - title: Stay calm
    icon: "!"
    priority: 1
    quick_steps: [Back away slowly]
`

func writeDataset(t *testing.T, dir, name string, body []byte) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, body, 0o600))
	return path
}

func TestLoadDatasetYAMLStampsMissingFields(t *testing.T) {
	path := writeDataset(t, t.TempDir(), "catalog.yaml", []byte(yamlDataset))
	d, err := LoadDataset(path)
	require.NoError(t, err)
	require.Len(t, d.Snakes, 1)
	assert.Equal(t, models.Europe, d.Snakes[0].Continent)
	assert.NotEmpty(t, d.Snakes[0].ID)
	assert.False(t, d.Snakes[0].CreatedAt.IsZero())
	assert.NotEmpty(t, d.EmergencyInfo[0].ID)
}

func TestLoadDatasetJSONKeepsExistingIDs(t *testing.T) {
	seed := catalog.MustSeed()
	body, err := json.Marshal(seed)
	require.NoError(t, err)
	path := writeDataset(t, t.TempDir(), "catalog.json", body)

	d, err := LoadDataset(path)
	require.NoError(t, err)
	assert.Equal(t, seed.Snakes[0].ID, d.Snakes[0].ID)
	assert.Len(t, d.Snakes, 11)
}

func TestLoadDatasetRejectsInvalidRecords(t *testing.T) {
	body := []byte(`{"snakes":[{"name":"Nameless","continent":"Atlantis","danger_level":"Deadly","countries":["X"]}]}`)
	path := writeDataset(t, t.TempDir(), "bad.json", body)
	_, err := LoadDataset(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid dataset")
}

func TestLoadDatasetErrors(t *testing.T) {
	dir := t.TempDir()
	_, err := LoadDataset(filepath.Join(dir, "missing.json"))
	assert.ErrorContains(t, err, "read dataset")

	_, err = LoadDataset(writeDataset(t, dir, "catalog.toml", []byte("x=1")))
	assert.ErrorContains(t, err, "unsupported dataset extension")

	_, err = LoadDataset(writeDataset(t, dir, "broken.json", []byte("{")))
	assert.ErrorContains(t, err, "decode json")
}

func TestFileExists(t *testing.T) {
	dir := t.TempDir()
	path := writeDataset(t, dir, "catalog.yml", []byte(yamlDataset))
	assert.True(t, FileExists(path))
	assert.False(t, FileExists(path+".missing"))
	assert.False(t, FileExists(dir), "directories are not dataset files")
}

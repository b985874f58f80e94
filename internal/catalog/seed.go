// Package catalog holds the built-in snake dataset and the pure functions the
// API and views derive from it: filtering, continent counts and stats.
package catalog

import (
	"embed"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"serpentaware/internal/models"
)

//go:embed seed/*.json
var seedFS embed.FS

// Dataset is a full catalog: species plus the emergency procedures.
type Dataset struct {
	Snakes        []models.Snake         `json:"snakes" yaml:"snakes"`
	EmergencyInfo []models.EmergencyInfo `json:"emergency_info" yaml:"emergency_info"`
}

// Clone deep-copies the dataset.
func (d Dataset) Clone() Dataset {
	out := Dataset{
		Snakes:        make([]models.Snake, len(d.Snakes)),
		EmergencyInfo: make([]models.EmergencyInfo, len(d.EmergencyInfo)),
	}
	for i, s := range d.Snakes {
		out.Snakes[i] = s.Clone()
	}
	for i, e := range d.EmergencyInfo {
		out.EmergencyInfo[i] = e.Clone()
	}
	return out
}

// Seed returns the embedded dataset with fresh ids and creation times.
// Every call yields independent copies.
func Seed() (Dataset, error) {
	var d Dataset
	if err := decodeSeed("seed/snakes.json", &d.Snakes); err != nil {
		return Dataset{}, err
	}
	if err := decodeSeed("seed/emergency.json", &d.EmergencyInfo); err != nil {
		return Dataset{}, err
	}
	Stamp(&d, time.Now().UTC(), true)
	return d, nil
}

// MustSeed is Seed for callers (mostly tests) that treat a broken embed as fatal.
func MustSeed() Dataset {
	d, err := Seed()
	if err != nil {
		panic(err)
	}
	return d
}

// Stamp assigns ids and creation times. With force set every record gets a new
// id; otherwise only blank ids and zero times are filled.
func Stamp(d *Dataset, now time.Time, force bool) {
	for i := range d.Snakes {
		if force || d.Snakes[i].ID == "" {
			d.Snakes[i].ID = uuid.NewString()
		}
		if force || d.Snakes[i].CreatedAt.IsZero() {
			d.Snakes[i].CreatedAt = now
		}
	}
	for i := range d.EmergencyInfo {
		if force || d.EmergencyInfo[i].ID == "" {
			d.EmergencyInfo[i].ID = uuid.NewString()
		}
		if force || d.EmergencyInfo[i].CreatedAt.IsZero() {
			d.EmergencyInfo[i].CreatedAt = now
		}
	}
}

func decodeSeed(name string, v any) error {
	data, err := seedFS.ReadFile(name)
	if err != nil {
		return fmt.Errorf("read %s: %w", name, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("decode %s: %w", name, err)
	}
	return nil
}

package catalog

import (
	"sort"

	"serpentaware/internal/models"
)

// ContinentCounts groups snakes by continent in a single pass. Only continents
// with at least one species appear, sorted by name.
func ContinentCounts(snakes []models.Snake) []models.ContinentCount {
	counts := countByContinent(snakes)
	out := make([]models.ContinentCount, 0, len(counts))
	for c, n := range counts {
		out = append(out, models.ContinentCount{Continent: c, Count: n})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Continent < out[j].Continent })
	return out
}

// ComputeStats derives the aggregate header numbers.
func ComputeStats(snakes []models.Snake) models.Stats {
	st := models.Stats{
		TotalSnakes: len(snakes),
		Continents:  countByContinent(snakes),
	}
	for _, s := range snakes {
		if s.IsVenomous {
			st.VenomousSnakes++
		}
		if s.DangerLevel == models.Deadly {
			st.DeadlySnakes++
		}
	}
	return st
}

// SortEmergency orders procedures by priority, keeping ties in input order.
func SortEmergency(infos []models.EmergencyInfo) {
	sort.SliceStable(infos, func(i, j int) bool { return infos[i].Priority < infos[j].Priority })
}

func countByContinent(snakes []models.Snake) map[models.Continent]int {
	counts := make(map[models.Continent]int)
	for _, s := range snakes {
		counts[s.Continent]++
	}
	return counts
}

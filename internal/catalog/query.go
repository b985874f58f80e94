package catalog

import (
	"slices"
	"strings"

	"serpentaware/internal/models"
)

// Query narrows a snake listing. Zero fields match everything.
type Query struct {
	Continent   models.Continent
	DangerLevel models.DangerLevel
	Search      string
}

// IsZero reports whether q filters nothing.
func (q Query) IsZero() bool {
	return q.Continent == "" && q.DangerLevel == "" && strings.TrimSpace(q.Search) == ""
}

// Filter returns the snakes matching q in input order. The result is never nil.
// Continent and danger level match exactly; search is a case-insensitive
// substring match on name, scientific name and countries.
func Filter(snakes []models.Snake, q Query) []models.Snake {
	term := strings.ToLower(strings.TrimSpace(q.Search))
	out := make([]models.Snake, 0, len(snakes))
	for _, s := range snakes {
		if q.Continent != "" && s.Continent != q.Continent {
			continue
		}
		if q.DangerLevel != "" && s.DangerLevel != q.DangerLevel {
			continue
		}
		if term != "" && !Matches(s, term) {
			continue
		}
		out = append(out, s)
	}
	return out
}

// Matches reports whether s matches an already lowercased search term.
func Matches(s models.Snake, term string) bool {
	if strings.Contains(strings.ToLower(s.Name), term) ||
		strings.Contains(strings.ToLower(s.ScientificName), term) {
		return true
	}
	return slices.ContainsFunc(s.Countries, func(c string) bool {
		return strings.Contains(strings.ToLower(c), term)
	})
}

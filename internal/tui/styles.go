package tui

import (
	"github.com/charmbracelet/lipgloss"

	"serpentaware/internal/models"
)

type Styles struct {
	Header   lipgloss.Style
	Title    lipgloss.Style
	Subtitle lipgloss.Style
	Muted    lipgloss.Style
	Selected lipgloss.Style
	Error    lipgloss.Style
	Section  lipgloss.Style
	Danger   lipgloss.Style
	Footer   lipgloss.Style
	badges   map[models.DangerLevel]lipgloss.Style
}

func NewStyles() Styles {
	badge := func(fg, bg string) lipgloss.Style {
		return lipgloss.NewStyle().Foreground(lipgloss.Color(fg)).Background(lipgloss.Color(bg)).Padding(0, 1)
	}
	return Styles{
		Header: lipgloss.NewStyle().
			Background(lipgloss.Color("#16a34a")).
			Foreground(lipgloss.Color("#ffffff")).
			Padding(0, 2).
			Bold(true),
		Title: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#16a34a")).
			Bold(true),
		Subtitle: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#6b7280")).
			Italic(true),
		Muted: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#6b7280")),
		Selected: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#2563eb")).
			Bold(true),
		Error: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#dc2626")).
			Bold(true),
		Section: lipgloss.NewStyle().
			Bold(true).
			Underline(true),
		Danger: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#ffffff")).
			Background(lipgloss.Color("#dc2626")).
			Padding(0, 1).
			Bold(true),
		Footer: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#6b7280")).
			Padding(0, 1),
		badges: map[models.DangerLevel]lipgloss.Style{
			models.Harmless:       badge("#166534", "#dcfce7"),
			models.MildlyVenomous: badge("#854d0e", "#fef9c3"),
			models.Venomous:       badge("#9a3412", "#ffedd5"),
			models.HighlyVenomous: badge("#991b1b", "#fee2e2"),
			models.Deadly:         badge("#ffffff", "#7f1d1d"),
		},
	}
}

// Badge renders a danger level in its colour.
func (s Styles) Badge(level models.DangerLevel) string {
	st, ok := s.badges[level]
	if !ok {
		st = lipgloss.NewStyle().Foreground(lipgloss.Color("#1f2937")).Background(lipgloss.Color("#f3f4f6")).Padding(0, 1)
	}
	return st.Render(string(level))
}

// Package view tracks which screen a browsing session is on and what it has
// selected. The HTML pages and the terminal browser drive the same State.
package view

import (
	"fmt"

	"serpentaware/internal/models"
)

type View string

const (
	Home        View = "home"
	Snakes      View = "snakes"
	SnakeDetail View = "snake-detail"
	Emergency   View = "emergency"
)

// State is a browsing session. The zero value is the home view.
type State struct {
	View              View
	SelectedContinent models.Continent
	SelectedSnake     *models.Snake
	SearchTerm        string
	Snakes            []models.Snake
}

// New returns a session on the home view.
func New() *State {
	return &State{View: Home}
}

// SelectContinent shows the list for c. Any search term is dropped.
func (s *State) SelectContinent(c models.Continent, snakes []models.Snake) {
	s.SelectedContinent = c
	s.SearchTerm = ""
	s.Snakes = snakes
	s.SelectedSnake = nil
	s.View = Snakes
}

// Search shows results for term. Any continent selection is dropped.
func (s *State) Search(term string, results []models.Snake) {
	s.SearchTerm = term
	s.SelectedContinent = ""
	s.Snakes = results
	s.SelectedSnake = nil
	s.View = Snakes
}

func (s *State) SelectSnake(snake models.Snake) {
	s.SelectedSnake = &snake
	s.View = SnakeDetail
}

func (s *State) ShowEmergency() { s.View = Emergency }

// ShowHome leaves selections in place so the list can be restored.
func (s *State) ShowHome() { s.View = Home }

// Back moves one level up: detail to list, list and emergency to home.
func (s *State) Back() {
	if s.View == SnakeDetail {
		s.SelectedSnake = nil
		s.View = Snakes
		return
	}
	s.View = Home
}

// Title is the list heading.
func (s *State) Title() string {
	if s.SelectedContinent != "" {
		return fmt.Sprintf("%s Snakes", s.SelectedContinent)
	}
	return "Search Results"
}

func (s *State) CountLabel() string {
	return CountLabel(len(s.Snakes))
}

// CountLabel formats a species count for list headers.
func CountLabel(n int) string {
	return fmt.Sprintf("%d species found", n)
}

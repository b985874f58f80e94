// Package tui is a terminal browser for a SerpentAware server built on
// bubbletea. Navigation follows the same view.State the web pages use.
package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"serpentaware/internal/catalog"
	"serpentaware/internal/models"
	"serpentaware/internal/view"
)

const requestTimeout = 10 * time.Second

// Source is where the browser reads its data. *client.Client satisfies it.
type Source interface {
	InitData(ctx context.Context) (string, error)
	Snakes(ctx context.Context, q catalog.Query) ([]models.Snake, error)
	Continents(ctx context.Context) ([]models.ContinentCount, error)
	Emergency(ctx context.Context) ([]models.EmergencyInfo, error)
	Stats(ctx context.Context) (models.Stats, error)
}

type homeLoadedMsg struct {
	continents []models.ContinentCount
	stats      models.Stats
	emergency  []models.EmergencyInfo
	note       string
}

// snakesLoadedMsg answers the list load numbered seq.
type snakesLoadedMsg struct {
	seq    int
	snakes []models.Snake
	err    error
}

type errMsg struct{ err error }

type Model struct {
	ctx    context.Context
	src    Source
	reseed bool
	styles Styles

	state      *view.State
	continents []models.ContinentCount
	stats      models.Stats
	emergency  []models.EmergencyInfo

	cursor    int
	listSeq   int
	searching bool
	input     textinput.Model
	viewport  viewport.Model
	status    string
	loading   bool
	width     int
	height    int
}

// New builds the browser. With reseed set the server is reinitialised before
// the first load.
func New(ctx context.Context, src Source, reseed bool) Model {
	ti := textinput.New()
	ti.Placeholder = "name, scientific name or country"
	ti.Prompt = "Search: "
	ti.CharLimit = 80

	return Model{
		ctx:      ctx,
		src:      src,
		reseed:   reseed,
		styles:   NewStyles(),
		state:    view.New(),
		input:    ti,
		viewport: viewport.New(80, 20),
		loading:  true,
		width:    80,
		height:   24,
	}
}

// Run starts the program on the alternate screen and blocks until the user quits.
func Run(ctx context.Context, src Source, reseed bool) error {
	_, err := tea.NewProgram(New(ctx, src, reseed), tea.WithAltScreen(), tea.WithContext(ctx)).Run()
	return err
}

func (m Model) Init() tea.Cmd {
	return m.loadHome()
}

func (m Model) loadHome() tea.Cmd {
	ctx, src, reseed := m.ctx, m.src, m.reseed
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(ctx, requestTimeout)
		defer cancel()
		var msg homeLoadedMsg
		if reseed {
			note, err := src.InitData(ctx)
			if err != nil {
				return errMsg{fmt.Errorf("init data: %w", err)}
			}
			msg.note = note
		}
		var err error
		if msg.continents, err = src.Continents(ctx); err != nil {
			return errMsg{fmt.Errorf("load continents: %w", err)}
		}
		if msg.stats, err = src.Stats(ctx); err != nil {
			return errMsg{fmt.Errorf("load stats: %w", err)}
		}
		if msg.emergency, err = src.Emergency(ctx); err != nil {
			return errMsg{fmt.Errorf("load emergency info: %w", err)}
		}
		return msg
	}
}

// openList moves to the list view right away and starts filling it. Only the
// newest load may fill the list.
func (m *Model) openList(q catalog.Query, search bool) tea.Cmd {
	if search {
		m.state.Search(q.Search, nil)
	} else {
		m.state.SelectContinent(q.Continent, nil)
	}
	m.cursor = 0
	m.status = ""
	m.loading = true
	m.listSeq++

	ctx, src, seq := m.ctx, m.src, m.listSeq
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(ctx, requestTimeout)
		defer cancel()
		snakes, err := src.Snakes(ctx, q)
		if err != nil {
			return snakesLoadedMsg{seq: seq, err: fmt.Errorf("load snakes: %w", err)}
		}
		return snakesLoadedMsg{seq: seq, snakes: snakes}
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.viewport.Width = msg.Width
		m.viewport.Height = max(msg.Height-4, 3)
		return m, nil

	case homeLoadedMsg:
		m.loading = false
		m.continents, m.stats, m.emergency = msg.continents, msg.stats, msg.emergency
		m.status = msg.note
		m.cursor = min(m.cursor, max(len(m.continents)-1, 0))
		return m, nil

	case snakesLoadedMsg:
		if msg.seq != m.listSeq {
			return m, nil
		}
		m.loading = false
		if msg.err != nil {
			m.status = msg.err.Error()
			return m, nil
		}
		// Fills the list without moving the user off whatever they opened since.
		m.state.Snakes = msg.snakes
		return m, nil

	case errMsg:
		m.loading = false
		m.status = msg.err.Error()
		return m, nil

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
		if m.searching {
			return m.updateSearch(msg)
		}
		return m.updateKeys(msg)
	}

	if m.state.View == view.SnakeDetail || m.state.View == view.Emergency {
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter:
		term := strings.TrimSpace(m.input.Value())
		m.searching = false
		m.input.Blur()
		cmd := m.openList(catalog.Query{Search: term}, true)
		return m, cmd
	case tea.KeyEsc:
		m.searching = false
		m.input.Blur()
		return m, nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) updateKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	switch key {
	case "q":
		return m, tea.Quit
	case "/":
		if m.state.View == view.Home || m.state.View == view.Snakes {
			m.searching = true
			m.input.SetValue("")
			return m, m.input.Focus()
		}
	case "e":
		if m.state.View != view.Emergency {
			m.state.ShowEmergency()
			m.viewport.SetContent(renderEmergency(m.styles, m.emergency))
			m.viewport.GotoTop()
			return m, nil
		}
	case "esc", "backspace":
		m.state.Back()
		if m.state.View == view.Home {
			m.cursor = m.continentIndex(m.state.SelectedContinent)
		}
		return m, nil
	}

	switch m.state.View {
	case view.Home:
		switch key {
		case "up", "k":
			m.cursor = max(m.cursor-1, 0)
		case "down", "j":
			m.cursor = min(m.cursor+1, max(len(m.continents)-1, 0))
		case "enter":
			if len(m.continents) == 0 {
				return m, nil
			}
			cmd := m.openList(catalog.Query{Continent: m.continents[m.cursor].Continent}, false)
			return m, cmd
		case "r":
			m.loading = true
			return m, m.loadHome()
		}
	case view.Snakes:
		switch key {
		case "up", "k":
			m.cursor = max(m.cursor-1, 0)
		case "down", "j":
			m.cursor = min(m.cursor+1, max(len(m.state.Snakes)-1, 0))
		case "enter":
			if len(m.state.Snakes) == 0 {
				return m, nil
			}
			m.state.SelectSnake(m.state.Snakes[m.cursor])
			m.viewport.SetContent(renderSnake(m.styles, *m.state.SelectedSnake))
			m.viewport.GotoTop()
		}
	default:
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) continentIndex(c models.Continent) int {
	for i, cc := range m.continents {
		if cc.Continent == c {
			return i
		}
	}
	return 0
}

func (m Model) View() string {
	var sb strings.Builder
	sb.WriteString(m.styles.Header.Render("🐍 SerpentAware") + "\n")

	switch m.state.View {
	case view.Home:
		sb.WriteString(m.homeView())
	case view.Snakes:
		sb.WriteString(m.listView())
	default:
		sb.WriteString(m.viewport.View())
	}
	sb.WriteString("\n")

	if m.searching {
		sb.WriteString(m.input.View() + "\n")
	}
	switch {
	case m.loading:
		sb.WriteString(m.styles.Muted.Render("Loading…") + "\n")
	case m.status != "":
		sb.WriteString(m.styles.Error.Render(m.status) + "\n")
	}
	sb.WriteString(m.styles.Footer.Render(m.help()))
	return sb.String()
}

func (m Model) homeView() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%d snake species · %d venomous · %d continents\n\n",
		m.stats.TotalSnakes, m.stats.VenomousSnakes, len(models.AllContinents))
	sb.WriteString(m.styles.Title.Render("Explore Snakes by Continent") + "\n")
	for i, c := range m.continents {
		line := fmt.Sprintf("%s (%d snake species documented)", c.Continent, c.Count)
		if i == m.cursor {
			sb.WriteString(m.styles.Selected.Render("› "+line) + "\n")
			continue
		}
		sb.WriteString("  " + line + "\n")
	}
	return sb.String()
}

func (m Model) listView() string {
	var sb strings.Builder
	sb.WriteString(m.styles.Title.Render(m.state.Title()) + "  " + m.styles.Muted.Render(m.state.CountLabel()) + "\n\n")
	if len(m.state.Snakes) == 0 {
		if !m.loading && m.status == "" {
			sb.WriteString(m.styles.Muted.Render("No snakes match.") + "\n")
		}
		return sb.String()
	}
	for i, s := range m.state.Snakes {
		venom := ""
		if s.IsVenomous {
			venom = " ⚠️"
		}
		line := fmt.Sprintf("%s (%s)%s", s.Name, s.ScientificName, venom)
		if i == m.cursor {
			sb.WriteString(m.styles.Selected.Render("› "+line) + " " + m.styles.Badge(s.DangerLevel) + "\n")
			continue
		}
		sb.WriteString("  " + line + " " + m.styles.Badge(s.DangerLevel) + "\n")
	}
	return sb.String()
}

func (m Model) help() string {
	switch {
	case m.searching:
		return "enter: search • esc: cancel"
	case m.state.View == view.Home:
		return "↑/↓: move • enter: open • /: search • e: emergency • r: reload • q: quit"
	case m.state.View == view.Snakes:
		return "↑/↓: move • enter: details • /: search • e: emergency • esc: back • q: quit"
	default:
		return "↑/↓/pgup/pgdn: scroll • esc: back • q: quit"
	}
}

// Package web renders the SerpentAware pages on the server from embedded
// templates.
package web

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"net/url"
	"strings"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"serpentaware/internal/catalog"
	"serpentaware/internal/models"
	"serpentaware/internal/store"
	"serpentaware/internal/view"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

var pageNames = []string{"home", "snakes", "detail", "emergency", "notfound"}

// Pages serves the HTML views. Each page template is parsed together with
// base.tmpl, which provides the surrounding layout.
type Pages struct {
	store  store.Store
	logger *zap.Logger
	tmpl   map[string]*template.Template
}

func New(st store.Store, logger *zap.Logger) (*Pages, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	tmpl, err := parseTemplates()
	if err != nil {
		return nil, err
	}
	return &Pages{store: st, logger: logger.With(zap.String("component", "web")), tmpl: tmpl}, nil
}

func parseTemplates() (map[string]*template.Template, error) {
	funcMap := template.FuncMap{
		"dangerClass": func(l models.DangerLevel) string { return catalog.DangerClass(l) },
	}
	out := make(map[string]*template.Template, len(pageNames))
	for _, name := range pageNames {
		t, err := template.New(name).Funcs(funcMap).ParseFS(templateFS, "templates/base.tmpl", "templates/"+name+".tmpl")
		if err != nil {
			return nil, fmt.Errorf("parse %s template: %w", name, err)
		}
		out[name] = t
	}
	return out, nil
}

// Register mounts the page routes on r.
func (p *Pages) Register(r *mux.Router) {
	static, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err)
	}
	r.PathPrefix("/static/").Handler(http.StripPrefix("/static/", http.FileServer(http.FS(static)))).Methods("GET")
	r.HandleFunc("/", p.HomeHandler).Methods("GET")
	r.HandleFunc("/snakes", p.SnakesHandler).Methods("GET")
	r.HandleFunc("/snakes/{id}", p.DetailHandler).Methods("GET")
	r.HandleFunc("/emergency", p.EmergencyHandler).Methods("GET")
}

type layout struct {
	Title string
	View  view.View
}

type homeData struct {
	layout
	Stats          models.Stats
	ContinentTotal int
	Continents     []models.ContinentCount
}

type listData struct {
	layout
	Heading    string
	CountLabel string
	Snakes     []models.Snake
	BackQuery  template.URL
}

type detailData struct {
	layout
	Snake   models.Snake
	BackURL string
}

type emergencyData struct {
	layout
	Emergency []models.EmergencyInfo
}

type notFoundData struct {
	layout
	Heading string
	Message string
}

func (p *Pages) HomeHandler(w http.ResponseWriter, r *http.Request) {
	snakes, err := p.store.ListSnakes(r.Context(), catalog.Query{})
	if err != nil {
		p.fail(w, "home", err)
		return
	}
	p.render(w, http.StatusOK, "home", homeData{
		layout:         layout{Title: "Snake Safety & Education", View: view.Home},
		Stats:          catalog.ComputeStats(snakes),
		ContinentTotal: len(models.AllContinents),
		Continents:     catalog.ContinentCounts(snakes),
	})
}

// SnakesHandler lists snakes for ?search= or ?continent=. With neither, every
// snake is listed as search results.
func (p *Pages) SnakesHandler(w http.ResponseWriter, r *http.Request) {
	params := r.URL.Query()
	state := listState(params)

	q := catalog.Query{Continent: state.SelectedContinent, Search: state.SearchTerm}
	snakes, err := p.store.ListSnakes(r.Context(), q)
	if err != nil {
		p.fail(w, "list", err)
		return
	}
	if state.SelectedContinent != "" {
		state.SelectContinent(state.SelectedContinent, snakes)
	} else {
		state.Search(state.SearchTerm, snakes)
	}
	p.render(w, http.StatusOK, "snakes", listData{
		layout:     layout{Title: state.Title(), View: state.View},
		Heading:    state.Title(),
		CountLabel: state.CountLabel(),
		Snakes:     state.Snakes,
		BackQuery:  template.URL(listQuery(state).Encode()),
	})
}

func (p *Pages) DetailHandler(w http.ResponseWriter, r *http.Request) {
	snake, err := p.store.GetSnake(r.Context(), mux.Vars(r)["id"])
	if errors.Is(err, store.ErrNotFound) {
		p.renderNotFound(w, "Snake not found", "That snake is not in the catalog. It may have been removed when the data was reinitialized.")
		return
	}
	if err != nil {
		p.fail(w, "detail", err)
		return
	}

	params := r.URL.Query()
	state := listState(params)
	state.SelectSnake(snake)
	back := "/"
	if params.Has("continent") || params.Has("search") {
		back = "/snakes?" + listQuery(state).Encode()
	}
	p.render(w, http.StatusOK, "detail", detailData{
		layout:  layout{Title: snake.Name, View: state.View},
		Snake:   *state.SelectedSnake,
		BackURL: back,
	})
}

func (p *Pages) EmergencyHandler(w http.ResponseWriter, r *http.Request) {
	infos, err := p.store.ListEmergency(r.Context())
	if err != nil {
		p.fail(w, "emergency", err)
		return
	}
	p.render(w, http.StatusOK, "emergency", emergencyData{
		layout:    layout{Title: "Emergency Information", View: view.Emergency},
		Emergency: infos,
	})
}

// NotFound renders the HTML 404 page for unknown paths.
func (p *Pages) NotFound(w http.ResponseWriter, r *http.Request) {
	p.renderNotFound(w, "Page not found", "There is nothing at "+r.URL.Path+".")
}

func (p *Pages) renderNotFound(w http.ResponseWriter, heading, msg string) {
	p.render(w, http.StatusNotFound, "notfound", notFoundData{
		layout:  layout{Title: heading, View: view.Home},
		Heading: heading,
		Message: msg,
	})
}

// render executes into a buffer first so a template error never leaves a
// half-written page behind.
func (p *Pages) render(w http.ResponseWriter, status int, name string, data any) {
	var buf bytes.Buffer
	if err := p.tmpl[name].ExecuteTemplate(&buf, "base", data); err != nil {
		p.logger.Error("render failed", zap.String("page", name), zap.Error(err))
		http.Error(w, "template exec error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

func (p *Pages) fail(w http.ResponseWriter, page string, err error) {
	p.logger.Error("load page data", zap.String("page", page), zap.Error(err))
	http.Error(w, "Internal server error", http.StatusInternalServerError)
}

// listState rebuilds the list selection carried in the query string. A search
// term wins over a continent.
func listState(params url.Values) *view.State {
	s := view.New()
	if term := strings.TrimSpace(params.Get("search")); term != "" {
		s.Search(term, nil)
		return s
	}
	if c := models.Continent(params.Get("continent")); c != "" {
		s.SelectContinent(c, nil)
		return s
	}
	s.Search("", nil)
	return s
}

func listQuery(s *view.State) url.Values {
	q := url.Values{}
	if s.SelectedContinent != "" {
		q.Set("continent", string(s.SelectedContinent))
	} else {
		q.Set("search", s.SearchTerm)
	}
	return q
}

package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"serpentaware/internal/catalog"
	"serpentaware/internal/metrics"
	"serpentaware/internal/models"
	"serpentaware/internal/store"
	"serpentaware/internal/utils"
)

// DatasetSource yields the catalog that init-data loads into the store.
type DatasetSource func(ctx context.Context) (catalog.Dataset, error)

// Handlers serves the JSON API over a Store.
type Handlers struct {
	store   store.Store
	source  DatasetSource
	logger  *zap.Logger
	metrics *metrics.Metrics
}

// NewHandlers builds the API handlers. A nil source reseeds from the embedded
// catalog; nil metrics disables recording.
func NewHandlers(st store.Store, source DatasetSource, logger *zap.Logger, m *metrics.Metrics) *Handlers {
	if source == nil {
		source = func(context.Context) (catalog.Dataset, error) { return catalog.Seed() }
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handlers{store: st, source: source, logger: logger, metrics: m}
}

type messageResponse struct {
	Message string `json:"message"`
}

type healthResponse struct {
	Status        string `json:"status"`
	Snakes        int    `json:"snakes"`
	EmergencyInfo int    `json:"emergency_info"`
}

// RootHandler greets API clients.
func (h *Handlers) RootHandler(w http.ResponseWriter, r *http.Request) {
	utils.WriteJSON(w, http.StatusOK, messageResponse{Message: "Welcome to SerpentAware API"})
}

// ListSnakesHandler returns the snakes matching the continent, danger_level
// and search query parameters.
func (h *Handlers) ListSnakesHandler(w http.ResponseWriter, r *http.Request) {
	params := r.URL.Query()
	q := catalog.Query{
		Continent:   models.Continent(params.Get("continent")),
		DangerLevel: models.DangerLevel(params.Get("danger_level")),
		Search:      params.Get("search"),
	}
	snakes, err := h.store.ListSnakes(r.Context(), q)
	if err != nil {
		h.internalError(w, "list snakes", err)
		return
	}
	if h.metrics != nil {
		h.metrics.ObserveQuery(queryKind(q))
	}
	utils.WriteJSON(w, http.StatusOK, snakes)
}

func (h *Handlers) GetSnakeHandler(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	snake, err := h.store.GetSnake(r.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		utils.WriteError(w, utils.New(http.StatusNotFound, "Snake not found"))
		return
	}
	if err != nil {
		h.internalError(w, "get snake", err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, snake)
}

// ContinentsHandler returns per-continent species counts sorted by continent.
func (h *Handlers) ContinentsHandler(w http.ResponseWriter, r *http.Request) {
	snakes, err := h.store.ListSnakes(r.Context(), catalog.Query{})
	if err != nil {
		h.internalError(w, "list continents", err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, catalog.ContinentCounts(snakes))
}

func (h *Handlers) EmergencyHandler(w http.ResponseWriter, r *http.Request) {
	infos, err := h.store.ListEmergency(r.Context())
	if err != nil {
		h.internalError(w, "list emergency info", err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, infos)
}

func (h *Handlers) StatsHandler(w http.ResponseWriter, r *http.Request) {
	snakes, err := h.store.ListSnakes(r.Context(), catalog.Query{})
	if err != nil {
		h.internalError(w, "compute stats", err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, catalog.ComputeStats(snakes))
}

// InitDataHandler replaces the whole catalog with the active dataset.
func (h *Handlers) InitDataHandler(w http.ResponseWriter, r *http.Request) {
	d, err := h.Reload(r.Context(), "init", h.source)
	if err != nil {
		h.internalError(w, "init data", err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, messageResponse{
		Message: fmt.Sprintf("Initialized %d snakes and %d emergency info items", len(d.Snakes), len(d.EmergencyInfo)),
	})
}

// Reload pulls a dataset from src into the store and records the outcome
// under source. The server uses it for startup seeding and file reloads too.
func (h *Handlers) Reload(ctx context.Context, source string, src DatasetSource) (catalog.Dataset, error) {
	d, err := src(ctx)
	if err == nil {
		err = h.store.Replace(ctx, d)
	}
	if h.metrics != nil {
		h.metrics.ObserveReload(source, err)
	}
	if err != nil {
		return catalog.Dataset{}, err
	}
	if h.metrics != nil {
		h.metrics.SetCatalogSize(len(d.Snakes), len(d.EmergencyInfo))
	}
	h.logger.Info("catalog replaced",
		zap.String("source", source),
		zap.Int("snakes", len(d.Snakes)),
		zap.Int("emergency_info", len(d.EmergencyInfo)))
	return d, nil
}

func (h *Handlers) HealthHandler(w http.ResponseWriter, r *http.Request) {
	snakes, emergency, err := h.store.Counts(r.Context())
	if err != nil {
		h.logger.Warn("health check failed", zap.Error(err))
		utils.WriteDetail(w, http.StatusServiceUnavailable, "store unavailable")
		return
	}
	utils.WriteJSON(w, http.StatusOK, healthResponse{Status: "OK", Snakes: snakes, EmergencyInfo: emergency})
}

func (h *Handlers) internalError(w http.ResponseWriter, op string, err error) {
	h.logger.Error(op+" failed", zap.Error(err))
	utils.WriteError(w, utils.Wrap(http.StatusInternalServerError, "Internal server error", err))
}

func queryKind(q catalog.Query) string {
	if q.IsZero() {
		return "all"
	}
	var kinds []string
	if q.Continent != "" {
		kinds = append(kinds, "continent")
	}
	if q.DangerLevel != "" {
		kinds = append(kinds, "danger_level")
	}
	if strings.TrimSpace(q.Search) != "" {
		kinds = append(kinds, "search")
	}
	if len(kinds) == 1 {
		return kinds[0]
	}
	return "combined"
}

// Package api serves the SerpentAware JSON API and mounts the HTML pages on
// the same router.
package api

import (
	"net/http"
	"strings"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"serpentaware/internal/auth"
	"serpentaware/internal/config"
	"serpentaware/internal/metrics"
	"serpentaware/internal/utils"
)

// Pages is the server-rendered UI mounted next to the API.
type Pages interface {
	Register(r *mux.Router)
	NotFound(w http.ResponseWriter, r *http.Request)
}

type Options struct {
	Handlers  *Handlers
	Logger    *zap.Logger
	Metrics   *metrics.Metrics
	Admin     *auth.Verifier
	RateLimit config.RateLimitConfig
	Pages     Pages
}

// NewRouter registers every route. Requests are logged and, when metrics are
// configured, recorded by route template.
func NewRouter(opts Options) *mux.Router {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	h := opts.Handlers
	mw := observe(logger.With(zap.String("component", "http")), opts.Metrics)

	r := mux.NewRouter()
	r.Use(mw)
	r.HandleFunc("/health", h.HealthHandler).Methods("GET")
	if opts.Metrics != nil {
		r.Handle("/metrics", opts.Metrics.Handler()).Methods("GET")
	}

	a := r.PathPrefix("/api").Subrouter()
	a.HandleFunc("/", h.RootHandler).Methods("GET")
	a.HandleFunc("/snakes", h.ListSnakesHandler).Methods("GET")
	a.HandleFunc("/snakes/{id}", h.GetSnakeHandler).Methods("GET")
	a.HandleFunc("/continents", h.ContinentsHandler).Methods("GET")
	a.HandleFunc("/emergency", h.EmergencyHandler).Methods("GET")
	a.HandleFunc("/stats", h.StatsHandler).Methods("GET")
	a.Handle("/init-data", opts.Admin.Middleware(http.HandlerFunc(h.InitDataHandler))).Methods("POST")

	if opts.Pages != nil {
		opts.Pages.Register(r)
	}

	r.NotFoundHandler = mw(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		if opts.Pages != nil && !isAPIPath(req.URL.Path) {
			opts.Pages.NotFound(w, req)
			return
		}
		utils.WriteDetail(w, http.StatusNotFound, "Not Found")
	}))
	r.MethodNotAllowedHandler = mw(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		utils.WriteDetail(w, http.StatusMethodNotAllowed, "Method Not Allowed")
	}))
	return r
}

// NewHandler wraps the router with CORS and per-client rate limiting.
func NewHandler(opts Options) http.Handler {
	limiter := NewRateLimiter(opts.RateLimit, opts.Metrics)
	return CORS(limiter.Middleware(NewRouter(opts)))
}

func isAPIPath(p string) bool {
	return p == "/api" || strings.HasPrefix(p, "/api/")
}

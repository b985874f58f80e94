package api

import (
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gorilla/mux"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"serpentaware/internal/config"
	"serpentaware/internal/metrics"
	"serpentaware/internal/utils"
)

// statusResponseWriter wraps http.ResponseWriter to capture the status code.
type statusResponseWriter struct {
	http.ResponseWriter
	statusCode int
	written    bool
}

func newStatusResponseWriter(w http.ResponseWriter) *statusResponseWriter {
	return &statusResponseWriter{ResponseWriter: w, statusCode: http.StatusOK}
}

func (w *statusResponseWriter) WriteHeader(code int) {
	if !w.written {
		w.statusCode = code
		w.written = true
	}
	w.ResponseWriter.WriteHeader(code)
}

func (w *statusResponseWriter) Write(b []byte) (int, error) {
	w.written = true
	return w.ResponseWriter.Write(b)
}

func (w *statusResponseWriter) Unwrap() http.ResponseWriter {
	return w.ResponseWriter
}

// routeLabel is the matched path template, so /api/snakes/{id} is one series.
func routeLabel(r *http.Request) string {
	if route := mux.CurrentRoute(r); route != nil {
		if tmpl, err := route.GetPathTemplate(); err == nil {
			return tmpl
		}
		if re, err := route.GetPathRegexp(); err == nil {
			return re
		}
	}
	return "unmatched"
}

// observe logs every request and records it when m is non-nil.
func observe(logger *zap.Logger, m *metrics.Metrics) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			sw := newStatusResponseWriter(w)
			next.ServeHTTP(sw, r)

			elapsed := time.Since(start)
			route := routeLabel(r)
			if m != nil {
				m.ObserveRequest(route, r.Method, sw.statusCode, elapsed)
			}
			logger.Info("request",
				zap.String("method", r.Method),
				zap.String("route", route),
				zap.String("path", r.URL.Path),
				zap.Int("status", sw.statusCode),
				zap.Duration("duration", elapsed))
		})
	}
}

// CORS allows any origin, method and header. Preflight requests are answered
// directly with 204.
func CORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()
		h.Set("Access-Control-Allow-Origin", "*")
		h.Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		if req := r.Header.Get("Access-Control-Request-Headers"); req != "" {
			h.Set("Access-Control-Allow-Headers", req)
		} else {
			h.Set("Access-Control-Allow-Headers", "*")
		}
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

const (
	idleClientTTL = 5 * time.Minute
	sweepInterval = time.Minute
)

type client struct {
	limiter *rate.Limiter
	seen    time.Time
}

// RateLimiter holds one token bucket per client IP.
type RateLimiter struct {
	mu        sync.Mutex
	limit     rate.Limit
	burst     int
	clients   map[string]*client
	lastSweep time.Time
	now       func() time.Time
	metrics   *metrics.Metrics
	exempt    map[string]bool
}

// NewRateLimiter returns nil when cfg.RPS <= 0, which disables limiting.
func NewRateLimiter(cfg config.RateLimitConfig, m *metrics.Metrics) *RateLimiter {
	if cfg.RPS <= 0 {
		return nil
	}
	burst := cfg.Burst
	if burst < 1 {
		burst = 1
	}
	return &RateLimiter{
		limit:   rate.Limit(cfg.RPS),
		burst:   burst,
		clients: make(map[string]*client),
		now:     time.Now,
		metrics: m,
		exempt:  map[string]bool{"/health": true, "/metrics": true},
	}
}

// Allow reports whether ip may make another request now.
func (l *RateLimiter) Allow(ip string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	if now.Sub(l.lastSweep) > sweepInterval {
		for k, c := range l.clients {
			if now.Sub(c.seen) > idleClientTTL {
				delete(l.clients, k)
			}
		}
		l.lastSweep = now
	}
	c, ok := l.clients[ip]
	if !ok {
		c = &client{limiter: rate.NewLimiter(l.limit, l.burst)}
		l.clients[ip] = c
	}
	c.seen = now
	return c.limiter.AllowN(now, 1)
}

func (l *RateLimiter) Middleware(next http.Handler) http.Handler {
	if l == nil {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if l.exempt[r.URL.Path] || l.Allow(clientIP(r)) {
			next.ServeHTTP(w, r)
			return
		}
		if l.metrics != nil {
			l.metrics.ObserveRateLimited()
		}
		w.Header().Set("Retry-After", strconv.Itoa(retryAfterSeconds(l.limit)))
		utils.WriteDetail(w, http.StatusTooManyRequests, "Too many requests")
	})
}

func retryAfterSeconds(limit rate.Limit) int {
	secs := int(1 / float64(limit))
	if secs < 1 {
		return 1
	}
	return secs
}

func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

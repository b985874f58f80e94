// Package metrics exposes the server's Prometheus collectors.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "serpentaware"

// Metrics groups every collector the server records. Build one per registry;
// tests use a private prometheus.NewRegistry so runs don't collide.
type Metrics struct {
	gatherer prometheus.Gatherer

	requests        *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	searches        *prometheus.CounterVec
	catalogSize     *prometheus.GaugeVec
	reloads         *prometheus.CounterVec
	rateLimited     prometheus.Counter
}

// New registers the collectors on reg.
func New(reg *prometheus.Registry) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		gatherer: reg,
		requests: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "HTTP requests by route, method and status code",
		}, []string{"route", "method", "status"}),
		requestDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request latency in seconds",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}, []string{"route"}),
		searches: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "catalog",
			Name:      "queries_total",
			Help:      "Snake list queries by the kind of filter applied",
		}, []string{"kind"}),
		catalogSize: f.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "catalog",
			Name:      "records",
			Help:      "Records currently served, by kind",
		}, []string{"kind"}),
		reloads: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "catalog",
			Name:      "reloads_total",
			Help:      "Catalog replacements by source and outcome",
		}, []string{"source", "outcome"}),
		rateLimited: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "rate_limited_total",
			Help:      "Requests rejected by the per-client rate limiter",
		}),
	}
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}

func (m *Metrics) ObserveRequest(route, method string, status int, elapsed time.Duration) {
	m.requests.WithLabelValues(route, method, strconv.Itoa(status)).Inc()
	m.requestDuration.WithLabelValues(route).Observe(elapsed.Seconds())
}

// ObserveQuery records which filter a list request used: "all", "continent",
// "danger_level", "search" or "combined".
func (m *Metrics) ObserveQuery(kind string) {
	m.searches.WithLabelValues(kind).Inc()
}

// SetCatalogSize updates the served record gauges.
func (m *Metrics) SetCatalogSize(snakes, emergency int) {
	m.catalogSize.WithLabelValues("snakes").Set(float64(snakes))
	m.catalogSize.WithLabelValues("emergency_info").Set(float64(emergency))
}

// ObserveReload counts a catalog replacement. source is "init", "seed" or "file".
func (m *Metrics) ObserveReload(source string, err error) {
	outcome := "success"
	if err != nil {
		outcome = "error"
	}
	m.reloads.WithLabelValues(source, outcome).Inc()
}

func (m *Metrics) ObserveRateLimited() {
	m.rateLimited.Inc()
}

package metrics

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestMetrics(t *testing.T) *Metrics {
	t.Helper()
	return New(prometheus.NewRegistry())
}

func TestObserveRequest(t *testing.T) {
	m := newTestMetrics(t)
	m.ObserveRequest("/api/snakes", http.MethodGet, 200, 5*time.Millisecond)
	m.ObserveRequest("/api/snakes", http.MethodGet, 200, 7*time.Millisecond)
	m.ObserveRequest("/api/snakes/{id}", http.MethodGet, 404, time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.requests.WithLabelValues("/api/snakes", "GET", "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.requests.WithLabelValues("/api/snakes/{id}", "GET", "404")))
	assert.Equal(t, 2, testutil.CollectAndCount(m.requestDuration))
}

func TestCatalogGaugesAndReloads(t *testing.T) {
	m := newTestMetrics(t)
	m.SetCatalogSize(11, 3)
	assert.Equal(t, 11.0, testutil.ToFloat64(m.catalogSize.WithLabelValues("snakes")))
	assert.Equal(t, 3.0, testutil.ToFloat64(m.catalogSize.WithLabelValues("emergency_info")))

	m.ObserveReload("file", nil)
	m.ObserveReload("file", errors.New("bad yaml"))
	m.ObserveReload("init", nil)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.reloads.WithLabelValues("file", "success")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.reloads.WithLabelValues("file", "error")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.reloads.WithLabelValues("init", "success")))
}

func TestQueriesAndRateLimited(t *testing.T) {
	m := newTestMetrics(t)
	m.ObserveQuery("search")
	m.ObserveQuery("search")
	m.ObserveRateLimited()
	assert.Equal(t, 2.0, testutil.ToFloat64(m.searches.WithLabelValues("search")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.rateLimited))
}

func TestHandlerExposesMetrics(t *testing.T) {
	m := newTestMetrics(t)
	m.SetCatalogSize(1, 1)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.Contains(rec.Body.String(), "serpentaware_catalog_records"))
}

func TestSeparateRegistriesDoNotCollide(t *testing.T) {
	assert.NotPanics(t, func() {
		newTestMetrics(t)
		newTestMetrics(t)
	})
}

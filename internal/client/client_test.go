package client

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"serpentaware/internal/api"
	"serpentaware/internal/auth"
	"serpentaware/internal/catalog"
	"serpentaware/internal/metrics"
	"serpentaware/internal/models"
	"serpentaware/internal/store"
)

func newServer(t *testing.T, admin *auth.Verifier) *httptest.Server {
	t.Helper()
	st := store.NewMemory()
	require.NoError(t, st.Replace(context.Background(), catalog.MustSeed()))
	m := metrics.New(prometheus.NewRegistry())
	srv := httptest.NewServer(api.NewHandler(api.Options{
		Handlers: api.NewHandlers(st, nil, nil, m),
		Metrics:  m,
		Admin:    admin,
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestClientRoundTrip(t *testing.T) {
	srv := newServer(t, nil)
	c := New(srv.URL + "/")
	ctx := context.Background()

	msg, err := c.InitData(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Initialized 11 snakes and 3 emergency info items", msg)

	all, err := c.Snakes(ctx, catalog.Query{})
	require.NoError(t, err)
	require.Len(t, all, 11)

	aus, err := c.Snakes(ctx, catalog.Query{Continent: models.Australia, Search: "taipan"})
	require.NoError(t, err)
	require.Len(t, aus, 1)
	assert.Equal(t, "Inland Taipan", aus[0].Name)

	one, err := c.Snake(ctx, aus[0].ID)
	require.NoError(t, err)
	assert.Equal(t, aus[0].ScientificName, one.ScientificName)

	continents, err := c.Continents(ctx)
	require.NoError(t, err)
	assert.Len(t, continents, 6)

	infos, err := c.Emergency(ctx)
	require.NoError(t, err)
	assert.Len(t, infos, 3)

	st, err := c.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 7, st.DeadlySnakes)
}

func TestClientNotFound(t *testing.T) {
	srv := newServer(t, nil)
	_, err := New(srv.URL).Snake(context.Background(), "missing")
	require.Error(t, err)
	assert.True(t, IsNotFound(err))

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "Snake not found", apiErr.Detail)
}

func TestClientSendsToken(t *testing.T) {
	hash, err := auth.HashToken("tok")
	require.NoError(t, err)
	v, err := auth.NewVerifier([]byte(hash))
	require.NoError(t, err)
	srv := newServer(t, v)

	_, err = New(srv.URL).InitData(context.Background())
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)

	msg, err := New(srv.URL, WithToken("tok")).InitData(context.Background())
	require.NoError(t, err)
	assert.Contains(t, msg, "Initialized")
}

func TestClientNonJSONError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream exploded", http.StatusBadGateway)
	}))
	defer srv.Close()

	_, err := New(srv.URL).Stats(context.Background())
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadGateway, apiErr.StatusCode)
	assert.Equal(t, "upstream exploded", apiErr.Detail)
	assert.False(t, IsNotFound(err))
}

func TestClientUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, err := New(url).Continents(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "GET /api/continents")
}

func TestNewDefaults(t *testing.T) {
	c := New("")
	assert.Equal(t, DefaultServer, c.BaseURL)
	assert.NotNil(t, c.HTTPClient)
}

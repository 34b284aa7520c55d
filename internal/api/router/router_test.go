package router

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wolfman30/client-search/internal/leadsearch"
	"github.com/wolfman30/client-search/pkg/logging"
)

func newSearchHandler(t *testing.T) http.Handler {
	t.Helper()
	gen, err := leadsearch.NewGenerator(leadsearch.DefaultVocabulary(), leadsearch.DefaultGeneratorSettings())
	require.NoError(t, err)
	return leadsearch.NewHandler(leadsearch.NewService(gen), logging.NewWithWriter(io.Discard, "error"))
}

func newTestRouter(t *testing.T, mutate func(*Config)) http.Handler {
	t.Helper()
	cfg := &Config{
		Logger:             logging.NewWithWriter(io.Discard, "error"),
		SearchHandler:      newSearchHandler(t),
		CORSAllowedOrigins: []string{"*"},
	}
	if mutate != nil {
		mutate(cfg)
	}
	return New(cfg)
}

func TestHealth(t *testing.T) {
	r := newTestRouter(t, nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestSearchRouteGet(t *testing.T) {
	r := newTestRouter(t, nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/client-search?minScore=80", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var body leadsearch.SearchResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, len(body.Clients), body.Total)
	assert.Equal(t, 80, body.Filters.MinScore)
	for _, lead := range body.Clients {
		assert.GreaterOrEqual(t, lead.Score, 80)
	}
}

func TestSearchRouteDispatchesEveryMethod(t *testing.T) {
	r := newTestRouter(t, nil)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodOptions, "/client-search", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "GET, POST, OPTIONS", rec.Header().Get("Access-Control-Allow-Methods"))
	assert.Empty(t, rec.Body.String())

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/client-search", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	assert.JSONEq(t, `{"error":"Method not allowed"}`, rec.Body.String())
}

func TestSearchRouteCustomMethods(t *testing.T) {
	r := newTestRouter(t, nil)

	for _, method := range []string{"PURGE", "PROPFIND"} {
		t.Run(method, func(t *testing.T) {
			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, httptest.NewRequest(method, "/client-search", nil))

			assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
			assert.JSONEq(t, `{"error":"Method not allowed"}`, rec.Body.String())
			assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
		})
	}
}

func TestOtherRoutesKeepPlainMethodNotAllowed(t *testing.T) {
	r := newTestRouter(t, nil)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/health", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	assert.Empty(t, rec.Body.String())

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest("PURGE", "/health", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	assert.Empty(t, rec.Body.String())
}

func TestSearchRoutePanicKeepsCORS(t *testing.T) {
	r := newTestRouter(t, func(c *Config) {
		c.SearchHandler = http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
			panic("generator exploded")
		})
	})

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/client-search", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.JSONEq(t, `{"error":"Internal server error"}`, rec.Body.String())
}

func TestSearchRouteBadMinScore(t *testing.T) {
	r := newTestRouter(t, nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/client-search?minScore=lots", nil))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"error":"minScore must be an integer"}`, rec.Body.String())
}

func TestCustomSearchPath(t *testing.T) {
	r := newTestRouter(t, func(c *Config) { c.SearchPath = "/api/clients" })

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/clients", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/client-search", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestMetricsRouteOptional(t *testing.T) {
	r := newTestRouter(t, nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)

	metricsHandler := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte("# metrics"))
	})
	r = newTestRouter(t, func(c *Config) { c.MetricsHandler = metricsHandler })
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "# metrics", rec.Body.String())
}

func TestSearchRouteRateLimited(t *testing.T) {
	r := newTestRouter(t, func(c *Config) {
		c.RateLimitRPS = 0.001
		c.RateLimitBurst = 1
	})

	send := func() int {
		req := httptest.NewRequest(http.MethodGet, "/client-search", nil)
		req.RemoteAddr = "198.51.100.4:1234"
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)
		return rec.Code
	}
	assert.Equal(t, http.StatusOK, send())
	assert.Equal(t, http.StatusTooManyRequests, send())

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, rec.Code, "health is not rate limited")
}

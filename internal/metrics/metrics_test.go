package metrics

import (
	"database/sql"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMiddleware_LabelsByRoutePattern(t *testing.T) {
	m := New()

	r := chi.NewRouter()
	r.Use(m.Middleware)
	r.Get("/api/cities/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})
	r.Get("/ok", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("ok"))
	})

	for _, path := range []string{"/api/cities/1", "/api/cities/2", "/ok"} {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, path, nil))
	}

	assert.Equal(t, 2.0, testutil.ToFloat64(m.HTTPRequests.WithLabelValues("GET", "/api/cities/{id}", "404")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.HTTPRequests.WithLabelValues("GET", "/ok", "200")))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.HTTPInFlight))
}

func TestObserveQuery(t *testing.T) {
	m := New()

	m.ObserveQuery("SELECT", 5*time.Millisecond, nil)
	m.ObserveQuery("INSERT", time.Millisecond, errors.New("duplicate"))
	m.ObserveQuery("INSERT", time.Millisecond, nil)

	assert.Equal(t, 0.0, testutil.ToFloat64(m.DBQueryErrors.WithLabelValues("SELECT")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.DBQueryErrors.WithLabelValues("INSERT")))
	assert.Equal(t, 2, testutil.CollectAndCount(m.DBQueryDuration))
}

func TestObserveUpload(t *testing.T) {
	m := New()

	m.ObserveUpload("places", "stored")
	m.ObserveUpload("places", "stored")
	m.ObserveUpload("users", "rejected")

	assert.Equal(t, 2.0, testutil.ToFloat64(m.Uploads.WithLabelValues("places", "stored")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Uploads.WithLabelValues("users", "rejected")))
}

func TestDBStatsCollector(t *testing.T) {
	m := New()
	require.NoError(t, m.RegisterDBStats(func() sql.DBStats {
		return sql.DBStats{MaxOpenConnections: 20, OpenConnections: 3, InUse: 1, Idle: 2, WaitCount: 4}
	}))

	expected := `
# HELP travelguide_db_pool_in_use_connections Number of connections currently in use
# TYPE travelguide_db_pool_in_use_connections gauge
travelguide_db_pool_in_use_connections 1
# HELP travelguide_db_pool_max_open_connections Maximum number of open connections
# TYPE travelguide_db_pool_max_open_connections gauge
travelguide_db_pool_max_open_connections 20
`
	err := testutil.GatherAndCompare(m.Registry(), strings.NewReader(expected),
		"travelguide_db_pool_in_use_connections", "travelguide_db_pool_max_open_connections")
	assert.NoError(t, err)
}

func TestHandler_ExposesMetrics(t *testing.T) {
	m := New()
	m.ObserveUpload("cities", "stored")

	w := httptest.NewRecorder()
	m.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, w.Code)
	body, err := io.ReadAll(w.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `travelguide_uploads_total{dir="cities",outcome="stored"} 1`)
	assert.Contains(t, string(body), "go_goroutines")
}

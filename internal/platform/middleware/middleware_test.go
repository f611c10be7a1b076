package middleware

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ekathra/internal/platform/logger"
	"ekathra/internal/platform/metrics"
)

func TestLogger_WritesRequestLine(t *testing.T) {
	var buf bytes.Buffer
	log := logger.NewWithWriter(&buf, "info", "text")

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(Logger(log))
	r.Get("/event", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/event", nil))

	out := buf.String()
	assert.Contains(t, out, "msg=\"http request\"")
	assert.Contains(t, out, "status=418")
	assert.Contains(t, out, "path=/event")
	assert.True(t, strings.Contains(out, "request_id="), "request id should be logged")
}

func TestLatency_UsesRoutePattern(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := metrics.NewWithRegisterer(reg)

	r := chi.NewRouter()
	r.Use(Latency(m))
	r.Get("/receipts/{id}", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	for _, id := range []string{"a", "b", "c"} {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/receipts/"+id, nil))
		require.Equal(t, http.StatusNotFound, rec.Code)
	}

	got := testutil.ToFloat64(m.RequestsTotal.WithLabelValues(http.MethodGet, "/receipts/{id}", "4xx"))
	assert.Equal(t, float64(3), got)
}

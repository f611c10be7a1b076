package httptransport

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"ekathra/internal/platform/metrics"
	"ekathra/internal/platform/middleware"
	dErrors "ekathra/pkg/domain-errors"
	"ekathra/pkg/platform/httputil"
)

// RouteRegistrar mounts a module's routes.
type RouteRegistrar interface {
	Register(r chi.Router)
}

// Deps are the pieces NewRouter wires together. Gatherer defaults to the
// global Prometheus registry.
type Deps struct {
	Logger         *slog.Logger
	Metrics        *metrics.Metrics
	Gatherer       prometheus.Gatherer
	RequestTimeout time.Duration
	Health         func(ctx context.Context) error
	Modules        []RouteRegistrar
}

// NewRouter builds the root router: shared middleware, operational
// endpoints, then every module's routes.
func NewRouter(d Deps) http.Handler {
	gatherer := d.Gatherer
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}
	timeout := d.RequestTimeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.Logger(d.Logger))
	r.Use(chimw.Recoverer)
	r.Use(chimw.Timeout(timeout))
	r.Use(middleware.Latency(d.Metrics))

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		httputil.WriteError(w, dErrors.New(dErrors.CodeNotFound, "route not found"))
	})
	r.Get("/healthz", healthHandler(d.Health))
	r.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))

	for _, m := range d.Modules {
		m.Register(r)
	}
	return r
}

func healthHandler(check func(ctx context.Context) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if check != nil {
			if err := check(r.Context()); err != nil {
				httputil.WriteError(w, err)
				return
			}
		}
		httputil.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}

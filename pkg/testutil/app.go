package testutil

import (
	"io"
	"log/slog"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"

	"ekathra/internal/platform/metrics"
	"ekathra/internal/registration"
	regmetrics "ekathra/internal/registration/metrics"
	"ekathra/internal/registration/models"
	"ekathra/internal/registration/receipt"
	"ekathra/internal/registration/service"
	"ekathra/internal/registration/store"
	httptransport "ekathra/internal/transport/http"
	"ekathra/pkg/platform/middleware/admin"
)

// DefaultEvent matches the configuration defaults.
var DefaultEvent = models.Event{Name: "EKATHRA BATCH EVENT 25", Date: "4 Nov 2025", Venue: "Hyatt Regency"}

// NewApp wires the full router over an in-memory store with metrics on a
// private registry, so several apps can coexist in one test binary.
func NewApp(passphrase string) (http.Handler, error) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	reg := prometheus.NewRegistry()

	svc := registration.NewService(store.NewInMemory(), DefaultEvent,
		service.WithLogger(logger),
		service.WithMetrics(regmetrics.NewWithRegisterer(reg)),
	)
	renderer, err := receipt.New()
	if err != nil {
		return nil, err
	}
	return httptransport.NewRouter(httptransport.Deps{
		Logger:   logger,
		Metrics:  metrics.NewWithRegisterer(reg),
		Gatherer: reg,
		Health:   svc.Health,
		Modules: []httptransport.RouteRegistrar{
			registration.NewHandler(svc, renderer, admin.NewGate(passphrase, ""), logger),
		},
	}), nil
}

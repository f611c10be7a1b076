package registration

import (
	"log/slog"

	"ekathra/internal/registration/handler"
	"ekathra/internal/registration/models"
	"ekathra/internal/registration/receipt"
	"ekathra/internal/registration/service"
	"ekathra/pkg/platform/middleware/admin"
)

// Service exposes the registration and admin workflows.
type Service = service.Service

// Handler wires HTTP endpoints to the registration service.
type Handler = handler.Handler

// NewService constructs the registration service over a record store.
func NewService(store service.Store, event models.Event, opts ...service.Option) *Service {
	return service.New(store, event, opts...)
}

// NewHandler constructs the HTTP handler for attendee and admin routes.
func NewHandler(s *Service, renderer *receipt.Renderer, gate *admin.Gate, logger *slog.Logger) *Handler {
	return handler.New(s, renderer, gate, logger)
}

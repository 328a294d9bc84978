package grpc

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	"github.com/MKhiriev/go-fin-tracker/internal/logger"
	"github.com/MKhiriev/go-fin-tracker/internal/service"
)

// ServiceName is the name under which the API reports its health next to
// the overall ("") status.
const ServiceName = "fin-tracker"

// Handler is the root gRPC transport handler. It serves the standard
// grpc.health.v1.Health service backed by [service.HealthService].
type Handler struct {
	services *service.Services

	health *health.Server

	logger *logger.Logger
}

func NewHandler(services *service.Services, logger *logger.Logger) *Handler {
	logger.Debug().Msg("gRPC handler created")
	return &Handler{
		services: services,
		health:   health.NewServer(),
		logger:   logger,
	}
}

// Register attaches every service of the handler to server.
func (h *Handler) Register(server *grpc.Server) {
	healthpb.RegisterHealthServer(server, h.health)
}

// ServerOptions returns the interceptors every gRPC call runs through.
func (h *Handler) ServerOptions() []grpc.ServerOption {
	return []grpc.ServerOption{
		grpc.ChainUnaryInterceptor(h.withTraceID, h.withLogging),
	}
}

// ProbeHealth runs a health check and publishes the result to gRPC health
// watchers. A degraded service still counts as serving.
func (h *Handler) ProbeHealth(ctx context.Context) bool {
	report := h.services.HealthService.Check(ctx)
	serving := report.Status != service.StatusUnavailable

	status := healthpb.HealthCheckResponse_SERVING
	if !serving {
		status = healthpb.HealthCheckResponse_NOT_SERVING
	}

	h.health.SetServingStatus("", status)
	h.health.SetServingStatus(ServiceName, status)
	return serving
}

// Shutdown flips every status to NOT_SERVING so that clients stop routing
// new calls before the server stops.
func (h *Handler) Shutdown() {
	h.health.Shutdown()
}

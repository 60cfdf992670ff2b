package grpc

import (
	"github.com/MKhiriev/go-tool-access/internal/logger"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

// ServiceName is the name reported through the gRPC health protocol next
// to the overall ("") status.
const ServiceName = "gotoolaccess.Access"

// Handler is the root gRPC transport handler. It exposes the standard
// grpc.health.v1 service; serving status follows storage reachability and
// is driven by the health worker.
type Handler struct {
	health *health.Server

	logger *logger.Logger
}

// NewHandler constructs a [Handler] that reports NOT_SERVING until the
// first successful storage check.
func NewHandler(logger *logger.Logger) *Handler {
	h := &Handler{
		health: health.NewServer(),
		logger: logger,
	}
	h.SetServing(false)

	logger.Debug().Msg("gRPC handler created")
	return h
}

// Register attaches every gRPC service of the handler to server.
func (h *Handler) Register(server *grpc.Server) {
	healthpb.RegisterHealthServer(server, h.health)
}

// SetServing flips the reported status of the whole server.
func (h *Handler) SetServing(serving bool) {
	status := healthpb.HealthCheckResponse_NOT_SERVING
	if serving {
		status = healthpb.HealthCheckResponse_SERVING
	}

	h.health.SetServingStatus("", status)
	h.health.SetServingStatus(ServiceName, status)
}

// Shutdown reports NOT_SERVING permanently, ignoring later SetServing calls.
func (h *Handler) Shutdown() {
	h.health.Shutdown()
}

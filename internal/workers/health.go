package workers

import (
	"context"
	"time"

	"github.com/MKhiriev/go-tool-access/internal/config"
	"github.com/MKhiriev/go-tool-access/internal/logger"
	"github.com/MKhiriev/go-tool-access/internal/store"
)

// HealthWorker pings storage and reports the result, e.g. to the gRPC
// health service. Only transitions are logged.
type HealthWorker struct {
	pinger   store.Pinger
	reporter ServingReporter
	interval time.Duration

	serving *bool
	logger  *logger.Logger
}

func NewHealthWorker(pinger store.Pinger, reporter ServingReporter, cfg config.Workers, logger *logger.Logger) *HealthWorker {
	interval := cfg.HealthInterval
	if interval <= 0 {
		interval = config.DefaultHealthInterval
	}

	return &HealthWorker{
		pinger:   pinger,
		reporter: reporter,
		interval: interval,
		logger:   logger,
	}
}

// Run checks once right away and then every interval. On exit the server
// is reported as not serving.
func (h *HealthWorker) Run(ctx context.Context) {
	ticker := time.NewTicker(h.interval)
	defer ticker.Stop()

	h.check(ctx)
	for {
		select {
		case <-ctx.Done():
			h.reporter.SetServing(false)
			return
		case <-ticker.C:
			h.check(ctx)
		}
	}
}

func (h *HealthWorker) check(ctx context.Context) {
	pingCtx, cancel := context.WithTimeout(ctx, h.interval)
	defer cancel()

	err := h.pinger.Ping(pingCtx)
	serving := err == nil

	if h.serving == nil || *h.serving != serving {
		if serving {
			h.logger.Info().Msg("storage is reachable")
		} else {
			h.logger.Err(err).Msg("storage is unreachable")
		}
	}

	h.serving = &serving
	h.reporter.SetServing(serving)
}

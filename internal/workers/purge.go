package workers

import (
	"context"
	"time"

	"github.com/MKhiriev/go-tool-access/internal/config"
	"github.com/MKhiriev/go-tool-access/internal/logger"
)

// PurgeWorker periodically deletes magic-link tokens and sessions whose
// expiry lies further back than the retention window. Revoked sessions are
// purged on the same schedule.
type PurgeWorker struct {
	purgers   map[string]Purger
	interval  time.Duration
	retention time.Duration

	now    func() time.Time
	logger *logger.Logger
}

// NewPurgeWorker builds a worker over the token and session repositories.
func NewPurgeWorker(tokens, sessions Purger, cfg config.Workers, logger *logger.Logger) *PurgeWorker {
	interval := cfg.PurgeInterval
	if interval <= 0 {
		interval = config.DefaultPurgeInterval
	}

	return &PurgeWorker{
		purgers:   map[string]Purger{"auth_tokens": tokens, "sessions": sessions},
		interval:  interval,
		retention: cfg.PurgeRetention,
		now:       time.Now,
		logger:    logger,
	}
}

func (p *PurgeWorker) Run(ctx context.Context) {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	p.logger.Info().Dur("interval", p.interval).Dur("retention", p.retention).Msg("purge worker started")

	for {
		select {
		case <-ctx.Done():
			p.logger.Info().Msg("purge worker stopped")
			return
		case <-ticker.C:
			p.purge(ctx)
		}
	}
}

// purge runs one pass. A failing table does not stop the others.
func (p *PurgeWorker) purge(ctx context.Context) {
	before := p.now().Add(-p.retention)

	for table, purger := range p.purgers {
		deleted, err := purger.DeleteExpired(ctx, before)
		if err != nil {
			p.logger.Err(err).Str("table", table).Msg("purge failed")
			continue
		}
		if deleted > 0 {
			p.logger.Info().Str("table", table).Int64("deleted", deleted).Time("before", before).Msg("purged expired records")
		}
	}
}

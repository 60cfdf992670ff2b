// Package workers runs the server's background housekeeping: purging dead
// login tokens and sessions, and tracking storage health.
package workers

import (
	"context"
	"time"
)

// Worker is a background task. Run blocks until ctx is cancelled.
type Worker interface {
	Run(ctx context.Context)
}

// Purger deletes records that expired before a cut-off.
type Purger interface {
	DeleteExpired(ctx context.Context, before time.Time) (int64, error)
}

// ServingReporter receives the outcome of every health check.
type ServingReporter interface {
	SetServing(serving bool)
}

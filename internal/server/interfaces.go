package server

import "context"

// Server defines the lifecycle of the transports managed by this package.
type Server interface {
	// RunServer starts serving and blocks until a stop signal arrives and
	// everything has shut down.
	RunServer()

	// Shutdown gracefully stops the transports.
	Shutdown()
}

// BackgroundRunner is run next to the transports and stopped with them.
type BackgroundRunner interface {
	Run(ctx context.Context)
}

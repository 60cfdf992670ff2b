// Package server runs the HTTP and gRPC transports together with the
// background workers, and stops all of them gracefully on SIGINT, SIGTERM
// or SIGQUIT.
package server

package server

import "context"

// Server defines the common lifecycle contract for transport servers managed
// by this package.
//
// Implementations are expected to block in [Server.RunServer] until the
// server stops and to drain in-flight requests in [Server.Shutdown].
type Server interface {
	// RunServer starts serving requests and blocks until the server stops.
	RunServer() error

	// Shutdown gracefully stops the server. In-flight requests get until
	// ctx is done to finish.
	Shutdown(ctx context.Context) error
}

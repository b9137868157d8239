// Package delivery defines the entry points through which the outside world
// reaches the application.
package delivery

import "context"

// Delivery is a long-running transport (HTTP server, worker, ...) started by
// the application after all dependencies are wired.
type Delivery interface {
	// Serve blocks until the transport stops or the context is cancelled.
	Serve(ctx context.Context) error
}

// Package delivery defines the contract every transport entry point
// (HTTP server, workers) fulfills so the application can run them uniformly.
package delivery

import "context"

// Delivery is a long-running transport server. Serve blocks until the
// server stops or the context is cancelled.
type Delivery interface {
	Serve(ctx context.Context) error
}

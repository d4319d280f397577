// Package delivery defines the contract every transport-facing server
// (HTTP today, more later) fulfills so the application entrypoint can start
// them uniformly.
package delivery

import "context"

// Delivery is a long-running server. Serve blocks until the server stops or
// the context is cancelled.
type Delivery interface {
	Serve(ctx context.Context) error
}

// Package delivery defines the entry points that expose the storefront core.
package delivery

import (
	"context"
	"time"
)

// ShutdownTimeout bounds graceful shutdown of a delivery.
const ShutdownTimeout = 10 * time.Second

// Delivery is a long-running server started by the serve command.
type Delivery interface {
	Serve(ctx context.Context) error
}

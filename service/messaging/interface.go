// Package messaging defines the bounded FIFO queue contract shared by the
// device driver and the event service.
package messaging

import (
	"context"
	"errors"
)

// ErrFull is returned by Publish when the queue is at capacity.
var ErrFull = errors.New("messaging: queue full")

// Queue represents a bounded FIFO for any payload type.
type Queue[T any] interface {
	// Publish appends t without blocking, or returns ErrFull when the queue
	// is at capacity.
	Publish(ctx context.Context, t *T) error

	// Consume blocks until an item is available or ctx is cancelled.
	Consume(ctx context.Context) (*T, error)

	// Size returns the current number of queued items.
	Size() int

	// Capacity returns the fixed queue capacity.
	Capacity() int
}

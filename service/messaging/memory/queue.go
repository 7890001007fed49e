package memory

import (
	"context"

	"github.com/viant/kernsim/service/messaging"
)

// Config for memory queue implementation
type Config struct {
	Capacity int
}

// DefaultConfig returns a standard configuration for memory queue
func DefaultConfig() Config {
	return Config{Capacity: 100}
}

// Queue implements messaging.Queue over a buffered channel. The channel makes
// enqueue-and-wake a single atomic step, so a concurrent Publish can never
// observe a torn state, and guarantees FIFO delivery to the consumer.
type Queue[T any] struct {
	items    chan *T
	capacity int
}

// NewQueue creates a new in-memory queue
func NewQueue[T any](config Config) *Queue[T] {
	if config.Capacity <= 0 {
		config.Capacity = DefaultConfig().Capacity
	}
	return &Queue[T]{
		items:    make(chan *T, config.Capacity),
		capacity: config.Capacity,
	}
}

// Publish adds a new item to the queue; a full queue rejects with
// messaging.ErrFull instead of blocking.
func (q *Queue[T]) Publish(ctx context.Context, t *T) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}
	select {
	case q.items <- t:
		return nil
	default:
		return messaging.ErrFull
	}
}

// Consume retrieves a single item from the queue
func (q *Queue[T]) Consume(ctx context.Context) (*T, error) {
	select {
	case item := <-q.items:
		return item, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Size returns the current number of items in the queue
func (q *Queue[T]) Size() int {
	return len(q.items)
}

// Capacity returns the fixed queue capacity
func (q *Queue[T]) Capacity() int {
	return q.capacity
}

// ensure Queue implements messaging.Queue interface
var _ messaging.Queue[any] = (*Queue[any])(nil)

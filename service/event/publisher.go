package event

import (
	"context"

	"github.com/viant/kernsim/service/messaging"
)

// Publisher fans events into a bounded queue; when the queue is full the
// caller decides whether to drop or surface the rejection.
type Publisher[T any] struct {
	queue messaging.Queue[Event[T]]
}

// NewPublisher creates a publisher over the supplied queue.
func NewPublisher[T any](queue messaging.Queue[Event[T]]) *Publisher[T] {
	return &Publisher[T]{queue: queue}
}

// Publish enqueues the event.
func (p *Publisher[T]) Publish(ctx context.Context, event *Event[T]) error {
	return p.queue.Publish(ctx, event)
}

// Consume retrieves a single event, blocking until one is available or ctx
// is cancelled.
func (p *Publisher[T]) Consume(ctx context.Context) (*Event[T], error) {
	return p.queue.Consume(ctx)
}

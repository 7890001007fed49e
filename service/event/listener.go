package event

import (
	"context"
)

// Listener drains a publisher in the background and hands each event to a
// handler.
type Listener[T any] struct {
	publisher *Publisher[T]
	handler   func(*Event[T])
	cancel    context.CancelFunc
	done      chan struct{}
}

// NewListener creates a stopped listener; call Start to begin draining.
func NewListener[T any](publisher *Publisher[T], handler func(*Event[T])) *Listener[T] {
	return &Listener[T]{
		publisher: publisher,
		handler:   handler,
	}
}

// Start launches the draining goroutine. Starting a running listener is a
// no-op.
func (l *Listener[T]) Start() {
	if l.cancel != nil {
		return
	}
	ctx, cancel := context.WithCancel(context.Background())
	l.cancel = cancel
	done := make(chan struct{})
	l.done = done
	go func() {
		defer close(done)
		for {
			event, err := l.publisher.Consume(ctx)
			if err != nil {
				return
			}
			l.handler(event)
		}
	}()
}

// Stop cancels the draining goroutine and waits for it to exit. It is
// idempotent.
func (l *Listener[T]) Stop() {
	if l.cancel == nil {
		return
	}
	l.cancel()
	<-l.done
	l.cancel = nil
}

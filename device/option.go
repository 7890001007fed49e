package device

import (
	"github.com/viant/kernsim/logging"
	"github.com/viant/kernsim/service/event"
	"github.com/viant/kernsim/service/messaging"
)

// Option customises a Driver instance.
type Option func(*Driver)

// WithConfig sets the driver configuration.
func WithConfig(config Config) Option {
	return func(d *Driver) {
		d.config = config
	}
}

// WithQueue sets the request queue.
func WithQueue(queue messaging.Queue[Request]) Option {
	return func(d *Driver) {
		d.queue = queue
	}
}

// WithLogger sets the logger.
func WithLogger(logger *logging.Logger) Option {
	return func(d *Driver) {
		d.logger = logger
	}
}

// WithCompletionPublisher sets the publisher notified after each processed
// request.
func WithCompletionPublisher(publisher *event.Publisher[Completion]) Option {
	return func(d *Driver) {
		d.events = publisher
	}
}

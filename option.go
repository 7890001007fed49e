package kernsim

import (
	"io"

	"github.com/viant/kernsim/device"
	"github.com/viant/kernsim/logging"
	"github.com/viant/kernsim/memory"
	"github.com/viant/kernsim/model/types"
	"github.com/viant/kernsim/service/messaging"
	"github.com/viant/kernsim/tracing"
	"github.com/viant/x"
)

// Option defines a functional option for the service
type Option func(*Service)

// WithConfig sets the service configuration.
func WithConfig(config Config) Option {
	return func(s *Service) {
		s.config = config
	}
}

// WithLogger sets the logger.
func WithLogger(logger *logging.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

// WithPool sets the memory pool, overriding the configured one.
func WithPool(pool *memory.Pool) Option {
	return func(s *Service) {
		s.pool = pool
	}
}

// WithDriver sets the device driver, overriding the configured one.
func WithDriver(driver *device.Driver) Option {
	return func(s *Service) {
		s.driver = driver
	}
}

// WithQueue sets the device request queue.
func WithQueue(queue messaging.Queue[device.Request]) Option {
	return func(s *Service) {
		s.queue = queue
	}
}

// WithExtensionServices registers additional command services.
func WithExtensionServices(services ...types.Service) Option {
	return func(s *Service) {
		s.extensionServices = append(s.extensionServices, services...)
	}
}

// WithExtensionTypes registers additional data types.
func WithExtensionTypes(extensionTypes ...*x.Type) Option {
	return func(s *Service) {
		s.extensionTypes = append(s.extensionTypes, extensionTypes...)
	}
}

// WithShellInput sets the shell command source.
func WithShellInput(in io.Reader) Option {
	return func(s *Service) {
		s.shellIn = in
	}
}

// WithShellOutput sets the shell output destination.
func WithShellOutput(out io.Writer) Option {
	return func(s *Service) {
		s.shellOut = out
	}
}

// WithTracing initialises span export.
func WithTracing(name, version, outputFile string) Option {
	return func(s *Service) {
		_ = tracing.Init(name, version, outputFile)
	}
}

// WithCompletionHandler sets the callback invoked for each processed device
// request.
func WithCompletionHandler(handler func(device.Completion)) Option {
	return func(s *Service) {
		s.completionHandler = handler
	}
}

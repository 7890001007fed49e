package kernsim

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/viant/kernsim/device"
	"github.com/viant/kernsim/extension"
	"github.com/viant/kernsim/logging"
	"github.com/viant/kernsim/memory"
	"github.com/viant/kernsim/model/types"
	"github.com/viant/kernsim/service/action/devio"
	"github.com/viant/kernsim/service/action/memsys"
	"github.com/viant/kernsim/service/event"
	"github.com/viant/kernsim/service/messaging"
	memqueue "github.com/viant/kernsim/service/messaging/memory"
	"github.com/viant/kernsim/service/shell"
	"github.com/viant/kernsim/tracing"
	"github.com/viant/x"
)

// Service assembles the memory pool, the device driver and the shell into a
// runnable kernel simulation.
type Service struct {
	config      Config
	logger      *logging.Logger
	pool        *memory.Pool
	queue       messaging.Queue[device.Request]
	driver      *device.Driver
	completions *event.Publisher[device.Completion]
	listener    *event.Listener[device.Completion]
	actions     *extension.Actions
	shell       *shell.Service

	memsys *memsys.Service
	devio  *devio.Service

	extensionTypes    []*x.Type
	extensionServices []types.Service
	shellIn           io.Reader
	shellOut          io.Writer
	completionHandler func(device.Completion)
	runtime           *Runtime
}

// New creates a service instance with the supplied options.
func New(options ...Option) (*Service, error) {
	s := &Service{config: DefaultConfig()}
	for _, option := range options {
		option(s)
	}
	if err := s.init(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Service) init() error {
	if err := s.config.Validate(); err != nil {
		return err
	}
	if err := s.ensureBaseSetup(); err != nil {
		return err
	}
	s.actions = extension.NewActions(s.extensionTypes...)
	s.memsys = memsys.New(s.pool)
	s.devio = devio.New(s.driver)
	s.actions.Register(s.memsys)
	s.actions.Register(s.devio)
	for _, service := range s.extensionServices {
		s.actions.Register(service)
	}
	s.registerCommands()
	s.runtime = &Runtime{service: s}
	return nil
}

func (s *Service) ensureBaseSetup() error {
	if s.logger == nil {
		s.logger = logging.Default()
	}
	if s.config.Logging.Level != "" {
		level, err := logging.ParseLevel(s.config.Logging.Level)
		if err != nil {
			return err
		}
		s.logger.SetMinLevel(level)
	}
	if s.pool == nil {
		pool, err := memory.New(s.config.Memory)
		if err != nil {
			return err
		}
		s.pool = pool
	}
	if s.queue == nil {
		s.queue = memqueue.NewQueue[device.Request](memqueue.Config{Capacity: s.config.Device.QueueCapacity})
	}
	if s.completions == nil {
		queue := memqueue.NewQueue[event.Event[device.Completion]](memqueue.Config{Capacity: s.config.Device.QueueCapacity})
		s.completions = event.NewPublisher[device.Completion](queue)
	}
	if s.driver == nil {
		driver, err := device.New(
			device.WithConfig(s.config.Device),
			device.WithQueue(s.queue),
			device.WithLogger(s.logger),
			device.WithCompletionPublisher(s.completions),
		)
		if err != nil {
			return err
		}
		s.driver = driver
	}
	if s.completionHandler == nil {
		s.completionHandler = func(completion device.Completion) {
			s.logger.Debugf("Completed %s request %s (%d bytes) in %s",
				completion.Request.Operation, completion.Request.ID, completion.Request.Size, completion.Elapsed)
		}
	}
	s.listener = event.NewListener[device.Completion](s.completions, func(e *event.Event[device.Completion]) {
		s.completionHandler(e.Data)
	})
	if s.shell == nil {
		shellOptions := []shell.Option{shell.WithLogger(s.logger)}
		if s.shellIn != nil {
			shellOptions = append(shellOptions, shell.WithInput(s.shellIn))
		}
		if s.shellOut != nil {
			shellOptions = append(shellOptions, shell.WithOutput(s.shellOut))
		}
		s.shell = shell.New(shellOptions...)
	}
	if s.config.Tracing.Enabled {
		if err := tracing.Init("kernsim", "", s.config.Tracing.OutputFile); err != nil {
			return err
		}
	}
	return nil
}

// dispatch routes an invocation to a registered action service method.
func (s *Service) dispatch(ctx context.Context, service, method string, input, output interface{}) error {
	action := s.actions.Lookup(service)
	if action == nil {
		return fmt.Errorf("unknown service: %s", service)
	}
	executable, err := action.Method(method)
	if err != nil {
		return err
	}
	return executable(ctx, input, output)
}

func (s *Service) registerCommands() {
	s.shell.Register(&shell.Command{
		Name: "allocate",
		Help: "Allocate memory: allocate <size>",
		Handler: func(ctx context.Context, args []string) error {
			if len(args) < 1 {
				return fmt.Errorf("size argument required for allocate")
			}
			size, err := shell.ParseSize(args[0])
			if err != nil {
				return err
			}
			output := &memsys.AllocateOutput{}
			if err := s.dispatch(ctx, memsys.Name, "allocate", &memsys.AllocateInput{Size: size}, output); err != nil {
				return fmt.Errorf("allocation failed: %w", err)
			}
			if output.Nil {
				s.logger.Info("Allocated 0 bytes (nil reference)")
				return nil
			}
			s.logger.Infof("Allocated %d bytes at %d", size, output.Address)
			return nil
		},
	})
	s.shell.Register(&shell.Command{
		Name: "free",
		Help: "Free memory: free <address>",
		Handler: func(ctx context.Context, args []string) error {
			if len(args) < 1 {
				return fmt.Errorf("address argument required for free")
			}
			address, err := shell.ParseSize(args[0])
			if err != nil {
				return err
			}
			output := &memsys.FreeOutput{}
			if err := s.dispatch(ctx, memsys.Name, "free", &memsys.FreeInput{Address: address}, output); err != nil {
				return err
			}
			if !output.Freed {
				s.logger.Warningf("No allocation at address %d", address)
				return nil
			}
			s.logger.Infof("Freed %d bytes at %d", output.Bytes, address)
			return nil
		},
	})
	s.shell.Register(&shell.Command{
		Name: "submit",
		Help: "Submit device request: submit <operation> <size>",
		Handler: func(ctx context.Context, args []string) error {
			if len(args) < 2 {
				return fmt.Errorf("operation and size arguments required for submit")
			}
			size, err := shell.ParseSize(args[1])
			if err != nil {
				return err
			}
			output := &devio.SubmitOutput{}
			err = s.dispatch(ctx, devio.Name, "submit", &devio.SubmitInput{Operation: args[0], Size: size}, output)
			if err != nil {
				if errors.Is(err, device.ErrQueueFull) {
					s.logger.Warning("Device queue full")
					return nil
				}
				return err
			}
			s.logger.Infof("Submitted device request: %s with size %d", args[0], size)
			return nil
		},
	})
	s.shell.Register(&shell.Command{
		Name: "stats",
		Help: "Show memory and device statistics",
		Handler: func(ctx context.Context, args []string) error {
			memStats := &memsys.StatsOutput{}
			if err := s.dispatch(ctx, memsys.Name, "stats", &memsys.StatsInput{}, memStats); err != nil {
				return err
			}
			devStats := &devio.StatsOutput{}
			if err := s.dispatch(ctx, devio.Name, "stats", &devio.StatsInput{}, devStats); err != nil {
				return err
			}
			_, _ = fmt.Fprintln(s.shell.Output(), memStats.Stats.String())
			_, _ = fmt.Fprintln(s.shell.Output(), devStats.Stats.String())
			return nil
		},
	})
	s.shell.Register(&shell.Command{
		Name: "status",
		Help: "Show device status",
		Handler: func(ctx context.Context, args []string) error {
			output := &devio.StatusOutput{}
			if err := s.dispatch(ctx, devio.Name, "status", &devio.StatusInput{}, output); err != nil {
				return err
			}
			s.logger.Infof("Device status: %s", output.Status)
			return nil
		},
	})
	s.shell.Register(&shell.Command{
		Name: "loglevel",
		Help: "Set log level: loglevel <debug|info|warning|error>",
		Handler: func(ctx context.Context, args []string) error {
			if len(args) < 1 {
				return fmt.Errorf("level argument required for loglevel")
			}
			level, err := logging.ParseLevel(args[0])
			if err != nil {
				return err
			}
			s.logger.SetMinLevel(level)
			s.logger.Infof("Log level set to %s", level)
			return nil
		},
	})
}

// Logger returns the service logger.
func (s *Service) Logger() *logging.Logger {
	return s.logger
}

// Pool returns the memory pool.
func (s *Service) Pool() *memory.Pool {
	return s.pool
}

// Driver returns the device driver.
func (s *Service) Driver() *device.Driver {
	return s.driver
}

// Shell returns the command shell.
func (s *Service) Shell() *shell.Service {
	return s.shell
}

// Actions returns the action service registry.
func (s *Service) Actions() *extension.Actions {
	return s.actions
}

// Config returns the effective configuration.
func (s *Service) Config() Config {
	return s.config
}

// Runtime returns the service runtime.
func (s *Service) Runtime() *Runtime {
	return s.runtime
}

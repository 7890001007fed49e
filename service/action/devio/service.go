// Package devio exposes the device driver as a shell-dispatchable command
// service.
package devio

import (
	"context"
	"reflect"
	"strings"

	"github.com/viant/kernsim/device"
	"github.com/viant/kernsim/extension"
	"github.com/viant/kernsim/model/types"
	"github.com/viant/x"
)

// Name identifies the service in the actions registry.
const Name = "devio"

// Service submits requests to the device driver and reports its state.
type Service struct {
	driver *device.Driver
}

// SubmitInput describes the I/O request to enqueue.
type SubmitInput struct {
	Operation string
	Size      uint64
}

// SubmitOutput carries the id of the accepted request.
type SubmitOutput struct {
	RequestID string
}

type StatusInput struct{}

// StatusOutput carries the current device state.
type StatusOutput struct {
	Status string
}

type StatsInput struct{}

// StatsOutput carries the driver snapshot.
type StatsOutput struct {
	device.Stats
}

// New creates a devio service over the supplied driver.
func New(driver *device.Driver) *Service {
	return &Service{driver: driver}
}

// Name returns the service name
func (s *Service) Name() string {
	return Name
}

// Methods returns the service methods
func (s *Service) Methods() types.Signatures {
	return []types.Signature{
		{
			Name:        "submit",
			Description: "Enqueues a simulated device I/O request.",
			Input:       reflect.TypeOf(&SubmitInput{}),
			Output:      reflect.TypeOf(&SubmitOutput{}),
		},
		{
			Name:        "status",
			Description: "Reports the current device state.",
			Input:       reflect.TypeOf(&StatusInput{}),
			Output:      reflect.TypeOf(&StatusOutput{}),
		},
		{
			Name:        "stats",
			Description: "Reports queue depth and processed request count.",
			Input:       reflect.TypeOf(&StatsInput{}),
			Output:      reflect.TypeOf(&StatsOutput{}),
		},
	}
}

// Method returns the specified method
func (s *Service) Method(name string) (types.Executable, error) {
	switch strings.ToLower(name) {
	case "submit":
		return s.submit, nil
	case "status":
		return s.status, nil
	case "stats":
		return s.stats, nil
	default:
		return nil, types.NewMethodNotFoundError(name)
	}
}

// InitTypes contributes the service data types to the registry.
func (s *Service) InitTypes(registry *extension.Types) {
	registry.Register(x.NewType(reflect.TypeOf(SubmitInput{})))
	registry.Register(x.NewType(reflect.TypeOf(SubmitOutput{})))
	registry.Register(x.NewType(reflect.TypeOf(StatusInput{})))
	registry.Register(x.NewType(reflect.TypeOf(StatusOutput{})))
	registry.Register(x.NewType(reflect.TypeOf(StatsInput{})))
	registry.Register(x.NewType(reflect.TypeOf(StatsOutput{})))
}

func (s *Service) submit(ctx context.Context, in, out interface{}) error {
	input, ok := in.(*SubmitInput)
	if !ok {
		return types.NewInvalidInputError(in)
	}
	output, ok := out.(*SubmitOutput)
	if !ok {
		return types.NewInvalidOutputError(out)
	}
	id, err := s.driver.Submit(ctx, input.Operation, input.Size)
	if err != nil {
		return err
	}
	output.RequestID = id
	return nil
}

func (s *Service) status(ctx context.Context, in, out interface{}) error {
	if _, ok := in.(*StatusInput); !ok {
		return types.NewInvalidInputError(in)
	}
	output, ok := out.(*StatusOutput)
	if !ok {
		return types.NewInvalidOutputError(out)
	}
	output.Status = s.driver.Status().String()
	return nil
}

func (s *Service) stats(ctx context.Context, in, out interface{}) error {
	if _, ok := in.(*StatsInput); !ok {
		return types.NewInvalidInputError(in)
	}
	output, ok := out.(*StatsOutput)
	if !ok {
		return types.NewInvalidOutputError(out)
	}
	output.Stats = s.driver.Stats()
	return nil
}

var _ types.Service = (*Service)(nil)

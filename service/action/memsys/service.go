// Package memsys exposes the memory pool as a shell-dispatchable command
// service.
package memsys

import (
	"context"
	"reflect"
	"strings"

	"github.com/viant/kernsim/extension"
	"github.com/viant/kernsim/memory"
	"github.com/viant/kernsim/model/types"
	"github.com/viant/kernsim/service/store"
	"github.com/viant/x"
)

// Name identifies the service in the actions registry.
const Name = "memsys"

// Service drives the pool and tracks the references it handed out so that
// allocations can later be freed by bare address.
type Service struct {
	pool *memory.Pool
	refs *store.Memory[uint64, memory.Ref]
}

// AllocateInput requests n contiguous bytes.
type AllocateInput struct {
	Size uint64
}

// AllocateOutput reports where the allocation landed. Nil is set for
// zero-sized requests.
type AllocateOutput struct {
	Address uint64
	Granted uint64
	Nil     bool
}

// FreeInput releases the allocation starting at Address.
type FreeInput struct {
	Address uint64
}

// FreeOutput reports whether Address matched a live allocation.
type FreeOutput struct {
	Freed bool
	Bytes uint64
}

type StatsInput struct{}

// StatsOutput carries the pool usage snapshot.
type StatsOutput struct {
	memory.Stats
}

// New creates a memsys service over the supplied pool.
func New(pool *memory.Pool) *Service {
	return &Service{
		pool: pool,
		refs: store.NewMemory[uint64, memory.Ref](func(r *memory.Ref) uint64 {
			return r.Offset()
		}),
	}
}

// Name returns the service name
func (s *Service) Name() string {
	return Name
}

// Methods returns the service methods
func (s *Service) Methods() types.Signatures {
	return []types.Signature{
		{
			Name:        "allocate",
			Description: "Allocates contiguous bytes from the managed pool.",
			Input:       reflect.TypeOf(&AllocateInput{}),
			Output:      reflect.TypeOf(&AllocateOutput{}),
		},
		{
			Name:        "free",
			Description: "Releases a prior allocation identified by its address.",
			Input:       reflect.TypeOf(&FreeInput{}),
			Output:      reflect.TypeOf(&FreeOutput{}),
		},
		{
			Name:        "stats",
			Description: "Reports pool usage and fragmentation.",
			Input:       reflect.TypeOf(&StatsInput{}),
			Output:      reflect.TypeOf(&StatsOutput{}),
		},
	}
}

// Method returns the specified method
func (s *Service) Method(name string) (types.Executable, error) {
	switch strings.ToLower(name) {
	case "allocate":
		return s.allocate, nil
	case "free":
		return s.free, nil
	case "stats":
		return s.stats, nil
	default:
		return nil, types.NewMethodNotFoundError(name)
	}
}

// InitTypes contributes the service data types to the registry.
func (s *Service) InitTypes(registry *extension.Types) {
	registry.Register(x.NewType(reflect.TypeOf(AllocateInput{})))
	registry.Register(x.NewType(reflect.TypeOf(AllocateOutput{})))
	registry.Register(x.NewType(reflect.TypeOf(FreeInput{})))
	registry.Register(x.NewType(reflect.TypeOf(FreeOutput{})))
	registry.Register(x.NewType(reflect.TypeOf(StatsInput{})))
	registry.Register(x.NewType(reflect.TypeOf(StatsOutput{})))
}

func (s *Service) allocate(ctx context.Context, in, out interface{}) error {
	input, ok := in.(*AllocateInput)
	if !ok {
		return types.NewInvalidInputError(in)
	}
	output, ok := out.(*AllocateOutput)
	if !ok {
		return types.NewInvalidOutputError(out)
	}
	ref, err := s.pool.Allocate(input.Size)
	if err != nil {
		return err
	}
	if ref.IsNil() {
		output.Nil = true
		return nil
	}
	s.refs.Put(&ref)
	output.Address = ref.Offset()
	output.Granted = ref.Size()
	return nil
}

func (s *Service) free(ctx context.Context, in, out interface{}) error {
	input, ok := in.(*FreeInput)
	if !ok {
		return types.NewInvalidInputError(in)
	}
	output, ok := out.(*FreeOutput)
	if !ok {
		return types.NewInvalidOutputError(out)
	}
	ref, ok := s.refs.Get(input.Address)
	if !ok {
		// the pool itself treats unknown references as a silent no-op
		return nil
	}
	s.pool.Deallocate(*ref)
	s.refs.Remove(input.Address)
	output.Freed = true
	output.Bytes = ref.Size()
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
	output.Stats = s.pool.Stats()
	return nil
}

// Outstanding returns the number of live references the service tracks.
func (s *Service) Outstanding() int {
	return s.refs.Len()
}

var _ types.Service = (*Service)(nil)

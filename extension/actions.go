// Package extension holds the registry of command services the shell
// dispatches to.
package extension

import (
	"sync"

	"github.com/viant/kernsim/model/types"
	"github.com/viant/x"
)

// DataTypeIniter lets a service contribute its data types to the registry on
// registration.
type DataTypeIniter interface {
	InitTypes(types *Types)
}

// Actions maps service names to their implementations.
type Actions struct {
	mu       sync.RWMutex
	types    *Types
	services map[string]types.Service
}

// NewActions creates a registry seeded with the supplied data types.
func NewActions(goTypes ...*x.Type) *Actions {
	ret := &Actions{
		types:    NewTypes(),
		services: make(map[string]types.Service),
	}
	for _, t := range goTypes {
		if t != nil {
			ret.types.Register(t)
		}
	}
	return ret
}

// Register adds a service under its own name, replacing any previous one.
func (a *Actions) Register(service types.Service) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if initer, ok := service.(DataTypeIniter); ok {
		initer.InitTypes(a.types)
	}
	a.services[service.Name()] = service
}

// Lookup returns the named service or nil.
func (a *Actions) Lookup(name string) types.Service {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.services[name]
}

// Types returns the shared data type registry.
func (a *Actions) Types() *Types {
	return a.types
}

package extension

import (
	"github.com/viant/x"
)

// Types registers the Go types command services exchange as inputs and
// outputs.
type Types struct {
	x.Registry
}

// NewTypes creates a new types registry
func NewTypes(options ...x.RegistryOption) *Types {
	return &Types{
		Registry: *x.NewRegistry(options...),
	}
}

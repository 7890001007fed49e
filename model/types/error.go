package types

import "fmt"

// NewMethodNotFoundError reports that a service has no method with the name.
func NewMethodNotFoundError(name string) error {
	return fmt.Errorf("method %q not found", name)
}

// NewInvalidInputError reports an input of an unexpected type.
func NewInvalidInputError(in interface{}) error {
	return fmt.Errorf("invalid input type %T", in)
}

// NewInvalidOutputError reports an output of an unexpected type.
func NewInvalidOutputError(out interface{}) error {
	return fmt.Errorf("invalid output type %T", out)
}

// Package idgen wraps UUID generation behind a stubbable indirection.
// Callers treat the returned identifiers as opaque strings.
package idgen

import "github.com/google/uuid"

// NewFunc produces a new identifier. Replace in tests for determinism.
var NewFunc = func() string { return uuid.New().String() }

// New returns NewFunc().
func New() string { return NewFunc() }

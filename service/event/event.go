// Package event delivers device completion notifications to interested
// observers through the shared messaging queue abstraction.
package event

import (
	"time"

	"github.com/viant/kernsim/internal/clock"
)

// Event wraps a payload with its creation time.
type Event[T any] struct {
	CreatedAt time.Time `json:"createdAt"`
	Data      T         `json:"data"`
}

// NewEvent creates an event stamped with the current time.
func NewEvent[T any](data T) *Event[T] {
	return &Event[T]{
		CreatedAt: clock.Now(),
		Data:      data,
	}
}

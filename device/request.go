package device

import "time"

// Request describes one simulated I/O operation.
type Request struct {
	ID          string    `json:"id"`
	Operation   string    `json:"operation"`
	Size        uint64    `json:"size"`
	SubmittedAt time.Time `json:"submittedAt"`
}

// Completion is published once the worker finishes a request.
type Completion struct {
	Request     Request       `json:"request"`
	CompletedAt time.Time     `json:"completedAt"`
	Elapsed     time.Duration `json:"elapsed"`
}

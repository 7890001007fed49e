package device

// Status is the three-valued device state observable by the shell.
type Status int32

const (
	StatusReady Status = iota
	StatusBusy
	// StatusError is defined for parity with real device state machines; no
	// transition currently enters it because simulated I/O cannot fail.
	StatusError
)

func (s Status) String() string {
	switch s {
	case StatusReady:
		return "ready"
	case StatusBusy:
		return "busy"
	case StatusError:
		return "error"
	}
	return "unknown"
}

package predict

import (
	"fmt"
)

// Kind classifies a prediction failure so callers can pick a fallback
// without parsing messages.
type Kind string

const (
	// KindTransport covers timeouts, network failures and cancellation.
	KindTransport Kind = "transport"
	// KindServer covers non-2xx responses and application-level failures.
	KindServer Kind = "server"
	// KindFormat covers malformed or unexpected response bodies.
	KindFormat Kind = "format"
)

// Error is returned by every Client call that fails.
type Error struct {
	Kind   Kind
	Status int
	Err    error
}

func (e *Error) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("prediction %s error (status %d): %v", e.Kind, e.Status, e.Err)
	}

	return fmt.Sprintf("prediction %s error: %v", e.Kind, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

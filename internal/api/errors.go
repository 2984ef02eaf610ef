package api

import "fmt"

// Error is the normalized failure shape for every backend call: a
// human-readable message plus the HTTP status code when one was received.
// Callers surface Message and nothing else; transport detail stays here.
type Error struct {
	// Message is the human-readable failure description.
	Message string

	// StatusCode is the HTTP status of the failed response, or zero when
	// the call failed before a response arrived.
	StatusCode int
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s (status %d)", e.Message, e.StatusCode)
	}

	return e.Message
}

// newError wraps err as a transport-level *Error with no status code.
func newError(op string, err error) *Error {
	return &Error{Message: fmt.Sprintf("%s: %v", op, err)}
}

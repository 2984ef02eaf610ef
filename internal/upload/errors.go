package upload

import "errors"

var (
	// ErrUploadInFlight is returned when Submit is called while a
	// submission is already running. The running session is untouched.
	ErrUploadInFlight = errors.New("an upload is already in flight")
)

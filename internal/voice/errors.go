package voice

import "errors"

var (
	// ErrUnsupportedCapability is returned by Start when the host
	// provides no speech-capture capability.
	ErrUnsupportedCapability = errors.New(
		"speech capture is not supported on this host",
	)

	// ErrAlreadyRecording is returned by Start while a capture session
	// is live. Toggle is the entry point that composes start and stop.
	ErrAlreadyRecording = errors.New("a capture session is already live")
)

// ErrorKind classifies a capture failure.
type ErrorKind string

const (
	// ErrPermissionDenied: microphone permission denied. Fatal for the
	// session.
	ErrPermissionDenied ErrorKind = "permission_denied"

	// ErrNoSpeechDetected: no speech within the capture window. Fatal
	// for this session; a new session may be started.
	ErrNoSpeechDetected ErrorKind = "no_speech_detected"

	// ErrGeneric: any other capability failure, carrying the raw reason.
	ErrGeneric ErrorKind = "generic"
)

// CaptureError is the typed error a session stores when capture fails. It
// never crosses the controller boundary as a panic or return; views read it
// from the session snapshot.
type CaptureError struct {
	// Kind classifies the failure.
	Kind ErrorKind

	// Reason is the capability's raw reason string.
	Reason string
}

// Message returns the user-facing message for the error.
func (e *CaptureError) Message() string {
	switch e.Kind {
	case ErrPermissionDenied:
		return "Microphone access was denied. Please allow " +
			"microphone access and try again."
	case ErrNoSpeechDetected:
		return "No speech was detected. Please try again."
	default:
		return "Speech capture failed: " + e.Reason
	}
}

package voice

// Segment is one recognized span of speech. Final segments are confirmed
// and never re-ordered; non-final segments are the best-effort tail that
// later deliveries replace.
type Segment struct {
	// Text is the recognized text.
	Text string

	// Final marks the segment as confirmed.
	Final bool
}

// Event is a capture event delivered by a Recognizer. The three concrete
// events mirror the capability's onresult/onend/onerror callbacks.
type Event interface {
	voiceEventMarker()
}

// ResultEvent carries every segment delivered so far in this capture
// session. The reducer re-scans the full list on each delivery.
type ResultEvent struct {
	Segments []Segment
}

// EndEvent signals natural end-of-capture.
type EndEvent struct{}

// ErrorEvent carries the capability's raw failure reason.
type ErrorEvent struct {
	Reason string
}

func (ResultEvent) voiceEventMarker() {}
func (EndEvent) voiceEventMarker()    {}
func (ErrorEvent) voiceEventMarker()  {}

// Capability failure reasons, matching the browser speech recognition
// taxonomy the session controller classifies.
const (
	// ReasonNotAllowed means microphone permission was denied.
	ReasonNotAllowed = "not-allowed"

	// ReasonNoSpeech means the capture window elapsed without speech.
	ReasonNoSpeech = "no-speech"

	// ReasonLanguageNotSupported means the requested locale is not
	// available on this host.
	ReasonLanguageNotSupported = "language-not-supported"
)

// Recognizer is the opaque speech-capture capability. Start opens a capture
// session for the locale and returns its event stream; the stream is closed
// after EndEvent or a fatal ErrorEvent. Stop ends the current session,
// which still emits its EndEvent on the stream.
type Recognizer interface {
	Start(locale string) (<-chan Event, error)
	Stop()
}

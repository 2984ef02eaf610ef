// Package voice manages a continuous speech-capture session. The capture
// capability is an opaque collaborator delivering events on a channel; a
// pure reducer turns the delivered segments into final/interim transcripts,
// and the session state machine classifies capability errors into fatal and
// recoverable kinds. The whole state machine is testable with synthetic
// event sequences.
package voice

import (
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/lightningnetwork/lnd/fn/v2"
)

// RecordingState is the capture session state.
type RecordingState string

const (
	// StateIdle means no capture session has run yet.
	StateIdle RecordingState = "idle"

	// StateRecording means a capture session is live.
	StateRecording RecordingState = "recording"

	// StateStopped means the last capture session has ended; its final
	// transcript is the authoritative result.
	StateStopped RecordingState = "stopped"
)

const (
	// DefaultLocale is the locale a capture session starts with.
	DefaultLocale = "en-US"

	// DefaultFallbackLocale is used for the silent restart after a
	// language-not-supported capability error.
	DefaultFallbackLocale = "en-IN"
)

// Session is a snapshot of the live voice session.
type Session struct {
	// State is the recording state.
	State RecordingState

	// FinalTranscript is the confirmed transcript: finalized segments
	// concatenated in delivery order.
	FinalTranscript string

	// InterimTranscript is the best-effort unconfirmed tail.
	InterimTranscript string

	// DetectedLanguage is the script-detected language of the combined
	// transcript, when one was detected.
	DetectedLanguage fn.Option[string]

	// Err is set when capture failed fatally.
	Err *CaptureError
}

// Config holds the controller configuration.
type Config struct {
	// Locale is the initial capture locale.
	Locale string

	// FallbackLocale is used for the one silent restart after a
	// language-not-supported error.
	FallbackLocale string

	// OnTranscript is invoked with the combined transcript each time it
	// changes, updating the externally observed question text. May be
	// nil.
	OnTranscript func(text string)

	// Detector overrides the script-based language detector. Nil uses
	// DetectLanguage.
	Detector func(text string) fn.Option[string]
}

// Controller is the voice session controller. Exactly one session is live
// at a time; Toggle is the entry point views should use.
type Controller struct {
	cfg Config
	rec Recognizer
	log *slog.Logger

	mu sync.Mutex

	// generation identifies the live capture session. Events from a
	// superseded session compare stale and are discarded.
	generation uint64

	session Session

	// lastText is the last combined transcript the detector ran on, so
	// detection runs once per distinct text value.
	lastText string

	// fellBack records that this session already used its one silent
	// locale fallback; a second unsupported-locale error is fatal.
	fellBack bool
}

// NewController creates a voice controller. A nil recognizer models a host
// without the capture capability: Start fails with
// ErrUnsupportedCapability.
func NewController(cfg Config, rec Recognizer,
	log *slog.Logger) *Controller {

	if cfg.Locale == "" {
		cfg.Locale = DefaultLocale
	}
	if cfg.FallbackLocale == "" {
		cfg.FallbackLocale = DefaultFallbackLocale
	}
	if cfg.Detector == nil {
		cfg.Detector = DetectLanguage
	}
	if log == nil {
		log = slog.Default()
	}

	return &Controller{
		cfg:     cfg,
		rec:     rec,
		log:     log.With("component", "voice"),
		session: Session{State: StateIdle},
	}
}

// Session returns a copy of the current session state.
func (c *Controller) Session() Session {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.session
}

// Start opens a new capture session. It fails synchronously with
// ErrUnsupportedCapability when the host has no capture capability (state
// stays idle) and with ErrAlreadyRecording while a session is live.
func (c *Controller) Start() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.rec == nil {
		return ErrUnsupportedCapability
	}
	if c.session.State == StateRecording {
		return ErrAlreadyRecording
	}

	events, err := c.rec.Start(c.cfg.Locale)
	if err != nil {
		return fmt.Errorf("start capture: %w", err)
	}

	c.generation++
	c.session = Session{State: StateRecording}
	c.lastText = ""
	c.fellBack = false

	go c.consume(c.generation, events)

	return nil
}

// Stop ends the live capture session, committing the accumulated final
// transcript as the authoritative result. It is idempotent: calling it
// while idle or stopped is a no-op.
func (c *Controller) Stop() {
	c.mu.Lock()
	if c.session.State != StateRecording {
		c.mu.Unlock()
		return
	}

	// Bumping the generation supersedes the event loop, so capability
	// callbacks firing after this point are discarded.
	c.generation++
	c.session.State = StateStopped
	c.session.InterimTranscript = ""
	c.mu.Unlock()

	c.rec.Stop()
}

// Toggle composes Start and Stop based on the current state. It is the only
// entry point the view layer should use.
func (c *Controller) Toggle() error {
	c.mu.Lock()
	recording := c.session.State == StateRecording
	c.mu.Unlock()

	if recording {
		c.Stop()
		return nil
	}

	return c.Start()
}

// consume drains one capture session's event stream, applying each event to
// the session state unless the session has been superseded.
func (c *Controller) consume(gen uint64, events <-chan Event) {
	for ev := range events {
		switch e := ev.(type) {
		case ResultEvent:
			c.applyResult(gen, e.Segments)

		case EndEvent:
			// Natural end-of-capture: the final transcript is
			// authoritative even mid-utterance.
			c.commit(gen, func(s *Session) {
				s.State = StateStopped
				s.InterimTranscript = ""
			})
			return

		case ErrorEvent:
			if c.applyError(gen, e) {
				return
			}
		}
	}
}

// reduceTranscript recomputes the final and interim transcripts from every
// segment delivered so far. Finalized segments are concatenated in delivery
// order and never re-ordered.
func reduceTranscript(segments []Segment) (string, string) {
	var final, interim []string
	for _, seg := range segments {
		if seg.Text == "" {
			continue
		}
		if seg.Final {
			final = append(final, seg.Text)
		} else {
			interim = append(interim, seg.Text)
		}
	}

	return strings.Join(final, " "), strings.Join(interim, " ")
}

// applyResult commits reduced transcripts and re-runs language detection
// when the combined text changed.
func (c *Controller) applyResult(gen uint64, segments []Segment) {
	final, interim := reduceTranscript(segments)
	combined := strings.TrimSpace(final + " " + interim)

	var notify bool

	c.mu.Lock()
	if c.generation != gen {
		c.mu.Unlock()
		return
	}

	c.session.FinalTranscript = final
	c.session.InterimTranscript = interim

	if combined != "" && combined != c.lastText {
		c.lastText = combined
		c.session.DetectedLanguage = c.cfg.Detector(combined)
		notify = true
	}
	c.mu.Unlock()

	if notify && c.cfg.OnTranscript != nil {
		c.cfg.OnTranscript(combined)
	}
}

// applyError classifies a capability error. It reports true when the event
// loop should exit: every fatal error, plus the hand-off to a fallback
// session's own loop on the one recoverable kind.
func (c *Controller) applyError(gen uint64, e ErrorEvent) bool {
	switch e.Reason {
	case ReasonLanguageNotSupported:
		return c.restartWithFallback(gen, e)

	case ReasonNotAllowed:
		c.failSession(gen, &CaptureError{
			Kind:   ErrPermissionDenied,
			Reason: e.Reason,
		})
		return true

	case ReasonNoSpeech:
		c.failSession(gen, &CaptureError{
			Kind:   ErrNoSpeechDetected,
			Reason: e.Reason,
		})
		return true

	default:
		c.failSession(gen, &CaptureError{
			Kind:   ErrGeneric,
			Reason: e.Reason,
		})
		return true
	}
}

// restartWithFallback silently restarts the capability with the fallback
// locale, once per session. The replacement event stream continues under
// the same generation, so accumulated transcripts survive. Reports true:
// either the fallback loop took over or the session failed.
func (c *Controller) restartWithFallback(gen uint64, e ErrorEvent) bool {
	c.mu.Lock()
	if c.generation != gen {
		c.mu.Unlock()
		return true
	}

	if c.fellBack {
		c.mu.Unlock()
		c.failSession(gen, &CaptureError{
			Kind:   ErrGeneric,
			Reason: e.Reason,
		})
		return true
	}
	c.fellBack = true
	c.mu.Unlock()

	c.log.Info("restarting capture with fallback locale",
		"locale", c.cfg.FallbackLocale)

	c.rec.Stop()
	events, err := c.rec.Start(c.cfg.FallbackLocale)
	if err != nil {
		c.failSession(gen, &CaptureError{
			Kind:   ErrGeneric,
			Reason: err.Error(),
		})
		return true
	}

	go c.consume(gen, events)
	return true
}

// failSession commits a fatal capture error, transitioning to stopped.
func (c *Controller) failSession(gen uint64, capErr *CaptureError) {
	c.log.Warn("capture session failed",
		"kind", capErr.Kind, "reason", capErr.Reason)

	c.commit(gen, func(s *Session) {
		s.State = StateStopped
		s.InterimTranscript = ""
		s.Err = capErr
	})
}

// commit applies mutate to the session if gen is still current.
func (c *Controller) commit(gen uint64, mutate func(*Session)) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.generation != gen {
		return
	}

	mutate(&c.session)
}

// Package speak coordinates translation requests and text-to-speech
// playback. Translation is single-flight per coordinator; playback owns the
// one shared audio resource and toggles rather than stacking streams. A new
// translation invalidates old audio, never the reverse.
package speak

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/mankudhanush/SAMVADHAANAI/internal/api"
)

var (
	// ErrTranslateInFlight is returned when Translate is called while a
	// translation is already running. The running call is untouched.
	ErrTranslateInFlight = errors.New(
		"a translation is already in flight",
	)
)

// Backend is the collaborator surface the coordinator consumes.
// *api.Client satisfies it.
type Backend interface {
	// TranslateText translates text into the target language.
	TranslateText(ctx context.Context, text,
		targetLanguage string) (*api.Translation, error)

	// TextToSpeech synthesizes audio for the text.
	TextToSpeech(ctx context.Context, text,
		language string) (*api.SpeechAudio, error)
}

// AudioPlayer is the single shared audio resource. At most one exists per
// client; Load replaces the bound resource rather than creating a second
// stream.
type AudioPlayer interface {
	// Load binds a new audio resource, replacing any prior one.
	Load(resourceURL string) error

	// Play starts playback of the bound resource.
	Play() error

	// Pause halts playback.
	Pause()

	// Rewind seeks back to the start.
	Rewind()

	// Playing reports whether playback is active.
	Playing() bool
}

// Session is a snapshot of the coordinator's translation state.
type Session struct {
	// SourceText is the text of the current/last translation request.
	SourceText string

	// TargetLanguage is the requested target language.
	TargetLanguage string

	// TranslatedText is the last successful translation. A failed
	// request leaves it untouched.
	TranslatedText string

	// Inflight reports whether a translation is running.
	Inflight bool

	// TranslateError is set when the last translation failed.
	TranslateError error

	// SpeakError is set when synthesis or playback failed. Playback
	// failures are recoverable; the resource handle stays intact.
	SpeakError error
}

// Coordinator drives translation and audio playback against the backend.
type Coordinator struct {
	backend Backend
	player  AudioPlayer
	log     *slog.Logger

	mu sync.Mutex

	// generation supersedes in-flight work on Reset.
	generation uint64

	session Session
}

// NewCoordinator creates a coordinator around the backend and the shared
// audio player.
func NewCoordinator(backend Backend, player AudioPlayer,
	log *slog.Logger) *Coordinator {

	if log == nil {
		log = slog.Default()
	}

	return &Coordinator{
		backend: backend,
		player:  player,
		log:     log.With("component", "speak"),
	}
}

// Session returns a copy of the current translation state.
func (c *Coordinator) Session() Session {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.session
}

// Translate requests a translation of text into targetLanguage. It is
// single-flight: a call while one is running returns ErrTranslateInFlight.
// Starting a translation stops and rewinds any playing audio and clears
// prior translation/TTS errors; a failure stores the error and leaves the
// previously translated text untouched.
func (c *Coordinator) Translate(ctx context.Context, text,
	targetLanguage string) (string, error) {

	c.mu.Lock()
	if c.session.Inflight {
		c.mu.Unlock()
		return "", ErrTranslateInFlight
	}

	c.session.Inflight = true
	c.session.SourceText = text
	c.session.TargetLanguage = targetLanguage
	c.session.TranslateError = nil
	c.session.SpeakError = nil
	gen := c.generation
	c.mu.Unlock()

	// New translation invalidates old audio.
	c.stopPlayback()

	// The single-flight guard must drop however the call ends, unless a
	// Reset already superseded this session.
	defer func() {
		c.mu.Lock()
		if c.generation == gen {
			c.session.Inflight = false
		}
		c.mu.Unlock()
	}()

	translation, err := c.backend.TranslateText(ctx, text, targetLanguage)
	if err != nil {
		c.log.WarnContext(ctx, "translation failed",
			"language", targetLanguage, "err", err)

		c.commit(gen, func(s *Session) {
			s.TranslateError = err
		})
		return "", err
	}

	c.commit(gen, func(s *Session) {
		s.TranslatedText = translation.TranslatedText
	})

	return translation.TranslatedText, nil
}

// Speak toggles playback. While audio is playing it stops and rewinds the
// player without issuing any network call. Otherwise it synthesizes audio
// for the text, binds it to the shared player (replacing any prior
// resource), and starts playback. Synthesis and playback failures surface
// as a recoverable SpeakError without corrupting the resource handle.
func (c *Coordinator) Speak(ctx context.Context, text,
	language string) error {

	if c.player.Playing() {
		c.stopPlayback()
		return nil
	}

	c.mu.Lock()
	c.session.SpeakError = nil
	gen := c.generation
	c.mu.Unlock()

	audio, err := c.backend.TextToSpeech(ctx, text, language)
	if err != nil {
		c.log.WarnContext(ctx, "speech synthesis failed",
			"language", language, "err", err)

		c.commit(gen, func(s *Session) { s.SpeakError = err })
		return err
	}

	if err := c.player.Load(audio.AudioURL); err != nil {
		c.commit(gen, func(s *Session) { s.SpeakError = err })
		return err
	}

	if err := c.player.Play(); err != nil {
		c.commit(gen, func(s *Session) { s.SpeakError = err })
		return err
	}

	return nil
}

// Reset clears the translation session and tears down playback. The upload
// controller cascades into this on its own reset.
func (c *Coordinator) Reset() {
	c.stopPlayback()

	c.mu.Lock()
	c.generation++
	c.session = Session{}
	c.mu.Unlock()
}

// stopPlayback pauses and rewinds the player if it is playing.
func (c *Coordinator) stopPlayback() {
	if c.player.Playing() {
		c.player.Pause()
		c.player.Rewind()
	}
}

// commit applies mutate if gen is still the current generation.
func (c *Coordinator) commit(gen uint64, mutate func(*Session)) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.generation != gen {
		return
	}

	mutate(&c.session)
}

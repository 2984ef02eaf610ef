// Package upload drives a document through the extract, index, and analyze
// stages of the ingestion pipeline. The required extract/index stages and
// the optional analyze (plain-language simplification) stage fail
// independently: a simplify failure surfaces its own error while the
// confirmed upload survives.
package upload

import (
	"context"
	"io"
	"log/slog"
	"sync"

	"github.com/lightningnetwork/lnd/fn/v2"

	"github.com/mankudhanush/SAMVADHAANAI/internal/api"
)

// Stage is a named phase of the upload pipeline.
type Stage string

const (
	// StageIdle means no upload session is active.
	StageIdle Stage = "idle"

	// StageExtracting means the document is being OCR'd and parsed.
	StageExtracting Stage = "extracting"

	// StageIndexing means extracted chunks are being embedded.
	StageIndexing Stage = "indexing"

	// StageAnalyzing means the plain-language simplification is running.
	StageAnalyzing Stage = "analyzing"

	// StageDone means the pipeline has finished, with or without a
	// simplification.
	StageDone Stage = "done"
)

// Backend is the collaborator surface the pipeline consumes. *api.Client
// satisfies it; tests inject fakes.
type Backend interface {
	// UploadDocument sends the document for extraction and indexing.
	UploadDocument(ctx context.Context, filename string,
		content io.Reader) (*api.UploadResult, error)

	// GetStatus fetches the vector store status.
	GetStatus(ctx context.Context) (*api.Status, error)

	// GetPlainLanguage requests the plain-language simplification.
	GetPlainLanguage(ctx context.Context, targetLanguage,
		documentName string) (*api.SimplifyResult, error)
}

// Session is a snapshot of one upload session's state. UploadError and
// SimplifyError are independent failure channels: SimplifyError can be set
// while UploadError stays nil.
type Session struct {
	// Stage is the current pipeline stage.
	Stage Stage

	// DocumentMeta holds the confirmed upload stats once extraction and
	// indexing succeed.
	DocumentMeta *api.UploadResult

	// TotalVectors mirrors the store-wide vector count from the status
	// fetch after indexing.
	TotalVectors int

	// Simplification holds the analyze-stage result when it succeeded.
	Simplification *api.SimplifyResult

	// PracticeArea is the keyword-derived legal practice area, when one
	// could be classified from the simplified content.
	PracticeArea fn.Option[string]

	// UploadError is set when the required extract/index stages fail.
	UploadError error

	// SimplifyError is set when the optional analyze stage fails.
	SimplifyError error
}

// Config holds the controller configuration.
type Config struct {
	// TargetLanguage is passed to the simplify call; empty skips the
	// server-side translation pass.
	TargetLanguage string

	// Classifier maps simplified content to a practice area. Nil
	// disables classification.
	Classifier *Classifier
}

// Controller owns one upload session at a time. Starting a new upload while
// one is in flight is rejected, not queued.
type Controller struct {
	cfg     Config
	backend Backend
	log     *slog.Logger

	// onReset cascades a session reset into dependent translation and
	// audio state. The reverse direction never cascades.
	onReset func()

	mu sync.Mutex

	// generation identifies the current session. Async results captured
	// under an older generation are discarded instead of committed.
	generation uint64

	inflight bool
	session  Session
}

// NewController creates an upload controller around the given backend.
func NewController(cfg Config, backend Backend, log *slog.Logger,
	onReset func()) *Controller {

	if log == nil {
		log = slog.Default()
	}

	return &Controller{
		cfg:     cfg,
		backend: backend,
		log:     log.With("component", "upload"),
		onReset: onReset,
		session: Session{Stage: StageIdle},
	}
}

// Session returns a copy of the current session state.
func (c *Controller) Session() Session {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.session
}

// Submit runs the full pipeline for one document. It returns
// ErrUploadInFlight, with no state change, when a submission is already
// running. An extract/index failure resets the session to idle with
// UploadError set and the analyze stage is never attempted. An analyze
// failure only populates SimplifyError; the confirmed upload stands.
func (c *Controller) Submit(ctx context.Context, filename string,
	content io.Reader) error {

	c.mu.Lock()
	if c.inflight {
		c.mu.Unlock()
		return ErrUploadInFlight
	}

	c.inflight = true
	c.generation++
	gen := c.generation
	c.session = Session{Stage: StageExtracting}
	c.mu.Unlock()

	// The in-flight guard must drop however the pipeline ends, but only
	// for this session: a Reset during the run supersedes it.
	defer func() {
		c.mu.Lock()
		if c.generation == gen {
			c.inflight = false
		}
		c.mu.Unlock()
	}()

	meta, err := c.backend.UploadDocument(ctx, filename, content)
	if err != nil {
		c.log.ErrorContext(ctx, "document extraction failed",
			"filename", filename, "err", err)

		c.commit(gen, func(s *Session) {
			s.Stage = StageIdle
			s.UploadError = err
		})
		return err
	}

	c.log.InfoContext(ctx, "document indexed",
		"filename", meta.Filename,
		"pages", meta.Pages,
		"chunks", meta.NumChunks)

	if !c.commit(gen, func(s *Session) {
		s.Stage = StageIndexing
		s.DocumentMeta = meta
		s.TotalVectors = meta.TotalVectors
	}) {
		return nil
	}

	// The status fetch refreshes store-wide totals only; its failure
	// does not undo a confirmed upload.
	status, err := c.backend.GetStatus(ctx)
	if err != nil {
		c.log.WarnContext(ctx, "status fetch failed", "err", err)
	} else {
		c.commit(gen, func(s *Session) {
			s.TotalVectors = status.TotalVectors
		})
	}

	if !c.commit(gen, func(s *Session) {
		s.Stage = StageAnalyzing
	}) {
		return nil
	}

	simplification, err := c.backend.GetPlainLanguage(
		ctx, c.cfg.TargetLanguage, meta.Filename,
	)
	if err != nil {
		c.log.WarnContext(ctx, "simplification failed",
			"filename", meta.Filename, "err", err)

		// Stage-isolated failure: the upload outcome stands.
		c.commit(gen, func(s *Session) {
			s.Stage = StageDone
			s.SimplifyError = err
		})
		return nil
	}

	area := c.classify(simplification)

	c.commit(gen, func(s *Session) {
		s.Stage = StageDone
		s.Simplification = simplification
		s.PracticeArea = area
	})

	return nil
}

// Reset clears the session back to idle and cascades into dependent
// translation/audio state via the onReset hook.
func (c *Controller) Reset() {
	c.mu.Lock()
	c.generation++
	c.inflight = false
	c.session = Session{Stage: StageIdle}
	c.mu.Unlock()

	if c.onReset != nil {
		c.onReset()
	}
}

// commit applies mutate to the session if gen is still the current
// generation, reporting whether the commit happened. Superseded results are
// discarded.
func (c *Controller) commit(gen uint64, mutate func(*Session)) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.generation != gen {
		return false
	}

	mutate(&c.session)
	return true
}

// classify derives the practice area from the simplified content. It never
// fails the pipeline; no classifier or no match yields None.
func (c *Controller) classify(
	result *api.SimplifyResult) fn.Option[string] {

	if c.cfg.Classifier == nil {
		return fn.None[string]()
	}

	text := result.RawText
	if result.Structured != nil {
		text += " " + result.Structured.PlainEnglishSummary
	}

	return c.cfg.Classifier.Classify(text)
}

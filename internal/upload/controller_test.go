package upload

import (
	"context"
	"errors"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/mankudhanush/SAMVADHAANAI/internal/api"
)

// fakeBackend implements Backend with swappable behavior per call.
type fakeBackend struct {
	mu sync.Mutex

	uploadFn   func(ctx context.Context) (*api.UploadResult, error)
	statusFn   func(ctx context.Context) (*api.Status, error)
	simplifyFn func(ctx context.Context) (*api.SimplifyResult, error)

	uploadCalls   int
	simplifyCalls int
}

func (f *fakeBackend) UploadDocument(ctx context.Context, filename string,
	content io.Reader) (*api.UploadResult, error) {

	f.mu.Lock()
	f.uploadCalls++
	fn := f.uploadFn
	f.mu.Unlock()

	if fn != nil {
		return fn(ctx)
	}

	return &api.UploadResult{
		Filename:     filename,
		Pages:        3,
		NumChunks:    12,
		TotalVectors: 12,
	}, nil
}

func (f *fakeBackend) GetStatus(
	ctx context.Context) (*api.Status, error) {

	if f.statusFn != nil {
		return f.statusFn(ctx)
	}

	return &api.Status{TotalVectors: 12}, nil
}

func (f *fakeBackend) GetPlainLanguage(ctx context.Context, targetLanguage,
	documentName string) (*api.SimplifyResult, error) {

	f.mu.Lock()
	f.simplifyCalls++
	fn := f.simplifyFn
	f.mu.Unlock()

	if fn != nil {
		return fn(ctx)
	}

	return &api.SimplifyResult{RawText: "plain text"}, nil
}

func (f *fakeBackend) counts() (int, int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.uploadCalls, f.simplifyCalls
}

func newTestController(backend Backend,
	onReset func()) *Controller {

	return NewController(Config{
		Classifier: NewClassifier(nil),
	}, backend, nil, onReset)
}

// TestSubmitHappyPath walks the full pipeline: extract, index, analyze,
// done, with the session carrying the upload stats and simplification.
func TestSubmitHappyPath(t *testing.T) {
	backend := &fakeBackend{
		simplifyFn: func(
			ctx context.Context) (*api.SimplifyResult, error) {

			return &api.SimplifyResult{
				RawText: "the tenant must pay rent to the " +
					"landlord under this lease",
			}, nil
		},
	}
	c := newTestController(backend, nil)

	err := c.Submit(
		context.Background(), "contract.pdf",
		strings.NewReader("%PDF"),
	)
	require.NoError(t, err)

	session := c.Session()
	require.Equal(t, StageDone, session.Stage)
	require.NotNil(t, session.DocumentMeta)
	require.Equal(t, "contract.pdf", session.DocumentMeta.Filename)
	require.Equal(t, 12, session.TotalVectors)
	require.NotNil(t, session.Simplification)
	require.NoError(t, session.UploadError)
	require.NoError(t, session.SimplifyError)

	area := session.PracticeArea.UnwrapOr("")
	require.Equal(t, "Property Law", area)
}

// TestSubmitGuardedWhileInFlight verifies that a second submission is
// rejected without touching the running session.
func TestSubmitGuardedWhileInFlight(t *testing.T) {
	release := make(chan struct{})
	started := make(chan struct{})
	var startOnce sync.Once

	backend := &fakeBackend{
		uploadFn: func(
			ctx context.Context) (*api.UploadResult, error) {

			startOnce.Do(func() { close(started) })
			<-release
			return &api.UploadResult{
				Filename: "a.pdf", TotalVectors: 1,
			}, nil
		},
	}
	c := newTestController(backend, nil)

	done := make(chan error, 1)
	go func() {
		done <- c.Submit(
			context.Background(), "a.pdf",
			strings.NewReader("x"),
		)
	}()

	<-started

	err := c.Submit(
		context.Background(), "b.pdf", strings.NewReader("y"),
	)
	require.ErrorIs(t, err, ErrUploadInFlight)
	require.Equal(t, StageExtracting, c.Session().Stage)

	close(release)
	require.NoError(t, <-done)

	uploads, _ := backend.counts()
	require.Equal(t, 1, uploads)

	// The guard drops once the pipeline settles.
	err = c.Submit(
		context.Background(), "c.pdf", strings.NewReader("z"),
	)
	require.NoError(t, err)
}

// TestExtractFailureIsTerminal verifies that an extract failure resets the
// stage to idle with UploadError set and that no simplify call is issued.
func TestExtractFailureIsTerminal(t *testing.T) {
	errExtract := errors.New("unreadable scan")
	backend := &fakeBackend{
		uploadFn: func(
			ctx context.Context) (*api.UploadResult, error) {

			return nil, errExtract
		},
	}
	c := newTestController(backend, nil)

	err := c.Submit(
		context.Background(), "broken.pdf", strings.NewReader("x"),
	)
	require.ErrorIs(t, err, errExtract)

	session := c.Session()
	require.Equal(t, StageIdle, session.Stage)
	require.Nil(t, session.DocumentMeta)
	require.ErrorIs(t, session.UploadError, errExtract)
	require.NoError(t, session.SimplifyError)

	_, simplifies := backend.counts()
	require.Zero(t, simplifies)
}

// TestSimplifyFailureIsIsolated pins the partial-failure contract: a
// successful extract+index followed by a failing simplify leaves
// DocumentMeta set, SimplifyError set, and UploadError unset.
func TestSimplifyFailureIsIsolated(t *testing.T) {
	errTimeout := errors.New("timeout")
	backend := &fakeBackend{
		simplifyFn: func(
			ctx context.Context) (*api.SimplifyResult, error) {

			return nil, errTimeout
		},
	}
	c := newTestController(backend, nil)

	err := c.Submit(
		context.Background(), "contract.pdf",
		strings.NewReader("%PDF"),
	)
	require.NoError(t, err)

	session := c.Session()
	require.Equal(t, StageDone, session.Stage)
	require.NotNil(t, session.DocumentMeta)
	require.Equal(t, "contract.pdf", session.DocumentMeta.Filename)
	require.Equal(t, 3, session.DocumentMeta.Pages)
	require.Equal(t, 12, session.DocumentMeta.NumChunks)
	require.ErrorIs(t, session.SimplifyError, errTimeout)
	require.NoError(t, session.UploadError)
	require.Nil(t, session.Simplification)
}

// TestStatusFailureDoesNotFailUpload verifies that a failed status refresh
// keeps the totals from the upload response and the pipeline completes.
func TestStatusFailureDoesNotFailUpload(t *testing.T) {
	backend := &fakeBackend{
		statusFn: func(ctx context.Context) (*api.Status, error) {
			return nil, errors.New("status down")
		},
	}
	c := newTestController(backend, nil)

	err := c.Submit(
		context.Background(), "doc.pdf", strings.NewReader("x"),
	)
	require.NoError(t, err)

	session := c.Session()
	require.Equal(t, StageDone, session.Stage)
	require.Equal(t, 12, session.TotalVectors)
	require.NoError(t, session.UploadError)
}

// TestResetCascades verifies that Reset clears the session and fires the
// dependent-state hook.
func TestResetCascades(t *testing.T) {
	var cascaded bool
	c := newTestController(&fakeBackend{}, func() { cascaded = true })

	err := c.Submit(
		context.Background(), "doc.pdf", strings.NewReader("x"),
	)
	require.NoError(t, err)
	require.Equal(t, StageDone, c.Session().Stage)

	c.Reset()
	require.True(t, cascaded)

	session := c.Session()
	require.Equal(t, StageIdle, session.Stage)
	require.Nil(t, session.DocumentMeta)
}

// TestResetDiscardsStaleResult verifies the generation guard: results of a
// pipeline superseded by Reset are never committed.
func TestResetDiscardsStaleResult(t *testing.T) {
	release := make(chan struct{})
	started := make(chan struct{})
	var startOnce sync.Once

	backend := &fakeBackend{
		simplifyFn: func(
			ctx context.Context) (*api.SimplifyResult, error) {

			startOnce.Do(func() { close(started) })
			<-release
			return &api.SimplifyResult{RawText: "stale"}, nil
		},
	}
	c := newTestController(backend, nil)

	done := make(chan error, 1)
	go func() {
		done <- c.Submit(
			context.Background(), "doc.pdf",
			strings.NewReader("x"),
		)
	}()

	<-started
	c.Reset()
	close(release)
	require.NoError(t, <-done)

	// The superseded pipeline's result must not resurrect the session.
	require.Eventually(t, func() bool {
		return c.Session().Stage == StageIdle
	}, time.Second, time.Millisecond)
	require.Nil(t, c.Session().Simplification)

	// And a fresh submission still works.
	err := c.Submit(
		context.Background(), "next.pdf", strings.NewReader("y"),
	)
	require.NoError(t, err)
	require.Equal(t, StageDone, c.Session().Stage)
}

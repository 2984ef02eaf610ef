// Package rate provides the two rate shapers used in front of network
// calls: a debouncer that waits for fast-changing input to settle and a
// trailing-edge throttler that coalesces bursts into at most one deferred
// invocation per interval. Both release their timers on Stop.
package rate

import (
	"sync"
	"time"
)

// Debouncer delivers the most recent value passed to Set once no newer
// value has arrived for the configured delay. A newer value cancels the
// pending timer, so the callback observes only settled values.
type Debouncer[T any] struct {
	delay time.Duration
	fire  func(T)

	mu      sync.Mutex
	timer   *time.Timer
	stopped bool
}

// NewDebouncer creates a debouncer that invokes fire with the settled value.
// The callback runs on a timer goroutine; it must not block for long.
func NewDebouncer[T any](delay time.Duration, fire func(T)) *Debouncer[T] {
	return &Debouncer[T]{delay: delay, fire: fire}
}

// Set supersedes any pending value and restarts the settle timer.
func (d *Debouncer[T]) Set(value T) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.stopped {
		return
	}

	if d.timer != nil {
		d.timer.Stop()
	}

	d.timer = time.AfterFunc(d.delay, func() {
		d.mu.Lock()
		stopped := d.stopped
		d.mu.Unlock()

		if !stopped {
			d.fire(value)
		}
	})
}

// Stop cancels any pending delivery and releases the timer. Further Set
// calls are no-ops. Safe to call repeatedly.
func (d *Debouncer[T]) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.stopped = true
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}

// Throttler guarantees at most one invocation of fn per interval. The first
// call in an open window runs immediately; calls landing inside the window
// coalesce into a single trailing invocation scheduled for the window's
// end. Nothing is dropped silently.
type Throttler struct {
	interval time.Duration
	fn       func()

	mu      sync.Mutex
	lastRun time.Time
	pending *time.Timer
	stopped bool
}

// NewThrottler creates a throttler around fn.
func NewThrottler(interval time.Duration, fn func()) *Throttler {
	return &Throttler{interval: interval, fn: fn}
}

// Call requests an invocation of the wrapped function, subject to the
// throttle discipline.
func (t *Throttler) Call() {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.stopped {
		return
	}

	now := time.Now()
	elapsed := now.Sub(t.lastRun)

	// Outside the window: run on the leading edge.
	if t.lastRun.IsZero() || elapsed >= t.interval {
		t.lastRun = now
		go t.fn()
		return
	}

	// Inside the window with a trailing call already scheduled: the
	// burst coalesces into that one call.
	if t.pending != nil {
		return
	}

	t.pending = time.AfterFunc(t.interval-elapsed, t.runTrailing)
}

// runTrailing fires the coalesced trailing-edge invocation.
func (t *Throttler) runTrailing() {
	t.mu.Lock()
	if t.stopped {
		t.mu.Unlock()
		return
	}
	t.pending = nil
	t.lastRun = time.Now()
	t.mu.Unlock()

	t.fn()
}

// Stop cancels any scheduled trailing call and releases the timer. Further
// Call invocations are no-ops. Safe to call repeatedly.
func (t *Throttler) Stop() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.stopped = true
	if t.pending != nil {
		t.pending.Stop()
		t.pending = nil
	}
}

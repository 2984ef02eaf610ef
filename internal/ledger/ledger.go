// Package ledger provides the request ledger: a TTL-keyed response cache
// combined with in-flight deduplication of identical concurrent calls. One
// ledger instance is constructed per client and injected where needed; there
// is no package-level state.
package ledger

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"time"
)

// DefaultTTL is how long a cached payload remains valid.
const DefaultTTL = 5 * time.Minute

// Config holds the ledger configuration.
type Config struct {
	// TTL is the cache entry lifetime. Entries older than this are
	// treated as absent and evicted lazily on lookup.
	TTL time.Duration
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() Config {
	return Config{TTL: DefaultTTL}
}

// entry is one cached payload with its storage timestamp.
type entry struct {
	payload  any
	storedAt time.Time
}

// call tracks one in-flight request. Joiners block on done and then read
// val/err, which are written exactly once before done is closed.
type call struct {
	done chan struct{}
	val  any
	err  error
}

// Ledger is a keyed response cache with lazy TTL eviction plus an in-flight
// map that collapses concurrent identical requests into a single call. All
// maps are mutex-guarded; the ledger is safe for concurrent use.
type Ledger struct {
	cfg Config
	log *slog.Logger

	// now is the clock, swappable in tests.
	now func() time.Time

	mu       sync.Mutex
	entries  map[string]entry
	inflight map[string]*call
}

// New creates an empty ledger.
func New(cfg Config, log *slog.Logger) *Ledger {
	if cfg.TTL == 0 {
		cfg.TTL = DefaultTTL
	}
	if log == nil {
		log = slog.Default()
	}

	return &Ledger{
		cfg:      cfg,
		log:      log.With("component", "ledger"),
		now:      time.Now,
		entries:  make(map[string]entry),
		inflight: make(map[string]*call),
	}
}

// Lookup returns the cached payload for key if one is present and younger
// than the TTL. An expired entry is evicted and reported as absent; eviction
// is the only side effect.
func (l *Ledger) Lookup(key string) (any, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	e, ok := l.entries[key]
	if !ok {
		return nil, false
	}

	if l.now().Sub(e.storedAt) >= l.cfg.TTL {
		delete(l.entries, key)
		return nil, false
	}

	return e.payload, true
}

// Store upserts the payload under key with a fresh timestamp.
func (l *Ledger) Store(key string, payload any) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.entries[key] = entry{payload: payload, storedAt: l.now()}
}

// Invalidate deletes every cached entry whose key contains substring. The
// empty substring matches every key, clearing the whole cache.
func (l *Ledger) Invalidate(substring string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	for key := range l.entries {
		if strings.Contains(key, substring) {
			delete(l.entries, key)
		}
	}
}

// Len reports the number of live cache entries, expired ones included until
// their lazy eviction.
func (l *Ledger) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()

	return len(l.entries)
}

// RunDeduplicated collapses concurrent calls for the same key into one
// factory invocation: if a call for key is already in flight, the caller
// blocks until it settles and receives the same value or error. Otherwise
// the factory runs and its registration is removed when it settles, on both
// success and failure, so a failed call never blocks a retry.
func (l *Ledger) RunDeduplicated(ctx context.Context, key string,
	factory func(ctx context.Context) (any, error)) (any, error) {

	l.mu.Lock()
	if c, ok := l.inflight[key]; ok {
		l.mu.Unlock()

		l.log.DebugContext(ctx, "joining in-flight request",
			"key", key)

		// Joiners may bail out on their own context; the shared
		// call keeps running for the originator.
		select {
		case <-c.done:
			return c.val, c.err
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	c := &call{done: make(chan struct{})}
	l.inflight[key] = c
	l.mu.Unlock()

	// The registration must be removed however the factory ends, and
	// done must close after val/err are written.
	defer func() {
		l.mu.Lock()
		delete(l.inflight, key)
		l.mu.Unlock()

		close(c.done)
	}()

	c.val, c.err = factory(ctx)

	return c.val, c.err
}

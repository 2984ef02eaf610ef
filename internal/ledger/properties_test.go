package ledger

import (
	"strings"
	"testing"
	"time"

	"pgregory.net/rapid"
)

// TestCacheRoundTripInvariant verifies that within the TTL window every
// stored key reads back its most recently stored payload.
func TestCacheRoundTripInvariant(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		l, _ := newTestLedger(time.Minute)

		keys := rapid.SliceOfN(
			rapid.StringMatching(`[a-z]{1,8}(:[a-z]{1,8})?`),
			1, 20,
		).Draw(t, "keys")

		latest := make(map[string]int)
		for i, key := range keys {
			l.Store(key, i)
			latest[key] = i
		}

		for key, want := range latest {
			got, ok := l.Lookup(key)
			if !ok {
				t.Fatalf("key %q missing before TTL", key)
			}
			if got != want {
				t.Fatalf("key %q: got %v, want %d",
					key, got, want)
			}
		}
	})
}

// TestInvalidateInvariant verifies that after Invalidate(sub) exactly the
// keys containing sub are gone and every other key survives.
func TestInvalidateInvariant(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		l, _ := newTestLedger(time.Minute)

		keys := rapid.SliceOfNDistinct(
			rapid.StringMatching(`[a-z]{1,10}`), 1, 20,
			rapid.ID[string],
		).Draw(t, "keys")

		for _, key := range keys {
			l.Store(key, key)
		}

		sub := rapid.StringMatching(`[a-z]{1,3}`).Draw(t, "sub")
		l.Invalidate(sub)

		for _, key := range keys {
			_, ok := l.Lookup(key)
			if strings.Contains(key, sub) && ok {
				t.Fatalf("key %q contains %q but survived",
					key, sub)
			}
			if !strings.Contains(key, sub) && !ok {
				t.Fatalf("key %q lacks %q but was evicted",
					key, sub)
			}
		}
	})
}

// TestExpiryInvariant verifies that advancing the clock past the TTL makes
// every entry absent without an Invalidate call.
func TestExpiryInvariant(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		ttl := time.Duration(
			rapid.IntRange(1, 600).Draw(t, "ttlSecs"),
		) * time.Second
		l, now := newTestLedger(ttl)

		keys := rapid.SliceOfN(
			rapid.StringMatching(`[a-z]{1,8}`), 1, 10,
		).Draw(t, "keys")
		for _, key := range keys {
			l.Store(key, true)
		}

		*now = now.Add(ttl)

		for _, key := range keys {
			if _, ok := l.Lookup(key); ok {
				t.Fatalf("key %q alive past TTL", key)
			}
		}
	})
}

package rate

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// collector records delivered values for assertions.
type collector[T any] struct {
	mu     sync.Mutex
	values []T
}

func (c *collector[T]) add(v T) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.values = append(c.values, v)
}

func (c *collector[T]) snapshot() []T {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]T(nil), c.values...)
}

// TestDebouncerSettles verifies that only the last of a rapid series of
// values is delivered, after the delay elapses.
func TestDebouncerSettles(t *testing.T) {
	var got collector[string]
	d := NewDebouncer(20*time.Millisecond, got.add)
	defer d.Stop()

	// Rapid input: each value supersedes the previous pending one.
	d.Set("H")
	d.Set("He")
	d.Set("Hel")
	d.Set("Hello")

	require.Eventually(t, func() bool {
		return len(got.snapshot()) == 1
	}, time.Second, time.Millisecond)

	require.Equal(t, []string{"Hello"}, got.snapshot())
}

// TestDebouncerSeparateBursts verifies that values separated by more than
// the delay are each delivered.
func TestDebouncerSeparateBursts(t *testing.T) {
	var got collector[int]
	d := NewDebouncer(10*time.Millisecond, got.add)
	defer d.Stop()

	d.Set(1)
	require.Eventually(t, func() bool {
		return len(got.snapshot()) == 1
	}, time.Second, time.Millisecond)

	d.Set(2)
	require.Eventually(t, func() bool {
		return len(got.snapshot()) == 2
	}, time.Second, time.Millisecond)

	require.Equal(t, []int{1, 2}, got.snapshot())
}

// TestDebouncerStopCancelsPending verifies that Stop suppresses a pending
// delivery and releases the timer.
func TestDebouncerStopCancelsPending(t *testing.T) {
	var got collector[int]
	d := NewDebouncer(20*time.Millisecond, got.add)

	d.Set(7)
	d.Stop()

	time.Sleep(50 * time.Millisecond)
	require.Empty(t, got.snapshot())

	// Set after Stop is a no-op.
	d.Set(8)
	time.Sleep(50 * time.Millisecond)
	require.Empty(t, got.snapshot())
}

// TestThrottlerCoalescesBurst verifies the trailing-edge contract: five
// calls inside one interval produce exactly two executions, the immediate
// leading call plus one trailing call.
func TestThrottlerCoalescesBurst(t *testing.T) {
	var runs atomic.Int32
	th := NewThrottler(
		50*time.Millisecond, func() { runs.Add(1) },
	)
	defer th.Stop()

	for i := 0; i < 5; i++ {
		th.Call()
	}

	// Leading call fires immediately.
	require.Eventually(t, func() bool {
		return runs.Load() == 1
	}, time.Second, time.Millisecond)

	// The four burst calls coalesce into one trailing execution.
	require.Eventually(t, func() bool {
		return runs.Load() == 2
	}, time.Second, time.Millisecond)

	// No third execution sneaks in after the window.
	time.Sleep(80 * time.Millisecond)
	require.Equal(t, int32(2), runs.Load())
}

// TestThrottlerSpacedCallsRunEach verifies that calls spaced wider than the
// interval all run on the leading edge.
func TestThrottlerSpacedCallsRunEach(t *testing.T) {
	var runs atomic.Int32
	th := NewThrottler(
		10*time.Millisecond, func() { runs.Add(1) },
	)
	defer th.Stop()

	for i := 0; i < 3; i++ {
		th.Call()
		time.Sleep(20 * time.Millisecond)
	}

	require.Eventually(t, func() bool {
		return runs.Load() == 3
	}, time.Second, time.Millisecond)
}

// TestThrottlerStopCancelsTrailing verifies that Stop releases a scheduled
// trailing call.
func TestThrottlerStopCancelsTrailing(t *testing.T) {
	var runs atomic.Int32
	th := NewThrottler(
		50*time.Millisecond, func() { runs.Add(1) },
	)

	th.Call()
	th.Call()

	require.Eventually(t, func() bool {
		return runs.Load() == 1
	}, time.Second, time.Millisecond)

	th.Stop()
	time.Sleep(80 * time.Millisecond)

	require.Equal(t, int32(1), runs.Load())
}

package eventq

import (
	"sync/atomic"
	"time"
)

// Clock is the monotonic millisecond tick source the scheduler measures
// deadlines against. Implementations must be non-decreasing modulo 2^32;
// wrap is expected and handled by the scheduler's wrap-aware comparisons.
//
// Clock must be safe to call concurrently, including from whatever
// context posts events.
type Clock interface {
	// Tick returns the current tick in milliseconds, truncated to uint32.
	Tick() uint32
}

// SystemClock is the default Clock, derived from the Go runtime's
// monotonic clock reading (time.Now(), which on every supported platform
// carries a monotonic component immune to wall-clock adjustment).
//
// The zero value is ready to use; the anchor is established lazily on
// first Tick so construction never blocks or allocates.
type SystemClock struct {
	anchor atomic.Pointer[time.Time]
}

// NewSystemClock returns a ready-to-use SystemClock.
func NewSystemClock() *SystemClock {
	return &SystemClock{}
}

// Tick implements Clock.
func (c *SystemClock) Tick() uint32 {
	anchor := c.anchor.Load()
	if anchor == nil {
		now := time.Now()
		c.anchor.CompareAndSwap(nil, &now)
		anchor = c.anchor.Load()
	}
	return uint32(time.Since(*anchor).Milliseconds())
}

package deadline

import (
	"math"
	"time"
)

// Tick is the resolution of the counter behind a Clock.
const Tick = time.Microsecond

// Clock is a monotonic microsecond counter with a blocking sleep.
type Clock interface {
	// Now returns the current tick count. The value wraps at 2^32.
	Now() uint32

	// Sleep blocks for at least d.
	Sleep(d time.Duration)
}

// Deadline is a tick value in the future of the Clock that produced it.
type Deadline uint32

// ticks converts an interval to ticks, rounding up so that a non-zero
// interval never yields an already-expired deadline.
func ticks(interval time.Duration) uint32 {
	if interval <= 0 {
		return 0
	}
	t := (interval + Tick - 1) / Tick
	if t > math.MaxInt32 {
		return math.MaxInt32
	}
	return uint32(t)
}

// From returns the deadline interval after the current time of c.
// Intervals beyond the signed range of the counter are clamped to it.
func From(c Clock, interval time.Duration) Deadline {
	return Deadline(c.Now() + ticks(interval))
}

// Remaining returns the time left until d, or zero once d has passed.
// The difference is taken as a signed 32-bit value so counter wraparound
// between From and Remaining is tolerated.
func Remaining(c Clock, d Deadline) time.Duration {
	diff := int32(uint32(d) - c.Now())
	if diff <= 0 {
		return 0
	}
	return time.Duration(diff) * Tick
}

// Expired reports whether d has passed.
func Expired(c Clock, d Deadline) bool {
	return Remaining(c, d) == 0
}

// Wait blocks for at least d. A non-positive duration returns immediately
// without touching the clock.
func Wait(c Clock, d time.Duration) {
	if d <= 0 {
		return
	}
	c.Sleep(d)
}

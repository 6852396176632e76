package deadline

import (
	"sync"
	"time"
)

// System is a Clock backed by the host monotonic clock.
type System struct {
	start time.Time
}

// NewSystem returns a System clock whose counter starts at zero.
func NewSystem() *System {
	return &System{start: time.Now()}
}

// Now returns microseconds elapsed since the clock was created, modulo 2^32.
func (s *System) Now() uint32 {
	return uint32(time.Since(s.start) / Tick)
}

// Sleep blocks the calling goroutine for at least d.
func (s *System) Sleep(d time.Duration) {
	time.Sleep(d)
}

// Manual is a Clock that only moves when told to. Sleep advances the
// counter by the requested duration instead of blocking.
type Manual struct {
	mu     sync.Mutex
	now    uint32
	step   uint32
	sleeps int
	slept  time.Duration
}

// NewManual returns a Manual clock set to start.
func NewManual(start uint32) *Manual {
	return &Manual{now: start}
}

// Now returns the current tick and then advances by the configured step.
func (m *Manual) Now() uint32 {
	m.mu.Lock()
	defer m.mu.Unlock()
	t := m.now
	m.now += m.step
	return t
}

// Sleep advances the clock by d, rounded up to whole ticks.
func (m *Manual) Sleep(d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sleeps++
	m.slept += d
	m.now += ticks(d)
}

// Advance moves the clock forward by d.
func (m *Manual) Advance(d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.now += ticks(d)
}

// Set moves the counter to an absolute tick value.
func (m *Manual) Set(t uint32) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.now = t
}

// SetStep makes every Now call advance the counter by d, so busy loops that
// never sleep still make progress.
func (m *Manual) SetStep(d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.step = ticks(d)
}

// Sleeps returns how many times Sleep was called.
func (m *Manual) Sleeps() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.sleeps
}

// Slept returns the total duration passed to Sleep.
func (m *Manual) Slept() time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.slept
}

// Package simclock provides a simulated wall clock and a tick counter driven
// by it, for exercising calibration and conversion logic deterministically.
package simclock

import (
	"math/bits"
	"sync"
	"time"
)

// Clock is a manually advanced wall clock. Sleep advances it by the
// requested duration plus Jitter; Now advances it by Step on every call,
// which lets busy-wait loops terminate.
type Clock struct {
	mu     sync.Mutex
	epoch  time.Time
	now    time.Time
	Step   time.Duration
	Jitter time.Duration
}

// New returns a Clock frozen at an arbitrary fixed instant.
func New() *Clock {
	epoch := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)
	return &Clock{epoch: epoch, now: epoch}
}

// Now returns the simulated time and then advances it by Step.
func (c *Clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	now := c.now
	c.now = c.now.Add(c.Step)
	return now
}

// Sleep advances the clock by d plus Jitter without blocking.
func (c *Clock) Sleep(d time.Duration) {
	c.Advance(d + c.Jitter)
}

// Advance moves the clock forward by d.
func (c *Clock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

// Since returns how much simulated time has passed since the clock was
// created.
func (c *Clock) Since() time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now.Sub(c.epoch)
}

// Counter is a tick counter advancing at Hz ticks per simulated second.
type Counter struct {
	Clock *Clock
	Hz    uint64
	// Base is added to every reading so the counter does not start at zero.
	Base uint64
}

// NewCounter returns a Counter ticking at hz on clock.
func NewCounter(clock *Clock, hz uint64) *Counter {
	return &Counter{Clock: clock, Hz: hz, Base: 1 << 32}
}

// Read returns the counter value for the current simulated time.
func (c *Counter) Read() uint64 {
	hi, lo := bits.Mul64(uint64(c.Clock.Since()), c.Hz)
	ticks, _ := bits.Div64(hi, lo, uint64(time.Second))
	return c.Base + ticks
}

// Start reads the counter.
func (c *Counter) Start() uint64 { return c.Read() }

// Stop reads the counter.
func (c *Counter) Stop() uint64 { return c.Read() }

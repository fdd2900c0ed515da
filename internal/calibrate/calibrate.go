// Package calibrate estimates the frequency of a tick counter by observing
// how far it advances over a known stretch of wall-clock time.
//
// Calibration accuracy is bounded by scheduler jitter around the wait. No
// attempt is made to interpolate or to repeat the measurement; callers that
// need a frequency more than once should keep the result.
package calibrate

import (
	"math"
	"time"
)

const (
	// DefaultDuration is the wall-clock window observed when none is set.
	DefaultDuration = time.Second

	// DefaultMinElapsed is the smallest divisor used when converting a tick
	// delta into a rate. It only matters when the wall clock reports a
	// zero or negative elapsed time.
	DefaultMinElapsed = time.Nanosecond
)

// Counter is a monotonic tick source. Start is read at the beginning of the
// observed window and Stop at its end.
type Counter interface {
	Start() uint64
	Stop() uint64
}

// Clock is the wall-clock reference the counter is compared against.
type Clock interface {
	Now() time.Time
	Sleep(d time.Duration)
}

// SystemClock is the process wall clock. Values returned by time.Now carry
// a monotonic reading, so Sub is immune to wall-clock steps.
type SystemClock struct{}

// Now returns time.Now().
func (SystemClock) Now() time.Time { return time.Now() }

// Sleep calls time.Sleep.
func (SystemClock) Sleep(d time.Duration) { time.Sleep(d) }

// Mode selects how the calibrator waits out its window.
type Mode int

const (
	// ModeSleep parks the goroutine for the window.
	ModeSleep Mode = iota
	// ModeSpin busy-waits on the wall clock. It burns a core but keeps the
	// thread scheduled, which reduces wake-up jitter.
	ModeSpin
)

// String returns the mode name.
func (m Mode) String() string {
	switch m {
	case ModeSleep:
		return "sleep"
	case ModeSpin:
		return "spin"
	default:
		return "unknown"
	}
}

// Result is the outcome of one calibration run.
type Result struct {
	// Frequency is the estimated tick rate in Hz. Always at least 1.
	Frequency uint64
	// Elapsed is the wall-clock time actually observed.
	Elapsed time.Duration
	// Ticks is the counter delta over Elapsed.
	Ticks uint64
}

// Calibrator measures a Counter against a Clock.
type Calibrator struct {
	Counter    Counter
	Clock      Clock
	Duration   time.Duration
	Mode       Mode
	MinElapsed time.Duration
}

// New returns a Calibrator for counter using the system clock, the default
// one second window and sleep mode.
func New(counter Counter) *Calibrator {
	return &Calibrator{
		Counter:    counter,
		Clock:      SystemClock{},
		Duration:   DefaultDuration,
		Mode:       ModeSleep,
		MinElapsed: DefaultMinElapsed,
	}
}

// Measure runs one calibration. It blocks for the configured window.
func (c *Calibrator) Measure() Result {
	clock := c.Clock
	if clock == nil {
		clock = SystemClock{}
	}
	window := c.Duration
	if window <= 0 {
		window = DefaultDuration
	}
	minElapsed := c.MinElapsed
	if minElapsed <= 0 {
		minElapsed = DefaultMinElapsed
	}

	t0 := c.Counter.Start()
	w0 := clock.Now()

	switch c.Mode {
	case ModeSpin:
		for clock.Now().Sub(w0) < window {
			// Spin
		}
	default:
		clock.Sleep(window)
	}

	t1 := c.Counter.Stop()
	w1 := clock.Now()

	elapsed := w1.Sub(w0)
	return Result{
		Frequency: Rate(t1-t0, elapsed, minElapsed),
		Elapsed:   elapsed,
		Ticks:     t1 - t0,
	}
}

// Rate converts a tick delta observed over elapsed into ticks per second,
// rounded to the nearest integer. elapsed is clamped to at least minElapsed
// and the result to at least 1.
func Rate(ticks uint64, elapsed, minElapsed time.Duration) uint64 {
	if elapsed < minElapsed {
		elapsed = minElapsed
	}
	if elapsed <= 0 {
		elapsed = DefaultMinElapsed
	}

	hz := math.Round(float64(ticks) / elapsed.Seconds())
	switch {
	case hz < 1:
		return 1
	case hz >= math.MaxUint64:
		return math.MaxUint64
	}
	return uint64(hz)
}

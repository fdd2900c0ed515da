package cli

import (
	"math"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/wesleyorama2/tickcounter"
	"github.com/wesleyorama2/tickcounter/internal/output"
	"github.com/wesleyorama2/tickcounter/internal/stats"
)

// Runner performs the measurements shown by the tickcounter command.
type Runner struct {
	Source tickcounter.Source
	Now    func() time.Time
	Sleep  func(time.Duration)

	// Resolve returns the counter frequency. It is called at most once
	// per Runner.
	Resolve func() (uint64, tickcounter.FrequencyBase)

	Log *logrus.Logger

	resolved  bool
	hz        uint64
	base      tickcounter.FrequencyBase
	precision float64
}

// NewRunner returns a Runner for the hardware counter using the wall clock.
func NewRunner(log *logrus.Logger, resolve func() (uint64, tickcounter.FrequencyBase)) *Runner {
	return &Runner{
		Source:  tickcounter.Default(),
		Now:     time.Now,
		Sleep:   time.Sleep,
		Resolve: resolve,
		Log:     log,
	}
}

// Frequency resolves the counter frequency on first use.
func (r *Runner) Frequency() (uint64, tickcounter.FrequencyBase, float64) {
	if !r.resolved {
		r.Log.Debug("Resolving tick counter frequency")
		r.hz, r.base = r.Resolve()
		r.precision = tickcounter.PrecisionNanoseconds(r.hz)
		r.resolved = true
		r.Log.WithFields(logrus.Fields{
			"hz":     r.hz,
			"base":   r.base.Kind,
			"window": r.base.Window,
		}).Debug("Frequency resolved")
	}
	return r.hz, r.base, r.precision
}

// FrequencyInfo returns the resolved frequency in report form.
func (r *Runner) FrequencyInfo() *output.FrequencyInfo {
	hz, base, precision := r.Frequency()
	return &output.FrequencyInfo{
		Hz:            hz,
		MHz:           float64(hz) / 1e6,
		Base:          base.Kind.String(),
		Description:   base.String(),
		WindowSeconds: base.Window.Seconds(),
		PrecisionNs:   precision,
	}
}

// Basic times a sleep of d with a pair of raw counter reads.
func (r *Runner) Basic(d time.Duration) *output.Measurement {
	start := r.Source.Start()
	r.Sleep(d)
	elapsed := r.Source.Stop() - start

	return &output.Measurement{Sleep: d.String(), ElapsedTicks: elapsed}
}

// Helper times a sleep of d with the TickCounter wrapper. The wrapper
// always reads the hardware counter.
func (r *Runner) Helper(d time.Duration) *output.Measurement {
	counter := tickcounter.Capture()
	r.Sleep(d)
	elapsed := counter.Elapsed()

	return &output.Measurement{Sleep: d.String(), ElapsedTicks: elapsed}
}

// Extended times a sleep of d and converts the result to nanoseconds.
func (r *Runner) Extended(d time.Duration) *output.Measurement {
	_, _, precision := r.Frequency()

	start := r.Source.Start()
	r.Sleep(d)
	stop := r.Source.Stop()

	elapsed := stop - start
	return &output.Measurement{
		Sleep:        d.String(),
		StartTicks:   start,
		StopTicks:    stop,
		ElapsedTicks: elapsed,
		ElapsedNs:    float64(elapsed) * precision,
	}
}

// Compare takes samples back-to-back measurements of an empty region with
// the wall clock and with the tick counter.
func (r *Runner) Compare(samples int) *output.Comparison {
	_, _, precision := r.Frequency()

	wall := stats.NewRecorder()
	for range samples {
		t := r.Now()
		wall.Record(float64(r.Now().Sub(t)))
	}

	ticks := stats.NewRecorder()
	for range samples {
		start := r.Source.Start()
		elapsed := r.Source.Stop() - start + 1
		ticks.Record(math.Round(precision * float64(elapsed)))
	}

	return &output.Comparison{
		Samples:     samples,
		WallClock:   wall.Summary(),
		TickCounter: ticks.Summary(),
	}
}

// SampleOverhead feeds samples back-to-back read deltas into c.
func (r *Runner) SampleOverhead(samples int, c *stats.Collector) {
	for range samples {
		start := r.Source.Start()
		c.ObserveOverhead(r.Source.Stop() - start)
	}
}

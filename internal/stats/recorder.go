package stats

import (
	"math"
	"sync"
	"time"

	"github.com/HdrHistogram/hdrhistogram-go"
)

// RecorderConfig bounds the values a Recorder can hold.
type RecorderConfig struct {
	// HistogramMin is the lowest discernible value (default: 1)
	HistogramMin int64

	// HistogramMax is the highest trackable value (default: one hour in nanoseconds)
	HistogramMax int64

	// HistogramSigFigs is the number of significant figures (default: 3)
	HistogramSigFigs int
}

// DefaultRecorderConfig returns the default configuration.
func DefaultRecorderConfig() RecorderConfig {
	return RecorderConfig{
		HistogramMin:     1,
		HistogramMax:     int64(time.Hour),
		HistogramSigFigs: 3,
	}
}

// Recorder accumulates non-negative samples.
type Recorder struct {
	mu     sync.Mutex
	hist   *hdrhistogram.Histogram
	config RecorderConfig
}

// NewRecorder creates a Recorder with the default configuration.
func NewRecorder() *Recorder {
	return NewRecorderWithConfig(DefaultRecorderConfig())
}

// NewRecorderWithConfig creates a Recorder with a custom configuration.
func NewRecorderWithConfig(config RecorderConfig) *Recorder {
	return &Recorder{
		hist:   hdrhistogram.New(config.HistogramMin, config.HistogramMax, config.HistogramSigFigs),
		config: config,
	}
}

// Record adds one sample. Values are rounded to integers and clamped to
// [0, HistogramMax].
func (r *Recorder) Record(value float64) {
	v := int64(math.Round(value))
	if v < 0 || math.IsNaN(value) {
		v = 0
	}
	if v > r.config.HistogramMax {
		v = r.config.HistogramMax
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	// RecordValue only fails for values above HistogramMax, which were
	// clamped above.
	_ = r.hist.RecordValue(v)
}

// RecordTicks adds a raw tick count.
func (r *Recorder) RecordTicks(ticks uint64) {
	r.Record(float64(ticks))
}

// Summary contains the statistics of the recorded samples.
type Summary struct {
	Count         int64   `json:"count"`
	Mean          float64 `json:"mean"`
	Min           int64   `json:"min"`
	Max           int64   `json:"max"`
	StdDev        float64 `json:"stdDev"`
	StdDevPercent float64 `json:"stdDevPercent"`
	P50           int64   `json:"p50"`
	P90           int64   `json:"p90"`
	P99           int64   `json:"p99"`
}

// Summary returns the statistics of everything recorded so far.
func (r *Recorder) Summary() Summary {
	r.mu.Lock()
	defer r.mu.Unlock()

	s := Summary{
		Count:  r.hist.TotalCount(),
		Mean:   r.hist.Mean(),
		Min:    r.hist.Min(),
		Max:    r.hist.Max(),
		StdDev: r.hist.StdDev(),
		P50:    r.hist.ValueAtQuantile(50),
		P90:    r.hist.ValueAtQuantile(90),
		P99:    r.hist.ValueAtQuantile(99),
	}
	if s.Mean > 0 {
		s.StdDevPercent = 100 * s.StdDev / s.Mean
	}
	return s
}

// Reset discards all samples.
func (r *Recorder) Reset() {
	r.mu.Lock()
	r.hist.Reset()
	r.mu.Unlock()
}

package stats

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "tickcounter"

// Collector publishes the counter calibration and read overhead.
type Collector struct {
	frequency *prometheus.GaugeVec
	precision prometheus.Gauge
	window    prometheus.Gauge
	overhead  prometheus.Histogram
}

// NewCollector creates the metrics and registers them with reg.
func NewCollector(reg prometheus.Registerer) (*Collector, error) {
	c := &Collector{
		frequency: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "frequency_hertz",
				Help:      "Tick counter frequency in Hz.",
			},
			[]string{"base"},
		),
		precision: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "precision_nanoseconds",
			Help:      "Duration of one tick in nanoseconds.",
		}),
		window: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "calibration_window_seconds",
			Help:      "Wall-clock time observed while measuring the frequency, 0 when hardware provided.",
		}),
		overhead: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "read_overhead_ticks",
			Help:      "Ticks between back-to-back start and stop reads.",
			Buckets:   prometheus.ExponentialBuckets(1, 2, 16),
		}),
	}

	for _, m := range []prometheus.Collector{c.frequency, c.precision, c.window, c.overhead} {
		if err := reg.Register(m); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// SetCalibration records a resolved frequency and the tick duration derived
// from it. base is the provenance label, e.g. "hardware" or "measured".
func (c *Collector) SetCalibration(hz uint64, base string, precisionNs, windowSeconds float64) {
	c.frequency.Reset()
	c.frequency.WithLabelValues(base).Set(float64(hz))
	c.precision.Set(precisionNs)
	c.window.Set(windowSeconds)
}

// ObserveOverhead records one back-to-back read delta.
func (c *Collector) ObserveOverhead(ticks uint64) {
	c.overhead.Observe(float64(ticks))
}

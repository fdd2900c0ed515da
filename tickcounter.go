package tickcounter

import (
	"sync"
	"time"

	"github.com/wesleyorama2/tickcounter/internal/arch"
	"github.com/wesleyorama2/tickcounter/internal/calibrate"
)

// DefaultCalibrationDuration is the wall-clock window used when the
// frequency has to be measured.
const DefaultCalibrationDuration = calibrate.DefaultDuration

// Start returns the current counter value to use as the starting point of a
// timed region.
func Start() uint64 {
	return source.Start()
}

// Stop returns the current counter value to use as the end point of a
// timed region.
func Stop() uint64 {
	return source.Stop()
}

// Read returns the current counter value with no ordering barrier. It is
// the cheapest read, but the processor may move it across neighbouring
// instructions; delimit timed regions with Start and Stop.
func Read() uint64 {
	return arch.Read()
}

// Frequency returns the tick frequency in Hz and where it came from.
//
// On arm64 it is read from hardware. On amd64 it is measured over
// DefaultCalibrationDuration, blocking the caller for that long.
func Frequency() (uint64, FrequencyBase) {
	return source.Frequency()
}

var cachedFrequency = sync.OnceValues(Frequency)

// CachedFrequency returns the result of the first Frequency call made
// through it, so the calibration cost is paid at most once per process.
func CachedFrequency() (uint64, FrequencyBase) {
	return cachedFrequency()
}

// CalibrationOptions controls a fresh frequency measurement.
type CalibrationOptions struct {
	// Duration of the observed window. Zero means DefaultCalibrationDuration.
	Duration time.Duration
	// Spin busy-waits instead of sleeping during the window.
	Spin bool
}

// Calibrate measures the counter frequency over d regardless of whether the
// hardware reports it.
func Calibrate(d time.Duration) (uint64, FrequencyBase) {
	return CalibrateWith(CalibrationOptions{Duration: d})
}

// CalibrateWith measures the counter frequency using opts.
func CalibrateWith(opts CalibrationOptions) (uint64, FrequencyBase) {
	c := calibrate.New(source)
	if opts.Duration > 0 {
		c.Duration = opts.Duration
	}
	if opts.Spin {
		c.Mode = calibrate.ModeSpin
	}
	return measure(c)
}

// hardwareOrMeasured trusts a positive hardware-reported frequency and
// otherwise measures one with c.
func hardwareOrMeasured(hz uint64, c *calibrate.Calibrator) (uint64, FrequencyBase) {
	if hz > 0 {
		return hz, HardwareBase()
	}
	return measure(c)
}

func measure(c *calibrate.Calibrator) (uint64, FrequencyBase) {
	result := c.Measure()
	return result.Frequency, MeasuredBase(result.Elapsed)
}

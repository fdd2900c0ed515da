package tickcounter

import (
	"math"
	"time"
)

// PrecisionNanoseconds returns the duration of one tick in nanoseconds for
// a counter running at frequency Hz. frequency must be positive, which
// Frequency and Calibrate guarantee.
func PrecisionNanoseconds(frequency uint64) float64 {
	return 1e9 / float64(frequency)
}

// ToNanoseconds converts a tick count into nanoseconds at frequency Hz.
func ToNanoseconds(ticks, frequency uint64) float64 {
	return float64(ticks) * PrecisionNanoseconds(frequency)
}

// ToDuration converts a tick count into a time.Duration at frequency Hz,
// rounded to the nearest nanosecond and saturating at the maximum Duration.
func ToDuration(ticks, frequency uint64) time.Duration {
	ns := math.Round(ToNanoseconds(ticks, frequency))
	if ns >= math.MaxInt64 {
		return time.Duration(math.MaxInt64)
	}
	return time.Duration(ns)
}

// Package tickcounter reads the CPU's hardware tick counter and converts
// raw tick deltas into time, for micro-benchmarks and latency measurement.
//
// Two counter mechanisms are supported, selected at build time by GOARCH:
//
//   - amd64: the time-stamp counter, read with RDTSC. Its frequency is not
//     reported by the hardware, so Frequency calibrates it against the wall
//     clock over one second.
//   - arm64: the virtual counter-timer CNTVCT_EL0. Its frequency comes
//     straight from CNTFRQ_EL0.
//
// Building for any other architecture fails.
//
// # Basic Usage
//
//	start := tickcounter.Start()
//	// ... code to benchmark
//	elapsed := tickcounter.Stop() - start
//
// or with the helper:
//
//	counter := tickcounter.Capture()
//	// ... code to benchmark
//	elapsed := counter.Elapsed()
//
// # Converting to Time
//
//	freq, base := tickcounter.CachedFrequency()
//	fmt.Printf("%.2f MHz (%s)\n", float64(freq)/1e6, base)
//	ns := float64(elapsed) * tickcounter.PrecisionNanoseconds(freq)
//
// Frequency blocks for the calibration window on amd64 every time it is
// called. CachedFrequency pays that cost once per process; Frequency and
// Calibrate always measure afresh.
//
// # Caveats
//
// Tick values are only meaningful as differences between two reads on the
// same machine. The counter is assumed to be synchronized across the cores
// of a package; this is not verified. A thread that migrates between cores
// during a timed region, or a CPU whose counter rate changes with frequency
// scaling or sleep states, produces measurement error that this package
// neither detects nor corrects.
package tickcounter

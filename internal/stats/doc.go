// Package stats summarizes timing samples.
//
// Recorder keeps samples in an HDR histogram, so percentiles come out in
// O(1) regardless of sample count, and reports count, mean, min, max,
// standard deviation and p50/p90/p99:
//
//	rec := stats.NewRecorder()
//	for i := 0; i < 100; i++ {
//	    start := tickcounter.Start()
//	    elapsed := tickcounter.Stop() - start + 1
//	    rec.Record(tickcounter.ToNanoseconds(elapsed, freq))
//	}
//	summary := rec.Summary()
//	fmt.Printf("Mean = %.2f, StdDev = %.2f%%\n", summary.Mean, summary.StdDevPercent)
//
// Collector exports counter calibration and read overhead as Prometheus
// metrics.
//
// # Thread Safety
//
// Recorder and Collector are safe for concurrent use. Histogram updates
// are serialized by a mutex since HDR histograms are not thread-safe.
package stats

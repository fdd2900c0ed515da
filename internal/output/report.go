// Package output renders tick counter reports as text, JSON or XLSX.
package output

import (
	"github.com/wesleyorama2/tickcounter/internal/stats"
)

// Report is everything a run of the tickcounter command measured. Sections
// that were not run are nil.
type Report struct {
	Environment Environment    `json:"environment"`
	Frequency   *FrequencyInfo `json:"frequency,omitempty"`
	Basic       *Measurement   `json:"basic,omitempty"`
	Helper      *Measurement   `json:"helper,omitempty"`
	Extended    *Measurement   `json:"extended,omitempty"`
	Compare     *Comparison    `json:"compare,omitempty"`
}

// Environment describes the machine the report was taken on.
type Environment struct {
	OS        string `json:"os"`
	Arch      string `json:"arch"`
	GoVersion string `json:"goVersion"`
	CPUs      int    `json:"cpus"`
	PinnedCPU *int   `json:"pinnedCpu,omitempty"`
}

// FrequencyInfo is the resolved counter frequency and its provenance.
type FrequencyInfo struct {
	Hz          uint64  `json:"hz"`
	MHz         float64 `json:"mhz"`
	Base        string  `json:"base"`
	Description string  `json:"description"`
	// WindowSeconds is the calibration window; zero for hardware bases.
	WindowSeconds float64 `json:"windowSeconds,omitempty"`
	PrecisionNs   float64 `json:"precisionNs"`
}

// Measurement is one start/sleep/stop run.
type Measurement struct {
	Sleep        string  `json:"sleep"`
	StartTicks   uint64  `json:"startTicks,omitempty"`
	StopTicks    uint64  `json:"stopTicks,omitempty"`
	ElapsedTicks uint64  `json:"elapsedTicks"`
	ElapsedNs    float64 `json:"elapsedNs,omitempty"`
}

// Comparison summarizes back-to-back measurements taken with the wall
// clock and with the tick counter, both in nanoseconds.
type Comparison struct {
	Samples     int           `json:"samples"`
	WallClock   stats.Summary `json:"wallClock"`
	TickCounter stats.Summary `json:"tickCounter"`
}

package tickcounter

import (
	"fmt"
	"time"
)

// BaseKind tells whether a frequency is an architectural fact or an
// estimate.
type BaseKind int

const (
	// Hardware frequencies are read from a counter-timer register and are
	// exact.
	Hardware BaseKind = iota
	// Measured frequencies were estimated by watching the counter advance
	// over a wall-clock window.
	Measured
)

// FrequencyBase describes the origin of a counter frequency.
type FrequencyBase struct {
	Kind BaseKind
	// Window is the wall-clock time observed while measuring. Zero for
	// Hardware.
	Window time.Duration
}

// HardwareBase returns the provenance of a hardware-reported frequency.
func HardwareBase() FrequencyBase {
	return FrequencyBase{Kind: Hardware}
}

// MeasuredBase returns the provenance of a frequency estimated over window.
func MeasuredBase(window time.Duration) FrequencyBase {
	return FrequencyBase{Kind: Measured, Window: window}
}

// IsHardware reports whether the frequency came from hardware.
func (b FrequencyBase) IsHardware() bool {
	return b.Kind == Hardware
}

// String returns a short human-readable description.
func (b FrequencyBase) String() string {
	if b.Kind == Hardware {
		return "hardware provided"
	}
	return fmt.Sprintf("software estimated in %v", b.Window)
}

// String returns "hardware" or "measured".
func (k BaseKind) String() string {
	switch k {
	case Hardware:
		return "hardware"
	case Measured:
		return "measured"
	default:
		return "unknown"
	}
}

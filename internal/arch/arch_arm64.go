//go:build arm64

package arch

// Start reads the virtual counter (CNTVCT_EL0) at the beginning of a timed
// region. An ISB precedes the read so it cannot be speculated ahead of
// earlier instructions.
// Implemented in arch_arm64.s
func Start() uint64

// Stop reads the virtual counter at the end of a timed region, also
// preceded by an ISB.
// Implemented in arch_arm64.s
func Stop() uint64

// Read reads CNTVCT_EL0 with no barrier.
// Implemented in arch_arm64.s
func Read() uint64

// Frequency reads the counter-timer frequency register (CNTFRQ_EL0), in Hz.
// Implemented in arch_arm64.s
func Frequency() uint64

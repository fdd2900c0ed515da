//go:build amd64

package arch

// Start reads the time-stamp counter at the beginning of a timed region.
// MFENCE and LFENCE make all earlier loads, stores and instructions
// complete before RDTSC executes.
// Implemented in arch_amd64.s
func Start() uint64

// Stop reads the time-stamp counter at the end of a timed region.
// The trailing LFENCE keeps later instructions from starting before the
// counter has been read.
// Implemented in arch_amd64.s
func Stop() uint64

// Read issues a bare RDTSC with no ordering fence.
// Implemented in arch_amd64.s
func Read() uint64

// ReadProcessor issues RDTSCP and returns the counter together with the
// IA32_TSC_AUX register, which Linux and Windows load with the current
// processor number.
// Implemented in arch_amd64.s
func ReadProcessor() (ticks uint64, aux uint32)

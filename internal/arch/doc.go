// Package arch is the narrow boundary to the hardware tick counter.
//
// Each supported architecture provides the same small set of functions,
// implemented in Go assembly. They issue the counter read plus whatever
// ordering instruction is needed so that the read is not moved across the
// code being measured, and nothing else:
//
//   - amd64: the time-stamp counter (RDTSC/RDTSCP). Its frequency is not
//     reported by the hardware and must be calibrated by the caller.
//   - arm64: the virtual counter-timer (CNTVCT_EL0), paired with the
//     CNTFRQ_EL0 frequency register.
//
// Higher level logic (calibration, precision) lives elsewhere and is
// architecture agnostic.
package arch

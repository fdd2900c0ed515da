//go:build !amd64 && !arm64

package tickcounter

// The hardware tick counter is implemented for amd64 and arm64 only.
var _ = tickcounterRequiresAmd64OrArm64

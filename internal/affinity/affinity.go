// Package affinity pins the calling goroutine's OS thread to a single CPU
// so that a timed region is not migrated between cores with possibly
// unsynchronized counters.
package affinity

import "github.com/pkg/errors"

// ErrUnsupported is returned on platforms without thread affinity control.
var ErrUnsupported = errors.New("affinity: cpu pinning is not supported on this platform")

// Pinning undoes a Pin call.
type Pinning interface {
	// CPU returns the processor the thread is pinned to.
	CPU() int
	// Release restores the previous affinity mask and unlocks the thread.
	Release() error
}

//go:build linux

package affinity

import (
	"runtime"

	"github.com/pkg/errors"
	"golang.org/x/sys/unix"
)

type linuxPinning struct {
	cpu      int
	previous unix.CPUSet
}

// Pin locks the calling goroutine to its OS thread and restricts that thread
// to cpu. The caller must call Release from the same goroutine.
func Pin(cpu int) (Pinning, error) {
	if cpu < 0 {
		return nil, errors.Errorf("affinity: invalid cpu %d", cpu)
	}

	runtime.LockOSThread()

	var previous unix.CPUSet
	if err := unix.SchedGetaffinity(0, &previous); err != nil {
		runtime.UnlockOSThread()
		return nil, errors.Wrap(err, "affinity: reading current mask")
	}
	if !previous.IsSet(cpu) {
		runtime.UnlockOSThread()
		return nil, errors.Errorf("affinity: cpu %d is not available to this process", cpu)
	}

	var set unix.CPUSet
	set.Zero()
	set.Set(cpu)
	if err := unix.SchedSetaffinity(0, &set); err != nil {
		runtime.UnlockOSThread()
		return nil, errors.Wrapf(err, "affinity: pinning to cpu %d", cpu)
	}

	return &linuxPinning{cpu: cpu, previous: previous}, nil
}

// Allowed returns the CPUs the calling thread may run on.
func Allowed() ([]int, error) {
	var set unix.CPUSet
	if err := unix.SchedGetaffinity(0, &set); err != nil {
		return nil, err
	}

	cpus := make([]int, 0, set.Count())
	for cpu := 0; len(cpus) < set.Count(); cpu++ {
		if set.IsSet(cpu) {
			cpus = append(cpus, cpu)
		}
	}
	return cpus, nil
}

func (p *linuxPinning) CPU() int { return p.cpu }

func (p *linuxPinning) Release() error {
	defer runtime.UnlockOSThread()
	return unix.SchedSetaffinity(0, &p.previous)
}

//go:build amd64 || arm64

package arch

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestStartStopMonotonic(t *testing.T) {
	for i := 0; i < 1000; i++ {
		a := Start()
		b := Stop()
		if b < a {
			t.Fatalf("counter went backwards: start=%d stop=%d", a, b)
		}
	}
}

func TestReadMonotonic(t *testing.T) {
	prev := Read()
	for i := 0; i < 1000; i++ {
		cur := Read()
		assert.GreaterOrEqual(t, cur, prev)
		prev = cur
	}
}

func TestCounterAdvancesOverSleep(t *testing.T) {
	start := Start()
	time.Sleep(time.Millisecond)
	stop := Stop()

	assert.Greater(t, stop, start, "counter should advance across a 1ms sleep")
}

func TestCounterResolution(t *testing.T) {
	// Back-to-back reads collapse onto the same value on slow counters
	// (arm64 timers commonly run at 24-100MHz), so space them out a bit.
	const samples = 200

	unique := make(map[uint64]struct{}, samples)
	for i := 0; i < samples; i++ {
		unique[Read()] = struct{}{}
		spin := time.Now()
		for time.Since(spin) < time.Microsecond {
		}
	}

	ratio := float64(len(unique)) / samples
	if ratio < 0.5 {
		t.Errorf("counter has low resolution: %.1f%% unique values in %d samples", ratio*100, samples)
	}
}

func BenchmarkStart(b *testing.B) {
	for range b.N {
		_ = Start()
	}
}

func BenchmarkStop(b *testing.B) {
	for range b.N {
		_ = Stop()
	}
}

func BenchmarkRead(b *testing.B) {
	for range b.N {
		_ = Read()
	}
}

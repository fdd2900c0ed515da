//go:build amd64

package tickcounter

import (
	"github.com/wesleyorama2/tickcounter/internal/arch"
	"github.com/wesleyorama2/tickcounter/internal/calibrate"
)

// tscSource reads the x86 time-stamp counter. The TSC has no architectural
// frequency register, so its rate is always measured.
type tscSource struct{}

var source = tscSource{}

func (tscSource) Start() uint64 { return arch.Start() }

func (tscSource) Stop() uint64 { return arch.Stop() }

func (s tscSource) Frequency() (uint64, FrequencyBase) {
	return measure(calibrate.New(s))
}

// ReadProcessor reads the time-stamp counter with RDTSCP and also returns
// the IA32_TSC_AUX register, which the OS loads with the current processor
// id. Comparing ids of two reads shows whether a timed region migrated.
// Only available on amd64.
func ReadProcessor() (ticks uint64, processor uint32) {
	return arch.ReadProcessor()
}

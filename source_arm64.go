//go:build arm64

package tickcounter

import (
	"github.com/wesleyorama2/tickcounter/internal/arch"
	"github.com/wesleyorama2/tickcounter/internal/calibrate"
)

// cntvctSource reads the arm64 virtual counter, whose frequency is
// published in CNTFRQ_EL0.
type cntvctSource struct{}

var source = cntvctSource{}

func (cntvctSource) Start() uint64 { return arch.Start() }

func (cntvctSource) Stop() uint64 { return arch.Stop() }

// hardwareFrequency reads CNTFRQ_EL0.
var hardwareFrequency = arch.Frequency

// Frequency reads CNTFRQ_EL0. Firmware is required to program it, but a
// zero value is measured instead so the result stays positive.
func (s cntvctSource) Frequency() (uint64, FrequencyBase) {
	return hardwareOrMeasured(hardwareFrequency(), calibrate.New(s))
}

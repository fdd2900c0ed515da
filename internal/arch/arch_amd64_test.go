//go:build amd64

package arch

import (
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReadProcessor(t *testing.T) {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	first, _ := ReadProcessor()
	second, _ := ReadProcessor()
	assert.GreaterOrEqual(t, second, first)

	_, aux := ReadProcessor()
	t.Logf("IA32_TSC_AUX: %#x (cpu %d, node %d)", aux, aux&0xfff, aux>>12)
}

func BenchmarkReadProcessor(b *testing.B) {
	for range b.N {
		_, _ = ReadProcessor()
	}
}

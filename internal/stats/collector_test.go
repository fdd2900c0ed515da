package stats

import (
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollector_SetCalibration(t *testing.T) {
	reg := prometheus.NewRegistry()
	c, err := NewCollector(reg)
	require.NoError(t, err)

	c.SetCalibration(24_000_000, "hardware", 41.6667, 0)

	assert.Equal(t, 24_000_000.0, testutil.ToFloat64(c.frequency.WithLabelValues("hardware")))
	assert.Equal(t, 41.6667, testutil.ToFloat64(c.precision))
	assert.Equal(t, 0.0, testutil.ToFloat64(c.window))

	// A later calibration replaces the label rather than adding one.
	c.SetCalibration(3_000_000_000, "measured", 1.0/3, 1.002)
	assert.Equal(t, 1, testutil.CollectAndCount(c.frequency))
	assert.Equal(t, 1.002, testutil.ToFloat64(c.window))
}

func TestCollector_Exposition(t *testing.T) {
	reg := prometheus.NewRegistry()
	c, err := NewCollector(reg)
	require.NoError(t, err)

	c.SetCalibration(1_000_000_000, "measured", 1, 1)
	c.ObserveOverhead(20)
	c.ObserveOverhead(40)

	expected := `
# HELP tickcounter_precision_nanoseconds Duration of one tick in nanoseconds.
# TYPE tickcounter_precision_nanoseconds gauge
tickcounter_precision_nanoseconds 1
`
	require.NoError(t, testutil.GatherAndCompare(reg, strings.NewReader(expected), "tickcounter_precision_nanoseconds"))

	count, err := testutil.GatherAndCount(reg, "tickcounter_read_overhead_ticks")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestCollector_DuplicateRegistration(t *testing.T) {
	reg := prometheus.NewRegistry()
	_, err := NewCollector(reg)
	require.NoError(t, err)

	_, err = NewCollector(reg)
	assert.Error(t, err)
}

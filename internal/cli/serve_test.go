package cli

import (
	"context"
	"io"
	"net"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wesleyorama2/tickcounter/internal/config"
)

func fetchMetrics(url string) string {
	resp, err := http.Get(url)
	if err != nil {
		return ""
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil || resp.StatusCode != http.StatusOK {
		return ""
	}
	return string(body)
}

func TestServe(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Serve.Interval = config.Duration(10 * time.Millisecond)
	cfg.Serve.Samples = 10

	runner, _, _ := simRunner(24000000)
	a := &app{config: cfg, log: quietLogger(), runner: runner}

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	url := "http://" + ln.Addr().String() + "/metrics"

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- a.serve(ctx, ln)
	}()

	var body string
	require.Eventually(t, func() bool {
		body = fetchMetrics(url)
		return body != ""
	}, 5*time.Second, 20*time.Millisecond)

	assert.Contains(t, body, `tickcounter_frequency_hertz{base="hardware"} 2.4e+07`)
	assert.Contains(t, body, "tickcounter_precision_nanoseconds 41.66")
	assert.Contains(t, body, "tickcounter_calibration_window_seconds 0")
	assert.Contains(t, body, "tickcounter_read_overhead_ticks_count")
	assert.Contains(t, body, "go_goroutines")

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(10 * time.Second):
		t.Fatal("serve did not return after cancel")
	}
}

func TestServe_ListenError(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer ln.Close()

	_, _, err = execute(t, "serve", "--addr", ln.Addr().String(), "--calibration", "10ms")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to listen")
}

func TestNewRegistry(t *testing.T) {
	reg, collector, err := newRegistry()
	require.NoError(t, err)
	require.NotNil(t, collector)

	collector.SetCalibration(1000000000, "measured", 1, 1)
	families, err := reg.Gather()
	require.NoError(t, err)

	names := map[string]bool{}
	for _, mf := range families {
		names[mf.GetName()] = true
	}
	assert.True(t, names["tickcounter_frequency_hertz"])
	assert.True(t, names["tickcounter_calibration_window_seconds"])
}

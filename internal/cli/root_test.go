package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wesleyorama2/tickcounter/internal/affinity"
)

// execute runs the command line with args and returns stdout and stderr.
func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()

	cmd := NewRootCmd()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)

	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func decodeReport(t *testing.T, out string) map[string]interface{} {
	t.Helper()
	var report map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(out), &report), out)
	return report
}

func TestFrequencyCommand_JSON(t *testing.T) {
	out, _, err := execute(t, "frequency", "--calibration", "20ms", "--format", "json")
	require.NoError(t, err)

	report := decodeReport(t, out)
	frequency := report["frequency"].(map[string]interface{})
	assert.Equal(t, "measured", frequency["base"])
	assert.Greater(t, frequency["hz"].(float64), 0.0)
	assert.GreaterOrEqual(t, frequency["windowSeconds"].(float64), 0.02)
	assert.NotContains(t, report, "basic")

	env := report["environment"].(map[string]interface{})
	assert.Equal(t, runtime.GOOS, env["os"])
	assert.Equal(t, runtime.GOARCH, env["arch"])
}

func TestBasicCommand_Field(t *testing.T) {
	out, _, err := execute(t, "basic", "--sleep", "5ms", "--field", "basic.elapsedTicks")
	require.NoError(t, err)

	ticks, err := strconv.ParseUint(strings.TrimSpace(out), 10, 64)
	require.NoError(t, err, out)
	assert.Positive(t, ticks)
}

func TestAllCommand_Text(t *testing.T) {
	out, _, err := execute(t, "--sleep", "2ms", "--samples", "10", "--calibration", "10ms", "--no-color")
	require.NoError(t, err)

	for _, heading := range []string{
		"Basic usage:",
		"Basic usage with helper:",
		"Extended usage:",
		"Tick frequency, MHz:",
		"Comparing the measurement methods using 10 samples:",
		"Elapsed time in nanoseconds, using time.Now",
		"Elapsed time in nanoseconds, using the tick counter",
	} {
		assert.Contains(t, out, heading)
	}
	assert.NotContains(t, out, "\x1b[")
}

func TestCompareCommand_ConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tickcounter.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
samples: 5
calibration:
  duration: 10ms
output:
  format: json
`), 0644))

	out, _, err := execute(t, "compare", "--config", path)
	require.NoError(t, err)
	compare := decodeReport(t, out)["compare"].(map[string]interface{})
	assert.Equal(t, 5.0, compare["samples"])

	out, _, err = execute(t, "compare", "--config", path, "--samples", "7")
	require.NoError(t, err)
	compare = decodeReport(t, out)["compare"].(map[string]interface{})
	assert.Equal(t, 7.0, compare["samples"])
	assert.Equal(t, 7.0, compare["tickCounter"].(map[string]interface{})["count"])
}

func TestExtendedCommand_XLSX(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.xlsx")

	_, stderr, err := execute(t, "extended", "--sleep", "2ms", "--calibration", "10ms", "--format", "xlsx", "--output", path)
	require.NoError(t, err)
	assert.Contains(t, stderr, "Report written to")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, []byte("PK"), data[:2])
}

func TestCommand_Errors(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		wantErr string
	}{
		{
			name:    "xlsx without file",
			args:    []string{"basic", "--format", "xlsx"},
			wantErr: "output.file",
		},
		{
			name:    "unknown format",
			args:    []string{"basic", "--format", "csv"},
			wantErr: "invalid format: csv",
		},
		{
			name:    "field with text format",
			args:    []string{"basic", "--format", "text", "--field", "basic.sleep"},
			wantErr: "output.field",
		},
		{
			name:    "zero samples",
			args:    []string{"compare", "--samples", "0"},
			wantErr: "samples",
		},
		{
			name:    "missing config file",
			args:    []string{"basic", "--config", "/nonexistent/tickcounter.yaml"},
			wantErr: "failed to read config file",
		},
		{
			name:    "unknown field",
			args:    []string{"basic", "--sleep", "1ms", "--field", "basic.nothing"},
			wantErr: "path not found",
		},
		{
			name:    "extra argument",
			args:    []string{"basic", "now"},
			wantErr: "unknown command",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := execute(t, tt.args...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestCommand_Verbose(t *testing.T) {
	_, stderr, err := execute(t, "extended", "--sleep", "1ms", "--calibration", "10ms", "--verbose", "--format", "json")
	require.NoError(t, err)
	assert.Contains(t, stderr, "level=debug")
	assert.Contains(t, stderr, "Frequency resolved")
}

func TestCommand_PinCPU(t *testing.T) {
	if runtime.GOOS != "linux" {
		t.Skip("CPU pinning is only supported on Linux")
	}
	allowed, err := affinity.Allowed()
	require.NoError(t, err)
	require.NotEmpty(t, allowed)
	cpu := allowed[len(allowed)-1]

	out, _, err := execute(t, "basic", "--sleep", "1ms", "--format", "json", "--pin-cpu", strconv.Itoa(cpu))
	require.NoError(t, err)

	env := decodeReport(t, out)["environment"].(map[string]interface{})
	assert.Equal(t, float64(cpu), env["pinnedCpu"])
}

func TestVersion(t *testing.T) {
	out, _, err := execute(t, "--version")
	require.NoError(t, err)
	assert.Contains(t, out, version)
}

func TestCommand_PinUnsupported(t *testing.T) {
	saved := pinCPU
	pinCPU = func(int) (affinity.Pinning, error) { return nil, affinity.ErrUnsupported }
	defer func() { pinCPU = saved }()

	out, stderr, err := execute(t, "basic", "--sleep", "1ms", "--format", "json", "--pin-cpu", "0")
	require.NoError(t, err)
	assert.Contains(t, stderr, "level=warning")
	assert.Contains(t, stderr, "⚠ CPU pinning is not supported")
	assert.NotContains(t, decodeReport(t, out)["environment"], "pinnedCpu")
}

// failingFile accepts writes and fails on Close, as a file on a full disk
// can.
type failingFile struct {
	bytes.Buffer
}

func (f *failingFile) Close() error {
	return errors.New("no space left on device")
}

func TestCommand_OutputCloseError(t *testing.T) {
	file := &failingFile{}
	saved := createFile
	createFile = func(string) (io.WriteCloser, error) { return file, nil }
	defer func() { createFile = saved }()

	_, stderr, err := execute(t, "basic", "--sleep", "1ms", "--format", "json", "--output", "report.json")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to close output file")
	assert.Contains(t, err.Error(), "no space left on device")
	assert.NotContains(t, stderr, "Report written to")
	assert.True(t, json.Valid(file.Bytes()))
}

func TestConfigFile_FieldImpliesJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tickcounter.yaml")
	require.NoError(t, os.WriteFile(path, []byte("sleep: 1ms\noutput:\n  field: basic.sleep\n"), 0644))

	out, _, err := execute(t, "basic", "--config", path)
	require.NoError(t, err)
	assert.Equal(t, "1ms\n", out)
}

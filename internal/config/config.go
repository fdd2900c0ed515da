// Package config provides configuration loading and validation for the
// tickcounter command.
package config

import (
	"encoding/json"
	"strings"
	"time"
)

// Output formats.
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatXLSX = "xlsx"
)

// Config is the root configuration.
//
// Example YAML:
//
//	sleep: 1s
//	samples: 100
//	pinCpu: 2
//	calibration:
//	  duration: 500ms
//	  spin: true
//	output:
//	  format: json
//	  field: frequency.hz
//	serve:
//	  addr: ":9464"
//	  interval: 5s
type Config struct {
	// Sleep is how long the basic, helper and extended runs wait between
	// the start and stop reads
	Sleep Duration `json:"sleep,omitempty" yaml:"sleep,omitempty"`

	// Samples is the number of back-to-back measurements taken by compare
	Samples int `json:"samples,omitempty" yaml:"samples,omitempty"`

	// PinCPU pins the measuring thread to this CPU; -1 disables pinning
	PinCPU int `json:"pinCpu" yaml:"pinCpu"`

	// Calibration controls how the counter frequency is obtained
	Calibration CalibrationConfig `json:"calibration,omitempty" yaml:"calibration,omitempty"`

	// Output controls report rendering
	Output OutputConfig `json:"output,omitempty" yaml:"output,omitempty"`

	// Serve configures the metrics endpoint
	Serve ServeConfig `json:"serve,omitempty" yaml:"serve,omitempty"`
}

// CalibrationConfig controls frequency resolution.
type CalibrationConfig struct {
	// Duration forces a fresh calibration over this window when set.
	// When zero, the architecture default is used (hardware register on
	// arm64, a one second calibration on amd64).
	Duration Duration `json:"duration,omitempty" yaml:"duration,omitempty"`

	// Spin busy-waits during calibration instead of sleeping
	Spin bool `json:"spin,omitempty" yaml:"spin,omitempty"`
}

// OutputConfig controls report rendering.
type OutputConfig struct {
	// Format is one of text, json or xlsx
	Format string `json:"format,omitempty" yaml:"format,omitempty"`

	// File receives the report instead of stdout; required for xlsx
	File string `json:"file,omitempty" yaml:"file,omitempty"`

	// NoColor disables ANSI colors in text output
	NoColor bool `json:"noColor,omitempty" yaml:"noColor,omitempty"`

	// Field prints a single value of the JSON report, selected by a
	// gjson path such as "frequency.hz"
	Field string `json:"field,omitempty" yaml:"field,omitempty"`
}

// ServeConfig configures the metrics endpoint.
type ServeConfig struct {
	// Addr is the listen address
	Addr string `json:"addr,omitempty" yaml:"addr,omitempty"`

	// Interval between overhead sampling rounds
	Interval Duration `json:"interval,omitempty" yaml:"interval,omitempty"`

	// Samples taken per round
	Samples int `json:"samples,omitempty" yaml:"samples,omitempty"`
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() *Config {
	return &Config{
		Sleep:   Duration(time.Second),
		Samples: 100,
		PinCPU:  -1,
		Output: OutputConfig{
			Format: FormatText,
		},
		Serve: ServeConfig{
			Addr:     ":9464",
			Interval: Duration(5 * time.Second),
			Samples:  1000,
		},
	}
}

// Duration is a time.Duration that marshals as a string like "1s".
type Duration time.Duration

// Std returns the value as a time.Duration.
func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

// String returns the duration as a string.
func (d Duration) String() string {
	return time.Duration(d).String()
}

// MarshalJSON implements json.Marshaler.
func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}

// UnmarshalJSON implements json.Unmarshaler.
func (d *Duration) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	if s == "" || s == "null" {
		*d = 0
		return nil
	}

	dur, err := time.ParseDuration(s)
	if err != nil {
		return err
	}
	*d = Duration(dur)
	return nil
}

// MarshalYAML implements yaml.Marshaler.
func (d Duration) MarshalYAML() (interface{}, error) {
	return time.Duration(d).String(), nil
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var s string
	if err := unmarshal(&s); err != nil {
		return err
	}

	if s == "" {
		*d = 0
		return nil
	}

	dur, err := time.ParseDuration(s)
	if err != nil {
		return err
	}
	*d = Duration(dur)
	return nil
}

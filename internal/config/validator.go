package config

import (
	"fmt"
	"strings"
	"time"
)

const (
	minCalibration = time.Millisecond
	maxCalibration = time.Minute
	maxSleep       = time.Hour
)

// ValidationError represents a configuration validation error
type ValidationError struct {
	Path    string
	Message string
}

// Error returns the error message
func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Path, e.Message)
}

// ValidationErrors is a list of validation errors reported together.
type ValidationErrors []ValidationError

// Error joins the individual messages.
func (ve ValidationErrors) Error() string {
	msgs := make([]string, len(ve))
	for i, err := range ve {
		msgs[i] = err.Error()
	}
	return strings.Join(msgs, "; ")
}

// Validate checks the values of a decoded configuration.
func Validate(config *Config) ValidationErrors {
	var errors ValidationErrors

	if config.Sleep <= 0 || config.Sleep.Std() > maxSleep {
		errors = append(errors, ValidationError{
			Path:    "sleep",
			Message: fmt.Sprintf("must be between 0 and %v", maxSleep),
		})
	}

	if config.Samples < 1 {
		errors = append(errors, ValidationError{
			Path:    "samples",
			Message: "must be at least 1",
		})
	}

	if config.PinCPU < -1 {
		errors = append(errors, ValidationError{
			Path:    "pinCpu",
			Message: "must be a CPU number or -1",
		})
	}

	if d := config.Calibration.Duration.Std(); d != 0 && (d < minCalibration || d > maxCalibration) {
		errors = append(errors, ValidationError{
			Path:    "calibration.duration",
			Message: fmt.Sprintf("must be between %v and %v", minCalibration, maxCalibration),
		})
	}

	switch config.Output.Format {
	case FormatText, FormatJSON:
	case FormatXLSX:
		if config.Output.File == "" {
			errors = append(errors, ValidationError{
				Path:    "output.file",
				Message: "is required for xlsx output",
			})
		}
	default:
		errors = append(errors, ValidationError{
			Path:    "output.format",
			Message: fmt.Sprintf("invalid format: %s", config.Output.Format),
		})
	}

	if config.Output.Field != "" && config.Output.Format != FormatJSON {
		errors = append(errors, ValidationError{
			Path:    "output.field",
			Message: "requires json output",
		})
	}

	if config.Serve.Addr == "" {
		errors = append(errors, ValidationError{
			Path:    "serve.addr",
			Message: "addr is required",
		})
	}

	if config.Serve.Interval <= 0 {
		errors = append(errors, ValidationError{
			Path:    "serve.interval",
			Message: "must be positive",
		})
	}

	if config.Serve.Samples < 1 {
		errors = append(errors, ValidationError{
			Path:    "serve.samples",
			Message: "must be at least 1",
		})
	}

	return errors
}

package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

const durationPattern = `^([0-9]+(\\.[0-9]+)?(ns|us|µs|ms|s|m|h))+$`

// configSchema describes the accepted shape of a configuration document.
var configSchema = `{
	"$schema": "http://json-schema.org/draft-07/schema#",
	"type": "object",
	"additionalProperties": false,
	"properties": {
		"sleep": { "type": "string", "pattern": "` + durationPattern + `" },
		"samples": { "type": "integer", "minimum": 1 },
		"pinCpu": { "type": "integer", "minimum": -1 },
		"calibration": {
			"type": "object",
			"additionalProperties": false,
			"properties": {
				"duration": { "type": "string", "pattern": "` + durationPattern + `" },
				"spin": { "type": "boolean" }
			}
		},
		"output": {
			"type": "object",
			"additionalProperties": false,
			"properties": {
				"format": { "enum": ["text", "json", "xlsx"] },
				"file": { "type": "string" },
				"noColor": { "type": "boolean" },
				"field": { "type": "string" }
			}
		},
		"serve": {
			"type": "object",
			"additionalProperties": false,
			"properties": {
				"addr": { "type": "string", "minLength": 1 },
				"interval": { "type": "string", "pattern": "` + durationPattern + `" },
				"samples": { "type": "integer", "minimum": 1 }
			}
		}
	}
}`

var compiledSchema = jsonschema.MustCompileString("config.schema.json", configSchema)

// validateSchema checks a JSON document against configSchema.
func validateSchema(doc []byte) ValidationErrors {
	var value interface{}
	decoder := json.NewDecoder(bytes.NewReader(doc))
	decoder.UseNumber()
	if err := decoder.Decode(&value); err != nil {
		return ValidationErrors{{Path: "", Message: fmt.Sprintf("invalid JSON: %v", err)}}
	}

	err := compiledSchema.Validate(value)
	if err == nil {
		return nil
	}

	if validationErr, ok := err.(*jsonschema.ValidationError); ok {
		return extractValidationErrors(validationErr)
	}
	return ValidationErrors{{Path: "", Message: err.Error()}}
}

// extractValidationErrors flattens the leaves of a jsonschema error tree.
func extractValidationErrors(err *jsonschema.ValidationError) ValidationErrors {
	if len(err.Causes) == 0 {
		return ValidationErrors{{
			Path:    instancePath(err.InstanceLocation),
			Message: err.Message,
		}}
	}

	var errs ValidationErrors
	for _, cause := range err.Causes {
		errs = append(errs, extractValidationErrors(cause)...)
	}
	return errs
}

// instancePath turns a JSON pointer like /output/format into output.format.
func instancePath(pointer string) string {
	return strings.ReplaceAll(strings.TrimPrefix(pointer, "/"), "/", ".")
}

package config

import (
	"encoding/json"
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// LoadConfig reads and validates a YAML configuration file. Keys missing
// from the file keep their DefaultConfig values.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read config file")
	}

	config, err := ParseConfig(data)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid config file %s", path)
	}
	return config, nil
}

// ParseConfig parses YAML (or JSON, which is valid YAML) configuration
// data on top of the defaults, checking it against the configuration
// schema and then the value rules in Validate.
func ParseConfig(data []byte) (*Config, error) {
	var document interface{}
	if err := yaml.Unmarshal(data, &document); err != nil {
		return nil, errors.Wrap(err, "failed to parse YAML config")
	}

	if document != nil {
		// The schema validator expects JSON-decoded values.
		raw, err := json.Marshal(document)
		if err != nil {
			return nil, errors.Wrap(err, "failed to convert config")
		}
		if errs := validateSchema(raw); len(errs) > 0 {
			return nil, errs
		}
	}

	config := DefaultConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, errors.Wrap(err, "failed to decode config")
	}

	if config.Output.Field != "" && !hasKey(document, "output", "format") {
		config.Output.Format = FormatJSON
	}

	if errs := Validate(config); len(errs) > 0 {
		return nil, errs
	}
	return config, nil
}

// hasKey reports whether the decoded document sets the nested key path.
func hasKey(document interface{}, path ...string) bool {
	for _, key := range path {
		m, ok := document.(map[string]interface{})
		if !ok {
			return false
		}
		if document, ok = m[key]; !ok {
			return false
		}
	}
	return true
}

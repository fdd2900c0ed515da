package output

import (
	"encoding/json"
	"io"
	"strings"

	"github.com/pkg/errors"
	"github.com/tidwall/gjson"
)

// MarshalJSON returns the indented JSON form of report.
func MarshalJSON(report *Report) ([]byte, error) {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return nil, errors.Wrap(err, "failed to marshal report")
	}
	return data, nil
}

// RenderJSON writes the indented JSON form of report followed by a newline.
func RenderJSON(w io.Writer, report *Report) error {
	data, err := MarshalJSON(report)
	if err != nil {
		return err
	}
	_, err = w.Write(append(data, '\n'))
	return err
}

// Query extracts a single value from a JSON document. The path is either a
// gjson path ("frequency.hz") or a simple JSONPath ("$.frequency.hz",
// "$['compare']['tickCounter']").
func Query(doc []byte, path string) (string, error) {
	if len(doc) == 0 {
		return "", errors.New("empty JSON document")
	}
	if path == "" {
		return "", errors.New("empty query path")
	}

	result := gjson.GetBytes(doc, toGjsonPath(path))
	if !result.Exists() {
		return "", errors.Errorf("path not found: %s", path)
	}
	if result.Type == gjson.Null {
		return "null", nil
	}
	return result.String(), nil
}

// toGjsonPath converts a JSONPath expression to gjson syntax.
// Paths without a leading $ are returned unchanged.
func toGjsonPath(path string) string {
	if !strings.HasPrefix(path, "$") {
		return path
	}

	path = strings.TrimPrefix(path, "$")
	path = strings.TrimPrefix(path, ".")
	if path == "" {
		return "@this"
	}

	replacer := strings.NewReplacer(
		"['", ".", "']", "",
		`["`, ".", `"]`, "",
		"[", ".", "]", "",
	)
	return strings.TrimPrefix(replacer.Replace(path), ".")
}

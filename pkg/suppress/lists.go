package suppress

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/xeipuuv/gojsonschema"
)

// ErrConfigRead indicates an external ignore/allow list file that could not
// be read or did not match the expected shape. It is non-fatal: the run
// proceeds with the inline list only and a warning is surfaced.
var ErrConfigRead = errors.New("feature list file unusable")

// listFileSchema accepts either a flat array of feature-name strings or an
// object with an array-valued "features" field.
const listFileSchema = `{
	"oneOf": [
		{"type": "array", "items": {"type": "string"}},
		{
			"type": "object",
			"properties": {"features": {"type": "array", "items": {"type": "string"}}},
			"required": ["features"]
		}
	]
}`

// listFileObject is the object form of a feature list file.
type listFileObject struct {
	Features []string `json:"features"`
}

// LoadListFile reads feature names from an external JSON list file. The
// content is validated against the list schema before decoding; every failure
// mode wraps ErrConfigRead so callers can degrade instead of aborting.
func LoadListFile(path string) ([]string, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConfigRead, err)
	}

	result, err := gojsonschema.Validate(
		gojsonschema.NewStringLoader(listFileSchema),
		gojsonschema.NewBytesLoader(content),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrConfigRead, path, err)
	}

	if !result.Valid() {
		return nil, fmt.Errorf("%w: %s: expected an array of names or {\"features\": [...]}", ErrConfigRead, path)
	}

	var flat []string
	if err := json.Unmarshal(content, &flat); err == nil {
		return flat, nil
	}

	var object listFileObject
	if err := json.Unmarshal(content, &object); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrConfigRead, path, err)
	}

	return object.Features, nil
}

// BuildSet unions an inline comma-separated list with an external list file.
// An unreadable or malformed file degrades to the inline list alone; the
// returned error is always ErrConfigRead-wrapped and non-fatal.
func BuildSet(inline, filePath string) (Set, error) {
	set := FromList(inline)

	if filePath == "" {
		return set, nil
	}

	names, err := LoadListFile(filePath)
	if err != nil {
		return set, err
	}

	return set.Union(NewSet(names...)), nil
}

package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"reflect"

	"gopkg.in/yaml.v3"
)

// IsJSONOutput reports whether --json was requested.
func IsJSONOutput() bool {
	return jsonOutput
}

// IsJSONLOutput reports whether --jsonl was requested.
func IsJSONLOutput() bool {
	return jsonlOutput
}

// IsYAMLOutput reports whether --yaml was requested.
func IsYAMLOutput() bool {
	return yamlOutput
}

// IsStructuredOutput reports whether any machine-readable format was requested.
func IsStructuredOutput() bool {
	return jsonOutput || jsonlOutput || yamlOutput
}

// WriteOutput encodes v in the requested structured format. JSON Lines
// writes one object per element when v is a slice.
func WriteOutput(out io.Writer, v any) error {
	switch {
	case jsonlOutput:
		return writeJSONLines(out, v)
	case yamlOutput:
		enc := yaml.NewEncoder(out)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
		return enc.Close()
	default:
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	}
}

func writeJSONLines(out io.Writer, v any) error {
	enc := json.NewEncoder(out)
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Slice {
		return enc.Encode(v)
	}
	for i := 0; i < rv.Len(); i++ {
		if err := enc.Encode(rv.Index(i).Interface()); err != nil {
			return err
		}
	}
	return nil
}

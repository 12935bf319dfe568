package tokens

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

const refKey = "$ref"

// ParseDocument decodes a token file and classifies each entry.
// The meta field is ignored; a missing tokens field yields an empty document.
func ParseDocument(layer Layer, data []byte) (*Document, error) {
	var raw struct {
		Meta   json.RawMessage            `json:"meta,omitempty"`
		Tokens map[string]json.RawMessage `json:"tokens"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: %s tokens: %v", ErrInvalidDocument, layer.Label(), err)
	}

	doc := NewDocument(layer)
	for path, value := range raw.Tokens {
		doc.Entries[path] = parseEntry(value)
	}
	return doc, nil
}

// LoadDocument reads and parses a token file from disk.
func LoadDocument(layer Layer, path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s tokens %s: %w", layer.Label(), path, err)
	}
	doc, err := ParseDocument(layer, data)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return doc, nil
}

func parseEntry(value json.RawMessage) Entry {
	trimmed := bytes.TrimSpace(value)
	if len(trimmed) == 0 {
		return Entry{Kind: KindInvalid, Problem: "empty value"}
	}

	switch c := trimmed[0]; {
	case c == '"':
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return Entry{Kind: KindInvalid, Problem: err.Error()}
		}
		return Entry{Kind: KindLiteral, Literal: s}

	case c == '-' || (c >= '0' && c <= '9'):
		var n json.Number
		if err := json.Unmarshal(trimmed, &n); err != nil {
			return Entry{Kind: KindInvalid, Problem: err.Error()}
		}
		return Entry{Kind: KindLiteral, Literal: n.String()}

	case c == '{':
		return parseRefObject(trimmed)

	default:
		return Entry{Kind: KindInvalid, Problem: fmt.Sprintf("unsupported value %s", string(trimmed))}
	}
}

// parseRefObject accepts {"$ref": "..."} plus optional $-prefixed
// annotations such as $description or $type.
func parseRefObject(data []byte) Entry {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return Entry{Kind: KindInvalid, Problem: err.Error()}
	}

	rawRef, ok := fields[refKey]
	if !ok {
		return Entry{Kind: KindInvalid, Problem: "missing $ref"}
	}
	var ref string
	if err := json.Unmarshal(rawRef, &ref); err != nil {
		return Entry{Kind: KindInvalid, Problem: "$ref must be a string"}
	}

	for key := range fields {
		if key != refKey && !strings.HasPrefix(key, "$") {
			return Entry{Kind: KindInvalid, Ref: ref, Problem: fmt.Sprintf("unexpected field %q", key)}
		}
	}

	return Entry{Kind: KindRef, Ref: ref}
}

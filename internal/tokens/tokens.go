// Package tokens compiles the layered design-token documents into the
// generated CSS custom-property stylesheet.
package tokens

import (
	"sort"
	"strings"
)

// Layer identifies one of the three token documents.
type Layer string

const (
	LayerBase       Layer = "base"
	LayerAlias      Layer = "alias"
	LayerTypography Layer = "typography"
)

// Label returns the human-readable layer name used in error messages.
func (l Layer) Label() string {
	switch l {
	case LayerBase:
		return "Base"
	case LayerAlias:
		return "Alias"
	case LayerTypography:
		return "Typography"
	default:
		return string(l)
	}
}

// Kind classifies a parsed token entry.
type Kind int

const (
	KindInvalid Kind = iota
	KindLiteral
	KindRef
)

func (k Kind) String() string {
	switch k {
	case KindLiteral:
		return "literal"
	case KindRef:
		return "ref"
	default:
		return "invalid"
	}
}

// Entry is a single token value: either a literal, a $ref, or an entry
// whose shape could not be classified.
type Entry struct {
	Kind    Kind
	Literal string
	Ref     string
	Problem string
}

// Document is one parsed token file.
type Document struct {
	Layer   Layer
	Entries map[string]Entry
}

// NewDocument returns an empty document for the layer.
func NewDocument(layer Layer) *Document {
	return &Document{Layer: layer, Entries: make(map[string]Entry)}
}

// Has reports whether the token path exists in the document.
func (d *Document) Has(path string) bool {
	if d == nil {
		return false
	}
	_, ok := d.Entries[path]
	return ok
}

// Len returns the number of entries.
func (d *Document) Len() int {
	if d == nil {
		return 0
	}
	return len(d.Entries)
}

// Paths returns the token paths in ordinal order.
func (d *Document) Paths() []string {
	if d == nil {
		return nil
	}
	paths := make([]string, 0, len(d.Entries))
	for path := range d.Entries {
		paths = append(paths, path)
	}
	sort.Strings(paths)
	return paths
}

// Set groups the three layers of one token source.
type Set struct {
	Base       *Document
	Alias      *Document
	Typography *Document
}

// VarName returns the CSS custom property name for a token path.
func VarName(layer Layer, path string) string {
	return "--" + string(layer) + "-" + strings.ReplaceAll(path, "/", "-")
}

// VarRef returns a var() reference to the token's custom property.
func VarRef(layer Layer, path string) string {
	return "var(" + VarName(layer, path) + ")"
}

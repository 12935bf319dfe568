package tokens

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
)

const (
	scalePrefix      = "scale/"
	fontFamilyPrefix = "type/font-family/"
	fontWeightPrefix = "type/font-weight/"
)

var fontWeights = map[string]int{
	"regular":  400,
	"semibold": 600,
	"bold":     700,
}

var (
	baseBanner = []string{
		"  /* =========================",
		"   * Base (raw) — exported from Figma Base collection",
		"   * ========================= */",
	}
	aliasBanner = []string{
		"  /* =========================",
		"   * Aliases (semantic) — must reference Base only",
		"   * ========================= */",
	}
	typographyBanner = []string{
		"  /* =========================",
		"   * Typography — must reference Base scale/type only",
		"   * ========================= */",
	}
)

// render emits the :root block. The set must already be validated.
func render(set *Set) string {
	lines := []string{":root {"}

	lines = append(lines, baseBanner...)
	for _, path := range set.Base.Paths() {
		lines = append(lines, "  "+baseDeclaration(path, set.Base.Entries[path].Literal))
	}
	lines = append(lines, "")

	lines = append(lines, aliasBanner...)
	lines = append(lines, refDeclarations(set.Alias)...)
	lines = append(lines, "")

	lines = append(lines, typographyBanner...)
	lines = append(lines, refDeclarations(set.Typography)...)
	lines = append(lines, "}", "")

	return strings.Join(lines, "\n")
}

func refDeclarations(doc *Document) []string {
	paths := doc.Paths()
	lines := make([]string, 0, len(paths))
	for _, path := range paths {
		lines = append(lines, "  "+VarName(doc.Layer, path)+": "+VarRef(LayerBase, doc.Entries[path].Ref)+";")
	}
	return lines
}

func baseDeclaration(path, value string) string {
	return VarName(LayerBase, path) + ": " + formatBaseValue(path, value) + ";"
}

// formatBaseValue applies the path-prefix formatting rules for Base literals.
func formatBaseValue(path, value string) string {
	trimmed := strings.TrimSpace(value)

	switch {
	case strings.HasPrefix(path, scalePrefix) && integerPattern.MatchString(trimmed):
		return trimmed + "px"

	case strings.HasPrefix(path, fontFamilyPrefix):
		return quoteString(trimmed)

	case strings.HasPrefix(path, fontWeightPrefix):
		if weight, ok := fontWeights[strings.ToLower(trimmed)]; ok {
			return strconv.Itoa(weight)
		}
		return quoteString(trimmed)

	default:
		return trimmed
	}
}

// quoteString produces a JSON string literal, which is also a valid CSS
// string. HTML characters are left unescaped.
func quoteString(s string) string {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return strconv.Quote(s)
	}
	return strings.TrimSuffix(buf.String(), "\n")
}

package tokens

import (
	"sort"
	"strings"
)

// Swatch is one shade of a Base colour family.
type Swatch struct {
	Shade  string `json:"shade" yaml:"shade"`
	CSSVar string `json:"cssVar" yaml:"cssVar"`
	Value  string `json:"value" yaml:"value"`
}

// PaletteFamily groups the Base colours sharing a family name.
type PaletteFamily struct {
	Name   string   `json:"name" yaml:"name"`
	Shades []Swatch `json:"shades" yaml:"shades"`
}

// PreviewItem describes a referencing token for display.
type PreviewItem struct {
	Name   string `json:"name" yaml:"name"`
	CSSVar string `json:"cssVar" yaml:"cssVar"`
	Ref    string `json:"ref" yaml:"ref"`
	Value  string `json:"value,omitempty" yaml:"value,omitempty"`
}

// AliasGroups splits alias tokens into colours and sizes.
type AliasGroups struct {
	Colors []PreviewItem `json:"colors" yaml:"colors"`
	Sizes  []PreviewItem `json:"sizes" yaml:"sizes"`
}

// Preview is the data shown by the token preview.
type Preview struct {
	Palette    []PaletteFamily `json:"palette" yaml:"palette"`
	Aliases    AliasGroups     `json:"aliases" yaml:"aliases"`
	Typography []PreviewItem   `json:"typography" yaml:"typography"`
}

// BuildPreview collects the preview data for a loaded token set.
func BuildPreview(set *Set) *Preview {
	return &Preview{
		Palette:    BasePalette(set.Base),
		Aliases:    AliasTokenGroups(set.Alias, set.Base),
		Typography: TypographyItems(set.Typography, set.Base),
	}
}

// BasePalette groups color/<family>/<shade> entries. Shades may contain
// further slashes, e.g. color/text/body/white.
func BasePalette(base *Document) []PaletteFamily {
	families := make(map[string][]Swatch)
	for _, path := range base.Paths() {
		parts := strings.Split(path, "/")
		if parts[0] != "color" || len(parts) < 3 {
			continue
		}
		family := parts[1]
		families[family] = append(families[family], Swatch{
			Shade:  strings.Join(parts[2:], "/"),
			CSSVar: VarRef(LayerBase, path),
			Value:  strings.TrimSpace(base.Entries[path].Literal),
		})
	}

	names := make([]string, 0, len(families))
	for name := range families {
		names = append(names, name)
	}
	sort.Strings(names)

	palette := make([]PaletteFamily, 0, len(names))
	for _, name := range names {
		palette = append(palette, PaletteFamily{Name: name, Shades: families[name]})
	}
	return palette
}

// AliasTokenGroups lists color/ and sizes/ aliases, resolving their Base value.
func AliasTokenGroups(alias, base *Document) AliasGroups {
	groups := AliasGroups{Colors: []PreviewItem{}, Sizes: []PreviewItem{}}
	for _, path := range alias.Paths() {
		item := previewItem(alias, base, path)
		switch {
		case strings.HasPrefix(path, "color/"):
			groups.Colors = append(groups.Colors, item)
		case strings.HasPrefix(path, "sizes/"):
			groups.Sizes = append(groups.Sizes, item)
		}
	}
	return groups
}

// TypographyItems lists typography tokens in path order.
func TypographyItems(typography, base *Document) []PreviewItem {
	items := make([]PreviewItem, 0, typography.Len())
	for _, path := range typography.Paths() {
		items = append(items, previewItem(typography, base, path))
	}
	return items
}

func previewItem(doc, base *Document, path string) PreviewItem {
	entry := doc.Entries[path]
	item := PreviewItem{
		Name:   path,
		CSSVar: VarRef(doc.Layer, path),
		Ref:    entry.Ref,
	}
	if target, ok := base.Entries[entry.Ref]; ok && target.Kind == KindLiteral {
		item.Value = formatBaseValue(entry.Ref, target.Literal)
	}
	return item
}

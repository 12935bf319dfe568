package tui

import (
	"strings"

	"github.com/grounds-studio/grounds/internal/tokens"
	"github.com/grounds-studio/grounds/internal/tui/components"
	"github.com/grounds-studio/grounds/internal/tui/styles"
)

// BuildStyles derives preview styles from theme, recolored by the preview's
// alias colours when present.
func BuildStyles(theme styles.Theme, preview *tokens.Preview) styles.Styles {
	if preview == nil || len(preview.Aliases.Colors) == 0 {
		return styles.BuildStyles(theme)
	}
	values := make(map[string]string, len(preview.Aliases.Colors))
	for _, item := range preview.Aliases.Colors {
		values[item.Name] = item.Value
	}
	return styles.BuildStyles(styles.ThemeFromAliases(theme, values))
}

// RenderPreview renders every preview section as static text.
func RenderPreview(preview *tokens.Preview, styleSet styles.Styles) string {
	if isEmpty(preview) {
		return components.NoTokens().Render(styleSet) + "\n"
	}

	var sections []string
	for _, view := range allViews {
		lines := []string{styleSet.Title.Render(view.title())}
		switch view {
		case viewAliases:
			lines = append(lines, aliasLines(styleSet, preview)...)
		case viewTypography:
			lines = append(lines, typographyLines(styleSet, preview)...)
		default:
			lines = append(lines, paletteLines(styleSet, preview)...)
		}
		sections = append(sections, joinLines(lines))
	}
	return strings.Join(sections, "\n\n") + "\n"
}

func isEmpty(preview *tokens.Preview) bool {
	return preview == nil ||
		len(preview.Palette) == 0 &&
			len(preview.Aliases.Colors) == 0 &&
			len(preview.Aliases.Sizes) == 0 &&
			len(preview.Typography) == 0
}

func paletteLines(styleSet styles.Styles, preview *tokens.Preview) []string {
	if preview == nil || len(preview.Palette) == 0 {
		return strings.Split(components.EmptyPalette().Render(styleSet), "\n")
	}
	var lines []string
	for _, family := range preview.Palette {
		lines = append(lines, strings.Split(components.SwatchRow(styleSet, family), "\n")...)
	}
	return lines
}

func aliasLines(styleSet styles.Styles, preview *tokens.Preview) []string {
	if preview == nil || len(preview.Aliases.Colors)+len(preview.Aliases.Sizes) == 0 {
		return strings.Split(components.EmptyAliases().Render(styleSet), "\n")
	}
	var lines []string
	if len(preview.Aliases.Colors) > 0 {
		lines = append(lines, styleSet.Heading.Render("Colors"))
		for _, item := range preview.Aliases.Colors {
			lines = append(lines, components.TokenRow(styleSet, item))
		}
	}
	if len(preview.Aliases.Sizes) > 0 {
		if len(lines) > 0 {
			lines = append(lines, "")
		}
		lines = append(lines, styleSet.Heading.Render("Sizes"))
		for _, item := range preview.Aliases.Sizes {
			lines = append(lines, components.TokenRow(styleSet, item))
		}
	}
	return lines
}

func typographyLines(styleSet styles.Styles, preview *tokens.Preview) []string {
	if preview == nil || len(preview.Typography) == 0 {
		return strings.Split(components.EmptyTypography().Render(styleSet), "\n")
	}
	lines := make([]string, 0, len(preview.Typography))
	for _, item := range preview.Typography {
		lines = append(lines, components.TokenRow(styleSet, item))
	}
	return lines
}

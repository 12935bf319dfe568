package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/grounds-studio/grounds/internal/tokens"
	"github.com/grounds-studio/grounds/internal/tui/styles"
)

// SwatchRow renders one palette family with a block per shade.
func SwatchRow(styleSet styles.Styles, family tokens.PaletteFamily) string {
	blocks := make([]string, 0, len(family.Shades))
	for _, shade := range family.Shades {
		blocks = append(blocks, swatchBlock(shade.Value))
	}
	name := styleSet.Heading.Render(family.Name)
	return name + "\n" + lipgloss.JoinHorizontal(lipgloss.Top, blocks...) + "\n" + shadeLabels(styleSet, family.Shades)
}

func shadeLabels(styleSet styles.Styles, shades []tokens.Swatch) string {
	labels := make([]string, 0, len(shades))
	for _, shade := range shades {
		labels = append(labels, fmt.Sprintf("%-4.4s", shade.Shade))
	}
	return styleSet.Muted.Render(strings.Join(labels, ""))
}

// TokenRow renders a single reference token with its resolved value.
func TokenRow(styleSet styles.Styles, item tokens.PreviewItem) string {
	value := item.Value
	if value == "" {
		value = "(unresolved)"
	}
	prefix := "    "
	if isHexColor(item.Value) {
		prefix = swatchBlock(item.Value)
	}
	return fmt.Sprintf("%s %s %s %s",
		prefix,
		styleSet.Text.Render(item.Name),
		styleSet.Muted.Render("-> "+item.Ref),
		styleSet.Accent.Render(value),
	)
}

func swatchBlock(value string) string {
	if !isHexColor(value) {
		return "    "
	}
	return styles.Swatch(value).Render("")
}

func isHexColor(value string) bool {
	if !strings.HasPrefix(value, "#") {
		return false
	}
	switch len(value) {
	case 4, 7, 9:
		return true
	}
	return false
}

package styles

import "github.com/charmbracelet/lipgloss"

// Styles contains lipgloss styles derived from theme tokens.
type Styles struct {
	Theme     Theme
	Title     lipgloss.Style
	Heading   lipgloss.Style
	Text      lipgloss.Style
	Muted     lipgloss.Style
	Accent    lipgloss.Style
	Panel     lipgloss.Style
	Border    lipgloss.Style
	Error     lipgloss.Style
	Info      lipgloss.Style
	TabActive lipgloss.Style
	TabIdle   lipgloss.Style
}

// DefaultStyles builds styles from the site theme.
func DefaultStyles() Styles {
	return BuildStyles(SiteTheme)
}

// BuildStyles converts theme tokens into lipgloss styles.
func BuildStyles(theme Theme) Styles {
	tokens := theme.Tokens

	return Styles{
		Theme:     theme,
		Title:     lipgloss.NewStyle().Foreground(lipgloss.Color(tokens.Heading)).Bold(true),
		Heading:   lipgloss.NewStyle().Foreground(lipgloss.Color(tokens.Heading)).Bold(true).Underline(true),
		Text:      lipgloss.NewStyle().Foreground(lipgloss.Color(tokens.Text)),
		Muted:     lipgloss.NewStyle().Foreground(lipgloss.Color(tokens.TextMuted)),
		Accent:    lipgloss.NewStyle().Foreground(lipgloss.Color(tokens.Accent)),
		Panel:     lipgloss.NewStyle().Foreground(lipgloss.Color(tokens.Text)).Background(lipgloss.Color(tokens.Background)).BorderStyle(lipgloss.NormalBorder()).BorderForeground(lipgloss.Color(tokens.Border)),
		Border:    lipgloss.NewStyle().Foreground(lipgloss.Color(tokens.Border)),
		Error:     lipgloss.NewStyle().Foreground(lipgloss.Color(tokens.Error)),
		Info:      lipgloss.NewStyle().Foreground(lipgloss.Color(tokens.Info)),
		TabActive: lipgloss.NewStyle().Foreground(lipgloss.Color(tokens.Background)).Background(lipgloss.Color(tokens.Accent)).Bold(true).Padding(0, 1),
		TabIdle:   lipgloss.NewStyle().Foreground(lipgloss.Color(tokens.TextMuted)).Padding(0, 1),
	}
}

// Swatch returns a block style filled with the given colour.
func Swatch(color string) lipgloss.Style {
	return lipgloss.NewStyle().Background(lipgloss.Color(color)).Width(4)
}

// Package styles maps site design tokens onto terminal styles.
package styles

import "strings"

// ThemeTokens defines the semantic color roles for the preview.
type ThemeTokens struct {
	Background string
	Surface    string
	Text       string
	TextMuted  string
	Heading    string
	Border     string
	Accent     string
	Error      string
	Info       string
}

// Theme bundles a palette with a name.
type Theme struct {
	Name   string
	Tokens ThemeTokens
}

// Themes lists available palettes by name.
var Themes = map[string]Theme{
	"site":          SiteTheme,
	"high-contrast": HighContrastTheme,
}

// ThemeByName returns the named theme, falling back to SiteTheme.
func ThemeByName(name string) Theme {
	if theme, ok := Themes[strings.ToLower(strings.TrimSpace(name))]; ok {
		return theme
	}
	return SiteTheme
}

// AliasRoles binds theme roles to the alias tokens the site components use.
var AliasRoles = map[string]string{
	"color/surface/background/default": "background",
	"color/surface/background/primary": "surface",
	"color/text/body/default":          "text",
	"color/text/disabled/default":      "text-muted",
	"color/text/heading/default":       "heading",
	"color/borders/primary/default":    "border",
	"color/text/brand/default":         "accent",
	"color/text/error/default":         "error",
	"color/text/information/default":   "info",
}

// ThemeFromAliases overlays resolved alias colours onto base. values maps
// alias paths to literal colours; unknown or empty entries are ignored.
func ThemeFromAliases(base Theme, values map[string]string) Theme {
	theme := base
	theme.Name = base.Name + "+tokens"
	for path, role := range AliasRoles {
		value := strings.TrimSpace(values[path])
		if !strings.HasPrefix(value, "#") {
			continue
		}
		switch role {
		case "background":
			theme.Tokens.Background = value
		case "surface":
			theme.Tokens.Surface = value
		case "text":
			theme.Tokens.Text = value
		case "text-muted":
			theme.Tokens.TextMuted = value
		case "heading":
			theme.Tokens.Heading = value
		case "border":
			theme.Tokens.Border = value
		case "accent":
			theme.Tokens.Accent = value
		case "error":
			theme.Tokens.Error = value
		case "info":
			theme.Tokens.Info = value
		}
	}
	return theme
}

// Package components provides reusable TUI components.
package components

import (
	"fmt"
	"strings"

	"github.com/grounds-studio/grounds/internal/tui/styles"
)

// EmptyState represents an empty state message with optional suggestions.
type EmptyState struct {
	Title       string
	Subtitle    string
	Suggestions []Suggestion
}

// Suggestion represents a suggested command with description.
type Suggestion struct {
	Command     string
	Description string
}

// Render renders the empty state with the given styles.
func (e EmptyState) Render(styleSet styles.Styles) string {
	lines := []string{styleSet.Muted.Render(e.Title)}
	if e.Subtitle != "" {
		lines = append(lines, styleSet.Muted.Render(e.Subtitle))
	}

	if len(e.Suggestions) > 0 {
		lines = append(lines, "", styleSet.Text.Render("Get started:"))
		for _, s := range e.Suggestions {
			cmdLine := fmt.Sprintf("  %s", styleSet.Accent.Render(s.Command))
			if s.Description != "" {
				cmdLine += styleSet.Muted.Render(fmt.Sprintf("  # %s", s.Description))
			}
			lines = append(lines, cmdLine)
		}
	}

	return strings.Join(lines, "\n")
}

// RenderCompact renders a single-line empty state.
func (e EmptyState) RenderCompact(styleSet styles.Styles) string {
	line := e.Title
	if len(e.Suggestions) > 0 {
		line += fmt.Sprintf(" Try: %s", e.Suggestions[0].Command)
	}
	return styleSet.Muted.Render(line)
}

// EmptyPalette is shown when the Base layer has no colour tokens.
func EmptyPalette() EmptyState {
	return EmptyState{
		Title:    "No palette colours",
		Subtitle: "Base tokens under color/ appear here.",
		Suggestions: []Suggestion{
			{Command: "grounds tokens check", Description: "Validate the exported token files"},
		},
	}
}

// EmptyAliases is shown when the Alias layer is empty.
func EmptyAliases() EmptyState {
	return EmptyState{
		Title:    "No alias tokens",
		Subtitle: "Export the Aliases collection from Figma.",
	}
}

// EmptyTypography is shown when the Typography layer is empty.
func EmptyTypography() EmptyState {
	return EmptyState{
		Title:    "No typography tokens",
		Subtitle: "Export the Typography collection from Figma.",
	}
}

// NoTokens is shown when no token files could be loaded.
func NoTokens() EmptyState {
	return EmptyState{
		Title:    "No tokens yet",
		Subtitle: "Place base, aliases and typography exports under design-system/tokens.",
		Suggestions: []Suggestion{
			{Command: "grounds tokens sync", Description: "Compile the exports into tokens.css"},
		},
	}
}

package styles

// HighContrastTheme favors visibility on low-contrast terminals.
var HighContrastTheme = Theme{
	Name: "high-contrast",
	Tokens: ThemeTokens{
		Background: "#000000",
		Surface:    "#0A0A0A",
		Text:       "#FFFFFF",
		TextMuted:  "#C0C0C0",
		Heading:    "#FFFFFF",
		Border:     "#FFFFFF",
		Accent:     "#00A2FF",
		Error:      "#FF4040",
		Info:       "#66CCFF",
	},
}

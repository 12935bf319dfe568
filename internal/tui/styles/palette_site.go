package styles

// SiteTheme mirrors the marketing site's default palette.
var SiteTheme = Theme{
	Name: "site",
	Tokens: ThemeTokens{
		Background: "#FAF7F2",
		Surface:    "#2F5233",
		Text:       "#1B1B1B",
		TextMuted:  "#9A9A9A",
		Heading:    "#1B1B1B",
		Border:     "#E3EDE4",
		Accent:     "#2F5233",
		Error:      "#D93025",
		Info:       "#1A73E8",
	},
}

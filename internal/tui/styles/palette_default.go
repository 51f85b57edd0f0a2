package styles

// DefaultTheme is the green brand palette on a dark terminal.
var DefaultTheme = Theme{
	Name: "default",
	Tokens: ThemeTokens{
		Background: "#07110B",
		Panel:      "#0E1A13",
		Text:       "#E8F3EC",
		TextMuted:  "#8AA596",
		Border:     "#1F3A2B",
		Accent:     "#22C55E",
		Focus:      "#4ADE80",
		Highlight:  "#15803D",
		Success:    "#16A34A",
		Warning:    "#EAB308",
		Error:      "#EF4444",
		Info:       "#34D399",
	},
}

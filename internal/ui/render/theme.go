package render

import "github.com/kk-code-lab/navipage/internal/ui/terminal"

// ColorTheme defines application colors.
type ColorTheme struct {
	StatusFg terminal.Color
	StatusBg terminal.Color
	PromptFg terminal.Color
	NoticeFg terminal.Color
}

// GetColorTheme returns the default color scheme.
func GetColorTheme() ColorTheme {
	return ColorTheme{
		StatusFg: terminal.Default,
		StatusBg: terminal.Default,
		PromptFg: terminal.Yellow,
		NoticeFg: terminal.Yellow,
	}
}

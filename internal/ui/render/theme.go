package render

import (
	"github.com/gdamore/tcell/v2"
	"github.com/kk-code-lab/rless/internal/config"
)

// ColorTheme defines the styles used on screen.
type ColorTheme struct {
	Text    tcell.Style
	Match   tcell.Style
	Status  tcell.Style
	Control tcell.Style
}

// GetColorTheme returns the default color scheme.
func GetColorTheme() ColorTheme {
	return ThemeFromConfig(config.Default().Colors)
}

// ThemeFromConfig builds a theme from configured color names.
func ThemeFromConfig(colors config.ColorConfig) ColorTheme {
	base := tcell.StyleDefault
	return ColorTheme{
		Text:    base,
		Match:   colors.Match.Style(base),
		Status:  colors.Status.Style(base).Reverse(true),
		Control: colors.Control.Style(base),
	}
}

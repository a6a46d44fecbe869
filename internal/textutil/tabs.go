package textutil

import (
	"github.com/mattn/go-runewidth"
)

const DefaultTabWidth = 4

// NextTabStop returns the column following a tab typed at column.
func NextTabStop(column, tabWidth int) int {
	if tabWidth <= 0 {
		tabWidth = DefaultTabWidth
	}
	return column + tabWidth - (column % tabWidth)
}

// RuneWidth reports the terminal cell width of ru, never less than one column.
func RuneWidth(ru rune) int {
	w := runewidth.RuneWidth(ru)
	if w <= 0 {
		return 1
	}
	return w
}

// DisplayWidth reports the printable width of text accounting for wide runes.
func DisplayWidth(text string) int {
	width := 0
	for _, ru := range text {
		width += RuneWidth(ru)
	}
	return width
}

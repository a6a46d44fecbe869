package nav

import (
	"fmt"
	"unicode/utf8"

	textutil "github.com/kk-code-lab/rless/internal/textutil"
)

// Geometry is the size of the text area in character cells. It is passed into every
// navigation call because the terminal may be resized between calls.
type Geometry struct {
	Width  int
	Height int
}

// PageSize is the lookaround read size: enough bytes to cover a full screen of wrapped
// text even when every character takes the longest UTF-8 encoding.
func (g Geometry) PageSize() int {
	return g.Width * g.Height * utf8.UTFMax
}

// HalfHeight is the distance of a half-screen scroll.
func (g Geometry) HalfHeight() int {
	if g.Height < 2 {
		return 1
	}
	return g.Height / 2
}

func (g Geometry) validate() (Geometry, error) {
	if g.Width < 1 {
		return g, fmt.Errorf("geometry %dx%d: %w", g.Width, g.Height, textutil.ErrInvalidWidth)
	}
	if g.Height < 1 {
		g.Height = 1
	}
	return g, nil
}

package render

import (
	"strings"
	"sync"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
)

type widthCache struct {
	ascii [128]int // width+1, zero means not cached
	mu    sync.RWMutex
	wide  sync.Map
}

func (c *widthCache) runeWidth(ru rune) int {
	if ru >= 0 && ru < 128 {
		c.mu.RLock()
		width := c.ascii[ru]
		c.mu.RUnlock()
		if width != 0 {
			return width - 1
		}
		actual := max(runewidth.RuneWidth(ru), 0)
		c.mu.Lock()
		c.ascii[ru] = actual + 1
		c.mu.Unlock()
		return actual
	}

	if cached, ok := c.wide.Load(ru); ok {
		return cached.(int)
	}
	width := max(runewidth.RuneWidth(ru), 0)
	c.wide.Store(ru, width)
	return width
}

func (r *Renderer) measureTextWidth(text string) int {
	width := 0
	for _, ru := range text {
		width += r.widths.runeWidth(ru)
	}
	return width
}

func (r *Renderer) truncateTextToWidth(text string, maxWidth int) string {
	if maxWidth <= 0 || text == "" {
		return ""
	}
	if r.measureTextWidth(text) <= maxWidth {
		return text
	}

	const ellipsis = "…"
	if maxWidth <= 1 {
		return ellipsis
	}

	available := maxWidth - 1
	var builder strings.Builder
	currentWidth := 0
	for _, ru := range text {
		w := r.widths.runeWidth(ru)
		if currentWidth+w > available {
			break
		}
		builder.WriteRune(ru)
		currentWidth += w
	}
	builder.WriteString(ellipsis)
	return builder.String()
}

// drawTextLine draws text from startX, keeping combining runes with their base, and
// returns the column after the last cell written.
func (r *Renderer) drawTextLine(startX, y, maxWidth int, text string, style tcell.Style) int {
	x := startX
	runes := []rune(text)
	i := 0

	for i < len(runes) {
		if x-startX >= maxWidth {
			break
		}

		mainc := runes[i]
		i++

		var combc []rune
		for i < len(runes) && r.widths.runeWidth(runes[i]) == 0 {
			combc = append(combc, runes[i])
			i++
		}

		w := max(r.widths.runeWidth(mainc), 1)
		if x-startX+w > maxWidth {
			break
		}
		r.screen.SetContent(x, y, mainc, combc, style)
		x += w
	}

	return x
}

func (r *Renderer) fillRow(y, fromX, toX int, style tcell.Style) {
	for x := fromX; x < toX; x++ {
		r.screen.SetContent(x, y, ' ', nil, style)
	}
}

package render

import (
	"bytes"
	"fmt"
	"unicode/utf8"

	"github.com/gdamore/tcell/v2"
	searchpkg "github.com/kk-code-lab/rless/internal/search"
	textutil "github.com/kk-code-lab/rless/internal/textutil"
	"github.com/rivo/uniseg"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// View is everything needed to draw one frame.
type View struct {
	Offset int64  // input offset of Page[0]
	Page   []byte // bytes from the top of the screen onwards
	Spans  []searchpkg.Span
	Status Status
	Help   bool
}

// Status feeds the bottom row.
type Status struct {
	Prompt     string // command line text, ":" or "/query"
	Message    string // transient message, shown instead of the prompt
	Name       string
	Size       int64
	MatchIndex int // 1-based index of the match at the top of the page, 0 if none
	MatchCount int
	Binary     bool
}

// Renderer handles all UI rendering
type Renderer struct {
	screen   tcell.Screen
	theme    ColorTheme
	tabWidth int
	widths   widthCache
}

// NewRenderer creates a new renderer
func NewRenderer(screen tcell.Screen, theme ColorTheme, tabWidth int) *Renderer {
	if tabWidth < 1 {
		tabWidth = textutil.DefaultTabWidth
	}
	return &Renderer{
		screen:   screen,
		theme:    theme,
		tabWidth: tabWidth,
	}
}

// Render draws the page, the status line and, when requested, the help overlay.
func (r *Renderer) Render(view View) {
	r.screen.Clear()
	w, h := r.screen.Size()
	if w < 1 || h < 1 {
		r.screen.Show()
		return
	}

	if view.Help {
		r.drawHelpOverlay(w, h)
		r.screen.Show()
		return
	}

	consumed := r.drawPage(view, w, h-1)
	r.drawStatusLine(view.Status, view.Offset+int64(consumed), w, h)
	r.screen.Show()
}

// drawPage lays the page out in display lines of at most width bytes and returns the
// number of page bytes that made it onto the screen.
func (r *Renderer) drawPage(view View, width, height int) int {
	if height < 1 {
		return 0
	}
	lines, err := textutil.DisplayLines(view.Page, width)
	if err != nil {
		return 0
	}

	spans := view.Spans
	consumed := 0
	for y := 0; y < height; y++ {
		if y >= len(lines) {
			r.screen.SetContent(0, y, '~', nil, r.theme.Control)
			continue
		}
		line := lines[y]
		spans = r.drawLine(y, width, view, line, spans)
		consumed = line.End
	}
	return consumed
}

// drawLine draws one display line. spans is the remaining highlight list; the tail that
// may still apply to later lines is returned.
func (r *Renderer) drawLine(y, width int, view View, line textutil.LineSpan, spans []searchpkg.Span) []searchpkg.Span {
	start := line.Start
	segment := view.Page[line.Start:line.End]
	if view.Offset == 0 && start == 0 && bytes.HasPrefix(segment, utf8BOM) {
		segment = segment[len(utf8BOM):]
		start += len(utf8BOM)
	}
	segment = bytes.TrimSuffix(segment, []byte{'\n'})
	segment = bytes.TrimSuffix(segment, []byte{'\r'})

	x := 0
	pos := start
	state := -1
	for len(segment) > 0 && x < width {
		cluster, rest, boundaries, next := uniseg.Step(segment, state)
		end := pos + len(cluster)

		for len(spans) > 0 && spans[0].End <= pos {
			spans = spans[1:]
		}
		style := r.theme.Text
		if len(spans) > 0 && spans[0].Start < end {
			style = r.theme.Match
		}

		x = r.drawCluster(x, y, width, cluster, boundaries>>uniseg.ShiftWidth, style)

		segment, state, pos = rest, next, end
	}
	return spans
}

func (r *Renderer) drawCluster(x, y, width int, cluster []byte, clusterWidth int, style tcell.Style) int {
	ru, size := utf8.DecodeRune(cluster)
	if ru == utf8.RuneError && size <= 1 {
		return r.drawTextLine(x, y, width-x, fmt.Sprintf("<%02X>", cluster[0]), r.controlStyle(style))
	}
	if ru == '\t' {
		stop := min(textutil.NextTabStop(x, r.tabWidth), width)
		r.fillRow(y, x, stop, style)
		return stop
	}
	if glyph, ok := textutil.RuneGlyph(ru); ok {
		return r.drawTextLine(x, y, width-x, glyph, r.controlStyle(style))
	}

	runes := []rune(string(cluster))
	w := max(clusterWidth, 1)
	if x+w > width {
		return width
	}
	r.screen.SetContent(x, y, runes[0], runes[1:], style)
	return x + w
}

// controlStyle keeps match highlighting on substituted glyphs.
func (r *Renderer) controlStyle(style tcell.Style) tcell.Style {
	if style == r.theme.Match {
		return style
	}
	return r.theme.Control
}

func (r *Renderer) drawStatusLine(status Status, pageEnd int64, w, h int) {
	y := h - 1
	style := r.theme.Status
	r.fillRow(y, 0, w, style)

	left := status.Prompt
	if status.Message != "" {
		left = status.Message
	}
	left = textutil.SanitizeTerminalText(left)
	right := formatStatusRight(status, pageEnd)

	leftWidth := r.measureTextWidth(left)
	if leftWidth >= w {
		r.drawTextLine(0, y, w, r.truncateTextToWidth(left, w), style)
		return
	}
	r.drawTextLine(0, y, w, left, style)

	available := w - leftWidth - 1
	if available <= 0 {
		return
	}
	right = r.truncateTextToWidth(right, available)
	r.drawTextLine(w-r.measureTextWidth(right), y, available, right, style)
}

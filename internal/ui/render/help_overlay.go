package render

import (
	"fmt"
	"strings"

	textutil "github.com/kk-code-lab/rless/internal/textutil"
)

type helpOverlayEntry struct {
	keys string
	desc string
}

type helpOverlaySection struct {
	title   string
	entries []helpOverlayEntry
}

var helpOverlaySections = []helpOverlaySection{
	{
		title: "Moving",
		entries: []helpOverlayEntry{
			{keys: "j / ↓", desc: "Forward one line"},
			{keys: "k / ↑", desc: "Backward one line"},
			{keys: "Space f ^F PgDn", desc: "Forward one screen"},
			{keys: "b ^B PgUp", desc: "Backward one screen"},
			{keys: "d ^D", desc: "Forward half a screen"},
			{keys: "u ^U", desc: "Backward half a screen"},
		},
	},
	{
		title: "Jumping",
		entries: []helpOverlayEntry{
			{keys: "g / Home", desc: "Beginning of input"},
			{keys: "G / End", desc: "End of input"},
			{keys: "<N>p", desc: "N percent into the input"},
		},
	},
	{
		title: "Searching",
		entries: []helpOverlayEntry{
			{keys: "/pattern ↵", desc: "Search forward for a regular expression"},
			{keys: "/ ↵", desc: "Repeat the last search"},
			{keys: "n / N", desc: "Next / previous match"},
			{keys: "Esc ^C", desc: "Cancel the search prompt"},
		},
	},
	{
		title: "Other",
		entries: []helpOverlayEntry{
			{keys: "v", desc: "Edit the file ($VISUAL / $EDITOR)"},
			{keys: "^Z", desc: "Suspend"},
			{keys: "h ?", desc: "This help"},
			{keys: "q ^C", desc: "Quit"},
		},
	},
}

func buildHelpOverlayLines() []string {
	lines := make([]string, 0, 32)
	for i, section := range helpOverlaySections {
		if i > 0 {
			lines = append(lines, "")
		}
		lines = append(lines, section.title)
		for _, entry := range section.entries {
			lines = append(lines, formatHelpOverlayEntry(entry))
		}
	}
	return lines
}

func formatHelpOverlayEntry(entry helpOverlayEntry) string {
	key := textutil.SanitizeTerminalText(entry.keys)
	desc := textutil.SanitizeTerminalText(entry.desc)
	pad := max(16-textutil.DisplayWidth(key), 1)
	return fmt.Sprintf("  %s%s%s", key, strings.Repeat(" ", pad), desc)
}

func (r *Renderer) drawHelpOverlay(w, h int) {
	header := r.theme.Status.Bold(true)
	title := " Help "
	r.fillRow(0, 0, w, header)
	titleStart := 0
	if titleWidth := r.measureTextWidth(title); w > titleWidth {
		titleStart = (w - titleWidth) / 2
	}
	r.drawTextLine(titleStart, 0, w-titleStart, title, header)

	row := 2
	for _, line := range buildHelpOverlayLines() {
		if row >= h-1 {
			break
		}
		text := r.truncateTextToWidth(strings.TrimRight(line, " "), w-2)
		r.drawTextLine(2, row, w-2, text, r.theme.Text)
		row++
	}

	if h > 1 {
		footer := r.truncateTextToWidth("press any key to close", w)
		r.fillRow(h-1, 0, w, header)
		r.drawTextLine(0, h-1, w, footer, header)
	}
}

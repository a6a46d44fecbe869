package textutil

import "strings"

var formattingRuneLabels = map[rune]string{
	0x061C: "⟪ALM⟫",
	0x200B: "⟪ZWSP⟫",
	0x200C: "⟪ZWNJ⟫",
	0x200D: "⟪ZWJ⟫",
	0x200E: "⟪LRM⟫",
	0x200F: "⟪RLM⟫",
	0x202A: "⟪LRE⟫",
	0x202B: "⟪RLE⟫",
	0x202C: "⟪PDF⟫",
	0x202D: "⟪LRO⟫",
	0x202E: "⟪RLO⟫",
	0x2028: "⟪LSEP⟫",
	0x2029: "⟪PSEP⟫",
	0x00AD: "⟪SHY⟫",
	0x2066: "⟪LRI⟫",
	0x2067: "⟪RLI⟫",
	0x2068: "⟪FSI⟫",
	0x2069: "⟪PDI⟫",
}

// SanitizeTerminalText replaces control characters so user-controlled text (file names,
// search patterns) cannot inject terminal escape sequences into the status line.
func SanitizeTerminalText(text string) string {
	for _, r := range text {
		if r == '\t' || r == '\n' || r == '\r' || isControlRune(r) || isFormattingRune(r) {
			return sanitize(text)
		}
	}
	return text
}

func sanitize(text string) string {
	var b strings.Builder
	for _, r := range text {
		switch {
		case isFormattingRune(r):
			b.WriteString(formattingRuneLabels[r])
		case r == '\t', r == '\n', r == '\r':
			b.WriteByte(' ')
		case isControlRune(r):
			b.WriteByte('?')
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

// RuneGlyph returns the replacement text used when r must not reach the terminal as-is:
// caret notation for C0 controls and DEL, a visible label for bidi and zero-width runes.
// Tabs and newlines are layout and are left to the caller.
func RuneGlyph(r rune) (string, bool) {
	if r == '\t' || r == '\n' {
		return "", false
	}
	if label, ok := formattingRuneLabels[r]; ok {
		return label, true
	}
	switch {
	case r == 0x7f:
		return "^?", true
	case r >= 0 && r < 0x20:
		return "^" + string(rune(r+'@')), true
	case r >= 0x80 && r < 0xa0:
		return "?", true
	}
	return "", false
}

func isControlRune(r rune) bool {
	return (r >= 0 && r < 0x20) || r == 0x7f
}

func isFormattingRune(r rune) bool {
	_, ok := formattingRuneLabels[r]
	return ok
}

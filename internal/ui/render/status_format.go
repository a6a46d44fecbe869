package render

import (
	"fmt"
	"strings"

	textutil "github.com/kk-code-lab/rless/internal/textutil"
)

// formatStatusRight builds the right-hand side of the status line: match position, input
// name, size and how far through the input the bottom of the page is.
func formatStatusRight(status Status, pageEnd int64) string {
	var parts []string
	if status.MatchCount > 0 {
		if status.MatchIndex > 0 {
			parts = append(parts, fmt.Sprintf("match %d/%d", status.MatchIndex, status.MatchCount))
		} else {
			parts = append(parts, fmt.Sprintf("%d matches", status.MatchCount))
		}
	}
	if status.Binary {
		parts = append(parts, "binary?")
	}
	if name := textutil.SanitizeTerminalText(status.Name); name != "" {
		parts = append(parts, name)
	}
	parts = append(parts, formatCompactNumber(status.Size)+"B")
	parts = append(parts, formatPosition(pageEnd, status.Size))
	return strings.Join(parts, " · ")
}

func formatPosition(pageEnd, size int64) string {
	switch {
	case size <= 0:
		return "empty"
	case pageEnd >= size:
		return "END"
	default:
		return fmt.Sprintf("%d%%", pageEnd*100/size)
	}
}

func formatCompactNumber(n int64) string {
	switch {
	case n >= 1_000_000_000:
		return trimTrailingZero(fmt.Sprintf("%.1fG", float64(n)/1_000_000_000.0))
	case n >= 1_000_000:
		return trimTrailingZero(fmt.Sprintf("%.1fM", float64(n)/1_000_000.0))
	case n >= 1_000:
		return trimTrailingZero(fmt.Sprintf("%.1fk", float64(n)/1_000.0))
	default:
		return fmt.Sprintf("%d", n)
	}
}

func trimTrailingZero(s string) string {
	unit := s[len(s)-1:]
	num := strings.TrimSuffix(strings.TrimSuffix(s[:len(s)-1], "0"), ".")
	return num + unit
}

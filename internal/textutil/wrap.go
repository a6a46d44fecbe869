package textutil

import (
	"bytes"
	"errors"
	"unicode/utf8"
)

// ErrInvalidWidth is returned when wrapping is requested for a width below one column.
var ErrInvalidWidth = errors.New("display width must be at least 1")

// LineSpan is the byte range [Start, End) of one display line inside a buffer.
type LineSpan struct {
	Start int
	End   int
}

// ForwardOffset returns the offset in buf reached after consuming n display lines of at
// most width bytes. It returns len(buf) when buf runs out first.
func ForwardOffset(n int, buf []byte, width int) (int, error) {
	if width < 1 {
		return 0, ErrInvalidWidth
	}
	pos := 0
	for i := 0; i < n && pos < len(buf); i++ {
		pos = displayLineEnd(buf, pos, width)
	}
	return pos, nil
}

// BackwardOffset returns how many bytes to retreat from the end of buf to reach the start
// of the n-th display line counted backwards. The end of buf is itself the start of the
// first of those lines, so BackwardOffset(1, ...) is always 0. When buf holds fewer lines
// the whole buffer length is returned.
func BackwardOffset(n int, buf []byte, width int) (int, error) {
	if width < 1 {
		return 0, ErrInvalidWidth
	}
	if n <= 1 || len(buf) == 0 {
		return 0, nil
	}

	remaining := n - 1
	segEnd := len(buf)
	for segEnd > 0 {
		segStart := bytes.LastIndexByte(buf[:segEnd-1], '\n') + 1
		starts := chunkStarts(buf[segStart:segEnd], width)
		if remaining <= len(starts) {
			return len(buf) - (segStart + starts[len(starts)-remaining]), nil
		}
		remaining -= len(starts)
		segEnd = segStart
	}
	return len(buf), nil
}

// DisplayLines splits buf into display lines using the same rules as ForwardOffset.
func DisplayLines(buf []byte, width int) ([]LineSpan, error) {
	if width < 1 {
		return nil, ErrInvalidWidth
	}
	var spans []LineSpan
	for pos := 0; pos < len(buf); {
		end := displayLineEnd(buf, pos, width)
		spans = append(spans, LineSpan{Start: pos, End: end})
		pos = end
	}
	return spans, nil
}

// displayLineEnd returns the end of the display line that starts at start. A newline
// always belongs to the line it terminates, even when that line already holds width bytes.
// Chunks never split an encoded rune; a rune wider than width gets a line of its own.
func displayLineEnd(buf []byte, start, width int) int {
	i := start
	for i < len(buf) {
		if buf[i] == '\n' {
			return i + 1
		}
		_, size := utf8.DecodeRune(buf[i:])
		if i > start && i+size-start > width {
			return i
		}
		i += size
	}
	return i
}

func chunkStarts(segment []byte, width int) []int {
	starts := []int{}
	for pos := 0; pos < len(segment); {
		starts = append(starts, pos)
		pos = displayLineEnd(segment, pos, width)
	}
	return starts
}

package fs

import (
	"errors"
	"fmt"
	"io"
	"unicode/utf8"
)

// ErrBoundaryNotFound reports that no UTF-8 code point starts within the lookahead window
// following a seek target, which means the input is not valid UTF-8 around that offset.
var ErrBoundaryNotFound = errors.New("no utf-8 code point boundary found")

// boundaryLookahead covers the longest UTF-8 encoding with margin.
const boundaryLookahead = 8

// Guard decorates a seekable reader so that every seek lands on the start of a UTF-8
// code point. Reads pass through untouched. Offset 0 is always considered a boundary.
type Guard struct {
	inner  io.ReadSeeker
	window [boundaryLookahead]byte
}

// NewGuard wraps inner.
func NewGuard(inner io.ReadSeeker) *Guard {
	return &Guard{inner: inner}
}

func (g *Guard) Read(p []byte) (int, error) {
	return g.inner.Read(p)
}

// Seek moves to the requested position and then forward to the next code point start.
// If none exists within the lookahead the previous position is restored and
// ErrBoundaryNotFound is returned. Reaching the end of the input inside the lookahead
// counts as a boundary.
func (g *Guard) Seek(offset int64, whence int) (int64, error) {
	prev, err := g.inner.Seek(0, io.SeekCurrent)
	if err != nil {
		return 0, err
	}
	pos, err := g.inner.Seek(offset, whence)
	if err != nil {
		return prev, err
	}
	if pos == 0 {
		return 0, nil
	}

	n, err := io.ReadFull(g.inner, g.window[:])
	if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, io.ErrUnexpectedEOF) {
		g.restore(prev)
		return prev, err
	}

	skip, ok := firstBoundary(g.window[:n], n < boundaryLookahead)
	if !ok {
		g.restore(prev)
		return prev, fmt.Errorf("seek to %d: %w", pos, ErrBoundaryNotFound)
	}
	return g.inner.Seek(pos+int64(skip), io.SeekStart)
}

// Position reports the current offset of the wrapped reader without any correction.
func (g *Guard) Position() (int64, error) {
	return g.inner.Seek(0, io.SeekCurrent)
}

func (g *Guard) restore(pos int64) {
	_, _ = g.inner.Seek(pos, io.SeekStart)
}

func firstBoundary(window []byte, atEOF bool) (int, bool) {
	for i, b := range window {
		if utf8.RuneStart(b) {
			return i, true
		}
	}
	if atEOF {
		return len(window), true
	}
	return 0, false
}

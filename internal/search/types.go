package search

import (
	"errors"
	"fmt"
)

// ErrInvalidPattern reports a search expression that does not compile.
var ErrInvalidPattern = errors.New("invalid search pattern")

// Match is one hit in the input, in bytes.
type Match struct {
	Offset int64
	Length int64
}

// End is the offset just past the match.
func (m Match) End() int64 {
	return m.Offset + m.Length
}

// Options tunes how patterns are compiled.
type Options struct {
	// SmartCase makes patterns without upper-case letters case-insensitive.
	SmartCase bool
}

// PatternError carries the compiler diagnostic for a rejected pattern. It matches
// ErrInvalidPattern with errors.Is.
type PatternError struct {
	Pattern string
	Err     error
}

func (e *PatternError) Error() string {
	return fmt.Sprintf("invalid pattern %q: %v", e.Pattern, e.Err)
}

func (e *PatternError) Unwrap() []error {
	return []error{ErrInvalidPattern, e.Err}
}

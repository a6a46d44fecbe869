package search

import (
	"regexp"
	"unicode"
)

// Compile turns a user pattern into a regular expression.
func Compile(pattern string, opts Options) (*regexp.Regexp, error) {
	expr := pattern
	if opts.SmartCase && !patternHasUppercase(pattern) {
		expr = "(?i)" + pattern
	}
	re, err := regexp.Compile(expr)
	if err != nil {
		return nil, &PatternError{Pattern: pattern, Err: err}
	}
	return re, nil
}

func patternHasUppercase(pattern string) bool {
	for _, r := range pattern {
		if unicode.IsUpper(r) {
			return true
		}
	}
	return false
}

package search

import (
	"bufio"
	"bytes"
	"errors"
	"io"
	"regexp"
)

const scanBufferSize = 64 * 1024

// Find compiles pattern and scans all of src for it. See Scan.
func Find(src io.ReadSeeker, pattern string, opts Options) ([]Match, error) {
	re, err := Compile(pattern, opts)
	if err != nil {
		return nil, err
	}
	return Scan(src, re)
}

// Scan reports every non-empty match of re in src, in ascending offset order. Matching is
// line oriented, so a match never spans a newline. The whole input is scanned regardless
// of the current position, and that position is restored before returning, on success and
// on failure alike.
func Scan(src io.ReadSeeker, re *regexp.Regexp) (matches []Match, err error) {
	saved, err := src.Seek(0, io.SeekCurrent)
	if err != nil {
		return nil, err
	}
	defer func() {
		if _, serr := src.Seek(saved, io.SeekStart); serr != nil && err == nil {
			matches, err = nil, serr
		}
	}()

	if _, err := src.Seek(0, io.SeekStart); err != nil {
		return nil, err
	}

	reader := bufio.NewReaderSize(src, scanBufferSize)
	var offset int64
	for {
		line, rerr := reader.ReadBytes('\n')
		if rerr != nil && !errors.Is(rerr, io.EOF) {
			return nil, rerr
		}
		content := bytes.TrimSuffix(line, []byte{'\n'})
		for _, loc := range re.FindAllIndex(content, -1) {
			if loc[1] > loc[0] {
				matches = append(matches, Match{
					Offset: offset + int64(loc[0]),
					Length: int64(loc[1] - loc[0]),
				})
			}
		}
		offset += int64(len(line))
		if rerr != nil {
			return matches, nil
		}
	}
}

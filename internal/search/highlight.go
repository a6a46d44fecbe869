package search

import "sort"

// Span is a byte range [Start, End) relative to the start of a page.
type Span struct {
	Start int
	End   int
}

// PageSpans clips matches to the page [pageStart, pageStart+pageLen) and returns the
// merged, page-relative ranges to highlight. matches must be in offset order.
func PageSpans(matches []Match, pageStart int64, pageLen int) []Span {
	if len(matches) == 0 || pageLen <= 0 {
		return nil
	}
	pageEnd := pageStart + int64(pageLen)
	first := sort.Search(len(matches), func(i int) bool {
		return matches[i].End() > pageStart
	})

	var spans []Span
	for _, m := range matches[first:] {
		if m.Offset >= pageEnd {
			break
		}
		start := max(m.Offset, pageStart)
		end := min(m.End(), pageEnd)
		spans = append(spans, Span{Start: int(start - pageStart), End: int(end - pageStart)})
	}
	return MergeSpans(spans)
}

// MergeSpans joins overlapping or touching spans. spans must be sorted by Start.
func MergeSpans(spans []Span) []Span {
	if len(spans) == 0 {
		return nil
	}
	merged := make([]Span, 0, len(spans))
	current := spans[0]
	for i := 1; i < len(spans); i++ {
		next := spans[i]
		if next.Start <= current.End {
			if next.End > current.End {
				current.End = next.End
			}
			continue
		}
		merged = append(merged, current)
		current = next
	}
	merged = append(merged, current)
	return merged
}

// NextMatch returns the index of the first match at or after offset.
func NextMatch(matches []Match, offset int64) (int, bool) {
	idx := sort.Search(len(matches), func(i int) bool {
		return matches[i].Offset >= offset
	})
	return idx, idx < len(matches)
}

// PrevMatch returns the index of the last match before offset.
func PrevMatch(matches []Match, offset int64) (int, bool) {
	idx := sort.Search(len(matches), func(i int) bool {
		return matches[i].Offset >= offset
	})
	return idx - 1, idx > 0
}

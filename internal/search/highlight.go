package search

import "strings"

// Highlight rewrites text with every span passed through mark. Spans must be
// sorted and non-overlapping, as Filter returns them; out-of-range spans are ignored.
func Highlight(text string, spans []Span, mark func(string) string) string {
	if len(spans) == 0 {
		return text
	}

	var b strings.Builder
	pos := 0
	for _, sp := range spans {
		if sp.Start < pos || sp.End > len(text) || sp.Start >= sp.End {
			continue
		}
		b.WriteString(text[pos:sp.Start])
		b.WriteString(mark(text[sp.Start:sp.End]))
		pos = sp.End
	}
	b.WriteString(text[pos:])
	return b.String()
}

// Bracket is a plain-text marker used when styling is unavailable.
func Bracket(s string) string {
	return "[" + s + "]"
}

// Package search filters ledger records by a user-entered term and locates the
// matched text for highlighting.
package search

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/Veraticus/pocket/internal/common"
	"github.com/Veraticus/pocket/internal/model"
)

// Mode controls how a search term is interpreted.
type Mode int

const (
	// ModeLiteral matches the term as plain text.
	ModeLiteral Mode = iota
	// ModePattern treats the term as a regular expression.
	ModePattern
)

// ParseMode converts a configured mode name.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "literal":
		return ModeLiteral, nil
	case "pattern", "regex":
		return ModePattern, nil
	default:
		return ModeLiteral, fmt.Errorf("%w: unknown search mode %q", common.ErrInvalidConfig, s)
	}
}

func (m Mode) String() string {
	if m == ModePattern {
		return "pattern"
	}
	return "literal"
}

// Query describes one search request.
type Query struct {
	Term          string
	Mode          Mode
	CaseSensitive bool
}

// Span is a matched byte range [Start, End) within a field.
type Span struct {
	Start int
	End   int
}

// Match is a record kept by Filter together with the spans to highlight.
type Match struct {
	Description []Span
	Category    []Span
	Record      model.Record
}

// Filter returns the records matching q, in their original order. An empty
// term keeps every record. A pattern that does not compile also keeps every
// record, so a half-typed expression never empties the list.
func Filter(records []model.Record, q Query) []Match {
	if q.Term == "" {
		return unfiltered(records)
	}

	re, err := common.CompileSearch(q.Term, q.CaseSensitive, q.Mode == ModeLiteral)
	if err != nil {
		slog.Debug("search pattern did not compile, showing all records", "term", q.Term, "error", err)
		return unfiltered(records)
	}

	matches := make([]Match, 0, len(records))
	for _, r := range records {
		amount := r.Amount.String()
		if !re.MatchString(r.Description) && !re.MatchString(r.Category) &&
			!re.MatchString(amount) && !re.MatchString(r.Date) {
			continue
		}
		matches = append(matches, Match{
			Record:      r,
			Description: spans(re.FindAllStringIndex(r.Description, -1)),
			Category:    spans(re.FindAllStringIndex(r.Category, -1)),
		})
	}
	return matches
}

func unfiltered(records []model.Record) []Match {
	matches := make([]Match, len(records))
	for i, r := range records {
		matches[i] = Match{Record: r}
	}
	return matches
}

// spans drops empty matches, which patterns like "a*" produce between characters.
func spans(locs [][]int) []Span {
	var out []Span
	for _, loc := range locs {
		if loc[1] > loc[0] {
			out = append(out, Span{Start: loc[0], End: loc[1]})
		}
	}
	return out
}

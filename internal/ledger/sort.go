package ledger

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/Veraticus/pocket/internal/model"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// SortKey selects the order applied by SortBy.
type SortKey string

// Supported sort keys.
const (
	SortDate        SortKey = "date"        // most recent first
	SortDescription SortKey = "description" // A to Z
	SortAmount      SortKey = "amount"      // largest first
)

// ErrUnknownSortKey is returned for sort keys other than date, description, and amount.
var ErrUnknownSortKey = errors.New("unknown sort key")

// SortKeys lists the supported keys.
var SortKeys = []SortKey{SortDate, SortDescription, SortAmount}

// ParseSortKey converts user input into a SortKey.
func ParseSortKey(s string) (SortKey, error) {
	key := SortKey(strings.ToLower(strings.TrimSpace(s)))
	for _, k := range SortKeys {
		if k == key {
			return k, nil
		}
	}
	return "", fmt.Errorf("%w: %q (want date, description, or amount)", ErrUnknownSortKey, s)
}

// Collator compares descriptions using language-aware ordering.
type Collator struct {
	c *collate.Collator
}

// NewCollator builds a collator for a BCP 47 language tag. Unknown or empty
// tags fall back to English ordering.
func NewCollator(lang string) *Collator {
	tag, err := language.Parse(lang)
	if err != nil || lang == "" {
		tag = language.English
	}
	return &Collator{c: collate.New(tag, collate.IgnoreCase)}
}

// Compare returns -1, 0, or 1.
func (c *Collator) Compare(a, b string) int {
	return c.c.CompareString(a, b)
}

// SortBy reorders the whole sequence in place. Equal elements keep their
// relative order.
func (s *Store) SortBy(key SortKey) error {
	var less func(a, b model.Record) bool

	switch key {
	case SortDate:
		less = func(a, b model.Record) bool { return a.Date > b.Date }
	case SortDescription:
		less = func(a, b model.Record) bool { return s.collator.Compare(a.Description, b.Description) < 0 }
	case SortAmount:
		less = func(a, b model.Record) bool { return a.Amount.GreaterThan(b.Amount) }
	default:
		return fmt.Errorf("%w: %q", ErrUnknownSortKey, key)
	}

	sort.SliceStable(s.records, func(i, j int) bool {
		return less(s.records[i], s.records[j])
	})
	return nil
}

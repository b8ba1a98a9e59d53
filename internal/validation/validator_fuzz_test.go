//go:build go1.18
// +build go1.18

package validation

import (
	"regexp"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
)

// FuzzValidate_Amount checks that every accepted amount parses as a
// non-negative decimal with at most two fractional digits.
func FuzzValidate_Amount(f *testing.F) {
	for _, seed := range []string{"0", "12", "12.5", "12.50", "12.505", "01", "-5", ".5", "1e3", "9999999999.99"} {
		f.Add(seed)
	}

	f.Fuzz(func(t *testing.T, raw string) {
		outcome := Validate(FieldAmount, raw)
		if !outcome.Valid || raw == "" {
			return
		}

		d, err := decimal.NewFromString(raw)
		if err != nil {
			t.Fatalf("accepted amount %q does not parse: %v", raw, err)
		}
		if d.IsNegative() {
			t.Fatalf("accepted negative amount %q", raw)
		}
		if d.Exponent() < -2 && !d.Equal(d.Round(2)) {
			t.Fatalf("accepted amount %q with more than two decimals", raw)
		}
	})
}

// FuzzValidate_Description checks that accepted descriptions are trimmed and
// never repeat a word back to back.
func FuzzValidate_Description(f *testing.F) {
	for _, seed := range []string{"Lunch", " a", "a ", "go go", "the theory", "Bus to to campus", "\tx"} {
		f.Add(seed)
	}

	words := regexp.MustCompile(`\w+`)

	f.Fuzz(func(t *testing.T, raw string) {
		outcome := Validate(FieldDescription, raw)
		if !outcome.Valid || raw == "" {
			return
		}

		if strings.TrimSpace(raw) != raw {
			t.Fatalf("accepted untrimmed description %q", raw)
		}

		locs := words.FindAllStringIndex(raw, -1)
		for i := 1; i < len(locs); i++ {
			gap := raw[locs[i-1][1]:locs[i][0]]
			if gap != "" && strings.TrimSpace(gap) == "" &&
				strings.EqualFold(raw[locs[i-1][0]:locs[i-1][1]], raw[locs[i][0]:locs[i][1]]) {
				t.Fatalf("accepted duplicate word in %q", raw)
			}
		}
	})
}

package validation

import (
	"strings"

	"github.com/agnivade/levenshtein"
)

// maxSuggestDistance bounds how different a typo may be from a known category.
const maxSuggestDistance = 2

// SuggestCategory returns the active category closest to input when input is
// not itself active. Records may still use categories outside the active set;
// the suggestion only helps catch typos.
func SuggestCategory(input string, categories []string) (string, bool) {
	input = strings.TrimSpace(input)
	if input == "" {
		return "", false
	}

	best := ""
	bestDist := maxSuggestDistance + 1
	lower := strings.ToLower(input)
	for _, c := range categories {
		candidate := strings.ToLower(c)
		if candidate == lower {
			return "", false
		}
		if d := levenshtein.ComputeDistance(lower, candidate); d < bestDist {
			best, bestDist = c, d
		}
	}

	if best == "" {
		return "", false
	}
	return best, true
}

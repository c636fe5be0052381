package search

import (
	"strings"
	"unicode"

	"github.com/agnivade/levenshtein"
)

// tokenize lowercases s and splits it on anything that is not a letter
// or digit.
func tokenize(s string) []string {
	return strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}

// score computes the dissimilarity between the query tokens and a set
// of field values. Substring containment counts as an exact hit;
// otherwise a query token costs its minimum edit distance to any field
// token. The candidate's score is its worst query token, so every
// token has to land reasonably close somewhere.
func score(queryTokens []string, fields []string) int {
	worst := 0
	for _, qt := range queryTokens {
		best := -1
		for _, field := range fields {
			lower := strings.ToLower(field)
			if strings.Contains(lower, qt) {
				best = 0
				break
			}
			for _, ft := range tokenize(field) {
				d := levenshtein.ComputeDistance(qt, ft)
				if best == -1 || d < best {
					best = d
				}
			}
		}
		if best == -1 {
			// No field text at all; treat as unmatchable.
			best = len(qt)
		}
		if best > worst {
			worst = best
		}
	}
	return worst
}

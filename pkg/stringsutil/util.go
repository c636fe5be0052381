package stringsutil

import "strings"

// SplitNonEmpty splits s on sep, trims whitespace from every piece and
// drops the empty ones. An empty input yields nil.
func SplitNonEmpty(s, sep string) []string {
	var out []string
	for _, part := range strings.Split(s, sep) {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

package search

import "strings"

// IsExactMatch reports whether every word of the normalized query appears as
// a substring of at least one word of the normalized card name. Both inputs
// must already be normalized. An empty query matches vacuously.
//
// Substring rather than whole-word comparison is deliberate: it lets a
// half-typed query like "flo rise" hit "Rise of the Floodborn" cards.
func IsExactMatch(normalizedQuery, normalizedName string) bool {
	queryWords := splitWords(normalizedQuery)
	nameWords := splitWords(normalizedName)

	for _, qw := range queryWords {
		found := false
		for _, nw := range nameWords {
			if strings.Contains(nw, qw) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// splitWords splits on single spaces and discards empty tokens.
func splitWords(s string) []string {
	parts := strings.Split(s, " ")
	words := make([]string, 0, len(parts))
	for _, p := range parts {
		if p != "" {
			words = append(words, p)
		}
	}
	return words
}

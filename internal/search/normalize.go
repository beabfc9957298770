package search

import "strings"

// Normalize converts raw text into the canonical form used for all card
// comparisons: lowercase, apostrophes removed, hyphens turned into spaces,
// double spaces collapsed, surrounding whitespace trimmed.
//
// The double-space collapse is a single left-to-right pass, so a run of three
// or more spaces is only partially collapsed. Search ranking depends on this
// exact behavior, so keep it as-is rather than generalizing to a full
// whitespace collapse.
func Normalize(text string) string {
	s := strings.ToLower(text)
	s = strings.ReplaceAll(s, "'", "")
	s = strings.ReplaceAll(s, "’", "") // typographic apostrophe
	s = strings.ReplaceAll(s, "-", " ")
	s = strings.ReplaceAll(s, "  ", " ")
	return strings.TrimSpace(s)
}

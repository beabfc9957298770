package models

import "strings"

// CardGroup collapses every printing that shares one card name. Groups are
// built fresh per search call and never persisted; they hold copies of the
// cards the search produced, not authoritative catalog state.
type CardGroup struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Cards []Card `json:"cards"`
}

// NewCardGroup builds a group for cards that all share name. The caller is
// responsible for ordering cards descending by (set name, unique ID) so that
// Primary() returns the lexicographically greatest printing.
func NewCardGroup(name string, cards []Card) CardGroup {
	return CardGroup{
		ID:    strings.ReplaceAll(name, " ", "_"),
		Name:  name,
		Cards: cards,
	}
}

// IsReprint reports whether this name exists as more than one printing.
func (g CardGroup) IsReprint() bool {
	return len(g.Cards) > 1
}

// Primary returns the canonical printing for display: the one with the
// lexicographically greatest (set name, unique ID) pair.
func (g CardGroup) Primary() Card {
	return g.Cards[0]
}

package search

import (
	"sort"

	"github.com/inkwell-labs/lorekeeper/internal/models"
)

// Group partitions cards into reprint-aware groups keyed by the verbatim card
// name (not the normalized form). Every input card lands in exactly one
// group. Within a group the printings are ordered descending by
// (set name, unique ID), so the first member is the canonical primary
// printing; a missing unique ID compares as the empty string. The returned
// groups are ordered ascending by name.
//
// Pure function: deterministic for identical input, no hidden state.
func Group(cards []models.Card) []models.CardGroup {
	byName := make(map[string][]models.Card)
	for _, c := range cards {
		byName[c.Name] = append(byName[c.Name], c)
	}

	groups := make([]models.CardGroup, 0, len(byName))
	for name, members := range byName {
		sort.SliceStable(members, func(i, j int) bool {
			if members[i].SetName != members[j].SetName {
				return members[i].SetName > members[j].SetName
			}
			return members[i].UniqueID > members[j].UniqueID
		})
		groups = append(groups, models.NewCardGroup(name, members))
	}

	sort.Slice(groups, func(i, j int) bool {
		return groups[i].Name < groups[j].Name
	})
	return groups
}

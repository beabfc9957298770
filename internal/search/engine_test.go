package search

import (
	"testing"

	"github.com/inkwell-labs/lorekeeper/internal/models"
)

type fakeCatalog struct {
	loaded bool
	cards  []models.Card
}

func (f *fakeCatalog) IsLoaded() bool          { return f.loaded }
func (f *fakeCatalog) AllCards() []models.Card { return f.cards }

type fakePrices struct {
	prices map[string]float64
}

func (f *fakePrices) Price(cardID string) (float64, bool) {
	p, ok := f.prices[cardID]
	return p, ok
}

func testEngine(cards []models.Card, prices map[string]float64) *Engine {
	return NewEngine(
		&fakeCatalog{loaded: true, cards: cards},
		&fakePrices{prices: prices},
	)
}

func TestSearchEmptyQuery(t *testing.T) {
	engine := testEngine([]models.Card{{ID: "1", Name: "Elsa"}}, nil)

	for _, query := range []string{"", "   ", "\t"} {
		if got := engine.Search(query); len(got) != 0 {
			t.Errorf("Search(%q) returned %d cards, want 0", query, len(got))
		}
	}
}

func TestSearchBeforeCatalogLoaded(t *testing.T) {
	engine := NewEngine(
		&fakeCatalog{loaded: false, cards: []models.Card{{ID: "1", Name: "Elsa"}}},
		&fakePrices{},
	)

	if got := engine.Search("elsa"); len(got) != 0 {
		t.Errorf("Search before load returned %d cards, want 0", len(got))
	}
}

func TestSearchMatchesAcrossFields(t *testing.T) {
	cards := []models.Card{
		{ID: "1", Name: "Elsa", SetName: "The First Chapter"},
		{ID: "2", Name: "Olaf", BodyText: "When Elsa is in play, gain 1 lore.", SetName: "The First Chapter"},
		{ID: "3", Name: "Maui", Type: "Character - Hero", SetName: "The First Chapter"},
		{ID: "4", Name: "Lantern", SetName: "Rise of the Floodborn"},
	}
	engine := testEngine(cards, nil)

	tests := []struct {
		name  string
		query string
		want  []string
	}{
		{"by name", "maui", []string{"3"}},
		{"by body text", "gain 1 lore", []string{"2"}},
		{"by type", "hero", []string{"3"}},
		{"by set name", "floodborn", []string{"4"}},
		{"no match", "zzz", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := engine.Search(tt.query)
			if len(got) != len(tt.want) {
				t.Fatalf("Search(%q) returned %d cards, want %d", tt.query, len(got), len(tt.want))
			}
			for i, id := range tt.want {
				if got[i].ID != id {
					t.Errorf("result %d = %s, want %s", i, got[i].ID, id)
				}
			}
		})
	}
}

func TestSearchRanksExactNameMatchesFirst(t *testing.T) {
	cards := []models.Card{
		// Matches only through body text, but alphabetically earlier.
		{ID: "body", Name: "Anna", BodyText: "Elsa's sister.", SetName: "A"},
		{ID: "exact", Name: "Elsa", SetName: "A"},
	}
	engine := testEngine(cards, nil)

	got := engine.Search("elsa")
	if len(got) != 2 {
		t.Fatalf("expected 2 results, got %d", len(got))
	}
	if got[0].ID != "exact" {
		t.Errorf("first result = %s, want the exact name match", got[0].ID)
	}
}

func TestSearchAlphabeticalWithinBucket(t *testing.T) {
	cards := []models.Card{
		{ID: "2", Name: "Elsa the Queen", SetName: "A"},
		{ID: "1", Name: "Elsa", SetName: "A"},
	}
	engine := testEngine(cards, nil)

	got := engine.Search("elsa")
	if len(got) != 2 {
		t.Fatalf("expected 2 results, got %d", len(got))
	}
	if got[0].ID != "1" || got[1].ID != "2" {
		t.Errorf("order = [%s %s], want [1 2]", got[0].ID, got[1].ID)
	}
}

func TestSearchOverlaysPrices(t *testing.T) {
	cards := []models.Card{
		{ID: "priced", Name: "Elsa", SetName: "A"},
		{ID: "unpriced", Name: "Elsa Too", SetName: "A"},
	}
	engine := testEngine(cards, map[string]float64{"priced": 4.5})

	got := engine.Search("elsa")
	for _, c := range got {
		switch c.ID {
		case "priced":
			if c.PriceUSD == nil || *c.PriceUSD != 4.5 {
				t.Errorf("priced card has price %v, want 4.5", c.PriceUSD)
			}
		case "unpriced":
			if c.PriceUSD != nil {
				t.Errorf("unpriced card has price %v, want nil", *c.PriceUSD)
			}
		}
	}
}

func TestSearchCacheRefreshesPriceOverlay(t *testing.T) {
	prices := &fakePrices{prices: map[string]float64{"1": 2.0}}
	engine := NewEngine(
		&fakeCatalog{loaded: true, cards: []models.Card{{ID: "1", Name: "Elsa", SetName: "A"}}},
		prices,
	)

	first := engine.Search("elsa")
	if first[0].PriceUSD == nil || *first[0].PriceUSD != 2.0 {
		t.Fatalf("first search price = %v, want 2.0", first[0].PriceUSD)
	}

	// The second search hits the result cache; the price must still reflect
	// the cache's current state, including expiry.
	delete(prices.prices, "1")
	second := engine.Search("elsa")
	if second[0].PriceUSD != nil {
		t.Errorf("second search price = %v, want nil after expiry", *second[0].PriceUSD)
	}
}

func TestSearchGroupsEndToEnd(t *testing.T) {
	cards := []models.Card{
		{ID: "a", Name: "Elsa", SetName: "Azurite Sea", UniqueID: "1"},
		{ID: "b", Name: "Elsa", SetName: "Shimmering Skies", UniqueID: "2"},
	}
	engine := testEngine(cards, nil)

	groups := engine.SearchGroups("elsa")
	if len(groups) != 1 {
		t.Fatalf("expected 1 group, got %d", len(groups))
	}
	g := groups[0]
	if g.Name != "Elsa" || len(g.Cards) != 2 {
		t.Fatalf("group = %s with %d cards, want Elsa with 2", g.Name, len(g.Cards))
	}
	if !g.IsReprint() {
		t.Error("two printings should report as a reprint")
	}
	if g.Primary().ID != "b" {
		t.Errorf("primary = %s, want b (Shimmering Skies sorts after Azurite Sea)", g.Primary().ID)
	}
}

func TestSuggest(t *testing.T) {
	cards := []models.Card{
		{ID: "1", Name: "Elsa", SetName: "A"},
		{ID: "2", Name: "Olaf", SetName: "A"},
	}
	engine := testEngine(cards, nil)

	suggestions := engine.Suggest("esa")
	if len(suggestions) == 0 {
		t.Fatal("expected at least one suggestion for a near-miss query")
	}
	if suggestions[0] != "Elsa" {
		t.Errorf("top suggestion = %q, want Elsa", suggestions[0])
	}

	if got := engine.Suggest(""); got != nil {
		t.Errorf("empty query should yield no suggestions, got %v", got)
	}
}

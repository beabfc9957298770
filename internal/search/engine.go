package search

import (
	"sort"
	"strings"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/sahilm/fuzzy"

	"github.com/inkwell-labs/lorekeeper/internal/metrics"
	"github.com/inkwell-labs/lorekeeper/internal/models"
)

const (
	// resultCacheSize bounds the LRU of ranked results per normalized query.
	// The catalog is immutable after load, so entries never need invalidation;
	// prices are overlaid fresh on every read.
	resultCacheSize = 256

	maxSuggestions = 5
)

// Catalog is the read side of the card catalog the engine searches over.
type Catalog interface {
	IsLoaded() bool
	AllCards() []models.Card
}

// PriceSource supplies cached prices for the read-time overlay.
type PriceSource interface {
	Price(cardID string) (float64, bool)
}

// Engine finds and ranks cards for a query, then groups them into
// reprint-aware groups. Safe for concurrent use once the catalog is loaded.
type Engine struct {
	catalog Catalog
	prices  PriceSource
	results *lru.Cache[string, []models.Card]
}

// NewEngine creates a search engine over the given catalog and price cache.
func NewEngine(catalog Catalog, prices PriceSource) *Engine {
	results, _ := lru.New[string, []models.Card](resultCacheSize)
	return &Engine{
		catalog: catalog,
		prices:  prices,
		results: results,
	}
}

// Search returns all cards matching the query, ranked with exact name
// matches first and ascending normalized name within each bucket. An empty
// query or a catalog that has not finished loading yields an empty slice.
// Search never fails; absence of results is the only negative outcome.
func (e *Engine) Search(query string) []models.Card {
	start := time.Now()
	defer func() {
		metrics.SearchDuration.Observe(time.Since(start).Seconds())
	}()
	metrics.SearchRequestsTotal.WithLabelValues("flat").Inc()

	if strings.TrimSpace(query) == "" {
		return []models.Card{}
	}
	if !e.catalog.IsLoaded() {
		return []models.Card{}
	}

	nq := Normalize(query)
	if cached, ok := e.results.Get(nq); ok {
		metrics.SearchCacheHits.Inc()
		return e.overlayPrices(cached)
	}
	metrics.SearchCacheMisses.Inc()

	matched := e.rank(nq)
	e.results.Add(nq, matched)
	return e.overlayPrices(matched)
}

// SearchGroups composes Search with Group. The result order is the grouper's
// (ascending by group name), not the flat search ranking.
func (e *Engine) SearchGroups(query string) []models.CardGroup {
	metrics.SearchRequestsTotal.WithLabelValues("grouped").Inc()
	return Group(e.Search(query))
}

// rank scans the whole catalog for the normalized query and returns the
// sorted matches without prices attached.
func (e *Engine) rank(nq string) []models.Card {
	all := e.catalog.AllCards()

	type match struct {
		card     models.Card
		normName string
		exact    bool
	}
	matched := make([]match, 0)

	for _, c := range all {
		normName := Normalize(c.Name)
		exact := IsExactMatch(nq, normName)
		if !exact &&
			!strings.Contains(normName, nq) &&
			!strings.Contains(Normalize(c.BodyText), nq) &&
			!strings.Contains(Normalize(c.Type), nq) &&
			!strings.Contains(Normalize(c.SetName), nq) {
			continue
		}
		matched = append(matched, match{card: c, normName: normName, exact: exact})
	}

	// Exact name matches ahead of everything else; alphabetical within each
	// bucket, stable on ties.
	sort.SliceStable(matched, func(i, j int) bool {
		if matched[i].exact != matched[j].exact {
			return matched[i].exact
		}
		return matched[i].normName < matched[j].normName
	})

	cards := make([]models.Card, len(matched))
	for i, m := range matched {
		cards[i] = m.card
	}
	return cards
}

// Suggest returns up to maxSuggestions card names fuzzily close to the
// query. Used as a "did you mean" fallback when a search comes back empty.
func (e *Engine) Suggest(query string) []string {
	if strings.TrimSpace(query) == "" || !e.catalog.IsLoaded() {
		return nil
	}

	seen := make(map[string]bool)
	names := make([]string, 0)
	for _, c := range e.catalog.AllCards() {
		if !seen[c.Name] {
			seen[c.Name] = true
			names = append(names, c.Name)
		}
	}

	ranked := fuzzy.Find(strings.TrimSpace(query), names)
	suggestions := make([]string, 0, maxSuggestions)
	for i, m := range ranked {
		if i >= maxSuggestions {
			break
		}
		suggestions = append(suggestions, m.Str)
	}
	return suggestions
}

// overlayPrices copies the ranked cards and attaches the current cached
// price for each, clearing prices that have gone stale since the cards were
// cached.
func (e *Engine) overlayPrices(cards []models.Card) []models.Card {
	out := make([]models.Card, len(cards))
	copy(out, cards)
	for i := range out {
		if price, ok := e.prices.Price(out[i].ID); ok {
			p := price
			out[i].PriceUSD = &p
		} else {
			out[i].PriceUSD = nil
		}
	}
	return out
}

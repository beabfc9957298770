package catalog

import (
	"context"
	"fmt"
	"log"
	"sort"
	"sync"

	"github.com/inkwell-labs/lorekeeper/internal/metrics"
	"github.com/inkwell-labs/lorekeeper/internal/models"
)

// State tracks the catalog load lifecycle. Loaded and LoadFailed are
// terminal; a failed load leaves the catalog empty for the rest of the
// process lifetime.
type State int

const (
	StateNotLoaded State = iota
	StateLoading
	StateLoaded
	StateLoadFailed
)

func (s State) String() string {
	switch s {
	case StateNotLoaded:
		return "not_loaded"
	case StateLoading:
		return "loading"
	case StateLoaded:
		return "loaded"
	case StateLoadFailed:
		return "load_failed"
	default:
		return "unknown"
	}
}

// SetLoadError records one per-set card load that was skipped.
type SetLoadError struct {
	SetID string `json:"set_id"`
	Err   error  `json:"-"`
}

// Status is a snapshot of the load state machine, published to subscribers
// on every transition.
type Status struct {
	State     State
	Err       error          // fatal sets-index error, when State is LoadFailed
	SetErrors []SetLoadError // per-set failures, diagnostics only
}

// PriceSource supplies cached prices for the read-time overlay on
// enumeration results.
type PriceSource interface {
	Price(cardID string) (float64, bool)
}

// Store owns all Set and Card data for the process lifetime: loaded once,
// read many. Queries issued before the load finishes (or after it fails)
// return empty results rather than blocking or erroring, so callers should
// consult IsLoaded before trusting empty results as complete.
type Store struct {
	prices PriceSource

	mu         sync.RWMutex
	state      State
	loadErr    error
	setErrors  []SetLoadError
	sets       []models.Set             // ascending by release date
	cardsBySet map[string][]models.Card // keyed by set display name
	subs       []chan Status
}

// NewStore creates an empty store. Prices from the given source are overlaid
// on every enumeration result; a nil source disables the overlay.
func NewStore(prices PriceSource) *Store {
	return &Store{
		prices:     prices,
		state:      StateNotLoaded,
		cardsBySet: make(map[string][]models.Card),
	}
}

// Load performs the one-time bulk initialization from src. Only the
// sets-index load is fatal; a per-set card failure is recorded, that set
// contributes zero cards, and loading continues. Load may be called once.
func (s *Store) Load(ctx context.Context, src Source) error {
	s.mu.Lock()
	if s.state != StateNotLoaded {
		s.mu.Unlock()
		return fmt.Errorf("catalog already %s", s.state)
	}
	s.state = StateLoading
	s.mu.Unlock()
	s.publish()

	index, err := src.SetsIndex(ctx)
	if err != nil {
		s.mu.Lock()
		s.state = StateLoadFailed
		s.loadErr = err
		s.mu.Unlock()
		s.publish()
		return err
	}

	sets := make([]models.Set, len(index.Sets))
	copy(sets, index.Sets)
	// Lexical compare on the ISO date string; a missing date is the empty
	// string and sorts first.
	sort.SliceStable(sets, func(i, j int) bool {
		return sets[i].ReleaseDate < sets[j].ReleaseDate
	})

	cardsBySet := make(map[string][]models.Card, len(sets))
	var setErrors []SetLoadError
	totalCards := 0
	for _, set := range sets {
		cards, err := src.SetCards(ctx, set)
		if err != nil {
			log.Printf("Warning: skipping cards for set %s: %v", set.ID, err)
			setErrors = append(setErrors, SetLoadError{SetID: set.ID, Err: err})
			continue
		}
		cardsBySet[set.Name] = cards
		totalCards += len(cards)
	}

	s.mu.Lock()
	s.sets = sets
	s.cardsBySet = cardsBySet
	s.setErrors = setErrors
	s.state = StateLoaded
	s.mu.Unlock()
	s.publish()

	metrics.CatalogSetsTotal.Set(float64(len(sets)))
	metrics.CatalogCardsTotal.Set(float64(totalCards))
	log.Printf("Catalog loaded: %d cards across %d sets (%d sets skipped)",
		totalCards, len(sets), len(setErrors))
	return nil
}

// IsLoaded reports whether the catalog finished loading successfully.
func (s *Store) IsLoaded() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state == StateLoaded
}

// Status returns a snapshot of the load state machine.
func (s *Store) Status() Status {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.statusLocked()
}

func (s *Store) statusLocked() Status {
	errs := make([]SetLoadError, len(s.setErrors))
	copy(errs, s.setErrors)
	return Status{State: s.state, Err: s.loadErr, SetErrors: errs}
}

// Subscribe returns a channel that receives a Status snapshot on every state
// transition. Slow subscribers miss intermediate transitions rather than
// blocking the loader.
func (s *Store) Subscribe() <-chan Status {
	ch := make(chan Status, 4)
	s.mu.Lock()
	s.subs = append(s.subs, ch)
	s.mu.Unlock()
	return ch
}

func (s *Store) publish() {
	s.mu.RLock()
	status := s.statusLocked()
	subs := s.subs
	s.mu.RUnlock()

	for _, ch := range subs {
		select {
		case ch <- status:
		default:
		}
	}
}

// Sets returns all set metadata, ascending by release date.
func (s *Store) Sets() []models.Set {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.state != StateLoaded {
		return []models.Set{}
	}
	out := make([]models.Set, len(s.sets))
	copy(out, s.sets)
	return out
}

// SetByName looks a set up by its display name.
func (s *Store) SetByName(name string) (models.Set, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.state != StateLoaded {
		return models.Set{}, false
	}
	for _, set := range s.sets {
		if set.Name == name {
			return set, true
		}
	}
	return models.Set{}, false
}

// SetByCode looks a set up by its short code.
func (s *Store) SetByCode(code string) (models.Set, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.state != StateLoaded {
		return models.Set{}, false
	}
	for _, set := range s.sets {
		if set.SetCode == code {
			return set, true
		}
	}
	return models.Set{}, false
}

// CardsForSet returns the cards of the named set with the price overlay
// applied, or an empty slice for an unknown set.
func (s *Store) CardsForSet(setName string) []models.Card {
	s.mu.RLock()
	cards := s.cardsBySet[setName]
	loaded := s.state == StateLoaded
	s.mu.RUnlock()
	if !loaded {
		return []models.Card{}
	}
	return s.overlayPrices(cards)
}

// AllCards flattens every per-set card list, in set release order, with the
// price overlay applied.
func (s *Store) AllCards() []models.Card {
	s.mu.RLock()
	if s.state != StateLoaded {
		s.mu.RUnlock()
		return []models.Card{}
	}
	all := make([]models.Card, 0)
	for _, set := range s.sets {
		all = append(all, s.cardsBySet[set.Name]...)
	}
	s.mu.RUnlock()
	return s.overlayPrices(all)
}

// CardByID finds a single printing by its identifier, price overlaid.
func (s *Store) CardByID(id string) (models.Card, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.state != StateLoaded {
		return models.Card{}, false
	}
	for _, cards := range s.cardsBySet {
		for _, c := range cards {
			if c.ID == id {
				overlaid := s.overlayPrices([]models.Card{c})
				return overlaid[0], true
			}
		}
	}
	return models.Card{}, false
}

// AllCardIDs returns the identifier of every printing in the catalog.
func (s *Store) AllCardIDs() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.state != StateLoaded {
		return nil
	}
	ids := make([]string, 0)
	for _, set := range s.sets {
		for _, c := range s.cardsBySet[set.Name] {
			ids = append(ids, c.ID)
		}
	}
	return ids
}

// SetsContainingCardName returns the name of every set holding at least one
// card with exactly the given name, sorted ascending.
func (s *Store) SetsContainingCardName(name string) []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.state != StateLoaded {
		return []string{}
	}
	names := make([]string, 0)
	for setName, cards := range s.cardsBySet {
		for _, c := range cards {
			if c.Name == name {
				names = append(names, setName)
				break
			}
		}
	}
	sort.Strings(names)
	return names
}

// IsReprint reports whether the named card appears in more than one set.
// This counts distinct sets, not distinct printings: a card printed twice
// within a single set does not register here.
func (s *Store) IsReprint(name string) bool {
	return len(s.SetsContainingCardName(name)) > 1
}

// overlayPrices returns a copy of cards with the current cached price
// attached to each.
func (s *Store) overlayPrices(cards []models.Card) []models.Card {
	out := make([]models.Card, len(cards))
	copy(out, cards)
	if s.prices == nil {
		return out
	}
	for i := range out {
		if price, ok := s.prices.Price(out[i].ID); ok {
			p := price
			out[i].PriceUSD = &p
		} else {
			out[i].PriceUSD = nil
		}
	}
	return out
}

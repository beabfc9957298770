package prices

import (
	"context"
	"log"
	"sync"
	"sync/atomic"
	"time"

	"github.com/inkwell-labs/lorekeeper/internal/metrics"
	"github.com/inkwell-labs/lorekeeper/internal/models"
)

const (
	// FreshnessWindow is how old a cached price can be before reads treat
	// it as absent. Expiry is computed at read time; entries are never
	// deleted.
	FreshnessWindow = 24 * time.Hour

	pricePrefix     = "price_"
	timestampPrefix = "price_timestamp_"
	lastRefreshKey  = "lastPriceRefresh"
)

// KV is the durable key-value store the cache persists through.
type KV interface {
	Numeric(key string) (float64, bool)
	SetNumeric(key string, value float64) error
	Time(key string) (time.Time, bool)
	SetTime(key string, value time.Time) error
}

// Fetcher retrieves current marketplace prices for a batch of cards. The
// cache never computes prices itself; it only stores, ages, and reads them.
type Fetcher interface {
	FetchPrices(ctx context.Context, cardIDs []string) (map[string]float64, error)
}

// Cache maps card identifiers to (price, observedAt) pairs with a 24-hour
// freshness window. Reads and writes are atomic per key; cross-key
// consistency is not guaranteed. Absence is the only negative signal a read
// can produce — the cache never errors.
type Cache struct {
	kv KV

	mu      sync.Mutex
	entries map[string]models.PriceEntry

	refreshing  atomic.Bool
	lastRefresh time.Time

	now func() time.Time
}

// NewCache creates a price cache over the given durable store.
func NewCache(kv KV) *Cache {
	c := &Cache{
		kv:      kv,
		entries: make(map[string]models.PriceEntry),
		now:     time.Now,
	}
	if last, ok := kv.Time(lastRefreshKey); ok {
		c.lastRefresh = last
	}
	return c
}

// Price returns the cached price for a card. It reports absent when no entry
// exists, when the entry is older than the freshness window, or when the
// stored price is not positive.
func (c *Cache) Price(cardID string) (float64, bool) {
	c.mu.Lock()
	entry, ok := c.entries[cardID]
	if !ok {
		entry = c.readThrough(cardID)
	}
	c.mu.Unlock()

	if entry.ObservedAt.IsZero() {
		metrics.PriceCacheReads.WithLabelValues("miss").Inc()
		return 0, false
	}
	if c.now().Sub(entry.ObservedAt) > FreshnessWindow {
		metrics.PriceCacheReads.WithLabelValues("stale").Inc()
		return 0, false
	}
	if entry.PriceUSD <= 0 {
		metrics.PriceCacheReads.WithLabelValues("miss").Inc()
		return 0, false
	}
	metrics.PriceCacheReads.WithLabelValues("hit").Inc()
	return entry.PriceUSD, true
}

// readThrough pulls one card's entry out of the durable store, memoizing the
// result (including a zero-entry marker for misses). Caller holds c.mu.
func (c *Cache) readThrough(cardID string) models.PriceEntry {
	entry := models.PriceEntry{CardID: cardID}
	price, okPrice := c.kv.Numeric(pricePrefix + cardID)
	observed, okTime := c.kv.Time(timestampPrefix + cardID)
	if okPrice && okTime {
		entry.PriceUSD = price
		entry.ObservedAt = observed
	}
	c.entries[cardID] = entry
	return entry
}

// SetPrice unconditionally overwrites the entry for a card with
// (price, now). The price sign is not validated here; non-positive values
// are simply never served back.
func (c *Cache) SetPrice(price float64, cardID string) {
	observed := c.now()

	c.mu.Lock()
	c.entries[cardID] = models.PriceEntry{
		CardID:     cardID,
		PriceUSD:   price,
		ObservedAt: observed,
	}
	c.mu.Unlock()

	if err := c.kv.SetNumeric(pricePrefix+cardID, price); err != nil {
		log.Printf("Warning: failed to persist price for %s: %v", cardID, err)
	}
	if err := c.kv.SetTime(timestampPrefix+cardID, observed); err != nil {
		log.Printf("Warning: failed to persist price timestamp for %s: %v", cardID, err)
	}
}

// Refresh fetches current prices for the given cards through the fetcher and
// stores every returned price. The refreshing flag is held for the duration;
// Refresh is not reentrant-safe, but concurrent invocations only risk benign
// duplicate overwrites. The last-refresh timestamp is persisted on success.
func (c *Cache) Refresh(ctx context.Context, fetcher Fetcher, cardIDs []string) error {
	c.refreshing.Store(true)
	defer c.refreshing.Store(false)

	fetched, err := fetcher.FetchPrices(ctx, cardIDs)
	if err != nil {
		return err
	}

	for cardID, price := range fetched {
		c.SetPrice(price, cardID)
	}

	finished := c.now()
	c.mu.Lock()
	c.lastRefresh = finished
	c.mu.Unlock()
	if err := c.kv.SetTime(lastRefreshKey, finished); err != nil {
		log.Printf("Warning: failed to persist last refresh time: %v", err)
	}

	metrics.PriceRefreshesTotal.Inc()
	metrics.PricesUpdatedTotal.Add(float64(len(fetched)))
	return nil
}

// IsRefreshing reports whether a refresh is currently in flight. Informational
// only; it does not enforce exclusion.
func (c *Cache) IsRefreshing() bool {
	return c.refreshing.Load()
}

// LastRefresh returns when the last successful refresh completed.
func (c *Cache) LastRefresh() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastRefresh
}

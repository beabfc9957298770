package prices

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/inkwell-labs/lorekeeper/internal/metrics"
)

// defaultRefreshInterval is how often the background sweep runs when the
// configuration does not override it.
const defaultRefreshInterval = 15 * time.Minute

// CardLister supplies the card identifiers whose prices the background sweep
// keeps warm.
type CardLister interface {
	AllCardIDs() []string
}

// QuotaReporter is implemented by fetchers with a bounded request quota.
// The refresher skips a sweep entirely when the quota is exhausted.
type QuotaReporter interface {
	RequestsRemaining() int
	DailyLimit() int
	ResetTime() time.Time
}

// RefreshStatus describes the refresher for UI and diagnostics.
type RefreshStatus struct {
	IsRefreshing bool      `json:"is_refreshing"`
	LastRefresh  time.Time `json:"last_refresh"`
	NextRefresh  time.Time `json:"next_refresh"`
	CardsTracked int       `json:"cards_tracked"`
	DailyLimit   int       `json:"daily_limit,omitempty"`
	Remaining    int       `json:"remaining,omitempty"`
	ResetsAt     time.Time `json:"resets_at,omitempty"`
}

// Refresher periodically refreshes the price cache for every tracked card,
// delegating the actual fetch to the pricing collaborator.
type Refresher struct {
	cache    *Cache
	fetcher  Fetcher
	lister   CardLister
	interval time.Duration
	trigger  chan struct{}

	mu      sync.RWMutex
	lastRun time.Time
}

// NewRefresher creates a background refresher. A non-positive interval falls
// back to the default.
func NewRefresher(cache *Cache, fetcher Fetcher, lister CardLister, interval time.Duration) *Refresher {
	if interval <= 0 {
		interval = defaultRefreshInterval
	}
	return &Refresher{
		cache:    cache,
		fetcher:  fetcher,
		lister:   lister,
		interval: interval,
		trigger:  make(chan struct{}, 1),
	}
}

// Trigger requests an immediate refresh sweep. Non-blocking; a sweep already
// pending absorbs the request.
func (r *Refresher) Trigger() {
	select {
	case r.trigger <- struct{}{}:
	default:
	}
}

// Start runs the refresh loop until ctx is cancelled. One sweep runs
// immediately on startup.
func (r *Refresher) Start(ctx context.Context) {
	log.Printf("Price refresher started: sweep every %v", r.interval)

	r.sweep(ctx)

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Println("Price refresher stopping...")
			return
		case <-ticker.C:
			r.sweep(ctx)
		case <-r.trigger:
			r.sweep(ctx)
		}
	}
}

func (r *Refresher) sweep(ctx context.Context) {
	if q, ok := r.fetcher.(QuotaReporter); ok {
		if q.RequestsRemaining() <= 0 {
			log.Printf("Price refresher: quota exhausted, skipping until %s",
				q.ResetTime().Format("15:04"))
			return
		}
		metrics.PricingQuotaRemaining.Set(float64(q.RequestsRemaining()))
		metrics.PricingQuotaLimit.Set(float64(q.DailyLimit()))
	}

	ids := r.lister.AllCardIDs()
	if len(ids) == 0 {
		log.Println("Price refresher: no cards to refresh")
		return
	}

	start := time.Now()
	if err := r.cache.Refresh(ctx, r.fetcher, ids); err != nil {
		log.Printf("Price refresher: sweep failed: %v", err)
		return
	}

	r.mu.Lock()
	r.lastRun = time.Now()
	r.mu.Unlock()

	metrics.PriceRefreshDuration.Observe(time.Since(start).Seconds())
	log.Printf("Price refresher: swept %d cards in %v", len(ids), time.Since(start))
}

// Status returns the current refresher status.
func (r *Refresher) Status() RefreshStatus {
	r.mu.RLock()
	lastRun := r.lastRun
	r.mu.RUnlock()

	status := RefreshStatus{
		IsRefreshing: r.cache.IsRefreshing(),
		LastRefresh:  r.cache.LastRefresh(),
		NextRefresh:  lastRun.Add(r.interval),
		CardsTracked: len(r.lister.AllCardIDs()),
	}
	if q, ok := r.fetcher.(QuotaReporter); ok {
		status.DailyLimit = q.DailyLimit()
		status.Remaining = q.RequestsRemaining()
		status.ResetsAt = q.ResetTime()
	}
	return status
}

// Package metrics provides Prometheus metrics for the Lorekeeper service.
// Scrape these at /metrics for Grafana dashboards and alerting.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP Metrics
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "lorekeeper_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "lorekeeper_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	// Catalog Metrics
	CatalogSetsTotal = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "lorekeeper_catalog_sets_total",
			Help: "Number of sets loaded into the catalog",
		},
	)

	CatalogCardsTotal = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "lorekeeper_catalog_cards_total",
			Help: "Number of card printings loaded into the catalog",
		},
	)

	// Search Metrics
	SearchRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "lorekeeper_search_requests_total",
			Help: "Total number of card searches",
		},
		[]string{"kind"}, // "flat" or "grouped"
	)

	SearchDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "lorekeeper_search_duration_seconds",
			Help:    "Time taken to run a card search",
			Buckets: []float64{0.0005, 0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1},
		},
	)

	SearchCacheHits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "lorekeeper_search_cache_hits_total",
			Help: "Search result cache hit count",
		},
	)

	SearchCacheMisses = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "lorekeeper_search_cache_misses_total",
			Help: "Search result cache miss count",
		},
	)

	// Price Cache Metrics
	PriceCacheReads = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "lorekeeper_price_cache_reads_total",
			Help: "Price cache reads by outcome",
		},
		[]string{"outcome"}, // "hit", "stale", "miss"
	)

	PriceRefreshesTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "lorekeeper_price_refreshes_total",
			Help: "Total number of completed price refresh sweeps",
		},
	)

	PricesUpdatedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "lorekeeper_prices_updated_total",
			Help: "Total number of card prices written by refresh sweeps",
		},
	)

	PriceRefreshDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "lorekeeper_price_refresh_duration_seconds",
			Help:    "Time taken to complete a price refresh sweep",
			Buckets: []float64{0.5, 1, 2.5, 5, 10, 30, 60},
		},
	)

	// Pricing API Metrics
	PricingRequestsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "lorekeeper_pricing_requests_total",
			Help: "Total number of marketplace pricing API requests made",
		},
	)

	PricingQuotaRemaining = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "lorekeeper_pricing_quota_remaining",
			Help: "Remaining marketplace API requests for today",
		},
	)

	PricingQuotaLimit = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "lorekeeper_pricing_quota_limit",
			Help: "Daily marketplace API request limit",
		},
	)
)

// Package pricing implements the external marketplace client the price
// cache's refresh delegates to. The core never computes prices itself.
package pricing

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/inkwell-labs/lorekeeper/internal/metrics"
)

const (
	defaultBaseURL = "https://api.inkbroker.io/v1"
	defaultTimeout = 10 * time.Second

	// batchSize is the number of card IDs sent per request.
	batchSize = 50

	// defaultDailyLimit matches the marketplace free tier.
	defaultDailyLimit = 500
)

// Client fetches card prices from the marketplace API. Requests are rate
// limited and counted against a daily quota that resets at local midnight.
type Client struct {
	client     *http.Client
	apiKey     string
	baseURL    string
	dailyLimit int
	limiter    *rate.Limiter

	mu             sync.Mutex
	requestsToday  int
	lastRequestDay time.Time
}

type priceRequest struct {
	CardIDs []string `json:"card_ids"`
}

type priceResponse struct {
	Success bool         `json:"success"`
	Data    []priceQuote `json:"data"`
	Error   string       `json:"error,omitempty"`
}

type priceQuote struct {
	CardID   string  `json:"card_id"`
	PriceUSD float64 `json:"price_usd"`
}

// NewClient creates a marketplace pricing client. A non-positive daily limit
// falls back to the free tier default.
func NewClient(apiKey string, dailyLimit int) *Client {
	if dailyLimit <= 0 {
		dailyLimit = defaultDailyLimit
	}
	return &Client{
		client:     &http.Client{Timeout: defaultTimeout},
		apiKey:     apiKey,
		baseURL:    defaultBaseURL,
		dailyLimit: dailyLimit,
		// Marketplace terms allow 5 requests per second.
		limiter: rate.NewLimiter(rate.Every(200*time.Millisecond), 1),
	}
}

// checkDailyLimit consumes one request from today's quota. Returns false
// when the quota is exhausted.
func (c *Client) checkDailyLimit() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := time.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	if c.lastRequestDay.Before(today) {
		c.requestsToday = 0
		c.lastRequestDay = today
	}

	if c.requestsToday >= c.dailyLimit {
		return false
	}
	c.requestsToday++
	return true
}

// RequestsRemaining returns the number of requests left in today's quota.
func (c *Client) RequestsRemaining() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := time.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	if c.lastRequestDay.Before(today) {
		return c.dailyLimit
	}

	remaining := c.dailyLimit - c.requestsToday
	if remaining < 0 {
		return 0
	}
	return remaining
}

// DailyLimit returns the configured daily request limit.
func (c *Client) DailyLimit() int {
	return c.dailyLimit
}

// ResetTime returns the next daily quota reset (local midnight).
func (c *Client) ResetTime() time.Time {
	now := time.Now()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()).AddDate(0, 0, 1)
}

// FetchPrices retrieves current prices for the given cards, batching requests
// against the marketplace API. Cards the marketplace does not know are simply
// absent from the result; a transport or quota failure aborts the remaining
// batches and returns whatever was already fetched along with the error.
func (c *Client) FetchPrices(ctx context.Context, cardIDs []string) (map[string]float64, error) {
	prices := make(map[string]float64, len(cardIDs))

	for start := 0; start < len(cardIDs); start += batchSize {
		end := start + batchSize
		if end > len(cardIDs) {
			end = len(cardIDs)
		}

		if err := c.limiter.Wait(ctx); err != nil {
			return prices, err
		}
		if !c.checkDailyLimit() {
			return prices, fmt.Errorf("pricing: daily quota of %d requests exhausted", c.dailyLimit)
		}

		batch, err := c.fetchBatch(ctx, cardIDs[start:end])
		if err != nil {
			return prices, err
		}
		for id, price := range batch {
			prices[id] = price
		}
	}

	return prices, nil
}

func (c *Client) fetchBatch(ctx context.Context, cardIDs []string) (map[string]float64, error) {
	body, err := json.Marshal(priceRequest{CardIDs: cardIDs})
	if err != nil {
		return nil, fmt.Errorf("failed to encode price request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/prices", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create price request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("X-API-Key", c.apiKey)
	}

	metrics.PricingRequestsTotal.Inc()
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("price request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("price request returned status %d", resp.StatusCode)
	}

	var decoded priceResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("failed to decode price response: %w", err)
	}
	if !decoded.Success {
		return nil, fmt.Errorf("price request rejected: %s", decoded.Error)
	}

	prices := make(map[string]float64, len(decoded.Data))
	for _, quote := range decoded.Data {
		prices[quote.CardID] = quote.PriceUSD
	}
	return prices, nil
}

package pricing

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestNewClientDefaults(t *testing.T) {
	c := NewClient("test-key", 0)
	if c.dailyLimit != defaultDailyLimit {
		t.Errorf("expected default daily limit of %d, got %d", defaultDailyLimit, c.dailyLimit)
	}
	if c.apiKey != "test-key" {
		t.Errorf("expected API key 'test-key', got %s", c.apiKey)
	}

	c = NewClient("", 200)
	if c.dailyLimit != 200 {
		t.Errorf("expected daily limit of 200, got %d", c.dailyLimit)
	}
}

func TestDailyLimiting(t *testing.T) {
	c := NewClient("", 3)

	for i := 0; i < 3; i++ {
		if !c.checkDailyLimit() {
			t.Errorf("request %d should be allowed", i+1)
		}
	}

	if c.checkDailyLimit() {
		t.Error("4th request should be blocked by daily limit")
	}
	if remaining := c.RequestsRemaining(); remaining != 0 {
		t.Errorf("expected 0 remaining, got %d", remaining)
	}
}

func TestFetchPrices(t *testing.T) {
	var gotKey string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotKey = r.Header.Get("X-API-Key")

		var req priceRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("failed to decode request: %v", err)
		}

		resp := priceResponse{Success: true}
		for _, id := range req.CardIDs {
			resp.Data = append(resp.Data, priceQuote{CardID: id, PriceUSD: 1.25})
		}
		json.NewEncoder(w).Encode(resp)
	}))
	defer srv.Close()

	c := NewClient("secret", 10)
	c.baseURL = srv.URL

	prices, err := c.FetchPrices(context.Background(), []string{"a", "b"})
	if err != nil {
		t.Fatalf("FetchPrices failed: %v", err)
	}
	if gotKey != "secret" {
		t.Errorf("API key header = %q, want secret", gotKey)
	}
	if len(prices) != 2 || prices["a"] != 1.25 || prices["b"] != 1.25 {
		t.Errorf("prices = %v", prices)
	}
}

func TestFetchPricesBatches(t *testing.T) {
	requests := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		var req priceRequest
		json.NewDecoder(r.Body).Decode(&req)
		if len(req.CardIDs) > batchSize {
			t.Errorf("batch of %d exceeds limit %d", len(req.CardIDs), batchSize)
		}
		json.NewEncoder(w).Encode(priceResponse{Success: true})
	}))
	defer srv.Close()

	c := NewClient("", 10)
	c.baseURL = srv.URL

	ids := make([]string, batchSize+1)
	for i := range ids {
		ids[i] = "card"
	}
	if _, err := c.FetchPrices(context.Background(), ids); err != nil {
		t.Fatalf("FetchPrices failed: %v", err)
	}
	if requests != 2 {
		t.Errorf("expected 2 batched requests, got %d", requests)
	}
}

func TestFetchPricesRejectedResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(priceResponse{Success: false, Error: "invalid key"})
	}))
	defer srv.Close()

	c := NewClient("", 10)
	c.baseURL = srv.URL

	if _, err := c.FetchPrices(context.Background(), []string{"a"}); err == nil {
		t.Error("expected an error for a rejected response")
	}
}

func TestFetchPricesQuotaExhaustedMidway(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(priceResponse{Success: true, Data: []priceQuote{{CardID: "a", PriceUSD: 2}}})
	}))
	defer srv.Close()

	c := NewClient("", 1)
	c.baseURL = srv.URL

	ids := make([]string, batchSize+1) // needs 2 requests, quota allows 1
	for i := range ids {
		ids[i] = "a"
	}
	prices, err := c.FetchPrices(context.Background(), ids)
	if err == nil {
		t.Fatal("expected a quota error")
	}
	// The first batch's results are still returned.
	if prices["a"] != 2 {
		t.Errorf("partial results lost: %v", prices)
	}
}

package api

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"portfolio-advisor/internal/asset"
	"portfolio-advisor/internal/model"
	"portfolio-advisor/internal/service"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	cfg := &service.FeedConfig{
		BaseURL:            srv.URL,
		RequestTimeout:     time.Second,
		MinRequestInterval: 5 * time.Second,
	}
	return NewClient(cfg, asset.NewRegistry())
}

func TestFetchPricesBatchesAndNormalizes(t *testing.T) {
	var gotPath, gotIDs string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotIDs = r.URL.Query().Get("ids")
		w.Write([]byte(`{
			"bitcoin": {"usd": 115000, "usd_market_cap": 2.3e12, "usd_24h_vol": 4.7e10, "usd_24h_change": -0.36},
			"ethereum": {"usd": 4510, "usd_market_cap": 5.4e11, "usd_24h_vol": 3.4e10, "usd_24h_change": -2.04}
		}`))
	})

	records, err := c.FetchPrices(context.Background(), []string{"btc", "ETH"})
	if err != nil {
		t.Fatalf("FetchPrices: %v", err)
	}
	if gotPath != "/simple/price" {
		t.Errorf("path = %q, want /simple/price", gotPath)
	}
	if gotIDs != "bitcoin,ethereum" {
		t.Errorf("ids = %q, want bitcoin,ethereum", gotIDs)
	}

	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}
	btc := records[0]
	if btc.Symbol != "BTC" || btc.Name != "Bitcoin" {
		t.Errorf("record 0 = %s (%s), want BTC (Bitcoin)", btc.Symbol, btc.Name)
	}
	if btc.Price != 115000 || btc.Change24h != -0.36 {
		t.Errorf("BTC price/change = %v/%v", btc.Price, btc.Change24h)
	}
	if btc.Source != model.SourceLive {
		t.Errorf("provenance = %s, want live", btc.Source)
	}
}

func TestFetchPricesExcludesUnmappedSymbols(t *testing.T) {
	var gotIDs string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotIDs = r.URL.Query().Get("ids")
		w.Write([]byte(`{"bitcoin": {"usd": 115000}}`))
	})

	records, err := c.FetchPrices(context.Background(), []string{"BTC", "NOPE"})
	if err != nil {
		t.Fatalf("FetchPrices: %v", err)
	}
	if gotIDs != "bitcoin" {
		t.Errorf("ids = %q, unmapped symbol should not reach the feed", gotIDs)
	}
	if len(records) != 1 || records[0].Symbol != "BTC" {
		t.Errorf("records = %v, want only BTC", records)
	}
}

func TestFetchPricesNoResolvableSymbolsSkipsRequest(t *testing.T) {
	called := false
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		called = true
	})

	records, err := c.FetchPrices(context.Background(), []string{"NOPE", "ALSONOPE"})
	if err != nil {
		t.Fatalf("FetchPrices: %v", err)
	}
	if called {
		t.Error("feed was called with no resolvable symbols")
	}
	if len(records) != 0 {
		t.Errorf("expected empty result, got %v", records)
	}
}

func TestFetchPricesDropsSymbolsAbsentFromResponse(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		// Feed knows bitcoin but returned nothing for ethereum.
		w.Write([]byte(`{"bitcoin": {"usd": 115000}}`))
	})

	records, err := c.FetchPrices(context.Background(), []string{"BTC", "ETH"})
	if err != nil {
		t.Fatalf("FetchPrices: %v", err)
	}
	if len(records) != 1 || records[0].Symbol != "BTC" {
		t.Errorf("records = %v, want only BTC", records)
	}
}

func TestFetchPricesFeedUnavailable(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "rate limited", http.StatusTooManyRequests)
	})

	_, err := c.FetchPrices(context.Background(), []string{"BTC", "ETH"})
	var feedErr *FeedUnavailableError
	if !errors.As(err, &feedErr) {
		t.Fatalf("expected FeedUnavailableError, got %v", err)
	}
	if feedErr.Status != http.StatusTooManyRequests {
		t.Errorf("status = %d, want 429", feedErr.Status)
	}
	if len(feedErr.Symbols) != 2 {
		t.Errorf("error should carry the requested symbols, got %v", feedErr.Symbols)
	}
}

func TestFetchPricesMalformedPayload(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"bitcoin": not-json`))
	})

	_, err := c.FetchPrices(context.Background(), []string{"BTC"})
	var feedErr *FeedUnavailableError
	if !errors.As(err, &feedErr) {
		t.Fatalf("expected FeedUnavailableError on malformed payload, got %v", err)
	}
}

func TestWaitRateLimitBlocksForRemainder(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {})

	base := time.Now()
	clock := base
	var slept time.Duration
	c.now = func() time.Time { return clock }
	c.sleep = func(d time.Duration) {
		slept += d
		clock = clock.Add(d)
	}

	// First request: no previous call, no wait.
	c.waitRateLimit()
	if slept != 0 {
		t.Fatalf("first request slept %v, want 0", slept)
	}

	// Second request 1s later: must wait out the remaining 4s.
	clock = clock.Add(1 * time.Second)
	c.waitRateLimit()
	if slept != 4*time.Second {
		t.Errorf("slept %v, want 4s", slept)
	}

	// Third request after a full interval: no extra wait.
	slept = 0
	clock = clock.Add(5 * time.Second)
	c.waitRateLimit()
	if slept != 0 {
		t.Errorf("slept %v after interval elapsed, want 0", slept)
	}
}

func TestHealthCheck(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/ping" {
			t.Errorf("health check hit %q, want /ping", r.URL.Path)
		}
		w.WriteHeader(http.StatusOK)
	})

	if !c.HealthCheck(context.Background()) {
		t.Error("HealthCheck = false for healthy feed")
	}
	if !c.lastRequest.IsZero() {
		t.Error("health check must not touch price rate limiter bookkeeping")
	}

	down := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "down", http.StatusInternalServerError)
	})
	if down.HealthCheck(context.Background()) {
		t.Error("HealthCheck = true for failing feed")
	}
}

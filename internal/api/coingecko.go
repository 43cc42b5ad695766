package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"portfolio-advisor/internal/asset"
	"portfolio-advisor/internal/model"
	"portfolio-advisor/internal/service"
)

// FeedUnavailableError reports a failed price fetch: transport error,
// non-success status, or a payload that could not be decoded. It carries the
// requested symbols so the caller can decide on fallback per symbol.
type FeedUnavailableError struct {
	Status  int // 0 when the request never got a response
	Symbols []string
	Err     error
}

func (e *FeedUnavailableError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("price feed unavailable (status %d, symbols %v): %v", e.Status, e.Symbols, e.Err)
	}
	return fmt.Sprintf("price feed unavailable (status %d, symbols %v)", e.Status, e.Symbols)
}

func (e *FeedUnavailableError) Unwrap() error { return e.Err }

// geckoPrice is the per-coin payload of the CoinGecko simple/price endpoint.
type geckoPrice struct {
	USD          float64 `json:"usd"`
	USDMarketCap float64 `json:"usd_market_cap"`
	USD24hVol    float64 `json:"usd_24h_vol"`
	USD24hChange float64 `json:"usd_24h_change"`
}

// Client fetches spot prices from the CoinGecko HTTP API. It enforces a
// minimum delay between price requests by blocking the caller, never by
// dropping the request.
type Client struct {
	baseURL     string
	apiKey      string
	minInterval time.Duration
	httpClient  *http.Client
	registry    *asset.Registry

	mu          sync.Mutex
	lastRequest time.Time

	// overridable in tests
	now   func() time.Time
	sleep func(time.Duration)
}

// NewClient builds a feed client. The registry translates portfolio symbols
// into feed identifiers.
func NewClient(cfg *service.FeedConfig, registry *asset.Registry) *Client {
	return &Client{
		baseURL:     strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:      cfg.APIKey,
		minInterval: cfg.MinRequestInterval,
		httpClient:  &http.Client{Timeout: cfg.RequestTimeout},
		registry:    registry,
		now:         time.Now,
		sleep:       time.Sleep,
	}
}

// FetchPrices resolves the symbols to feed identifiers and issues one batched
// request for all of them. Symbols without a registry entry are excluded from
// the request and from the result; symbols the feed returns no data for are
// dropped with a warning. Every returned record has provenance live.
func (c *Client) FetchPrices(ctx context.Context, symbols []string) ([]model.PriceRecord, error) {
	var order []string
	byFeedID := make(map[string]asset.Config)
	for _, s := range symbols {
		cfg, ok := c.registry.Get(s)
		if !ok {
			service.Logger.Warn("Symbol has no feed mapping, excluded from request", zap.String("symbol", s))
			continue
		}
		if _, dup := byFeedID[cfg.FeedID]; dup {
			continue
		}
		byFeedID[cfg.FeedID] = cfg
		order = append(order, cfg.FeedID)
	}
	if len(order) == 0 {
		return nil, nil
	}

	c.waitRateLimit()

	q := url.Values{}
	q.Set("ids", strings.Join(order, ","))
	q.Set("vs_currencies", "usd")
	q.Set("include_24hr_change", "true")
	q.Set("include_24hr_vol", "true")
	q.Set("include_market_cap", "true")
	addr := c.baseURL + "/simple/price?" + q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, addr, nil)
	if err != nil {
		return nil, &FeedUnavailableError{Symbols: symbols, Err: err}
	}
	if c.apiKey != "" {
		req.Header.Set("x-cg-demo-api-key", c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &FeedUnavailableError{Symbols: symbols, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &FeedUnavailableError{Status: resp.StatusCode, Symbols: symbols}
	}

	var payload map[string]geckoPrice
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, &FeedUnavailableError{Status: resp.StatusCode, Symbols: symbols, Err: err}
	}

	fetchedAt := c.now()
	records := make([]model.PriceRecord, 0, len(order))
	for _, id := range order {
		cfg := byFeedID[id]
		data, ok := payload[id]
		if !ok {
			// Feed omitted the coin: no data, not an error.
			service.Logger.Warn("No feed data for symbol",
				zap.String("symbol", cfg.Symbol), zap.String("feed_id", id))
			continue
		}
		records = append(records, model.PriceRecord{
			Symbol:    strings.ToUpper(cfg.Symbol),
			Name:      cfg.Name,
			Price:     data.USD,
			Change24h: data.USD24hChange,
			Volume:    data.USD24hVol,
			MarketCap: data.USDMarketCap,
			FetchedAt: fetchedAt,
			Source:    model.SourceLive,
		})
	}
	return records, nil
}

// HealthCheck probes feed reachability via the ping endpoint. It does not
// consume a priced response and does not touch the price rate limiter.
func (c *Client) HealthCheck(ctx context.Context) bool {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/ping", nil)
	if err != nil {
		return false
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		service.Logger.Warn("Feed health check failed", zap.Error(err))
		return false
	}
	defer resp.Body.Close()
	return resp.StatusCode == http.StatusOK
}

// waitRateLimit blocks until the minimum interval since the previous price
// request has elapsed, then claims the slot. Concurrent fetches serialize here.
func (c *Client) waitRateLimit() {
	c.mu.Lock()
	defer c.mu.Unlock()

	elapsed := c.now().Sub(c.lastRequest)
	if !c.lastRequest.IsZero() && elapsed < c.minInterval {
		c.sleep(c.minInterval - elapsed)
	}
	c.lastRequest = c.now()
}

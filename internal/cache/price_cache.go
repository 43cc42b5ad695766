package cache

import (
	"context"
	"errors"
	"math"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"portfolio-advisor/internal/api"
	"portfolio-advisor/internal/asset"
	"portfolio-advisor/internal/model"
	"portfolio-advisor/internal/service"
)

// PriceFetcher is the upstream the cache misses to. Satisfied by api.Client.
type PriceFetcher interface {
	FetchPrices(ctx context.Context, symbols []string) ([]model.PriceRecord, error)
}

// Stats is a snapshot of the cache counters.
type Stats struct {
	Hits          int
	Misses        int
	APICalls      int
	FallbackCalls int
	HitRate       float64 // percent, rounded to two decimals
	CacheSize     int
	LastReset     time.Time
}

type entry struct {
	record     model.PriceRecord
	insertedAt time.Time
}

// PriceCache fronts the price feed with a time-boxed in-memory cache and a
// static fallback table. Feed failures never escape: every symbol either
// resolves (cached, live, or fallback) or is dropped with a warning.
type PriceCache struct {
	fetcher   PriceFetcher
	freshness time.Duration
	registry  *asset.Registry

	mu            sync.Mutex
	entries       map[string]entry
	fallback      map[string]model.PriceRecord
	hits          int
	misses        int
	apiCalls      int
	fallbackCalls int
	lastReset     time.Time

	now func() time.Time
}

// NewPriceCache builds a cache over the given fetcher. The fallback table is
// keyed by symbol; display names come from the registry.
func NewPriceCache(fetcher PriceFetcher, registry *asset.Registry, cfg service.CacheConfig, fallback map[string]service.FallbackPrice) *PriceCache {
	c := &PriceCache{
		fetcher:   fetcher,
		freshness: cfg.FreshnessWindow,
		registry:  registry,
		entries:   make(map[string]entry),
		fallback:  make(map[string]model.PriceRecord, len(fallback)),
		lastReset: time.Now(),
		now:       time.Now,
	}
	for sym, fb := range fallback {
		c.fallback[strings.ToUpper(sym)] = c.fallbackRecord(sym, fb)
	}
	return c
}

func (c *PriceCache) fallbackRecord(symbol string, fb service.FallbackPrice) model.PriceRecord {
	sym := strings.ToUpper(symbol)
	name := sym
	if cfg, ok := c.registry.Get(sym); ok {
		name = cfg.Name
	}
	return model.PriceRecord{
		Symbol:    sym,
		Name:      name,
		Price:     fb.Price,
		Change24h: fb.Change24h,
		Volume:    fb.Volume,
		MarketCap: fb.MarketCap,
		Source:    model.SourceFallback,
	}
}

// GetPrices resolves a batch of symbols. Fresh cache entries are served
// directly; the rest go to the fetcher in one batch. On fetch failure each
// missing symbol falls back to the static table or is dropped. The result may
// hold fewer records than symbols requested.
func (c *PriceCache) GetPrices(ctx context.Context, symbols []string) []model.PriceRecord {
	results := make([]model.PriceRecord, 0, len(symbols))
	var toFetch []string

	c.mu.Lock()
	nowTs := c.now()
	for _, s := range symbols {
		sym := strings.ToUpper(s)
		e, ok := c.entries[sym]
		if ok && nowTs.Sub(e.insertedAt) <= c.freshness {
			rec := e.record
			rec.Source = model.SourceCached
			results = append(results, rec)
			c.hits++
			continue
		}
		if ok {
			// Stale entries are treated as absent.
			delete(c.entries, sym)
		}
		toFetch = append(toFetch, sym)
		c.misses++
	}
	c.mu.Unlock()

	if len(toFetch) == 0 {
		return results
	}

	fetched, err := c.fetcher.FetchPrices(ctx, toFetch)
	if err != nil {
		var feedErr *api.FeedUnavailableError
		if errors.As(err, &feedErr) {
			service.Logger.Warn("Price fetch failed, using fallback prices",
				zap.Int("status", feedErr.Status), zap.Strings("symbols", toFetch))
		} else {
			service.Logger.Warn("Price fetch failed, using fallback prices", zap.Error(err))
		}
		return append(results, c.resolveFallbacks(toFetch)...)
	}

	c.mu.Lock()
	c.apiCalls++
	for _, rec := range fetched {
		// Last write wins per symbol; fallback values are never written here.
		c.entries[strings.ToUpper(rec.Symbol)] = entry{record: rec, insertedAt: rec.FetchedAt}
	}
	c.mu.Unlock()

	return append(results, fetched...)
}

// resolveFallbacks returns fallback records for the symbols that have one and
// drops the rest. Fallback values are not written into the cache.
func (c *PriceCache) resolveFallbacks(symbols []string) []model.PriceRecord {
	c.mu.Lock()
	defer c.mu.Unlock()

	var out []model.PriceRecord
	for _, sym := range symbols {
		fb, ok := c.fallback[sym]
		if !ok {
			service.Logger.Warn("No fallback price, symbol dropped", zap.String("symbol", sym))
			continue
		}
		fb.FetchedAt = c.now()
		out = append(out, fb)
		c.fallbackCalls++
	}
	return out
}

// GetPrice resolves a single symbol. The second return is false when neither
// cache, feed, nor fallback produced a price.
func (c *PriceCache) GetPrice(ctx context.Context, symbol string) (model.PriceRecord, bool) {
	records := c.GetPrices(ctx, []string{symbol})
	if len(records) == 0 {
		return model.PriceRecord{}, false
	}
	return records[0], true
}

// ClearExpired drops every entry older than the freshness window.
func (c *PriceCache) ClearExpired() {
	c.mu.Lock()
	defer c.mu.Unlock()

	nowTs := c.now()
	for sym, e := range c.entries {
		if nowTs.Sub(e.insertedAt) > c.freshness {
			delete(c.entries, sym)
		}
	}
}

// ClearAll drops every entry and resets the counters.
func (c *PriceCache) ClearAll() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries = make(map[string]entry)
	c.hits = 0
	c.misses = 0
	c.apiCalls = 0
	c.fallbackCalls = 0
	c.lastReset = c.now()
}

// UpdateFallbackPrice replaces the fallback entry for a symbol. Symbols
// without an existing fallback entry are ignored, matching the static nature
// of the table.
func (c *PriceCache) UpdateFallbackPrice(symbol string, fb service.FallbackPrice) {
	sym := strings.ToUpper(symbol)

	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.fallback[sym]; !ok {
		return
	}
	c.fallback[sym] = c.fallbackRecord(sym, fb)
}

// GetStats returns a snapshot of the counters.
func (c *PriceCache) GetStats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()

	total := c.hits + c.misses
	hitRate := 0.0
	if total > 0 {
		hitRate = math.Round(float64(c.hits)/float64(total)*100*100) / 100
	}
	return Stats{
		Hits:          c.hits,
		Misses:        c.misses,
		APICalls:      c.apiCalls,
		FallbackCalls: c.fallbackCalls,
		HitRate:       hitRate,
		CacheSize:     len(c.entries),
		LastReset:     c.lastReset,
	}
}

package asset

import (
	"strings"

	"portfolio-advisor/internal/model"
)

// Config describes one supported asset. The table is static and immutable
// for the lifetime of the process.
type Config struct {
	Symbol        string
	Name          string
	FeedID        string // identifier on the external price feed
	Category      model.Category
	RiskLevel     model.RiskLevel
	Liquidity     model.LiquidityTier
	MarketCapRank int
	Description   string
	Tags          []string
}

// RiskProfile selects a slice of the table suited to an investor type.
type RiskProfile string

const (
	ProfileConservative RiskProfile = "conservative"
	ProfileModerate     RiskProfile = "moderate"
	ProfileAggressive   RiskProfile = "aggressive"
)

var supportedAssets = []Config{
	{
		Symbol: "BTC", Name: "Bitcoin", FeedID: "bitcoin",
		Category: model.CategoryCrypto, RiskLevel: model.RiskMedium, Liquidity: model.LiquidityHighest,
		MarketCapRank: 1,
		Description:   "The first and largest cryptocurrency by market cap",
		Tags:          []string{"store-of-value", "digital-gold", "proof-of-work"},
	},
	{
		Symbol: "ETH", Name: "Ethereum", FeedID: "ethereum",
		Category: model.CategoryLayer1, RiskLevel: model.RiskMedium, Liquidity: model.LiquidityHighest,
		MarketCapRank: 2,
		Description:   "Smart contract platform and DeFi ecosystem",
		Tags:          []string{"smart-contracts", "defi", "proof-of-stake", "layer1"},
	},
	{
		Symbol: "USDC", Name: "USD Coin", FeedID: "usd-coin",
		Category: model.CategoryStablecoin, RiskLevel: model.RiskLow, Liquidity: model.LiquidityHighest,
		MarketCapRank: 3,
		Description:   "USD-pegged stablecoin by Circle",
		Tags:          []string{"stablecoin", "usd-pegged", "low-volatility"},
	},
	{
		Symbol: "USDT", Name: "Tether", FeedID: "tether",
		Category: model.CategoryStablecoin, RiskLevel: model.RiskLow, Liquidity: model.LiquidityHighest,
		MarketCapRank: 4,
		Description:   "USD-pegged stablecoin by Tether",
		Tags:          []string{"stablecoin", "usd-pegged", "trading-pairs"},
	},
	{
		Symbol: "UNI", Name: "Uniswap", FeedID: "uniswap",
		Category: model.CategoryDefi, RiskLevel: model.RiskHigh, Liquidity: model.LiquidityHigh,
		MarketCapRank: 20,
		Description:   "Decentralized exchange protocol governance token",
		Tags:          []string{"defi", "dex", "governance", "amm"},
	},
	{
		Symbol: "LINK", Name: "Chainlink", FeedID: "chainlink",
		Category: model.CategoryDefi, RiskLevel: model.RiskHigh, Liquidity: model.LiquidityHigh,
		MarketCapRank: 15,
		Description:   "Decentralized oracle network",
		Tags:          []string{"defi", "oracles", "data-feeds", "infrastructure"},
	},
	{
		Symbol: "SOL", Name: "Solana", FeedID: "solana",
		Category: model.CategoryLayer1, RiskLevel: model.RiskHigh, Liquidity: model.LiquidityHigh,
		MarketCapRank: 5,
		Description:   "High-performance blockchain platform",
		Tags:          []string{"layer1", "high-throughput", "proof-of-history"},
	},
	{
		Symbol: "ADA", Name: "Cardano", FeedID: "cardano",
		Category: model.CategoryLayer1, RiskLevel: model.RiskHigh, Liquidity: model.LiquidityHigh,
		MarketCapRank: 8,
		Description:   "Research-driven blockchain platform",
		Tags:          []string{"layer1", "proof-of-stake", "research-driven"},
	},
	{
		Symbol: "MATIC", Name: "Polygon", FeedID: "matic-network",
		Category: model.CategoryLayer2, RiskLevel: model.RiskHigh, Liquidity: model.LiquidityHigh,
		MarketCapRank: 12,
		Description:   "Ethereum scaling solution",
		Tags:          []string{"layer2", "ethereum-scaling", "sidechain"},
	},
	{
		Symbol: "DOGE", Name: "Dogecoin", FeedID: "dogecoin",
		Category: model.CategoryMeme, RiskLevel: model.RiskVeryHigh, Liquidity: model.LiquidityHigh,
		MarketCapRank: 10,
		Description:   "Community-driven meme cryptocurrency",
		Tags:          []string{"meme", "community-driven", "proof-of-work"},
	},
	{
		Symbol: "BNB", Name: "Binance Coin", FeedID: "binancecoin",
		Category: model.CategoryCrypto, RiskLevel: model.RiskMedium, Liquidity: model.LiquidityHigh,
		MarketCapRank: 6,
		Description:   "Binance exchange utility token",
		Tags:          []string{"exchange-token", "utility", "binance-ecosystem"},
	},
	{
		Symbol: "XRP", Name: "Ripple", FeedID: "ripple",
		Category: model.CategoryCrypto, RiskLevel: model.RiskHigh, Liquidity: model.LiquidityHigh,
		MarketCapRank: 7,
		Description:   "Digital payment protocol",
		Tags:          []string{"payments", "banking", "xrp-ledger"},
	},
	{
		Symbol: "DOT", Name: "Polkadot", FeedID: "polkadot",
		Category: model.CategoryLayer1, RiskLevel: model.RiskHigh, Liquidity: model.LiquidityHigh,
		MarketCapRank: 9,
		Description:   "Multi-chain blockchain platform",
		Tags:          []string{"layer1", "multi-chain", "parachains", "governance"},
	},
	{
		Symbol: "AVAX", Name: "Avalanche", FeedID: "avalanche-2",
		Category: model.CategoryLayer1, RiskLevel: model.RiskHigh, Liquidity: model.LiquidityHigh,
		MarketCapRank: 11,
		Description:   "High-performance blockchain platform",
		Tags:          []string{"layer1", "high-throughput", "subnets"},
	},
	{
		Symbol: "LTC", Name: "Litecoin", FeedID: "litecoin",
		Category: model.CategoryCrypto, RiskLevel: model.RiskMedium, Liquidity: model.LiquidityHigh,
		MarketCapRank: 13,
		Description:   "Digital silver to Bitcoin's gold",
		Tags:          []string{"digital-silver", "proof-of-work", "fast-transactions"},
	},
	{
		Symbol: "ATOM", Name: "Cosmos", FeedID: "cosmos",
		Category: model.CategoryLayer1, RiskLevel: model.RiskHigh, Liquidity: model.LiquidityMedium,
		MarketCapRank: 25,
		Description:   "Internet of blockchains",
		Tags:          []string{"layer1", "interoperability", "cosmos-sdk"},
	},
}

// Registry is a read-only lookup over the supported asset table.
// Lookups are case-insensitive; symbols are normalized to uppercase.
type Registry struct {
	bySymbol map[string]Config
	ordered  []Config
}

// NewRegistry builds a registry over the static asset table.
func NewRegistry() *Registry {
	r := &Registry{
		bySymbol: make(map[string]Config, len(supportedAssets)),
		ordered:  supportedAssets,
	}
	for _, a := range supportedAssets {
		r.bySymbol[strings.ToUpper(a.Symbol)] = a
	}
	return r
}

// Get returns the config for a symbol, or false when the symbol is unsupported.
func (r *Registry) Get(symbol string) (Config, bool) {
	c, ok := r.bySymbol[strings.ToUpper(symbol)]
	return c, ok
}

// IsSupported reports whether the symbol has a registry entry.
func (r *Registry) IsSupported(symbol string) bool {
	_, ok := r.bySymbol[strings.ToUpper(symbol)]
	return ok
}

// Symbols returns all supported symbols in table order.
func (r *Registry) Symbols() []string {
	out := make([]string, len(r.ordered))
	for i, a := range r.ordered {
		out[i] = a.Symbol
	}
	return out
}

// ByCategory returns all assets in the given category, in table order.
func (r *Registry) ByCategory(c model.Category) []Config {
	var out []Config
	for _, a := range r.ordered {
		if a.Category == c {
			out = append(out, a)
		}
	}
	return out
}

// ByRiskLevel returns all assets with the given risk level, in table order.
func (r *Registry) ByRiskLevel(level model.RiskLevel) []Config {
	var out []Config
	for _, a := range r.ordered {
		if a.RiskLevel == level {
			out = append(out, a)
		}
	}
	return out
}

// ByLiquidity returns all assets with the given liquidity tier, in table order.
func (r *Registry) ByLiquidity(tier model.LiquidityTier) []Config {
	var out []Config
	for _, a := range r.ordered {
		if a.Liquidity == tier {
			out = append(out, a)
		}
	}
	return out
}

// FeedIDs maps symbols to their feed identifiers, skipping unsupported symbols.
func (r *Registry) FeedIDs(symbols []string) []string {
	var ids []string
	for _, s := range symbols {
		if a, ok := r.Get(s); ok {
			ids = append(ids, a.FeedID)
		}
	}
	return ids
}

// RecommendForProfile returns assets suited to a risk profile. Unknown
// profiles get the full table.
func (r *Registry) RecommendForProfile(profile RiskProfile) []Config {
	switch profile {
	case ProfileConservative:
		out := r.ByRiskLevel(model.RiskLow)
		medium := r.ByRiskLevel(model.RiskMedium)
		if len(medium) > 3 {
			medium = medium[:3]
		}
		return append(out, medium...)
	case ProfileModerate:
		out := r.ByRiskLevel(model.RiskMedium)
		high := r.ByRiskLevel(model.RiskHigh)
		if len(high) > 5 {
			high = high[:5]
		}
		return append(out, high...)
	case ProfileAggressive:
		var out []Config
		for _, a := range r.ordered {
			if a.RiskLevel == model.RiskHigh || a.RiskLevel == model.RiskVeryHigh {
				out = append(out, a)
			}
		}
		return out
	default:
		out := make([]Config, len(r.ordered))
		copy(out, r.ordered)
		return out
	}
}

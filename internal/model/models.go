package model

import "time"

// Category classifies a supported asset.
type Category string

const (
	CategoryCrypto     Category = "crypto"
	CategoryStablecoin Category = "stablecoin"
	CategoryDefi       Category = "defi"
	CategoryMeme       Category = "meme"
	CategoryLayer1     Category = "layer1"
	CategoryLayer2     Category = "layer2"
	CategoryUnknown    Category = "unknown"
)

// RiskLevel is the coarse risk tier of an asset.
type RiskLevel string

const (
	RiskLow      RiskLevel = "low"
	RiskMedium   RiskLevel = "medium"
	RiskHigh     RiskLevel = "high"
	RiskVeryHigh RiskLevel = "very-high"
	RiskUnknown  RiskLevel = "unknown"
)

// LiquidityTier classifies how easily an asset can be sold without moving its price.
type LiquidityTier string

const (
	LiquidityHighest LiquidityTier = "highest"
	LiquidityHigh    LiquidityTier = "high"
	LiquidityMedium  LiquidityTier = "medium"
	LiquidityLow     LiquidityTier = "low"
	LiquidityUnknown LiquidityTier = "unknown"
)

// Provenance tags where a resolved price came from.
type Provenance string

const (
	SourceLive     Provenance = "live"
	SourceCached   Provenance = "cached"
	SourceFallback Provenance = "fallback"
)

// PriceRecord is one resolved price for one symbol. Records are immutable;
// a refreshed price is a new record.
type PriceRecord struct {
	Symbol    string
	Name      string
	Price     float64 // USD
	Change24h float64 // signed percent
	Volume    float64
	MarketCap float64
	FetchedAt time.Time
	Source    Provenance
}

// Holding is one position supplied by the caller. Not persisted.
type Holding struct {
	Symbol   string  `mapstructure:"Symbol"`
	Quantity float64 `mapstructure:"Quantity"`
}

// SellPlanLine is one recommended partial or full liquidation.
type SellPlanLine struct {
	Symbol         string
	SellAmount     float64 // USD raised from this holding
	QuantityToSell float64 // units of the asset
	SellPercentage float64 // share of the holding liquidated, 0..100
}

// SellPlan is the planner output. Lines are in selection order; UnmetAmount
// is whatever part of the target the holdings could not cover.
type SellPlan struct {
	Lines       []SellPlanLine
	UnmetAmount float64
}

// PortfolioAsset is a priced, annotated holding used for portfolio summaries.
type PortfolioAsset struct {
	Symbol     string
	Balance    float64
	Price      float64
	Value      float64
	Percentage float64 // share of total portfolio value, 0..100
	Change24h  float64
	Liquidity  LiquidityTier
	RiskLevel  RiskLevel
	Category   Category
}

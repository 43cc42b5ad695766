package advisor

import (
	"context"
	"strings"

	"portfolio-advisor/internal/asset"
	"portfolio-advisor/internal/model"
	"portfolio-advisor/internal/planner"
)

// PriceLookup is the pricing surface the advisor reads portfolio values from.
type PriceLookup interface {
	GetPrices(ctx context.Context, symbols []string) []model.PriceRecord
}

// Response is the structured answer to one question. Formatting for display
// belongs to the presentation layer.
type Response struct {
	Intent      Intent
	Plan        *model.SellPlan        // set for IntentNeedMoney
	Target      float64                // the cash amount extracted from the question
	Portfolio   []model.PortfolioAsset // set for IntentPortfolioQuery
	TotalValue  float64
	NeedsAmount bool // sell advice was asked without an amount
}

// Advisor dispatches phrase-matched questions to the pricing and planning core.
type Advisor struct {
	prices   PriceLookup
	planner  *planner.Planner
	registry *asset.Registry
}

func New(prices PriceLookup, plan *planner.Planner, registry *asset.Registry) *Advisor {
	return &Advisor{prices: prices, planner: plan, registry: registry}
}

// Handle answers one natural-language question about the given holdings.
// Questions that match no known intent return an IntentNone response.
func (a *Advisor) Handle(ctx context.Context, text string, holdings []model.Holding) (Response, error) {
	intent, amount := ParseIntent(text)

	switch intent {
	case IntentNeedMoney:
		plan, err := a.planner.Plan(ctx, holdings, amount)
		if err != nil {
			return Response{Intent: intent, Target: amount}, err
		}
		return Response{Intent: intent, Target: amount, Plan: &plan}, nil

	case IntentPortfolioQuery:
		portfolio, total := a.Snapshot(ctx, holdings)
		return Response{Intent: intent, Portfolio: portfolio, TotalValue: total}, nil

	case IntentSellAdvice:
		// Sell advice without an amount: the caller has to ask for one.
		return Response{Intent: intent, NeedsAmount: true}, nil

	default:
		return Response{Intent: IntentNone}, nil
	}
}

// Snapshot prices the holdings and annotates each with registry metadata and
// its share of the total value. Holdings with no resolvable price are dropped.
func (a *Advisor) Snapshot(ctx context.Context, holdings []model.Holding) ([]model.PortfolioAsset, float64) {
	symbols := make([]string, len(holdings))
	for i, h := range holdings {
		symbols[i] = h.Symbol
	}
	records := a.prices.GetPrices(ctx, symbols)
	bySymbol := make(map[string]model.PriceRecord, len(records))
	for _, r := range records {
		bySymbol[r.Symbol] = r
	}

	var assets []model.PortfolioAsset
	var total float64
	for _, h := range holdings {
		rec, ok := bySymbol[strings.ToUpper(h.Symbol)]
		if !ok {
			continue
		}
		pa := model.PortfolioAsset{
			Symbol:    rec.Symbol,
			Balance:   h.Quantity,
			Price:     rec.Price,
			Value:     h.Quantity * rec.Price,
			Change24h: rec.Change24h,
			Liquidity: model.LiquidityUnknown,
			RiskLevel: model.RiskUnknown,
			Category:  model.CategoryUnknown,
		}
		if cfg, found := a.registry.Get(h.Symbol); found {
			pa.Liquidity = cfg.Liquidity
			pa.RiskLevel = cfg.RiskLevel
			pa.Category = cfg.Category
		}
		assets = append(assets, pa)
		total += pa.Value
	}

	if total > 0 {
		for i := range assets {
			assets[i].Percentage = assets[i].Value / total * 100
		}
	}
	return assets, total
}

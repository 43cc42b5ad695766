package planner

import (
	"context"
	"errors"
	"sort"
	"strings"

	"go.uber.org/zap"

	"portfolio-advisor/internal/asset"
	"portfolio-advisor/internal/model"
	"portfolio-advisor/internal/service"
)

// ErrInvalidTarget rejects planning with a non-positive target amount.
var ErrInvalidTarget = errors.New("target amount must be positive")

// PriceLookup is the pricing surface the planner consumes. Satisfied by
// cache.PriceCache.
type PriceLookup interface {
	GetPrices(ctx context.Context, symbols []string) []model.PriceRecord
}

// Planner builds greedy sell plans: most liquid, least risky assets first.
type Planner struct {
	prices   PriceLookup
	registry *asset.Registry
}

func New(prices PriceLookup, registry *asset.Registry) *Planner {
	return &Planner{prices: prices, registry: registry}
}

// candidate is one priced holding under consideration. Lives only within a
// single Plan call.
type candidate struct {
	holding model.Holding
	record  model.PriceRecord
	value   float64
	score   int
}

var liquidityRank = map[model.LiquidityTier]int{
	model.LiquidityHighest: 4,
	model.LiquidityHigh:    3,
	model.LiquidityMedium:  2,
	model.LiquidityLow:     1,
}

var riskRank = map[model.RiskLevel]int{
	model.RiskLow:      4,
	model.RiskMedium:   3,
	model.RiskHigh:     2,
	model.RiskVeryHigh: 1,
}

// Plan picks which holdings to sell to raise targetAmount. Candidates are
// ordered by liquidity rank plus risk rank (descending, ties keep holdings
// order) and consumed greedily until the target is met or holdings run out.
// Holdings with no resolvable price are excluded; they never abort the plan.
func (p *Planner) Plan(ctx context.Context, holdings []model.Holding, targetAmount float64) (model.SellPlan, error) {
	if targetAmount <= 0 {
		return model.SellPlan{}, ErrInvalidTarget
	}

	symbols := make([]string, len(holdings))
	for i, h := range holdings {
		symbols[i] = h.Symbol
	}
	records := p.prices.GetPrices(ctx, symbols)
	bySymbol := make(map[string]model.PriceRecord, len(records))
	for _, r := range records {
		bySymbol[r.Symbol] = r
	}

	candidates := make([]candidate, 0, len(holdings))
	for _, h := range holdings {
		rec, ok := bySymbol[strings.ToUpper(h.Symbol)]
		if !ok || rec.Price <= 0 {
			service.Logger.Warn("Holding has no resolvable price, excluded from plan",
				zap.String("symbol", h.Symbol))
			continue
		}
		candidates = append(candidates, candidate{
			holding: h,
			record:  rec,
			value:   h.Quantity * rec.Price,
			score:   p.score(h.Symbol),
		})
	}

	// Stable keeps the original holdings order on equal scores, so plans
	// are deterministic.
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].score > candidates[j].score
	})

	plan := model.SellPlan{}
	remaining := targetAmount
	for _, cand := range candidates {
		if remaining <= 0 {
			break
		}
		sellAmount := remaining
		if cand.value < sellAmount {
			sellAmount = cand.value
		}
		if sellAmount <= 0 {
			continue
		}
		plan.Lines = append(plan.Lines, model.SellPlanLine{
			Symbol:         cand.record.Symbol,
			SellAmount:     sellAmount,
			QuantityToSell: sellAmount / cand.record.Price,
			SellPercentage: sellAmount / cand.value * 100,
		})
		remaining -= sellAmount
	}

	if remaining > 0 {
		plan.UnmetAmount = remaining
	}
	return plan, nil
}

// score ranks a symbol by its liquidity and risk tiers. Unknown symbols score
// zero on both axes and land at the back of the queue.
func (p *Planner) score(symbol string) int {
	liquidity := model.LiquidityUnknown
	risk := model.RiskUnknown
	if cfg, ok := p.registry.Get(symbol); ok {
		liquidity = cfg.Liquidity
		risk = cfg.RiskLevel
	}
	return liquidityRank[liquidity] + riskRank[risk]
}

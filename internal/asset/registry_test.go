package asset

import (
	"testing"

	"portfolio-advisor/internal/model"
)

func TestGetIsCaseInsensitive(t *testing.T) {
	r := NewRegistry()

	for _, sym := range []string{"BTC", "btc", "Btc"} {
		cfg, ok := r.Get(sym)
		if !ok {
			t.Fatalf("Get(%q) not found", sym)
		}
		if cfg.FeedID != "bitcoin" {
			t.Errorf("Get(%q) FeedID = %q, want bitcoin", sym, cfg.FeedID)
		}
	}
}

func TestGetUnknownSymbol(t *testing.T) {
	r := NewRegistry()

	if _, ok := r.Get("NOPE"); ok {
		t.Error("expected unknown symbol to be absent")
	}
	if r.IsSupported("NOPE") {
		t.Error("IsSupported(NOPE) = true")
	}
}

func TestSymbolsKeepTableOrder(t *testing.T) {
	r := NewRegistry()

	symbols := r.Symbols()
	if len(symbols) != 16 {
		t.Fatalf("expected 16 symbols, got %d", len(symbols))
	}
	if symbols[0] != "BTC" || symbols[1] != "ETH" || symbols[15] != "ATOM" {
		t.Errorf("unexpected ordering: first=%s second=%s last=%s", symbols[0], symbols[1], symbols[15])
	}

	// Symbols must be stable across calls.
	again := r.Symbols()
	for i := range symbols {
		if symbols[i] != again[i] {
			t.Fatalf("ordering not stable at index %d: %s vs %s", i, symbols[i], again[i])
		}
	}
}

func TestFilters(t *testing.T) {
	r := NewRegistry()

	stables := r.ByCategory(model.CategoryStablecoin)
	if len(stables) != 2 {
		t.Errorf("expected 2 stablecoins, got %d", len(stables))
	}

	lowRisk := r.ByRiskLevel(model.RiskLow)
	for _, a := range lowRisk {
		if a.RiskLevel != model.RiskLow {
			t.Errorf("ByRiskLevel(low) returned %s with risk %s", a.Symbol, a.RiskLevel)
		}
	}

	highest := r.ByLiquidity(model.LiquidityHighest)
	if len(highest) != 4 {
		t.Errorf("expected 4 highest-liquidity assets, got %d", len(highest))
	}
}

func TestFeedIDsSkipUnknown(t *testing.T) {
	r := NewRegistry()

	ids := r.FeedIDs([]string{"btc", "NOPE", "eth"})
	if len(ids) != 2 || ids[0] != "bitcoin" || ids[1] != "ethereum" {
		t.Errorf("FeedIDs = %v, want [bitcoin ethereum]", ids)
	}
}

func TestRecommendForProfile(t *testing.T) {
	r := NewRegistry()

	conservative := r.RecommendForProfile(ProfileConservative)
	for _, a := range conservative {
		if a.RiskLevel != model.RiskLow && a.RiskLevel != model.RiskMedium {
			t.Errorf("conservative profile includes %s with risk %s", a.Symbol, a.RiskLevel)
		}
	}

	aggressive := r.RecommendForProfile(ProfileAggressive)
	for _, a := range aggressive {
		if a.RiskLevel != model.RiskHigh && a.RiskLevel != model.RiskVeryHigh {
			t.Errorf("aggressive profile includes %s with risk %s", a.Symbol, a.RiskLevel)
		}
	}

	all := r.RecommendForProfile("unknown-profile")
	if len(all) != 16 {
		t.Errorf("unknown profile should return the full table, got %d assets", len(all))
	}
}

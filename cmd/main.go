package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"

	"portfolio-advisor/internal/advisor"
	"portfolio-advisor/internal/api"
	"portfolio-advisor/internal/asset"
	"portfolio-advisor/internal/cache"
	"portfolio-advisor/internal/planner"
	"portfolio-advisor/internal/service"
)

func main() {
	service.InitLogger()
	defer service.Logger.Sync()

	configPath := "config"
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		service.Logger.Fatal("Configuration directory 'config/' not found. Please create it.")
	}
	cfg := service.LoadConfig(configPath)

	// Wire the core: registry -> feed client -> cache -> planner -> advisor.
	registry := asset.NewRegistry()
	feed := api.NewClient(&cfg.Feed, registry)
	prices := cache.NewPriceCache(feed, registry, cfg.Cache, cfg.Fallback)
	plan := planner.New(prices, registry)
	adv := advisor.New(prices, plan, registry)

	ctx := context.Background()

	if !feed.HealthCheck(ctx) {
		service.Logger.Warn("Price feed unreachable, answers may rely on fallback prices")
	}

	question := strings.Join(os.Args[1:], " ")
	if question == "" {
		question = "What is my portfolio worth?"
	}

	service.Logger.Info("Answering question",
		zap.String("question", question),
		zap.Int("holdings", len(cfg.Portfolio.Holdings)))

	resp, err := adv.Handle(ctx, question, cfg.Portfolio.Holdings)
	if err != nil {
		service.Logger.Fatal("Could not answer question", zap.Error(err))
	}

	out, err := json.MarshalIndent(resp, "", "  ")
	if err != nil {
		service.Logger.Fatal("Could not encode response", zap.Error(err))
	}
	fmt.Println(string(out))

	stats := prices.GetStats()
	service.Logger.Info("Cache stats",
		zap.Int("hits", stats.Hits),
		zap.Int("misses", stats.Misses),
		zap.Int("api_calls", stats.APICalls),
		zap.Int("fallback_calls", stats.FallbackCalls),
		zap.Float64("hit_rate", stats.HitRate),
		zap.Int("cache_size", stats.CacheSize))
}

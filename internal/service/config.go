package service

import (
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"portfolio-advisor/internal/model"
)

// FeedConfig holds the connection settings for the external price feed.
type FeedConfig struct {
	BaseURL            string
	APIKey             string
	RequestTimeout     time.Duration
	MinRequestInterval time.Duration // blocking delay enforced between price requests
}

// CacheConfig tunes the price cache.
type CacheConfig struct {
	FreshnessWindow time.Duration // max age before a cached price is stale
}

// FallbackPrice is one static price used when the feed is unreachable.
type FallbackPrice struct {
	Price     float64
	Change24h float64
	Volume    float64
	MarketCap float64
}

// PortfolioConfig holds the demo holdings priced by cmd/main.go.
type PortfolioConfig struct {
	Holdings []model.Holding
}

type Config struct {
	Feed      FeedConfig               `mapstructure:"Feed"`
	Cache     CacheConfig              `mapstructure:"Cache"`
	Fallback  map[string]FallbackPrice `mapstructure:"Fallback"`
	Portfolio PortfolioConfig          `mapstructure:"Portfolio"`
}

// LoadConfig reads config.yaml from configPath and resolves the feed API key
// from the environment. A .env file is honored when present.
func LoadConfig(configPath string) *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(configPath)

	viper.SetDefault("Feed.BaseURL", "https://api.coingecko.com/api/v3")
	viper.SetDefault("Feed.RequestTimeout", "10s")
	viper.SetDefault("Feed.MinRequestInterval", "5s")
	viper.SetDefault("Cache.FreshnessWindow", "5m")

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			log.Fatalf("Config file not found: %s", err)
		} else {
			log.Fatalf("Error reading config file: %s", err)
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		log.Fatalf("Unable to decode config into struct: %s", err)
	}

	if cfg.Feed.APIKey == "" {
		cfg.Feed.APIKey = os.Getenv("COINGECKO_API_KEY")
	}

	return &cfg
}

package market

import (
	"context"
	"os"
	"time"

	"stock-spike-analyzer/internal/api"
	"stock-spike-analyzer/internal/interfaces"
	"stock-spike-analyzer/internal/logger"
	"stock-spike-analyzer/internal/market/kite"
	"stock-spike-analyzer/internal/market/marketobs"
	"stock-spike-analyzer/internal/market/yahoo"
	"stock-spike-analyzer/internal/pricecache"
	"stock-spike-analyzer/internal/store"
)

// New builds the configured market data source wrapped with observability
// and the price cache.
func New(ctx context.Context, cfg *store.Config) (interfaces.MarketData, func(), error) {
	timeout := time.Duration(cfg.Market.TimeoutSeconds) * time.Second

	var (
		base     interfaces.MarketData
		provider string
	)
	switch cfg.Market.Provider {
	case "KITE":
		kc, err := kite.New(kite.Params{
			APIKey:      os.Getenv("KITE_API_KEY"),
			AccessToken: os.Getenv("KITE_ACCESS_TOKEN"),
			Exchange:    cfg.Market.Exchange,
			Suffix:      cfg.Universe.Suffix,
		})
		if err != nil {
			return nil, nil, err
		}
		base, provider = kc, "kite"
	default:
		limiter := api.NewRateLimiter(cfg.Market.Concurrency, time.Duration(cfg.Market.MinIntervalMs)*time.Millisecond)
		base, provider = yahoo.New(cfg.Market.BaseURL, timeout, api.WithRateLimit(limiter)), "yahoo"
	}
	logger.Info(ctx, "Market data provider selected", "provider", provider)

	observed := marketobs.Wrap(base, provider)
	ttl := time.Duration(cfg.Cache.TTLMinutes) * time.Minute

	if cfg.Cache.Backend == "REDIS" {
		rs, err := pricecache.NewRedisStore(ctx, cfg.Cache.RedisAddr, cfg.Cache.RedisPassword, cfg.Cache.RedisDB)
		if err != nil {
			logger.Warn(ctx, "Redis unavailable, falling back to memory price cache", "error", err)
		} else {
			return pricecache.Wrap(observed, rs, ttl), func() { _ = rs.Close() }, nil
		}
	}

	ms := pricecache.NewMemoryStore(10 * time.Minute)
	return pricecache.Wrap(observed, ms, ttl), ms.Close, nil
}

package pricecache

import (
	"context"
	"fmt"
	"time"

	"stock-spike-analyzer/internal/interfaces"
	"stock-spike-analyzer/internal/logger"
	"stock-spike-analyzer/internal/metrics"
	"stock-spike-analyzer/internal/types"
)

// Store holds price series by key.
type Store interface {
	Get(ctx context.Context, key string) (types.PriceSeries, bool, error)
	Set(ctx context.Context, key string, series types.PriceSeries, ttl time.Duration) error
	Backend() string
}

// Key identifies a series by ticker and lookback window; a different window is a different entry.
func Key(ticker string, days int) string {
	return fmt.Sprintf("prices:%s:%d", ticker, days)
}

type cachedMarket struct {
	next  interfaces.MarketData
	store Store
	ttl   time.Duration
}

var _ interfaces.MarketData = (*cachedMarket)(nil)

// Wrap caches History results from next in store.
func Wrap(next interfaces.MarketData, store Store, ttl time.Duration) interfaces.MarketData {
	return &cachedMarket{next: next, store: store, ttl: ttl}
}

func (c *cachedMarket) History(ctx context.Context, ticker string, days int) (types.PriceSeries, error) {
	key := Key(ticker, days)

	series, ok, err := c.store.Get(ctx, key)
	if err != nil {
		logger.Warn(ctx, "Price cache read failed", "key", key, "backend", c.store.Backend(), "error", err)
	}
	if ok {
		metrics.PriceCacheTotal.WithLabelValues(c.store.Backend(), "hit").Inc()
		logger.Debug(ctx, "Using cached prices", "ticker", ticker, "days", days)
		return series, nil
	}
	metrics.PriceCacheTotal.WithLabelValues(c.store.Backend(), "miss").Inc()

	series, err = c.next.History(ctx, ticker, days)
	if err != nil {
		return types.PriceSeries{}, err
	}

	if err := c.store.Set(ctx, key, series, c.ttl); err != nil {
		logger.Warn(ctx, "Price cache write failed", "key", key, "backend", c.store.Backend(), "error", err)
	}
	return series, nil
}

package marketobs

import (
	"context"
	"time"

	"stock-spike-analyzer/internal/interfaces"
	"stock-spike-analyzer/internal/logger"
	"stock-spike-analyzer/internal/metrics"
	"stock-spike-analyzer/internal/trace"
	"stock-spike-analyzer/internal/types"
)

// observableMarket wraps a MarketData source with logging, tracing and metrics
type observableMarket struct {
	market   interfaces.MarketData
	provider string
}

var _ interfaces.MarketData = (*observableMarket)(nil)

// Wrap wraps a market data source with observability middleware
func Wrap(market interfaces.MarketData, provider string) interfaces.MarketData {
	return &observableMarket{market: market, provider: provider}
}

func (om *observableMarket) History(ctx context.Context, ticker string, days int) (types.PriceSeries, error) {
	ctx, span := trace.StartSpan(ctx, "market.History")
	defer span.End()

	logger.DebugSkip(ctx, 1, "Fetching price history", "provider", om.provider, "ticker", ticker, "days", days)

	start := time.Now()
	series, err := om.market.History(ctx, ticker, days)
	metrics.MarketRequestDuration.WithLabelValues(om.provider).Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.MarketRequestsTotal.WithLabelValues(om.provider, "error").Inc()
		logger.WarnSkip(ctx, 1, "Price history fetch failed",
			"provider", om.provider,
			"ticker", ticker,
			"days", days,
			"error", err,
		)
		return types.PriceSeries{}, err
	}
	metrics.MarketRequestsTotal.WithLabelValues(om.provider, "ok").Inc()

	logger.DebugSkip(ctx, 1, "Price history received",
		"provider", om.provider,
		"ticker", ticker,
		"candles", len(series.Candles),
	)
	return series, nil
}

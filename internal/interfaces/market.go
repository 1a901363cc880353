package interfaces

import (
	"context"

	"stock-spike-analyzer/internal/types"
)

// MarketData returns daily price history for a ticker
type MarketData interface {
	History(ctx context.Context, ticker string, days int) (types.PriceSeries, error)
}

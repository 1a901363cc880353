package interfaces

import (
	"context"

	"stock-spike-analyzer/internal/types"
)

// Analyzer runs the movers pipeline and explains individual moves
type Analyzer interface {
	// Refresh scans the universe over the last days and replaces the latest report
	Refresh(ctx context.Context, days int) (*types.MoversReport, error)
	// RefreshFrom is Refresh tagged with what triggered it (manual, cron, eod)
	RefreshFrom(ctx context.Context, days int, trigger string) (*types.MoversReport, error)
	Latest() (*types.MoversReport, error)
	// Selected is the last ticker opened in detail since the latest refresh
	Selected() string
	Detail(ctx context.Context, ticker string, days int) (*types.StockDetail, error)
	Recent(ctx context.Context, limit int) ([]types.RunSummary, error)
}

package interfaces

import (
	"context"

	"stock-spike-analyzer/internal/types"
)

// History persists movers reports
type History interface {
	Save(ctx context.Context, report *types.MoversReport) error
	Recent(ctx context.Context, limit int) ([]types.RunSummary, error)
	Close() error
}

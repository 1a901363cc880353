package interfaces

import (
	"context"

	"stock-spike-analyzer/internal/types"
)

// Notifier delivers spike alerts
type Notifier interface {
	NotifySpikes(ctx context.Context, report *types.MoversReport, spikes []types.Movement) error
}

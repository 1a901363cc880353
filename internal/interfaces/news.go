package interfaces

import (
	"context"

	"stock-spike-analyzer/internal/types"
)

// NewsQuery describes the headlines wanted for a moving ticker
type NewsQuery struct {
	Ticker    string
	Symbol    string
	Company   string
	ChangePct float64
	Max       int
}

// NewsSource fetches recent headlines for a ticker
type NewsSource interface {
	Headlines(ctx context.Context, q NewsQuery) ([]types.Headline, error)
}

package movers

import (
	"context"
	"sync"

	"golang.org/x/sync/errgroup"

	"stock-spike-analyzer/internal/interfaces"
	"stock-spike-analyzer/internal/logger"
	"stock-spike-analyzer/internal/types"
)

// Scanner fetches a universe concurrently and ranks the moves.
type Scanner struct {
	market      interfaces.MarketData
	namer       Namer
	concurrency int
}

func NewScanner(market interfaces.MarketData, namer Namer, concurrency int) *Scanner {
	if concurrency <= 0 {
		concurrency = 1
	}
	return &Scanner{market: market, namer: namer, concurrency: concurrency}
}

// Scan fetches every ticker, skipping the ones that fail, and computes the report.
func (s *Scanner) Scan(ctx context.Context, tickers []string, days, topN int) (*types.MoversReport, error) {
	op := logger.StartOperation(ctx, "movers.Scan", "tickers", len(tickers), "days", days)
	ctx = op.GetContext()

	results := make([]types.PriceSeries, len(tickers))
	ok := make([]bool, len(tickers))
	var (
		mu     sync.Mutex
		failed []string
	)

	g := new(errgroup.Group)
	g.SetLimit(s.concurrency)
	for i, ticker := range tickers {
		g.Go(func() error {
			if ctx.Err() != nil {
				return nil
			}
			series, err := s.market.History(ctx, ticker, days)
			if err != nil {
				mu.Lock()
				failed = append(failed, ticker)
				mu.Unlock()
				return nil
			}
			results[i], ok[i] = series, true
			return nil
		})
	}
	_ = g.Wait()

	if err := ctx.Err(); err != nil {
		op.EndWithError(err)
		return nil, err
	}

	fetched := make([]types.PriceSeries, 0, len(tickers))
	for i := range results {
		if ok[i] {
			fetched = append(fetched, results[i])
		}
	}

	report := Compute(fetched, s.namer, days, topN)
	report.Failed = append(report.Failed, failed...)
	if len(report.Movements) == 0 {
		op.EndWithError(ErrNoData, "failed", len(report.Failed))
		return nil, ErrNoData
	}

	if len(report.Failed) > 0 {
		logger.Warn(ctx, "Some tickers could not be measured", "failed", len(report.Failed), "tickers", report.Failed)
	}
	for i, m := range report.Gainers {
		logger.Movement(ctx, m.Ticker, m.ChangePct, i+1, "side", "gainer")
	}
	for i, m := range report.Losers {
		logger.Movement(ctx, m.Ticker, m.ChangePct, i+1, "side", "loser")
	}

	op.End("movers", len(report.Movements), "failed", len(report.Failed))
	return report, nil
}

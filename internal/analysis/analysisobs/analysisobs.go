package analysisobs

import (
	"context"
	"time"

	"stock-spike-analyzer/internal/interfaces"
	"stock-spike-analyzer/internal/logger"
	"stock-spike-analyzer/internal/trace"
	"stock-spike-analyzer/internal/types"
)

type observableAnalyzer struct {
	analyzer interfaces.Analyzer
}

var _ interfaces.Analyzer = (*observableAnalyzer)(nil)

func Wrap(analyzer interfaces.Analyzer) interfaces.Analyzer {
	return &observableAnalyzer{
		analyzer: analyzer,
	}
}

func (oa *observableAnalyzer) Refresh(ctx context.Context, days int) (*types.MoversReport, error) {
	return oa.RefreshFrom(ctx, days, "manual")
}

func (oa *observableAnalyzer) RefreshFrom(ctx context.Context, days int, trigger string) (*types.MoversReport, error) {
	ctx, span := trace.StartSpan(ctx, "analysis.Refresh")
	defer span.End()

	start := time.Now()

	logger.InfoSkip(ctx, 1, "Starting movers refresh",
		"days", days,
		"trigger", trigger,
	)

	report, err := oa.analyzer.RefreshFrom(ctx, days, trigger)
	if err != nil {
		logger.ErrorWithErrSkip(ctx, 1, "Movers refresh failed", err,
			"days", days,
			"trigger", trigger,
			"duration_ms", time.Since(start).Milliseconds(),
		)
		return nil, err
	}

	logger.InfoSkip(ctx, 1, "Movers refresh completed",
		"id", report.ID,
		"days", days,
		"movers", len(report.Movements),
		"failed", len(report.Failed),
		"top_gainer", report.Pulse.TopGainer.Ticker,
		"top_loser", report.Pulse.TopLoser.Ticker,
		"duration_ms", time.Since(start).Milliseconds(),
	)

	return report, nil
}

func (oa *observableAnalyzer) Latest() (*types.MoversReport, error) {
	return oa.analyzer.Latest()
}

func (oa *observableAnalyzer) Selected() string {
	return oa.analyzer.Selected()
}

func (oa *observableAnalyzer) Detail(ctx context.Context, ticker string, days int) (*types.StockDetail, error) {
	ctx, span := trace.StartSpan(ctx, "analysis.Detail")
	defer span.End()

	start := time.Now()

	logger.InfoSkip(ctx, 1, "Loading stock detail",
		"ticker", ticker,
		"days", days,
	)

	detail, err := oa.analyzer.Detail(ctx, ticker, days)
	if err != nil {
		logger.ErrorWithErrSkip(ctx, 1, "Stock detail failed", err,
			"ticker", ticker,
			"duration_ms", time.Since(start).Milliseconds(),
		)
		return nil, err
	}

	logger.InfoSkip(ctx, 1, "Stock detail ready",
		"ticker", detail.Movement.Ticker,
		"change_pct", detail.Movement.ChangePct,
		"headlines", len(detail.Headlines),
		"status", detail.Explanation.Status,
		"duration_ms", time.Since(start).Milliseconds(),
	)

	return detail, nil
}

func (oa *observableAnalyzer) Recent(ctx context.Context, limit int) ([]types.RunSummary, error) {
	ctx, span := trace.StartSpan(ctx, "analysis.Recent")
	defer span.End()

	runs, err := oa.analyzer.Recent(ctx, limit)
	if err != nil {
		logger.WarnSkip(ctx, 1, "Run history unavailable", "error", err)
		return nil, err
	}
	return runs, nil
}

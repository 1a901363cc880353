package eodobs

import (
	"context"
	"time"

	"stock-spike-analyzer/internal/interfaces"
	"stock-spike-analyzer/internal/logger"
	"stock-spike-analyzer/internal/trace"
	"stock-spike-analyzer/internal/types"
)

type observableEodSummarizer struct {
	summarizer interfaces.EodSummarizer
}

var _ interfaces.EodSummarizer = (*observableEodSummarizer)(nil)

func Wrap(summarizer interfaces.EodSummarizer) interfaces.EodSummarizer {
	return &observableEodSummarizer{
		summarizer: summarizer,
	}
}

func (oes *observableEodSummarizer) SummarizeDay(t time.Time, report *types.MoversReport) (string, error) {
	ctx := context.Background()
	ctx, span := trace.StartSpan(ctx, "eod.SummarizeDay")
	defer span.End()

	movers := 0
	if report != nil {
		movers = len(report.Movements)
	}
	logger.InfoSkip(ctx, 1, "Starting EOD digest generation",
		"date", t.Format("2006-01-02"),
		"movers", movers,
	)

	csvPath, err := oes.summarizer.SummarizeDay(t, report)
	if err != nil {
		logger.ErrorWithErrSkip(ctx, 1, "EOD digest generation failed", err,
			"date", t.Format("2006-01-02"),
		)
		return "", err
	}

	if csvPath == "" {
		logger.InfoSkip(ctx, 1, "No movers report for EOD digest",
			"date", t.Format("2006-01-02"),
		)
		return "", nil
	}

	logger.InfoSkip(ctx, 1, "EOD digest generated successfully",
		"date", t.Format("2006-01-02"),
		"csv_path", csvPath,
	)

	return csvPath, nil
}

func (oes *observableEodSummarizer) ShouldRunNow() (bool, string) {
	ctx := context.Background()
	ctx, span := trace.StartSpan(ctx, "eod.ShouldRunNow")
	defer span.End()

	shouldRun, csvPath := oes.summarizer.ShouldRunNow()

	logger.DebugSkip(ctx, 1, "EOD check completed",
		"should_run", shouldRun,
		"csv_path", csvPath,
	)

	return shouldRun, csvPath
}

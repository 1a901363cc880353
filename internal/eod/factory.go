package eod

import (
	"time"

	"stock-spike-analyzer/internal/interfaces"
	"stock-spike-analyzer/internal/types"
)

var defaultSummarizer interfaces.EodSummarizer = NewSummarizer()

// SetDefaultSummarizer replaces the package-level summarizer (e.g. with an observability wrapper)
func SetDefaultSummarizer(summarizer interfaces.EodSummarizer) {
	defaultSummarizer = summarizer
}

func NewSummarizer() interfaces.EodSummarizer {
	return &eodSummarizer{now: time.Now}
}

func newSummarizerAt(now func() time.Time) *eodSummarizer {
	return &eodSummarizer{now: now}
}

func SummarizeDay(t time.Time, report *types.MoversReport) (string, error) {
	return defaultSummarizer.SummarizeDay(t, report)
}

// RunIfDue writes today's digest once the market has closed
func RunIfDue(report *types.MoversReport) (string, error) {
	shouldRun, _ := defaultSummarizer.ShouldRunNow()
	if !shouldRun {
		return "", nil
	}
	return defaultSummarizer.SummarizeDay(time.Now(), report)
}

func ShouldRunNow() (bool, string) {
	return defaultSummarizer.ShouldRunNow()
}

package eod

import (
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"stock-spike-analyzer/internal/interfaces"
	"stock-spike-analyzer/internal/types"
)

type eodSummarizer struct {
	now func() time.Time
}

var _ interfaces.EodSummarizer = (*eodSummarizer)(nil)

// SummarizeDay writes the report's ranked movements to the day's CSV.
// A nil or empty report writes nothing and returns an empty path.
func (s *eodSummarizer) SummarizeDay(t time.Time, report *types.MoversReport) (string, error) {
	if report == nil || len(report.Movements) == 0 {
		return "", nil
	}

	outPath := eodCSVPath(t)
	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		return "", err
	}
	out, err := os.Create(outPath)
	if err != nil {
		return "", err
	}
	defer out.Close()

	w := csv.NewWriter(out)
	if err := w.Write([]string{"ticker", "company", "change_pct", "rank"}); err != nil {
		return "", err
	}
	for i, m := range report.Movements {
		rec := []string{m.Ticker, m.Company, fmt.Sprintf("%.2f", m.ChangePct), strconv.Itoa(i + 1)}
		if err := w.Write(rec); err != nil {
			return "", err
		}
	}
	_ = w.Write([]string{"AVERAGE", "", fmt.Sprintf("%.2f", report.Pulse.AverageMove), ""})
	_ = w.Write([]string{"VOLATILITY", "", fmt.Sprintf("%.2f", report.Pulse.Volatility), ""})

	w.Flush()
	if err := w.Error(); err != nil {
		return "", err
	}
	return outPath, nil
}

// ShouldRunNow is true after the close cutoff when today's CSV does not exist yet
func (s *eodSummarizer) ShouldRunNow() (bool, string) {
	now := s.now().In(ist)
	outPath := eodCSVPath(now)
	if now.After(marketCloseTime(now)) {
		if _, err := os.Stat(outPath); errors.Is(err, os.ErrNotExist) {
			return true, outPath
		}
	}
	return false, outPath
}

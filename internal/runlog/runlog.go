package runlog

import (
	"compress/gzip"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"stock-spike-analyzer/internal/types"
)

var mu sync.Mutex

var ist = time.FixedZone("IST", 19800)

// now is replaced in tests
var now = time.Now

type ReportEntry struct {
	Time        string   `json:"time"`
	ID          string   `json:"id"`
	Trigger     string   `json:"trigger"`
	Days        int      `json:"days"`
	Movers      int      `json:"movers"`
	Gainers     []string `json:"gainers"`
	Losers      []string `json:"losers"`
	AverageMove float64  `json:"average_move"`
	Volatility  float64  `json:"volatility"`
	Failed      []string `json:"failed,omitempty"`
}

type ExplanationEntry struct {
	Time      string  `json:"time"`
	Ticker    string  `json:"ticker"`
	ChangePct float64 `json:"change_pct"`
	Status    string  `json:"status"`
	Headline  string  `json:"headline,omitempty"`
	Sentiment string  `json:"sentiment,omitempty"`
	Score     float64 `json:"score"`
	Text      string  `json:"text"`
}

func logDir() string {
	if v := os.Getenv("ANALYZER_LOG_DIR"); v != "" {
		return v
	}
	return "logs"
}

// Dir is the root log directory
func Dir() string { return logDir() }

func reportsFilepath(t time.Time) string {
	return filepath.Join(logDir(), t.In(ist).Format("2006-01-02")+".jsonl")
}

func explanationsFilepath(t time.Time) string {
	return filepath.Join(logDir(), "explanations", t.In(ist).Format("2006-01-02")+".jsonl")
}

// AppendReport records a finished scan in today's file
func AppendReport(report *types.MoversReport, trigger string) error {
	e := ReportEntry{
		ID:          report.ID,
		Trigger:     trigger,
		Days:        report.Days,
		Movers:      len(report.Movements),
		Gainers:     tickers(report.Gainers),
		Losers:      tickers(report.Losers),
		AverageMove: report.Pulse.AverageMove,
		Volatility:  report.Pulse.Volatility,
		Failed:      report.Failed,
	}
	t := now().In(ist)
	e.Time = t.Format("2006-01-02 15:04:05")
	return appendLine(reportsFilepath(t), e)
}

// AppendExplanation records an explanation shown for a ticker
func AppendExplanation(ex types.Explanation) error {
	e := ExplanationEntry{
		Ticker:    ex.Ticker,
		ChangePct: ex.ChangePct,
		Status:    ex.Status,
		Text:      ex.Text,
	}
	if ex.Headline != nil {
		e.Headline = ex.Headline.Title
		e.Sentiment = ex.Headline.Sentiment
		e.Score = ex.Headline.Score
	}
	t := now().In(ist)
	e.Time = t.Format("2006-01-02 15:04:05")
	return appendLine(explanationsFilepath(t), e)
}

func appendLine(p string, v any) error {
	mu.Lock()
	defer mu.Unlock()
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return err
	}
	f, err := os.OpenFile(p, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return err
	}
	defer f.Close()
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(f, string(b))
	return err
}

func tickers(ms []types.Movement) []string {
	out := make([]string, len(ms))
	for i, m := range ms {
		out[i] = m.Ticker
	}
	return out
}

// CompressOlder gzips log files not modified within retentionDays
func CompressOlder(retentionDays int) error {
	if retentionDays <= 0 {
		return nil
	}
	cutoff := now().AddDate(0, 0, -retentionDays)
	return filepath.WalkDir(logDir(), func(p string, d os.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return nil
		}
		if filepath.Ext(p) != ".jsonl" {
			return nil
		}
		info, err := d.Info()
		if err != nil || !info.ModTime().Before(cutoff) {
			return nil
		}
		gz := p + ".gz"
		// already compressed on an earlier run
		if _, err := os.Stat(gz); err == nil {
			_ = os.Remove(p)
			return nil
		}
		if err := gzipFile(p, gz); err != nil {
			return nil
		}
		_ = os.Remove(p)
		return nil
	})
}

func gzipFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}
	gw := gzip.NewWriter(out)
	if _, err := io.Copy(gw, in); err != nil {
		_ = gw.Close()
		_ = out.Close()
		_ = os.Remove(dst)
		return err
	}
	if err := gw.Close(); err != nil {
		_ = out.Close()
		return err
	}
	return out.Close()
}

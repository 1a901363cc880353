package runlog

import (
	"bufio"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"stock-spike-analyzer/internal/types"
)

func withClock(t *testing.T, at time.Time) {
	t.Helper()
	prev := now
	now = func() time.Time { return at }
	t.Cleanup(func() { now = prev })
}

func readLines(t *testing.T, p string) []string {
	t.Helper()
	f, err := os.Open(p)
	if err != nil {
		t.Fatalf("open %s: %v", p, err)
	}
	defer f.Close()
	var lines []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		lines = append(lines, sc.Text())
	}
	return lines
}

func TestAppendReport(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("ANALYZER_LOG_DIR", dir)
	// 20:00 UTC is already the next day in IST
	withClock(t, time.Date(2024, 3, 10, 20, 0, 0, 0, time.UTC))

	report := &types.MoversReport{
		ID:        "run-1",
		Days:      7,
		Movements: []types.Movement{{Ticker: "TCS.NS"}, {Ticker: "ITC.NS"}},
		Gainers:   []types.Movement{{Ticker: "TCS.NS"}},
		Losers:    []types.Movement{{Ticker: "ITC.NS"}},
		Pulse:     types.MarketPulse{AverageMove: 1.5, Volatility: 2.1},
	}
	if err := AppendReport(report, "manual"); err != nil {
		t.Fatalf("AppendReport: %v", err)
	}
	if err := AppendReport(report, "cron"); err != nil {
		t.Fatalf("AppendReport: %v", err)
	}

	lines := readLines(t, filepath.Join(dir, "2024-03-11.jsonl"))
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(lines))
	}
	var e ReportEntry
	if err := json.Unmarshal([]byte(lines[1]), &e); err != nil {
		t.Fatal(err)
	}
	if e.Trigger != "cron" || e.Movers != 2 || e.Gainers[0] != "TCS.NS" || e.Time != "2024-03-11 01:30:00" {
		t.Errorf("unexpected entry %+v", e)
	}
}

func TestAppendExplanation(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("ANALYZER_LOG_DIR", dir)
	withClock(t, time.Date(2024, 3, 10, 6, 0, 0, 0, time.UTC))

	ex := types.Explanation{
		Ticker:    "INFY.NS",
		ChangePct: -3.2,
		Status:    types.StatusNoKey,
		Text:      "no key",
		Headline:  &types.ScoredHeadline{Headline: types.Headline{Title: "Infosys slips"}, Sentiment: "negative", Score: -0.5},
	}
	if err := AppendExplanation(ex); err != nil {
		t.Fatalf("AppendExplanation: %v", err)
	}

	lines := readLines(t, filepath.Join(dir, "explanations", "2024-03-10.jsonl"))
	var e ExplanationEntry
	if err := json.Unmarshal([]byte(lines[0]), &e); err != nil {
		t.Fatal(err)
	}
	if e.Headline != "Infosys slips" || e.Sentiment != "negative" || e.Status != types.StatusNoKey {
		t.Errorf("unexpected entry %+v", e)
	}
}

func TestCompressOlder(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("ANALYZER_LOG_DIR", dir)

	old := filepath.Join(dir, "2024-01-01.jsonl")
	fresh := filepath.Join(dir, "2024-03-10.jsonl")
	other := filepath.Join(dir, "notes.txt")
	for _, p := range []string{old, fresh, other} {
		if err := os.WriteFile(p, []byte("{}\n"), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	past := time.Now().AddDate(0, 0, -10)
	for _, p := range []string{old, other} {
		if err := os.Chtimes(p, past, past); err != nil {
			t.Fatal(err)
		}
	}

	if err := CompressOlder(7); err != nil {
		t.Fatalf("CompressOlder: %v", err)
	}

	if _, err := os.Stat(old + ".gz"); err != nil {
		t.Errorf("expected %s.gz: %v", old, err)
	}
	if _, err := os.Stat(old); !os.IsNotExist(err) {
		t.Error("expected original to be removed")
	}
	if _, err := os.Stat(fresh); err != nil {
		t.Error("fresh file must be kept")
	}
	if _, err := os.Stat(other); err != nil {
		t.Error("non-log files are ignored")
	}

	if err := CompressOlder(0); err != nil {
		t.Errorf("zero retention is a no-op, got %v", err)
	}
}

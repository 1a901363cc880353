package movers

import (
	"errors"
	"math"
	"sort"
	"time"

	"github.com/google/uuid"

	"stock-spike-analyzer/internal/ta"
	"stock-spike-analyzer/internal/types"
)

// ErrNoData is returned when no ticker in the universe produced a usable series.
var ErrNoData = errors.New("no price data for any ticker")

// Namer resolves display names for tickers.
type Namer interface {
	Symbol(ticker string) string
	CompanyName(ticker string) string
}

// ChangePct is the move from the first open to the last close of the series,
// rounded to two decimals. ok is false when the series cannot be measured.
func ChangePct(s types.PriceSeries) (float64, bool) {
	if len(s.Candles) == 0 {
		return 0, false
	}
	first := s.Candles[0].Open
	last := s.Candles[len(s.Candles)-1].Close
	pct := ta.PctChange(first, last)
	if math.IsNaN(pct) || math.IsInf(pct, 0) {
		return 0, false
	}
	return ta.Round(pct, 2), true
}

// Compute ranks every measurable series and slices the top gainers and losers.
func Compute(series []types.PriceSeries, namer Namer, days, topN int) *types.MoversReport {
	report := &types.MoversReport{
		ID:          uuid.NewString(),
		Days:        days,
		GeneratedAt: time.Now(),
	}

	for _, s := range series {
		pct, ok := ChangePct(s)
		if !ok {
			report.Failed = append(report.Failed, s.Ticker)
			continue
		}
		report.Movements = append(report.Movements, types.Movement{
			Ticker:    s.Ticker,
			Symbol:    namer.Symbol(s.Ticker),
			Company:   namer.CompanyName(s.Ticker),
			ChangePct: pct,
		})
	}

	sort.SliceStable(report.Movements, func(i, j int) bool {
		a, b := report.Movements[i], report.Movements[j]
		if a.ChangePct != b.ChangePct {
			return a.ChangePct > b.ChangePct
		}
		return a.Ticker < b.Ticker
	})

	report.Gainers = Gainers(report.Movements, topN)
	report.Losers = Losers(report.Movements, topN)
	report.Pulse = Pulse(report.Movements)
	return report
}

// Gainers returns the first n movements of a descending list.
func Gainers(sorted []types.Movement, n int) []types.Movement {
	if n > len(sorted) {
		n = len(sorted)
	}
	return append([]types.Movement(nil), sorted[:n]...)
}

// Losers returns the last n movements of a descending list, worst first.
func Losers(sorted []types.Movement, n int) []types.Movement {
	if n > len(sorted) {
		n = len(sorted)
	}
	tail := sorted[len(sorted)-n:]
	out := make([]types.Movement, 0, n)
	for i := len(tail) - 1; i >= 0; i-- {
		out = append(out, tail[i])
	}
	return out
}

// Pulse summarizes a descending list of movements.
func Pulse(sorted []types.Movement) types.MarketPulse {
	if len(sorted) == 0 {
		return types.MarketPulse{}
	}
	changes := make([]float64, len(sorted))
	for i, m := range sorted {
		changes[i] = m.ChangePct
	}
	return types.MarketPulse{
		TopGainer:   sorted[0],
		TopLoser:    sorted[len(sorted)-1],
		AverageMove: ta.Round(ta.Mean(changes), 2),
		Volatility:  ta.Round(ta.SampleStdDev(changes), 2),
	}
}

// Spikes returns movements whose absolute change is at or above thresholdPct.
// A non-positive threshold disables detection.
func Spikes(report *types.MoversReport, thresholdPct float64) []types.Movement {
	if report == nil || thresholdPct <= 0 {
		return nil
	}
	var out []types.Movement
	for _, m := range report.Movements {
		if math.Abs(m.ChangePct) >= thresholdPct {
			out = append(out, m)
		}
	}
	return out
}

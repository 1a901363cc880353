package analysis

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sync"

	"stock-spike-analyzer/internal/interfaces"
	"stock-spike-analyzer/internal/logger"
	"stock-spike-analyzer/internal/metrics"
	"stock-spike-analyzer/internal/movers"
	"stock-spike-analyzer/internal/reasoning"
	"stock-spike-analyzer/internal/runlog"
	"stock-spike-analyzer/internal/sentiment"
	"stock-spike-analyzer/internal/store"
	"stock-spike-analyzer/internal/ta"
	"stock-spike-analyzer/internal/types"
	"stock-spike-analyzer/internal/universe"
)

var (
	ErrNoReport        = errors.New("no movers report yet, run an analysis first")
	ErrUnknownTicker   = errors.New("ticker is not in the latest report")
	ErrInvalidDays     = errors.New("lookback days out of range")
	ErrHistoryDisabled = errors.New("history store is not configured")
)

// Deps are the collaborators of the analysis service. History and Notifier may be nil.
type Deps struct {
	Universe  *universe.Universe
	Market    interfaces.MarketData
	News      interfaces.NewsSource
	Generator interfaces.Generator
	History   interfaces.History
	Notifier  interfaces.Notifier
}

// Service scans the universe, keeps the latest report and explains single moves
type Service struct {
	cfg       *store.Config
	universe  *universe.Universe
	market    interfaces.MarketData
	scanner   *movers.Scanner
	news      interfaces.NewsSource
	explainer *reasoning.Explainer
	history   interfaces.History
	notifier  interfaces.Notifier

	refreshMu sync.Mutex

	mu       sync.RWMutex
	latest   *types.MoversReport
	selected string
}

var _ interfaces.Analyzer = (*Service)(nil)

func newService(cfg *store.Config, d Deps) *Service {
	return &Service{
		cfg:       cfg,
		universe:  d.Universe,
		market:    d.Market,
		scanner:   movers.NewScanner(d.Market, d.Universe, cfg.Market.Concurrency),
		news:      d.News,
		explainer: reasoning.NewExplainer(d.Generator),
		history:   d.History,
		notifier:  d.Notifier,
	}
}

func (s *Service) validDays(days int) bool {
	return days >= s.cfg.Movers.MinDays && days <= s.cfg.Movers.MaxDays
}

func (s *Service) Refresh(ctx context.Context, days int) (*types.MoversReport, error) {
	return s.RefreshFrom(ctx, days, "manual")
}

// RefreshFrom scans the universe and replaces the latest report. Refreshes
// never interleave. Persisting, alerting and logging failures are logged only.
func (s *Service) RefreshFrom(ctx context.Context, days int, trigger string) (*types.MoversReport, error) {
	if !s.validDays(days) {
		return nil, fmt.Errorf("%w: %d not in [%d, %d]", ErrInvalidDays, days, s.cfg.Movers.MinDays, s.cfg.Movers.MaxDays)
	}

	s.refreshMu.Lock()
	defer s.refreshMu.Unlock()

	report, err := s.scanner.Scan(ctx, s.universe.Tickers(), days, s.cfg.Movers.TopN)
	if err != nil {
		metrics.RefreshesTotal.WithLabelValues(trigger, "error").Inc()
		return nil, err
	}
	metrics.RefreshesTotal.WithLabelValues(trigger, "ok").Inc()
	metrics.ScanFailedTickers.Set(float64(len(report.Failed)))

	s.mu.Lock()
	s.latest = report
	s.selected = ""
	s.mu.Unlock()

	if s.history != nil {
		if err := s.history.Save(ctx, report); err != nil {
			logger.ErrorWithErr(ctx, "Failed to persist report", err, "id", report.ID)
		}
	}

	spikes := movers.Spikes(report, s.cfg.Movers.SpikeThresholdPct)
	for _, m := range spikes {
		logger.Spike(ctx, m.Ticker, m.ChangePct, s.cfg.Movers.SpikeThresholdPct)
		metrics.SpikesTotal.WithLabelValues(reasoning.Direction(m.ChangePct)).Inc()
	}
	if len(spikes) > 0 && s.notifier != nil {
		if err := s.notifier.NotifySpikes(ctx, report, spikes); err != nil {
			logger.ErrorWithErr(ctx, "Failed to send spike alert", err, "spikes", len(spikes))
		}
	}

	if err := runlog.AppendReport(report, trigger); err != nil {
		logger.ErrorWithErr(ctx, "Failed to append run log", err)
	}
	return report, nil
}

// Latest returns the most recent report
func (s *Service) Latest() (*types.MoversReport, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.latest == nil {
		return nil, ErrNoReport
	}
	return s.latest, nil
}

// Selected is the ticker of the last detail view since the latest refresh
func (s *Service) Selected() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.selected
}

// Detail gathers the chart, headlines and explanation for one mover
func (s *Service) Detail(ctx context.Context, ticker string, days int) (*types.StockDetail, error) {
	report, err := s.Latest()
	if err != nil {
		return nil, err
	}
	if !s.validDays(days) {
		return nil, fmt.Errorf("%w: %d", ErrInvalidDays, days)
	}
	ticker = s.universe.Normalize(ticker)
	move, ok := report.Find(ticker)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownTicker, ticker)
	}

	s.mu.Lock()
	s.selected = move.Ticker
	s.mu.Unlock()

	series, err := s.market.History(ctx, move.Ticker, days)
	if err != nil {
		return nil, fmt.Errorf("failed to load prices for %s: %w", move.Ticker, err)
	}

	detail := &types.StockDetail{
		Movement:   move,
		Series:     series,
		Bounds:     chartBounds(series),
		Indicators: indicators(series),
	}

	headlines, err := s.news.Headlines(ctx, interfaces.NewsQuery{
		Ticker:    move.Ticker,
		Symbol:    move.Symbol,
		Company:   move.Company,
		ChangePct: move.ChangePct,
		Max:       s.cfg.News.MaxHeadlines,
	})
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		logger.ErrorWithErr(ctx, "Headline lookup failed", err, "ticker", move.Ticker)
	}

	scored := sentiment.ScoreHeadlines(headlines)
	if len(scored) > s.cfg.News.DisplayHeadlines {
		scored = scored[:s.cfg.News.DisplayHeadlines]
	}
	detail.Headlines = scored
	detail.Explanation = s.explainer.Explain(ctx, move.Ticker, move.ChangePct, scored)

	if err := runlog.AppendExplanation(detail.Explanation); err != nil {
		logger.ErrorWithErr(ctx, "Failed to append explanation log", err)
	}
	return detail, nil
}

// Recent lists persisted runs, newest first
func (s *Service) Recent(ctx context.Context, limit int) ([]types.RunSummary, error) {
	if s.history == nil {
		return nil, ErrHistoryDisabled
	}
	return s.history.Recent(ctx, limit)
}

func chartBounds(series types.PriceSeries) types.ChartBounds {
	lo, hi := ta.PaddedRange(series.Closes())
	if math.IsNaN(lo) {
		return types.ChartBounds{}
	}
	return types.ChartBounds{Min: lo, Max: hi}
}

func indicators(series types.PriceSeries) types.Indicators {
	n := len(series.Candles)
	highs := make([]float64, n)
	lows := make([]float64, n)
	for i, c := range series.Candles {
		highs[i], lows[i] = c.High, c.Low
	}
	closes := series.Closes()

	return types.Indicators{
		SMA5:  finite(ta.SMA(closes, 5)),
		RSI14: finite(ta.RSI(closes, 14)),
		ATR14: finite(ta.ATR(highs, lows, closes, 14)),
	}
}

func finite(v float64) *float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	v = ta.Round(v, 2)
	return &v
}

package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"

	"stock-spike-analyzer/internal/analysis"
	"stock-spike-analyzer/internal/eod"
	"stock-spike-analyzer/internal/eod/eodobs"
	"stock-spike-analyzer/internal/history"
	"stock-spike-analyzer/internal/interfaces"
	"stock-spike-analyzer/internal/llm"
	"stock-spike-analyzer/internal/logger"
	"stock-spike-analyzer/internal/market"
	"stock-spike-analyzer/internal/news"
	"stock-spike-analyzer/internal/notify"
	"stock-spike-analyzer/internal/runlog"
	"stock-spike-analyzer/internal/store"
	"stock-spike-analyzer/internal/trace"
	"stock-spike-analyzer/internal/universe"

	"github.com/joho/godotenv"
)

// initializeSystem initializes logger, tracer, and EOD summarizer
func initializeSystem() error {
	_ = godotenv.Load()

	if err := logger.Init(); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	if err := trace.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize tracer: %v\n", err)
	}

	initializeEOD()
	return nil
}

// configPath honours CONFIG_PATH, falling back to config.yaml
func configPath() string {
	if p := os.Getenv("CONFIG_PATH"); p != "" {
		return p
	}
	return "config.yaml"
}

// loadConfig loads the config file, or the defaults when it does not exist
func loadConfig(ctx context.Context) (*store.Config, error) {
	path := configPath()
	cfg, err := store.LoadConfig(path)
	if errors.Is(err, os.ErrNotExist) {
		logger.Warn(ctx, "Config file not found, using defaults", "path", path)
		return store.Default(), nil
	}
	if err != nil {
		logger.ErrorWithErr(ctx, "Failed to load config", err, "path", path)
		return nil, err
	}
	return cfg, nil
}

// compressOldLogs gzips old run logs if retention is configured
func compressOldLogs(ctx context.Context) {
	v := os.Getenv("ANALYZER_LOG_RETENTION_DAYS")
	if v == "" {
		return
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		logger.Warn(ctx, "Ignoring invalid ANALYZER_LOG_RETENTION_DAYS", "value", v)
		return
	}
	if err := runlog.CompressOlder(n); err != nil {
		logger.Warn(ctx, "Failed to compress old logs", "error", err)
	}
}

// initializeHistory opens the Postgres run history. nil means disabled.
func initializeHistory(ctx context.Context, cfg *store.Config) (*history.Store, interfaces.History) {
	h, err := history.New(ctx, cfg)
	if errors.Is(err, history.ErrDisabled) {
		logger.Info(ctx, "Run history disabled", "reason", err)
		return nil, nil
	}
	if err != nil {
		logger.Warn(ctx, "Run history unavailable, continuing without it", "error", err)
		return nil, nil
	}
	logger.Info(ctx, "Run history enabled")
	return h, h
}

// initializeNotifier returns the spike notifier, a noop when alerts are off
func initializeNotifier(ctx context.Context, cfg *store.Config) interfaces.Notifier {
	n, err := notify.New(cfg)
	if err != nil {
		logger.Warn(ctx, "Spike alerts disabled", "error", err)
	}
	return n
}

// initializeAnalyzer wires market data, news, LLM and the optional stores
// into the analysis service. The returned func releases what was opened.
func initializeAnalyzer(ctx context.Context, cfg *store.Config) (interfaces.Analyzer, func(), error) {
	uni := universe.FromConfig(cfg)
	logger.Info(ctx, "Universe loaded", "preset", cfg.Universe.Preset, "tickers", uni.Len())

	md, closeMarket, err := market.New(ctx, cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize market data: %w", err)
	}

	ns := news.NewFromConfig(cfg)
	ns.StartCleanup(ctx)

	gen := llm.New(cfg)
	if !gen.Configured() {
		logger.Warn(ctx, "No LLM API key - explanations will be skipped",
			"provider", cfg.LLM.Provider, "env", cfg.LLM.APIKeyEnv)
	}

	hs, hist := initializeHistory(ctx, cfg)

	svc := analysis.New(cfg, analysis.Deps{
		Universe:  uni,
		Market:    md,
		News:      ns,
		Generator: gen,
		History:   hist,
		Notifier:  initializeNotifier(ctx, cfg),
	})

	cleanup := func() {
		closeMarket()
		if hs != nil {
			_ = hs.Close()
		}
	}
	return svc, cleanup, nil
}

// initializeEOD wraps the default EOD summarizer with observability
func initializeEOD() {
	eod.SetDefaultSummarizer(eodobs.Wrap(eod.NewSummarizer()))
}

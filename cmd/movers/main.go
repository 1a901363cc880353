package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"stock-spike-analyzer/internal/analysis"
	"stock-spike-analyzer/internal/interfaces"
	"stock-spike-analyzer/internal/llm"
	"stock-spike-analyzer/internal/logger"
	"stock-spike-analyzer/internal/market"
	"stock-spike-analyzer/internal/news"
	"stock-spike-analyzer/internal/notify"
	"stock-spike-analyzer/internal/report"
	"stock-spike-analyzer/internal/store"
	"stock-spike-analyzer/internal/universe"
)

// app is built once per invocation in PersistentPreRunE
type app struct {
	cfg      *store.Config
	analyzer interfaces.Analyzer
	cleanup  func()
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	a := &app{}
	var configPath string

	root := &cobra.Command{
		Use:           "movers",
		Short:         "NIFTY100 top movers and spike explanations from the terminal",
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init(cmd.Context(), configPath)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.cleanup != nil {
				a.cleanup()
			}
			_ = logger.Sync()
		},
	}
	root.PersistentFlags().StringVar(&configPath, "config", envOr("CONFIG_PATH", "config.yaml"), "path to config.yaml")

	root.AddCommand(newTopCmd(a), newExplainCmd(a))
	return root
}

func newTopCmd(a *app) *cobra.Command {
	var days int
	cmd := &cobra.Command{
		Use:     "top",
		Short:   "Scan the universe and print the top gainers and losers",
		Example: "  movers top --days 7",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rep, err := a.analyzer.Refresh(cmd.Context(), a.days(days))
			if err != nil {
				return fmt.Errorf("unable to fetch movers data: %w", err)
			}
			return report.WriteMovers(cmd.OutOrStdout(), rep)
		},
	}
	cmd.Flags().IntVarP(&days, "days", "d", 0, "lookback window in days (default from config)")
	return cmd
}

func newExplainCmd(a *app) *cobra.Command {
	var days int
	cmd := &cobra.Command{
		Use:     "explain <ticker>",
		Short:   "Explain one mover with headlines, sentiment and the LLM",
		Example: "  movers explain TCS --days 5",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			n := a.days(days)
			if _, err := a.analyzer.Refresh(cmd.Context(), n); err != nil {
				return fmt.Errorf("unable to fetch movers data: %w", err)
			}
			d, err := a.analyzer.Detail(cmd.Context(), args[0], n)
			if errors.Is(err, analysis.ErrUnknownTicker) {
				return fmt.Errorf("%s is not part of the universe", args[0])
			}
			if err != nil {
				return err
			}
			return report.WriteDetail(cmd.OutOrStdout(), d)
		},
	}
	cmd.Flags().IntVarP(&days, "days", "d", 0, "lookback window in days (default from config)")
	return cmd
}

func (a *app) days(flag int) int {
	if flag == 0 {
		return a.cfg.Movers.DefaultDays
	}
	return flag
}

// init loads config and wires the analysis service. Terminal runs skip
// run history and spike alerts.
func (a *app) init(ctx context.Context, configPath string) error {
	_ = godotenv.Load()
	if err := logger.Init(); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	cfg, err := store.LoadConfig(configPath)
	if errors.Is(err, os.ErrNotExist) {
		cfg, err = store.Default(), nil
	}
	if err != nil {
		return err
	}

	md, closeMarket, err := market.New(ctx, cfg)
	if err != nil {
		return err
	}

	a.cfg = cfg
	a.cleanup = closeMarket
	a.analyzer = analysis.New(cfg, analysis.Deps{
		Universe:  universe.FromConfig(cfg),
		Market:    md,
		News:      news.NewFromConfig(cfg),
		Generator: llm.New(cfg),
		Notifier:  notify.NoopNotifier{},
	})
	return nil
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

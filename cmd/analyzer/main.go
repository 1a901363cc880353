package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"stock-spike-analyzer/internal/eod"
	"stock-spike-analyzer/internal/logger"
	"stock-spike-analyzer/internal/scheduler"
	"stock-spike-analyzer/internal/trace"
	"stock-spike-analyzer/internal/web"
)

func main() {
	os.Exit(realMain())
}

// realMain returns the exit code so deferred flushes run before os.Exit
func realMain() int {
	if err := initializeSystem(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize system: %v\n", err)
		return 1
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx); err != nil {
		logger.ErrorWithErr(context.Background(), "Analyzer stopped with error", err)
		return 1
	}
	return 0
}

func run(ctx context.Context) error {
	cfg, err := loadConfig(ctx)
	if err != nil {
		return err
	}

	compressOldLogs(ctx)

	svc, cleanup, err := initializeAnalyzer(ctx, cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	if cfg.Schedule.Enabled {
		sched, err := scheduler.New(cfg, svc, eod.RunIfDue)
		if err != nil {
			return err
		}
		sched.Start(ctx)
		defer sched.Stop()
		logger.Info(ctx, "Scheduler started",
			"refresh_cron", cfg.Schedule.RefreshCron,
			"eod_cron", cfg.Schedule.EODCron,
			"next", sched.Next())
	}

	srv, err := web.NewServer(cfg, svc)
	if err != nil {
		return fmt.Errorf("failed to load dashboard templates: %w", err)
	}
	server := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           srv.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		logger.Info(ctx, "Dashboard listening", "addr", cfg.Server.Addr)
		if err := server.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			errc <- err
		}
		close(errc)
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	logger.Info(context.Background(), "Shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.ErrorWithErr(shutdownCtx, "Dashboard shutdown failed", err)
	}
	if rep, err := svc.Latest(); err == nil {
		if p, err := eod.RunIfDue(rep); err == nil && p != "" {
			logger.Info(shutdownCtx, "EOD CSV written", "path", p)
		}
	}
	return trace.Shutdown(shutdownCtx)
}

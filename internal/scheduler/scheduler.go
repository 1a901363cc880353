package scheduler

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"stock-spike-analyzer/internal/logger"
	"stock-spike-analyzer/internal/store"
	"stock-spike-analyzer/internal/types"
)

// Refresher is the part of the analysis service the jobs drive
type Refresher interface {
	RefreshFrom(ctx context.Context, days int, trigger string) (*types.MoversReport, error)
	Latest() (*types.MoversReport, error)
}

// DigestFunc writes the after-close digest for a report
type DigestFunc func(report *types.MoversReport) (string, error)

// Scheduler runs market-hours refreshes and the EOD digest on cron schedules
type Scheduler struct {
	cron    *cron.Cron
	svc     Refresher
	digest  DigestFunc
	days    int
	timeout time.Duration

	mu     sync.Mutex
	ctx    context.Context
	cancel context.CancelFunc
}

// New registers the refresh and EOD jobs. The scheduler does not run until Start.
func New(cfg *store.Config, svc Refresher, digest DigestFunc) (*Scheduler, error) {
	loc, err := time.LoadLocation(cfg.Schedule.Timezone)
	if err != nil {
		logger.Warn(context.Background(), "Timezone not available, using fixed IST offset",
			"timezone", cfg.Schedule.Timezone, "error", err)
		loc = time.FixedZone("IST", 19800)
	}

	s := &Scheduler{
		cron:    cron.New(cron.WithLocation(loc), cron.WithChain(cron.Recover(cronLogger{}))),
		svc:     svc,
		digest:  digest,
		days:    cfg.Movers.DefaultDays,
		timeout: 5 * time.Minute,
		ctx:     context.Background(),
	}

	if _, err := s.cron.AddFunc(cfg.Schedule.RefreshCron, s.runRefresh); err != nil {
		return nil, fmt.Errorf("invalid refresh_cron %q: %w", cfg.Schedule.RefreshCron, err)
	}
	if _, err := s.cron.AddFunc(cfg.Schedule.EODCron, s.runDigest); err != nil {
		return nil, fmt.Errorf("invalid eod_cron %q: %w", cfg.Schedule.EODCron, err)
	}
	return s, nil
}

// Start runs the jobs until ctx is cancelled or Stop is called
func (s *Scheduler) Start(ctx context.Context) {
	s.mu.Lock()
	s.ctx, s.cancel = context.WithCancel(ctx)
	s.mu.Unlock()

	s.cron.Start()
	logger.Info(ctx, "Scheduler started", "jobs", len(s.cron.Entries()))
}

// Stop halts the cron and waits for running jobs to finish
func (s *Scheduler) Stop() {
	s.mu.Lock()
	if s.cancel != nil {
		s.cancel()
	}
	s.mu.Unlock()

	<-s.cron.Stop().Done()
}

// Next returns the next run time of each job, refresh first
func (s *Scheduler) Next() []time.Time {
	var out []time.Time
	for _, e := range s.cron.Entries() {
		out = append(out, e.Next)
	}
	return out
}

func (s *Scheduler) jobContext() (context.Context, context.CancelFunc) {
	s.mu.Lock()
	parent := s.ctx
	s.mu.Unlock()
	return context.WithTimeout(parent, s.timeout)
}

func (s *Scheduler) runRefresh() {
	ctx, cancel := s.jobContext()
	defer cancel()

	if _, err := s.svc.RefreshFrom(ctx, s.days, "cron"); err != nil {
		logger.ErrorWithErr(ctx, "Scheduled refresh failed", err, "days", s.days)
	}
}

func (s *Scheduler) runDigest() {
	ctx, cancel := s.jobContext()
	defer cancel()

	report, err := s.svc.Latest()
	if err != nil {
		report, err = s.svc.RefreshFrom(ctx, s.days, "eod")
		if err != nil {
			logger.ErrorWithErr(ctx, "EOD digest skipped, no report available", err)
			return
		}
	}

	path, err := s.digest(report)
	if err != nil {
		logger.ErrorWithErr(ctx, "EOD digest failed", err)
		return
	}
	if path != "" {
		logger.Info(ctx, "EOD digest written", "path", path)
	}
}

// cronLogger routes cron's own messages, including recovered job panics, to the app log
type cronLogger struct{}

func (cronLogger) Info(msg string, keysAndValues ...interface{}) {
	logger.Debug(context.Background(), "cron: "+msg, keysAndValues...)
}

func (cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	logger.ErrorWithErr(context.Background(), "cron: "+msg, err, keysAndValues...)
}

// ErrNotStarted is returned by RunNow before Start
var ErrNotStarted = errors.New("scheduler not started")

// RunNow triggers the refresh job outside its schedule
func (s *Scheduler) RunNow() error {
	s.mu.Lock()
	started := s.cancel != nil
	s.mu.Unlock()
	if !started {
		return ErrNotStarted
	}
	go s.runRefresh()
	return nil
}

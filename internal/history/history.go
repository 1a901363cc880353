package history

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"

	"stock-spike-analyzer/internal/interfaces"
	"stock-spike-analyzer/internal/logger"
	"stock-spike-analyzer/internal/store"
	"stock-spike-analyzer/internal/types"
)

// ErrDisabled is returned by New when history is switched off or has no DSN
var ErrDisabled = errors.New("history store disabled")

const schema = `
CREATE TABLE IF NOT EXISTS movers_runs (
    id           UUID PRIMARY KEY,
    days         INTEGER NOT NULL,
    generated_at TIMESTAMPTZ NOT NULL,
    avg_move     DOUBLE PRECISION NOT NULL,
    volatility   DOUBLE PRECISION NOT NULL
);
CREATE TABLE IF NOT EXISTS movers_movements (
    run_id     UUID NOT NULL REFERENCES movers_runs(id) ON DELETE CASCADE,
    ticker     TEXT NOT NULL,
    change_pct DOUBLE PRECISION NOT NULL,
    rank       INTEGER NOT NULL,
    PRIMARY KEY (run_id, ticker)
);
CREATE INDEX IF NOT EXISTS movers_runs_generated_at_idx ON movers_runs (generated_at DESC);
`

const (
	insertRun = `INSERT INTO movers_runs (id, days, generated_at, avg_move, volatility)
        VALUES ($1, $2, $3, $4, $5)`
	insertMovement = `INSERT INTO movers_movements (run_id, ticker, change_pct, rank)
        VALUES ($1, $2, $3, $4)`
	selectRecent = `SELECT r.id, r.days, r.generated_at, r.avg_move, r.volatility, COUNT(m.ticker)
        FROM movers_runs r
        LEFT JOIN movers_movements m ON m.run_id = r.id
        GROUP BY r.id, r.days, r.generated_at, r.avg_move, r.volatility
        ORDER BY r.generated_at DESC
        LIMIT $1`
)

// Store persists movers reports in Postgres
type Store struct {
	db *sql.DB
}

var _ interfaces.History = (*Store)(nil)

// NewStore wraps an open database handle
func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

// Open connects through the pgx driver and creates the tables
func Open(ctx context.Context, dsn string) (*Store, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	db.SetMaxOpenConns(5)
	db.SetMaxIdleConns(2)
	db.SetConnMaxLifetime(30 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	s := NewStore(db)
	if err := s.EnsureSchema(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// New opens the store described by the history section of the config
func New(ctx context.Context, cfg *store.Config) (*Store, error) {
	if !cfg.History.Enabled {
		return nil, ErrDisabled
	}
	dsn := os.Getenv(cfg.History.DSNEnv)
	if dsn == "" {
		return nil, fmt.Errorf("%w: %s is not set", ErrDisabled, cfg.History.DSNEnv)
	}
	return Open(ctx, dsn)
}

func (s *Store) EnsureSchema(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	return nil
}

// Save writes a report and its ranked movements in one transaction
func (s *Store) Save(ctx context.Context, report *types.MoversReport) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, insertRun,
		report.ID, report.Days, report.GeneratedAt, report.Pulse.AverageMove, report.Pulse.Volatility,
	); err != nil {
		return fmt.Errorf("failed to insert run: %w", err)
	}

	for i, m := range report.Movements {
		if _, err := tx.ExecContext(ctx, insertMovement, report.ID, m.Ticker, m.ChangePct, i+1); err != nil {
			return fmt.Errorf("failed to insert movement %s: %w", m.Ticker, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit run: %w", err)
	}
	logger.Debug(ctx, "Report saved", "id", report.ID, "movements", len(report.Movements))
	return nil
}

// Recent returns the newest run summaries first
func (s *Store) Recent(ctx context.Context, limit int) ([]types.RunSummary, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx, selectRecent, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}
	defer rows.Close()

	var out []types.RunSummary
	for rows.Next() {
		var r types.RunSummary
		if err := rows.Scan(&r.ID, &r.Days, &r.GeneratedAt, &r.AverageMove, &r.Volatility, &r.Movers); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

func (s *Store) Close() error {
	return s.db.Close()
}

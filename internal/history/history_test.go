package history

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stock-spike-analyzer/internal/store"
	"stock-spike-analyzer/internal/types"
)

func testReport() *types.MoversReport {
	return &types.MoversReport{
		ID:          "6f1c2d0e-8a43-4b7e-9a8e-0f4d2b6c1a11",
		Days:        7,
		GeneratedAt: time.Date(2024, 3, 10, 10, 0, 0, 0, time.UTC),
		Movements: []types.Movement{
			{Ticker: "TCS.NS", ChangePct: 4.2},
			{Ticker: "ITC.NS", ChangePct: -1.1},
		},
		Pulse: types.MarketPulse{AverageMove: 1.55, Volatility: 3.75},
	}
}

func TestSave(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	r := testReport()
	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(insertRun)).
		WithArgs(r.ID, 7, r.GeneratedAt, 1.55, 3.75).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta(insertMovement)).
		WithArgs(r.ID, "TCS.NS", 4.2, 1).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta(insertMovement)).
		WithArgs(r.ID, "ITC.NS", -1.1, 2).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, NewStore(db).Save(context.Background(), r))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSaveRollsBackOnError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO movers_runs`).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`INSERT INTO movers_movements`).WillReturnError(errors.New("duplicate key"))
	mock.ExpectRollback()

	err = NewStore(db).Save(context.Background(), testReport())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "TCS.NS")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRecent(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	at := time.Date(2024, 3, 10, 10, 0, 0, 0, time.UTC)
	mock.ExpectQuery(regexp.QuoteMeta(selectRecent)).
		WithArgs(5).
		WillReturnRows(sqlmock.NewRows([]string{"id", "days", "generated_at", "avg_move", "volatility", "count"}).
			AddRow("run-2", 7, at, 1.2, 2.5, 100).
			AddRow("run-1", 1, at.Add(-time.Hour), -0.4, 1.1, 98))

	got, err := NewStore(db).Recent(context.Background(), 5)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, types.RunSummary{ID: "run-2", Days: 7, GeneratedAt: at, AverageMove: 1.2, Volatility: 2.5, Movers: 100}, got[0])
	assert.Equal(t, 98, got[1].Movers)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEnsureSchema(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec(`CREATE TABLE IF NOT EXISTS movers_runs`).WillReturnResult(sqlmock.NewResult(0, 0))
	require.NoError(t, NewStore(db).EnsureSchema(context.Background()))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestNewDisabled(t *testing.T) {
	cfg := store.Default()
	_, err := New(context.Background(), cfg)
	assert.ErrorIs(t, err, ErrDisabled)

	cfg.History.Enabled = true
	t.Setenv(cfg.History.DSNEnv, "")
	_, err = New(context.Background(), cfg)
	assert.ErrorIs(t, err, ErrDisabled)
}

package marketobs

import (
	"context"
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stock-spike-analyzer/internal/metrics"
	"stock-spike-analyzer/internal/types"
)

type fakeMarket struct {
	series types.PriceSeries
	err    error
}

func (f fakeMarket) History(context.Context, string, int) (types.PriceSeries, error) {
	return f.series, f.err
}

func TestWrapCountsOutcomes(t *testing.T) {
	okBefore := testutil.ToFloat64(metrics.MarketRequestsTotal.WithLabelValues("fake", "ok"))
	errBefore := testutil.ToFloat64(metrics.MarketRequestsTotal.WithLabelValues("fake", "error"))

	want := types.PriceSeries{Ticker: "TCS.NS", Days: 7, Candles: []types.Candle{{Close: 1}}}
	got, err := Wrap(fakeMarket{series: want}, "fake").History(context.Background(), "TCS.NS", 7)
	require.NoError(t, err)
	assert.Equal(t, want, got)

	boom := errors.New("rate limited")
	_, err = Wrap(fakeMarket{err: boom}, "fake").History(context.Background(), "TCS.NS", 7)
	assert.ErrorIs(t, err, boom)

	assert.Equal(t, okBefore+1, testutil.ToFloat64(metrics.MarketRequestsTotal.WithLabelValues("fake", "ok")))
	assert.Equal(t, errBefore+1, testutil.ToFloat64(metrics.MarketRequestsTotal.WithLabelValues("fake", "error")))
}

package yahoo

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"stock-spike-analyzer/internal/api"
)

const chartJSON = `{"chart":{"result":[{"meta":{"symbol":"TCS.NS","currency":"INR"},
"timestamp":[1700000000,1700086400,1700172800],
"indicators":{"quote":[{"open":[100,null,104],"high":[105,null,110],"low":[99,null,103],"close":[102,null,108],"volume":[1000,null,1500]}]}}],"error":null}}`

func TestHistoryParsesChart(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v8/finance/chart/TCS.NS" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if r.URL.Query().Get("range") != "7d" || r.URL.Query().Get("interval") != "1d" {
			t.Errorf("unexpected query %s", r.URL.RawQuery)
		}
		w.Write([]byte(chartJSON))
	}))
	defer srv.Close()

	series, err := New(srv.URL, 5*time.Second).History(context.Background(), "TCS.NS", 7)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(series.Candles) != 2 {
		t.Fatalf("expected null bar dropped, got %d candles", len(series.Candles))
	}
	first, last := series.Candles[0], series.Candles[1]
	if first.Open != 100 || last.Close != 108 || last.Volume != 1500 {
		t.Errorf("unexpected candles %+v %+v", first, last)
	}
	if series.Days != 7 || series.Ticker != "TCS.NS" {
		t.Errorf("unexpected series header %+v", series)
	}
}

func TestHistoryEmptyResult(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"chart":{"result":[],"error":null}}`))
	}))
	defer srv.Close()

	_, err := New(srv.URL, time.Second).History(context.Background(), "NOPE.NS", 7)
	if !errors.Is(err, ErrNoData) {
		t.Errorf("expected ErrNoData, got %v", err)
	}
}

func TestHistoryNotFoundIsNotRetried(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"chart":{"result":null,"error":{"code":"Not Found","description":"No data found"}}}`))
	}))
	defer srv.Close()

	c := New(srv.URL, time.Second).WithRetry(&api.RetryConfig{MaxAttempts: 3, InitialWait: time.Millisecond, MaxWait: time.Millisecond})
	if _, err := c.History(context.Background(), "GONE.NS", 7); err == nil {
		t.Fatal("expected error")
	}
	if calls != 1 {
		t.Errorf("expected 1 call, got %d", calls)
	}
}

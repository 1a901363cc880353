package yahoo

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"stock-spike-analyzer/internal/api"
	"stock-spike-analyzer/internal/types"
)

const DefaultBaseURL = "https://query1.finance.yahoo.com"

// ErrNoData is returned when the chart API has no usable bars for a ticker.
var ErrNoData = errors.New("no price data")

type chartResponse struct {
	Chart struct {
		Result []struct {
			Meta struct {
				Symbol   string `json:"symbol"`
				Currency string `json:"currency"`
			} `json:"meta"`
			Timestamp  []int64 `json:"timestamp"`
			Indicators struct {
				Quote []struct {
					Open   []*float64 `json:"open"`
					High   []*float64 `json:"high"`
					Low    []*float64 `json:"low"`
					Close  []*float64 `json:"close"`
					Volume []*int64   `json:"volume"`
				} `json:"quote"`
			} `json:"indicators"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

// Client reads daily candles from the Yahoo Finance chart API.
type Client struct {
	api   *api.Client
	retry *api.RetryConfig
}

// New creates a chart client. An empty baseURL uses the public endpoint.
// extra options are applied after the defaults, e.g. api.WithRateLimit.
func New(baseURL string, timeout time.Duration, extra ...api.ClientOption) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	opts := append([]api.ClientOption{
		api.WithBaseURL(baseURL),
		api.WithTimeout(timeout),
		api.WithHeaders(api.YahooFinanceHeaders()),
		api.WithLogging(true),
	}, extra...)
	return &Client{
		api:   api.NewClient(opts...),
		retry: api.DefaultRetryConfig(),
	}
}

// WithRetry overrides the retry policy.
func (c *Client) WithRetry(cfg *api.RetryConfig) *Client {
	c.retry = cfg
	return c
}

// History returns daily candles covering the last days calendar days.
func (c *Client) History(ctx context.Context, ticker string, days int) (types.PriceSeries, error) {
	path := fmt.Sprintf("/v8/finance/chart/%s?range=%dd&interval=1d", url.PathEscape(ticker), days)
	req := api.NewRequest(http.MethodGet, path).WithContext(ctx)

	resp, err := c.api.DoWithRetry(req, c.retry)
	if err != nil {
		return types.PriceSeries{}, fmt.Errorf("yahoo chart %s: %w", ticker, err)
	}

	var cr chartResponse
	if err := resp.ParseJSON(&cr); err != nil {
		return types.PriceSeries{}, fmt.Errorf("yahoo chart %s: %w", ticker, err)
	}
	if cr.Chart.Error != nil {
		return types.PriceSeries{}, fmt.Errorf("yahoo chart %s: %s: %s", ticker, cr.Chart.Error.Code, cr.Chart.Error.Description)
	}
	if len(cr.Chart.Result) == 0 || len(cr.Chart.Result[0].Indicators.Quote) == 0 {
		return types.PriceSeries{}, fmt.Errorf("yahoo chart %s: %w", ticker, ErrNoData)
	}

	result := cr.Chart.Result[0]
	q := result.Indicators.Quote[0]
	candles := make([]types.Candle, 0, len(result.Timestamp))
	for i, ts := range result.Timestamp {
		open, high, low, cls := at(q.Open, i), at(q.High, i), at(q.Low, i), at(q.Close, i)
		// Halted sessions come back as null bars
		if open == nil || cls == nil {
			continue
		}
		c := types.Candle{
			Date:  time.Unix(ts, 0).UTC(),
			Open:  *open,
			Close: *cls,
			High:  *cls,
			Low:   *cls,
		}
		if high != nil {
			c.High = *high
		}
		if low != nil {
			c.Low = *low
		}
		if i < len(q.Volume) && q.Volume[i] != nil {
			c.Volume = *q.Volume[i]
		}
		candles = append(candles, c)
	}
	if len(candles) == 0 {
		return types.PriceSeries{}, fmt.Errorf("yahoo chart %s: %w", ticker, ErrNoData)
	}

	return types.PriceSeries{Ticker: ticker, Days: days, Candles: candles}, nil
}

func at[T any](vals []*T, i int) *T {
	if i >= len(vals) {
		return nil
	}
	return vals[i]
}

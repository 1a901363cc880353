package kite

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	kiteconnect "github.com/zerodha/gokiteconnect/v4"

	"stock-spike-analyzer/internal/logger"
	"stock-spike-analyzer/internal/types"
)

// ErrUnknownSymbol is returned when the exchange dump has no instrument for a symbol.
var ErrUnknownSymbol = errors.New("unknown instrument")

// kiteAPI is the subset of the Kite Connect client used for daily history
type kiteAPI interface {
	GetInstrumentsByExchange(exchange string) (kiteconnect.Instruments, error)
	GetHistoricalData(instrumentToken int, interval string, fromDate time.Time, toDate time.Time, continuous bool, OI bool) ([]kiteconnect.HistoricalData, error)
}

type Params struct {
	APIKey      string
	AccessToken string
	Exchange    string
	Suffix      string
}

// Client reads daily candles from Kite Connect.
type Client struct {
	p       Params
	kc      kiteAPI
	mapper  *instrumentMapper
	loadMu  sync.Mutex
	nowFunc func() time.Time
}

// New creates a Kite history client.
func New(p Params) (*Client, error) {
	if p.APIKey == "" || p.AccessToken == "" {
		return nil, errors.New("kite: KITE_API_KEY and KITE_ACCESS_TOKEN are required")
	}
	kc := kiteconnect.New(p.APIKey)
	kc.SetAccessToken(p.AccessToken)
	return newWithAPI(p, kc), nil
}

func newWithAPI(p Params, kc kiteAPI) *Client {
	if p.Exchange == "" {
		p.Exchange = "NSE"
	}
	return &Client{p: p, kc: kc, mapper: newInstrumentMapper(), nowFunc: time.Now}
}

// History returns daily candles for the last days calendar days.
func (c *Client) History(ctx context.Context, ticker string, days int) (types.PriceSeries, error) {
	if err := c.loadInstruments(ctx); err != nil {
		return types.PriceSeries{}, err
	}

	symbol := strings.TrimSuffix(ticker, c.p.Suffix)
	token, ok := c.mapper.getToken(symbol)
	if !ok {
		return types.PriceSeries{}, fmt.Errorf("kite %s: %w", ticker, ErrUnknownSymbol)
	}

	to := c.nowFunc()
	from := to.AddDate(0, 0, -days)
	bars, err := c.kc.GetHistoricalData(token, "day", from, to, false, false)
	if err != nil {
		return types.PriceSeries{}, fmt.Errorf("kite history %s: %w", ticker, err)
	}

	candles := make([]types.Candle, 0, len(bars))
	for _, b := range bars {
		candles = append(candles, types.Candle{
			Date:   b.Date.Time,
			Open:   b.Open,
			High:   b.High,
			Low:    b.Low,
			Close:  b.Close,
			Volume: int64(b.Volume),
		})
	}
	if len(candles) == 0 {
		return types.PriceSeries{}, fmt.Errorf("kite history %s: no candles", ticker)
	}

	return types.PriceSeries{Ticker: ticker, Days: days, Candles: candles}, nil
}

func (c *Client) loadInstruments(ctx context.Context) error {
	if c.mapper.isLoaded() {
		return nil
	}
	c.loadMu.Lock()
	defer c.loadMu.Unlock()
	if c.mapper.isLoaded() {
		return nil
	}

	instruments, err := c.kc.GetInstrumentsByExchange(c.p.Exchange)
	if err != nil {
		return fmt.Errorf("kite instruments %s: %w", c.p.Exchange, err)
	}
	for _, inst := range instruments {
		if inst.Segment != "" && inst.Segment != c.p.Exchange {
			continue
		}
		c.mapper.addMapping(inst.Tradingsymbol, inst.InstrumentToken)
	}
	c.mapper.markLoaded()

	logger.Info(ctx, "Loaded Kite instruments", "exchange", c.p.Exchange, "count", c.mapper.size())
	return nil
}

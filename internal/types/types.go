package types

import "time"

// Candle is one daily OHLCV bar
type Candle struct {
	Date   time.Time `json:"date"`
	Open   float64   `json:"open"`
	High   float64   `json:"high"`
	Low    float64   `json:"low"`
	Close  float64   `json:"close"`
	Volume int64     `json:"volume"`
}

// PriceSeries holds daily candles for a ticker, oldest first
type PriceSeries struct {
	Ticker  string   `json:"ticker"`
	Days    int      `json:"days"`
	Candles []Candle `json:"candles"`
}

// Closes returns the closing prices in order
func (s PriceSeries) Closes() []float64 {
	out := make([]float64, len(s.Candles))
	for i, c := range s.Candles {
		out[i] = c.Close
	}
	return out
}

// Movement is the percentage move of a ticker over the lookback window
type Movement struct {
	Ticker    string  `json:"ticker"`
	Symbol    string  `json:"symbol"`
	Company   string  `json:"company"`
	ChangePct float64 `json:"change_pct"`
}

// MarketPulse summarizes a movers report
type MarketPulse struct {
	TopGainer   Movement `json:"top_gainer"`
	TopLoser    Movement `json:"top_loser"`
	AverageMove float64  `json:"average_move"`
	Volatility  float64  `json:"volatility"`
}

// MoversReport is the result of one universe scan
type MoversReport struct {
	ID          string      `json:"id"`
	Days        int         `json:"days"`
	GeneratedAt time.Time   `json:"generated_at"`
	Movements   []Movement  `json:"movements"`
	Gainers     []Movement  `json:"gainers"`
	Losers      []Movement  `json:"losers"`
	Pulse       MarketPulse `json:"pulse"`
	Failed      []string    `json:"failed,omitempty"`
}

// Find returns the movement for a ticker
func (r *MoversReport) Find(ticker string) (Movement, bool) {
	for _, m := range r.Movements {
		if m.Ticker == ticker || m.Symbol == ticker {
			return m, true
		}
	}
	return Movement{}, false
}

// Headline is a news item returned by a news source
type Headline struct {
	Title       string    `json:"title"`
	Link        string    `json:"link"`
	Source      string    `json:"source"`
	Published   time.Time `json:"published,omitempty"`
	Description string    `json:"description,omitempty"`
}

// Sentiment labels
const (
	SentimentPositive = "positive"
	SentimentNeutral  = "neutral"
	SentimentNegative = "negative"
)

// ScoredHeadline is a headline with its sentiment
type ScoredHeadline struct {
	Headline
	Sentiment string  `json:"sentiment"`
	Score     float64 `json:"score"`
}

// Explanation statuses
const (
	StatusExplained = "EXPLAINED"
	StatusNoNews    = "NO_NEWS"
	StatusNoKey     = "NO_KEY"
	StatusLLMError  = "LLM_ERROR"
)

// Explanation is the narrative produced for a price move
type Explanation struct {
	Ticker    string          `json:"ticker"`
	ChangePct float64         `json:"change_pct"`
	Direction string          `json:"direction"`
	Magnitude float64         `json:"magnitude"`
	Headline  *ScoredHeadline `json:"headline,omitempty"`
	Text      string          `json:"text"`
	Status    string          `json:"status"`
}

// ChartBounds is the padded y-axis range of the price chart
type ChartBounds struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// Indicators are optional technical readings; nil when the window is too short
type Indicators struct {
	SMA5  *float64 `json:"sma5,omitempty"`
	RSI14 *float64 `json:"rsi14,omitempty"`
	ATR14 *float64 `json:"atr14,omitempty"`
}

// StockDetail is everything shown for a selected ticker
type StockDetail struct {
	Movement    Movement         `json:"movement"`
	Series      PriceSeries      `json:"series"`
	Bounds      ChartBounds      `json:"bounds"`
	Indicators  Indicators       `json:"indicators"`
	Headlines   []ScoredHeadline `json:"headlines"`
	Explanation Explanation      `json:"explanation"`
}

// RunSummary is a persisted report header
type RunSummary struct {
	ID          string    `json:"id"`
	Days        int       `json:"days"`
	GeneratedAt time.Time `json:"generated_at"`
	AverageMove float64   `json:"average_move"`
	Volatility  float64   `json:"volatility"`
	Movers      int       `json:"movers"`
}

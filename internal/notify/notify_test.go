package notify

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stock-spike-analyzer/internal/store"
	"stock-spike-analyzer/internal/types"
)

type fakeSender struct {
	sent []tgbotapi.MessageConfig
	err  error
}

func (f *fakeSender) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	if f.err != nil {
		return tgbotapi.Message{}, f.err
	}
	f.sent = append(f.sent, c.(tgbotapi.MessageConfig))
	return tgbotapi.Message{}, nil
}

var at = time.Date(2024, 3, 11, 4, 30, 0, 0, time.UTC) // 10:00 IST

func spikes() []types.Movement {
	return []types.Movement{
		{Ticker: "TCS.NS", Symbol: "TCS", Company: "Tata Consultancy Services", ChangePct: 6.2},
		{Ticker: "M&M.NS", Symbol: "M&M", Company: "Mahindra_and_Mahindra", ChangePct: -5.1},
	}
}

func TestFormatSpikes(t *testing.T) {
	msg := FormatSpikes(7, 5, at, spikes())

	assert.True(t, strings.HasPrefix(msg, "🚨 *NIFTY100 spikes* (last 7 day(s))"))
	assert.Contains(t, msg, "📈 *TCS* Tata Consultancy Services +6.20%")
	assert.Contains(t, msg, `📉 *M&M* Mahindra\_and\_Mahindra -5.10%`)
	assert.Contains(t, msg, "_Threshold ±5.00% • 11 Mar 10:00 IST_")
}

func TestFormatSpikesCaps(t *testing.T) {
	var many []types.Movement
	for i := 0; i < 13; i++ {
		many = append(many, types.Movement{Ticker: "X.NS", ChangePct: 6})
	}
	msg := FormatSpikes(1, 5, at, many)
	assert.Equal(t, MaxSpikesPerMessage, strings.Count(msg, "📈"))
	assert.Contains(t, msg, "…and 3 more")
}

func TestTelegramDedupesPerDay(t *testing.T) {
	fs := &fakeSender{}
	tg := newTelegramWithSender(fs, 42, 5)
	report := &types.MoversReport{Days: 1, GeneratedAt: at}
	ctx := context.Background()

	require.NoError(t, tg.NotifySpikes(ctx, report, spikes()))
	require.Len(t, fs.sent, 1)
	assert.Equal(t, int64(42), fs.sent[0].ChatID)
	assert.Equal(t, tgbotapi.ModeMarkdown, fs.sent[0].ParseMode)

	// same day, same direction: nothing new
	require.NoError(t, tg.NotifySpikes(ctx, report, spikes()))
	assert.Len(t, fs.sent, 1)

	// direction flip is a new alert
	flipped := []types.Movement{{Ticker: "TCS.NS", Symbol: "TCS", ChangePct: -5.5}}
	require.NoError(t, tg.NotifySpikes(ctx, report, flipped))
	assert.Len(t, fs.sent, 2)

	// next day resets
	report.GeneratedAt = at.Add(24 * time.Hour)
	require.NoError(t, tg.NotifySpikes(ctx, report, spikes()))
	assert.Len(t, fs.sent, 3)
}

func TestTelegramRetriesAfterFailure(t *testing.T) {
	fs := &fakeSender{err: errors.New("network down")}
	tg := newTelegramWithSender(fs, 42, 5)
	report := &types.MoversReport{Days: 1, GeneratedAt: at}

	assert.Error(t, tg.NotifySpikes(context.Background(), report, spikes()))

	fs.err = nil
	require.NoError(t, tg.NotifySpikes(context.Background(), report, spikes()))
	assert.Len(t, fs.sent, 1)
}

func TestNewDisabledIsNoop(t *testing.T) {
	n, err := New(store.Default())
	require.NoError(t, err)
	assert.IsType(t, NoopNotifier{}, n)
	assert.NoError(t, n.NotifySpikes(context.Background(), &types.MoversReport{}, spikes()))
}

func TestNewRequiresCredentials(t *testing.T) {
	cfg := store.Default()
	cfg.Notify.Telegram.Enabled = true
	t.Setenv(cfg.Notify.Telegram.TokenEnv, "")

	n, err := New(cfg)
	assert.Error(t, err)
	assert.IsType(t, NoopNotifier{}, n)

	t.Setenv(cfg.Notify.Telegram.TokenEnv, "123:abc")
	t.Setenv(cfg.Notify.Telegram.ChatIDEnv, "not-a-number")
	_, err = New(cfg)
	assert.Error(t, err)
}

func TestNewRejectedTokenFallsBackToNoop(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"ok":false,"error_code":401,"description":"Unauthorized"}`))
	}))
	defer srv.Close()

	prev := apiEndpoint
	apiEndpoint = srv.URL + "/bot%s/%s"
	defer func() { apiEndpoint = prev }()

	cfg := store.Default()
	cfg.Notify.Telegram.Enabled = true
	t.Setenv(cfg.Notify.Telegram.TokenEnv, "123:bogus")
	t.Setenv(cfg.Notify.Telegram.ChatIDEnv, "42")

	n, err := New(cfg)
	require.Error(t, err)
	require.NotNil(t, n)
	assert.IsType(t, NoopNotifier{}, n)

	report := &types.MoversReport{Days: 1, GeneratedAt: at}
	assert.NotPanics(t, func() {
		assert.NoError(t, n.NotifySpikes(context.Background(), report, spikes()))
	})
}

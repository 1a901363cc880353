package notify

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"sync"
	"time"

	"stock-spike-analyzer/internal/interfaces"
	"stock-spike-analyzer/internal/logger"
	"stock-spike-analyzer/internal/store"
	"stock-spike-analyzer/internal/types"
)

// MaxSpikesPerMessage caps the list in one alert
const MaxSpikesPerMessage = 10

var ist = time.FixedZone("IST", 19800)

// NoopNotifier drops every alert
type NoopNotifier struct{}

var _ interfaces.Notifier = NoopNotifier{}

func (NoopNotifier) NotifySpikes(ctx context.Context, report *types.MoversReport, spikes []types.Movement) error {
	logger.Debug(ctx, "Spike alerts disabled", "spikes", len(spikes))
	return nil
}

// New returns the Telegram notifier when enabled and configured, otherwise a noop
func New(cfg *store.Config) (interfaces.Notifier, error) {
	tg := cfg.Notify.Telegram
	if !tg.Enabled {
		return NoopNotifier{}, nil
	}

	token := os.Getenv(tg.TokenEnv)
	if token == "" {
		return NoopNotifier{}, fmt.Errorf("%s is required for telegram alerts", tg.TokenEnv)
	}
	chatIDStr := os.Getenv(tg.ChatIDEnv)
	if chatIDStr == "" {
		return NoopNotifier{}, fmt.Errorf("%s is required for telegram alerts", tg.ChatIDEnv)
	}
	chatID, err := strconv.ParseInt(chatIDStr, 10, 64)
	if err != nil {
		return NoopNotifier{}, fmt.Errorf("invalid %s: %w", tg.ChatIDEnv, err)
	}

	t, err := NewTelegram(token, chatID, cfg.Movers.SpikeThresholdPct)
	if err != nil {
		return NoopNotifier{}, err
	}
	return t, nil
}

// dedupe remembers which (ticker, day, direction) alerts were sent
type dedupe struct {
	mu   sync.Mutex
	day  string
	sent map[string]bool
}

func newDedupe() *dedupe {
	return &dedupe{sent: make(map[string]bool)}
}

// fresh returns spikes not yet alerted on the given day and marks them sent
func (d *dedupe) fresh(at time.Time, spikes []types.Movement) []types.Movement {
	d.mu.Lock()
	defer d.mu.Unlock()

	day := at.In(ist).Format("2006-01-02")
	if day != d.day {
		d.day = day
		d.sent = make(map[string]bool)
	}

	var out []types.Movement
	for _, s := range spikes {
		key := s.Ticker + "|" + direction(s.ChangePct)
		if d.sent[key] {
			continue
		}
		d.sent[key] = true
		out = append(out, s)
	}
	return out
}

// forget releases keys after a failed send so the next refresh retries them
func (d *dedupe) forget(spikes []types.Movement) {
	d.mu.Lock()
	defer d.mu.Unlock()
	for _, s := range spikes {
		delete(d.sent, s.Ticker+"|"+direction(s.ChangePct))
	}
}

func direction(change float64) string {
	if change > 0 {
		return "up"
	}
	return "down"
}

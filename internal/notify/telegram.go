package notify

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"stock-spike-analyzer/internal/interfaces"
	"stock-spike-analyzer/internal/logger"
	"stock-spike-analyzer/internal/types"
)

type sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// Telegram sends spike alerts to a chat
type Telegram struct {
	bot       sender
	chatID    int64
	threshold float64
	seen      *dedupe
}

var _ interfaces.Notifier = (*Telegram)(nil)

// apiEndpoint is the Bot API URL format (token, method)
var apiEndpoint = tgbotapi.APIEndpoint

// NewTelegram authenticates the bot token
func NewTelegram(token string, chatID int64, threshold float64) (*Telegram, error) {
	bot, err := tgbotapi.NewBotAPIWithClient(token, apiEndpoint, &http.Client{Timeout: 15 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to create telegram bot: %w", err)
	}
	return newTelegramWithSender(bot, chatID, threshold), nil
}

func newTelegramWithSender(bot sender, chatID int64, threshold float64) *Telegram {
	return &Telegram{bot: bot, chatID: chatID, threshold: threshold, seen: newDedupe()}
}

// NotifySpikes sends one Markdown message for spikes not yet alerted today
func (t *Telegram) NotifySpikes(ctx context.Context, report *types.MoversReport, spikes []types.Movement) error {
	at := report.GeneratedAt
	if at.IsZero() {
		at = time.Now()
	}

	fresh := t.seen.fresh(at, spikes)
	if len(fresh) == 0 {
		logger.Debug(ctx, "No new spikes to alert", "spikes", len(spikes))
		return nil
	}

	msg := tgbotapi.NewMessage(t.chatID, FormatSpikes(report.Days, t.threshold, at, fresh))
	msg.ParseMode = tgbotapi.ModeMarkdown
	msg.DisableWebPagePreview = true

	if _, err := t.bot.Send(msg); err != nil {
		t.seen.forget(fresh)
		return fmt.Errorf("failed to send telegram alert: %w", err)
	}
	logger.Info(ctx, "Spike alert sent", "spikes", len(fresh), "chat", t.chatID)
	return nil
}

// FormatSpikes renders up to MaxSpikesPerMessage spikes as a Markdown message
func FormatSpikes(days int, threshold float64, at time.Time, spikes []types.Movement) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "🚨 *NIFTY100 spikes* (last %d day(s))\n\n", days)

	shown := spikes
	if len(shown) > MaxSpikesPerMessage {
		shown = shown[:MaxSpikesPerMessage]
	}
	for _, s := range shown {
		emoji := "📉"
		if s.ChangePct > 0 {
			emoji = "📈"
		}
		name := s.Symbol
		if name == "" {
			name = s.Ticker
		}
		fmt.Fprintf(&sb, "%s *%s* %s %+.2f%%\n",
			emoji,
			tgbotapi.EscapeText(tgbotapi.ModeMarkdown, name),
			tgbotapi.EscapeText(tgbotapi.ModeMarkdown, s.Company),
			s.ChangePct)
	}
	if extra := len(spikes) - len(shown); extra > 0 {
		fmt.Fprintf(&sb, "…and %d more\n", extra)
	}

	fmt.Fprintf(&sb, "\n_Threshold ±%.2f%% • %s IST_", threshold, at.In(ist).Format("02 Jan 15:04"))
	return sb.String()
}

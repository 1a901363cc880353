package news

import (
	"context"
	"fmt"
	"math/rand"
	"net/url"
	"strings"
	"time"

	"stock-spike-analyzer/internal/api"
	"stock-spike-analyzer/internal/interfaces"
	"stock-spike-analyzer/internal/logger"
	"stock-spike-analyzer/internal/metrics"
	"stock-spike-analyzer/internal/types"
)

const (
	DefaultGoogleNewsURL = "https://news.google.com"
	defaultSourceName    = "Google News"
)

// locales are tried in order for every query variant
var locales = []string{
	"hl=en-US&gl=US&ceid=US:en",
	"hl=en-IN&gl=IN&ceid=IN:en",
	"hl=en&gl=US&ceid=US:en",
}

// GoogleNews searches the Google News RSS endpoint with progressively broader queries.
type GoogleNews struct {
	client         *api.Client
	minTitleLength int
	recentDays     int
	delay          time.Duration
	jitter         time.Duration
	now            func() time.Time
}

type GoogleOption func(*GoogleNews)

// WithPacing sets the fixed delay and random jitter before each request.
func WithPacing(delay, jitter time.Duration) GoogleOption {
	return func(g *GoogleNews) {
		g.delay, g.jitter = delay, jitter
	}
}

// WithClock overrides time.Now for query dates and cache busters.
func WithClock(now func() time.Time) GoogleOption {
	return func(g *GoogleNews) {
		g.now = now
	}
}

func NewGoogleNews(baseURL string, timeout time.Duration, minTitleLength, recentDays int, opts ...GoogleOption) *GoogleNews {
	if baseURL == "" {
		baseURL = DefaultGoogleNewsURL
	}
	g := &GoogleNews{
		client: api.NewClient(
			api.WithBaseURL(baseURL),
			api.WithTimeout(timeout),
			api.WithHeaders(api.FeedHeaders()),
			api.WithLogging(true),
		),
		minTitleLength: minTitleLength,
		recentDays:     recentDays,
		delay:          500 * time.Millisecond,
		jitter:         time.Second,
		now:            time.Now,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Variants returns the search queries in the order they are tried.
func (g *GoogleNews) Variants(q interfaces.NewsQuery) []string {
	company := q.Company
	if company == "" {
		company = q.Symbol
	}
	direction := "down"
	if q.ChangePct > 0 {
		direction = "up"
	}
	since := g.now().AddDate(0, 0, -g.recentDays).Format("2006-01-02")

	return []string{
		fmt.Sprintf(`"%s" %s stock`, company, q.Symbol),
		fmt.Sprintf(`"%s" stock %s`, company, direction),
		fmt.Sprintf(`"%s" after:%s`, company, since),
		fmt.Sprintf(`"%s"`, company),
	}
}

// Headlines collects up to q.Max unique headlines. Failed requests are skipped.
func (g *GoogleNews) Headlines(ctx context.Context, q interfaces.NewsQuery) ([]types.Headline, error) {
	seen := make(map[string]bool)
	var out []types.Headline

	for _, variant := range g.Variants(q) {
		for _, locale := range locales {
			if len(out) >= q.Max {
				return out, nil
			}
			if err := g.pause(ctx); err != nil {
				return out, err
			}

			items, err := g.search(ctx, variant, locale)
			if err != nil {
				metrics.NewsRequestsTotal.WithLabelValues("google_rss", "error").Inc()
				logger.Warn(ctx, "Google News request failed", "query", variant, "locale", locale, "error", err)
				continue
			}
			metrics.NewsRequestsTotal.WithLabelValues("google_rss", "ok").Inc()

			for _, it := range items {
				if len(out) >= q.Max {
					break
				}
				link := strings.TrimSpace(it.Link)
				if link == "" || seen[link] {
					continue
				}
				title := strings.TrimSpace(it.Title)
				if len([]rune(title)) < g.minTitleLength {
					continue
				}
				source := strings.TrimSpace(it.Source.Name)
				if source == "" {
					source = defaultSourceName
				}
				seen[link] = true
				out = append(out, types.Headline{
					Title:       title,
					Link:        link,
					Source:      source,
					Published:   parsePubDate(it.PubDate),
					Description: htmlToText(it.Description),
				})
			}
		}
	}

	logger.Debug(ctx, "Google News search finished", "ticker", q.Ticker, "headlines", len(out))
	return out, nil
}

func (g *GoogleNews) search(ctx context.Context, query, locale string) ([]rssItem, error) {
	path := fmt.Sprintf("/rss/search?q=%s&%s&_=%d", url.QueryEscape(query), locale, g.now().Unix())
	resp, err := g.client.GET(ctx, path)
	if err != nil {
		return nil, err
	}
	feed, err := parseFeed(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parse feed: %w", err)
	}
	return feed.Channel.Items, nil
}

func (g *GoogleNews) pause(ctx context.Context) error {
	d := g.delay
	if g.jitter > 0 {
		d += time.Duration(rand.Int63n(int64(g.jitter)))
	}
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

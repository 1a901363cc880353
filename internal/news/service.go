package news

import (
	"context"
	"strconv"
	"sync"
	"time"

	"stock-spike-analyzer/internal/interfaces"
	"stock-spike-analyzer/internal/logger"
	"stock-spike-analyzer/internal/store"
	"stock-spike-analyzer/internal/types"
)

// Service provides headlines for moving tickers with caching and a scraping fallback
type Service struct {
	primary  interfaces.NewsSource
	fallback headlineScraper
	cache    *headlineCache
	cfg      *ServiceConfig
}

type headlineScraper interface {
	ScrapeHeadlines(ctx context.Context, symbol string, maxHeadlines int) ([]types.Headline, error)
}

var _ interfaces.NewsSource = (*Service)(nil)

// ServiceConfig configures the headline service
type ServiceConfig struct {
	MaxHeadlines    int           // Default cap when the query has none
	CacheDuration   time.Duration // How long to cache headlines
	ScraperFallback bool          // Scrape topic pages when RSS is empty
}

// DefaultServiceConfig returns default configuration
func DefaultServiceConfig() *ServiceConfig {
	return &ServiceConfig{
		MaxHeadlines:    6,
		CacheDuration:   30 * time.Minute,
		ScraperFallback: true,
	}
}

// ServiceConfigFrom maps the news section of the config file
func ServiceConfigFrom(cfg *store.Config) *ServiceConfig {
	return &ServiceConfig{
		MaxHeadlines:    cfg.News.MaxHeadlines,
		CacheDuration:   time.Duration(cfg.News.CacheMinutes) * time.Minute,
		ScraperFallback: cfg.News.ScraperFallback,
	}
}

// headlineCache stores headline lists temporarily
type headlineCache struct {
	mu   sync.RWMutex
	data map[string]*cacheEntry
	ttl  time.Duration
}

type cacheEntry struct {
	headlines []types.Headline
	timestamp time.Time
}

func newHeadlineCache(ttl time.Duration) *headlineCache {
	return &headlineCache{
		data: make(map[string]*cacheEntry),
		ttl:  ttl,
	}
}

func (c *headlineCache) get(key string) ([]types.Headline, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, exists := c.data[key]
	if !exists || time.Since(entry.timestamp) > c.ttl {
		return nil, false
	}
	return entry.headlines, true
}

func (c *headlineCache) set(key string, headlines []types.Headline) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.data[key] = &cacheEntry{
		headlines: headlines,
		timestamp: time.Now(),
	}
}

// cleanupLoop periodically removes expired entries until ctx is done
func (c *headlineCache) cleanupLoop(ctx context.Context, every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			c.cleanup()
		}
	}
}

func (c *headlineCache) cleanup() {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := time.Now()
	for key, entry := range c.data {
		if now.Sub(entry.timestamp) > c.ttl {
			delete(c.data, key)
		}
	}
}

// NewService creates a headline service. fallback may be nil.
func NewService(primary interfaces.NewsSource, fallback headlineScraper, cfg *ServiceConfig) *Service {
	if cfg == nil {
		cfg = DefaultServiceConfig()
	}
	return &Service{
		primary:  primary,
		fallback: fallback,
		cache:    newHeadlineCache(cfg.CacheDuration),
		cfg:      cfg,
	}
}

// NewFromConfig wires the Google News RSS source and the topic-page scraper
func NewFromConfig(cfg *store.Config) *Service {
	timeout := time.Duration(cfg.News.TimeoutSeconds) * time.Second
	google := NewGoogleNews("", timeout, cfg.News.MinTitleLength, cfg.News.RecentDays,
		WithPacing(time.Duration(cfg.News.RequestDelayMs)*time.Millisecond, time.Second))

	var fallback headlineScraper
	if cfg.News.ScraperFallback {
		fallback = NewScraper(timeout)
	}
	return NewService(google, fallback, ServiceConfigFrom(cfg))
}

// StartCleanup sweeps expired cache entries until ctx is cancelled
func (s *Service) StartCleanup(ctx context.Context) {
	go s.cache.cleanupLoop(ctx, 10*time.Minute)
}

func cacheKey(q interfaces.NewsQuery) string {
	dir := "down"
	if q.ChangePct > 0 {
		dir = "up"
	}
	return q.Ticker + ":" + dir + ":" + strconv.Itoa(q.Max)
}

// Headlines returns cached or freshly fetched headlines for a ticker
func (s *Service) Headlines(ctx context.Context, q interfaces.NewsQuery) ([]types.Headline, error) {
	if q.Max <= 0 {
		q.Max = s.cfg.MaxHeadlines
	}

	key := cacheKey(q)
	if cached, ok := s.cache.get(key); ok {
		logger.Info(ctx, "Using cached headlines", "ticker", q.Ticker, "count", len(cached))
		return capHeadlines(cached, q.Max), nil
	}

	logger.Info(ctx, "Fetching fresh headlines", "ticker", q.Ticker)
	headlines, err := s.primary.Headlines(ctx, q)
	if err != nil {
		logger.ErrorWithErr(ctx, "Headline search failed", err, "ticker", q.Ticker)
	}

	if len(headlines) == 0 && s.cfg.ScraperFallback && s.fallback != nil && ctx.Err() == nil {
		logger.Info(ctx, "No headlines from RSS search, trying topic pages", "ticker", q.Ticker)
		scraped, serr := s.fallback.ScrapeHeadlines(ctx, q.Symbol, q.Max)
		if serr != nil {
			logger.ErrorWithErr(ctx, "Topic page fallback failed", serr, "ticker", q.Ticker)
		}
		headlines = scraped
	}

	// a cancelled fetch may hold a partial list
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(headlines) == 0 {
		return nil, nil
	}

	s.cache.set(key, headlines)
	return capHeadlines(headlines, q.Max), nil
}

func capHeadlines(h []types.Headline, n int) []types.Headline {
	if len(h) > n {
		h = h[:n]
	}
	return append([]types.Headline(nil), h...)
}

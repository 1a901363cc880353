package news

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/gocolly/colly/v2"

	"stock-spike-analyzer/internal/api"
	"stock-spike-analyzer/internal/logger"
	"stock-spike-analyzer/internal/metrics"
	"stock-spike-analyzer/internal/types"
)

// Scraper reads headlines from financial news topic pages
type Scraper struct {
	sources []SiteSource
	timeout time.Duration
}

// SiteSource describes a topic page and how to read its listing
type SiteSource struct {
	Name       string
	BaseURL    string
	SearchPath string // {slug} is replaced with the lower-cased symbol
	Selectors  ArticleSelectors
	RateLimit  time.Duration
}

// ArticleSelectors are CSS selectors for one listing entry
type ArticleSelectors struct {
	ArticleContainer string
	Title            string
	URL              string
	Summary          string
}

// NewScraper creates a scraper with the default Indian market sources
func NewScraper(timeout time.Duration) *Scraper {
	return NewScraperWithSources(timeout, DefaultSources())
}

func NewScraperWithSources(timeout time.Duration, sources []SiteSource) *Scraper {
	return &Scraper{sources: sources, timeout: timeout}
}

// DefaultSources returns the topic pages used when the RSS search is empty
func DefaultSources() []SiteSource {
	return []SiteSource{
		{
			Name:       "MoneyControl",
			BaseURL:    "https://www.moneycontrol.com",
			SearchPath: "/news/tags/{slug}.html",
			Selectors: ArticleSelectors{
				ArticleContainer: "li.clearfix",
				Title:            "h2 a, h3 a",
				URL:              "h2 a, h3 a",
				Summary:          "p",
			},
			RateLimit: 2 * time.Second,
		},
		{
			Name:       "EconomicTimes",
			BaseURL:    "https://economictimes.indiatimes.com",
			SearchPath: "/topic/{slug}",
			Selectors: ArticleSelectors{
				ArticleContainer: "div.story-box",
				Title:            "a",
				URL:              "a",
				Summary:          "p",
			},
			RateLimit: 2 * time.Second,
		},
	}
}

// ScrapeHeadlines visits every source until maxHeadlines are collected.
// A failing source is logged and skipped.
func (s *Scraper) ScrapeHeadlines(ctx context.Context, symbol string, maxHeadlines int) ([]types.Headline, error) {
	logger.Info(ctx, "Starting news scraping", "symbol", symbol, "sources", len(s.sources))

	var all []types.Headline
	seen := make(map[string]bool)

	for i, source := range s.sources {
		if len(all) >= maxHeadlines {
			break
		}
		if i > 0 && source.RateLimit > 0 {
			select {
			case <-ctx.Done():
				return all, ctx.Err()
			case <-time.After(source.RateLimit):
			}
		}

		headlines, err := s.scrapeSource(ctx, source, symbol, maxHeadlines-len(all))
		if err != nil {
			metrics.NewsRequestsTotal.WithLabelValues(strings.ToLower(source.Name), "error").Inc()
			logger.ErrorWithErr(ctx, "Failed to scrape source", err, "source", source.Name, "symbol", symbol)
			continue
		}
		metrics.NewsRequestsTotal.WithLabelValues(strings.ToLower(source.Name), "ok").Inc()

		for _, h := range headlines {
			if seen[h.Link] {
				continue
			}
			seen[h.Link] = true
			all = append(all, h)
		}
	}

	logger.Info(ctx, "News scraping completed", "symbol", symbol, "headlines", len(all))
	return all, nil
}

func (s *Scraper) scrapeSource(ctx context.Context, source SiteSource, symbol string, maxHeadlines int) ([]types.Headline, error) {
	var headlines []types.Headline

	c := colly.NewCollector(
		colly.AllowedDomains(getDomain(source.BaseURL)),
		colly.MaxDepth(1),
		colly.Async(false),
	)
	c.SetRequestTimeout(s.timeout)

	c.OnRequest(func(r *colly.Request) {
		if ctx.Err() != nil {
			r.Abort()
			return
		}
		r.Headers.Set("User-Agent", api.UserAgent())
	})

	c.OnHTML(source.Selectors.ArticleContainer, func(e *colly.HTMLElement) {
		if len(headlines) >= maxHeadlines {
			return
		}

		title := strings.TrimSpace(e.ChildText(source.Selectors.Title))
		if title == "" {
			return
		}
		link := e.ChildAttr(source.Selectors.URL, "href")
		if link == "" {
			return
		}
		if !strings.HasPrefix(link, "http") {
			link = source.BaseURL + link
		}

		headlines = append(headlines, types.Headline{
			Title:       title,
			Link:        link,
			Source:      source.Name,
			Description: strings.TrimSpace(e.ChildText(source.Selectors.Summary)),
		})
	})

	var visitErr error
	c.OnError(func(r *colly.Response, err error) {
		visitErr = fmt.Errorf("%s returned %d: %w", r.Request.URL, r.StatusCode, err)
	})

	slug := strings.ToLower(symbol)
	searchURL := source.BaseURL + strings.ReplaceAll(source.SearchPath, "{slug}", url.PathEscape(slug))
	if err := c.Visit(searchURL); err != nil {
		return nil, fmt.Errorf("failed to visit %s: %w", searchURL, err)
	}
	c.Wait()

	if visitErr != nil {
		return nil, visitErr
	}
	return headlines, nil
}

func getDomain(urlStr string) string {
	u, err := url.Parse(urlStr)
	if err != nil {
		return ""
	}
	return u.Hostname()
}

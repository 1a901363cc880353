package news

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stock-spike-analyzer/internal/interfaces"
)

func feed(items ...string) string {
	return `<?xml version="1.0" encoding="UTF-8"?><rss version="2.0"><channel><title>Google News</title>` +
		strings.Join(items, "") + `</channel></rss>`
}

func item(title, link, source string) string {
	src := ""
	if source != "" {
		src = fmt.Sprintf(`<source url="https://%s.example">%s</source>`, strings.ToLower(source), source)
	}
	return fmt.Sprintf(`<item><title>%s</title><link>%s</link><pubDate>Mon, 02 Jan 2006 15:04:05 GMT</pubDate>`+
		`<description>&lt;a href="%s"&gt;%s&lt;/a&gt;&amp;nbsp;&lt;font color="#6f6f6f"&gt;%s&lt;/font&gt;</description>%s</item>`,
		title, link, link, title, source, src)
}

var fixedNow = time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)

func newTestGoogle(url string) *GoogleNews {
	return NewGoogleNews(url, time.Second, 10, 3, WithPacing(0, 0), WithClock(func() time.Time { return fixedNow }))
}

func TestVariants(t *testing.T) {
	g := newTestGoogle("")
	got := g.Variants(interfaces.NewsQuery{Symbol: "TCS", Company: "Tata Consultancy Services", ChangePct: 4.2})
	assert.Equal(t, []string{
		`"Tata Consultancy Services" TCS stock`,
		`"Tata Consultancy Services" stock up`,
		`"Tata Consultancy Services" after:2024-03-07`,
		`"Tata Consultancy Services"`,
	}, got)

	down := g.Variants(interfaces.NewsQuery{Symbol: "TCS", ChangePct: -1})
	assert.Equal(t, `"TCS" stock down`, down[1], "falls back to symbol without a company name")
}

func TestHeadlinesDedupesAndFilters(t *testing.T) {
	var mu sync.Mutex
	var queries []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		queries = append(queries, r.URL.Query().Get("q")+"|"+r.URL.Query().Get("hl"))
		mu.Unlock()
		assert.Equal(t, "/rss/search", r.URL.Path)
		assert.Equal(t, fmt.Sprint(fixedNow.Unix()), r.URL.Query().Get("_"))

		w.Write([]byte(feed(
			item("TCS shares jump after strong quarterly results", "https://n/1", "Mint"),
			item("Short", "https://n/2", "Mint"),
			item("TCS wins large deal from European bank", "https://n/3", ""),
			item("TCS shares jump after strong quarterly results", "https://n/1", "Mint"),
		)))
	}))
	defer srv.Close()

	g := newTestGoogle(srv.URL)
	got, err := g.Headlines(context.Background(), interfaces.NewsQuery{Ticker: "TCS.NS", Symbol: "TCS", Company: "TCS", ChangePct: 2, Max: 6})
	require.NoError(t, err)

	require.Len(t, got, 2)
	assert.Equal(t, "Mint", got[0].Source)
	assert.Equal(t, "Google News", got[1].Source)
	assert.Equal(t, "TCS shares jump after strong quarterly results Mint", got[0].Description)
	assert.False(t, got[0].Published.IsZero())

	// every variant and locale is tried because fewer than Max unique headlines exist
	assert.Len(t, queries, 12)
	assert.Equal(t, `"TCS" TCS stock|en-US`, queries[0])
	assert.Equal(t, `"TCS" TCS stock|en-IN`, queries[1])
}

func TestHeadlinesStopsAtMax(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.Write([]byte(feed(
			item("First long headline about the stock", "https://n/a", "ET"),
			item("Second long headline about the stock", "https://n/b", "ET"),
			item("Third long headline about the stock", "https://n/c", "ET"),
		)))
	}))
	defer srv.Close()

	got, err := newTestGoogle(srv.URL).Headlines(context.Background(), interfaces.NewsQuery{Ticker: "X.NS", Company: "X", Max: 2})
	require.NoError(t, err)
	assert.Len(t, got, 2)
	assert.Equal(t, 1, calls)
}

func TestHeadlinesSkipsFailedRequests(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		if calls == 2 {
			w.Write([]byte("not xml"))
			return
		}
		w.Write([]byte(feed(item("Recovered headline for the ticker", "https://n/ok", "BS"))))
	}))
	defer srv.Close()

	got, err := newTestGoogle(srv.URL).Headlines(context.Background(), interfaces.NewsQuery{Ticker: "X.NS", Company: "X", Max: 1})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "https://n/ok", got[0].Link)
}

func TestHeadlinesRespectsCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	g := NewGoogleNews("http://127.0.0.1:1", time.Second, 10, 3, WithPacing(time.Second, 0))
	_, err := g.Headlines(ctx, interfaces.NewsQuery{Ticker: "X.NS", Company: "X", Max: 3})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestHTMLToText(t *testing.T) {
	assert.Equal(t, "Title Source", htmlToText(`<a href="x">Title</a>&nbsp;&nbsp;<font color="#6f6f6f">Source</font>`))
	assert.Equal(t, "plain text", htmlToText("  plain \n text "))
}

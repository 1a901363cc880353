package news

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

const topicPage = `<html><body><ul>
<li class="clearfix"><h2><a href="/news/tcs-q3-results.html">TCS Q3 results beat estimates</a></h2><p>Revenue up 5%</p></li>
<li class="clearfix"><h2><a href="https://other.example/tcs-deal">TCS bags mega deal</a></h2><p>Deal worth $1bn</p></li>
<li class="clearfix"><p>No headline here</p></li>
</ul></body></html>`

func testSource(baseURL string) SiteSource {
	return SiteSource{
		Name:       "TestSite",
		BaseURL:    baseURL,
		SearchPath: "/news/tags/{slug}.html",
		Selectors: ArticleSelectors{
			ArticleContainer: "li.clearfix",
			Title:            "h2 a",
			URL:              "h2 a",
			Summary:          "p",
		},
	}
}

func TestScrapeHeadlines(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/news/tags/tcs.html" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte(topicPage))
	}))
	defer srv.Close()

	s := NewScraperWithSources(5*time.Second, []SiteSource{testSource(srv.URL)})
	got, err := s.ScrapeHeadlines(context.Background(), "TCS", 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 headlines, got %d: %+v", len(got), got)
	}
	if got[0].Link != srv.URL+"/news/tcs-q3-results.html" {
		t.Errorf("expected absolute link, got %s", got[0].Link)
	}
	if got[0].Source != "TestSite" || got[0].Description != "Revenue up 5%" {
		t.Errorf("unexpected headline %+v", got[0])
	}
	if got[1].Link != "https://other.example/tcs-deal" {
		t.Errorf("expected absolute link kept, got %s", got[1].Link)
	}
}

func TestScrapeHeadlinesCapsAndSkipsFailingSource(t *testing.T) {
	good := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte(topicPage))
	}))
	defer good.Close()
	bad := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer bad.Close()

	s := NewScraperWithSources(5*time.Second, []SiteSource{testSource(bad.URL), testSource(good.URL)})
	got, err := s.ScrapeHeadlines(context.Background(), "TCS", 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 1 {
		t.Errorf("expected cap of 1, got %d", len(got))
	}
}

func TestDefaultSources(t *testing.T) {
	for _, src := range DefaultSources() {
		if getDomain(src.BaseURL) == "" {
			t.Errorf("source %s has no domain", src.Name)
		}
	}
}

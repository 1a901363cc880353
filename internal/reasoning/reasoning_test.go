package reasoning

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stock-spike-analyzer/internal/types"
)

type fakeGenerator struct {
	configured bool
	text       string
	err        error
	prompt     string
}

func (f *fakeGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	f.prompt = prompt
	return f.text, f.err
}
func (f *fakeGenerator) Name() string     { return "Gemini" }
func (f *fakeGenerator) Configured() bool { return f.configured }

func scored() []types.ScoredHeadline {
	return []types.ScoredHeadline{
		{Headline: types.Headline{Title: "Neutral update on board meeting"}, Sentiment: "neutral", Score: 0},
		{Headline: types.Headline{Title: "Shares jump on strong results"}, Sentiment: "positive", Score: 0.67},
		{Headline: types.Headline{Title: "Brokerage cuts target after weak margins"}, Sentiment: "negative", Score: -0.67},
	}
}

func TestExplainNoNews(t *testing.T) {
	ex := NewExplainer(&fakeGenerator{configured: true}).Explain(context.Background(), "TCS.NS", -2.346, nil)

	assert.Equal(t, types.StatusNoNews, ex.Status)
	assert.Equal(t, "📌 **TCS.NS fell 2.35%** — No recent news available for explanation.", ex.Text)
	assert.Nil(t, ex.Headline)
}

func TestExplainNoKey(t *testing.T) {
	gen := &fakeGenerator{}
	ex := NewExplainer(gen).Explain(context.Background(), "INFY.NS", 3.1, scored())

	assert.Equal(t, types.StatusNoKey, ex.Status)
	assert.Equal(t, "📌 **INFY.NS rose 3.10%**\n"+
		"Key Trigger: **Shares jump on strong results**\n"+
		"Sentiment: **positive (0.67)**\n"+
		"⚠ No Gemini API key — cannot generate explanation.", ex.Text)
	assert.Empty(t, gen.prompt, "the model is not called without a key")
}

func TestExplainSuccess(t *testing.T) {
	gen := &fakeGenerator{configured: true, text: "Results beat estimates."}
	ex := NewExplainer(gen).Explain(context.Background(), "SBIN.NS", -4.5, scored())

	assert.Equal(t, types.StatusExplained, ex.Status)
	assert.Equal(t, "📌 **SBIN.NS fell 4.50%**\n\n🧠 **Reason:**\nResults beat estimates.", ex.Text)
	require.NotNil(t, ex.Headline)
	assert.Equal(t, "Brokerage cuts target after weak margins", ex.Headline.Title)
	assert.Equal(t, "fell", ex.Direction)
	assert.Equal(t, 4.5, ex.Magnitude)

	assert.Contains(t, gen.prompt, "Stock: SBIN.NS")
	assert.Contains(t, gen.prompt, "Price Movement: 4.5% (fell)")
	assert.Contains(t, gen.prompt, `Key News Headline: "Brokerage cuts target after weak margins"`)
	assert.Contains(t, gen.prompt, "Sentiment Score: negative (-0.67)")
	assert.True(t, strings.Contains(gen.prompt, "4-6 sentences"))
}

func TestExplainModelError(t *testing.T) {
	gen := &fakeGenerator{configured: true, err: errors.New("quota exceeded")}
	ex := NewExplainer(gen).Explain(context.Background(), "ITC.NS", 1, scored())

	assert.Equal(t, types.StatusLLMError, ex.Status)
	assert.Equal(t, "Gemini error → quota exceeded", ex.Text)
}

func TestBestHeadline(t *testing.T) {
	assert.Equal(t, "Shares jump on strong results", BestHeadline(1, scored()).Title)
	assert.Equal(t, "Brokerage cuts target after weak margins", BestHeadline(-1, scored()).Title)
	assert.Equal(t, "Brokerage cuts target after weak margins", BestHeadline(0, scored()).Title, "a flat move counts as a fall")

	ties := []types.ScoredHeadline{
		{Headline: types.Headline{Title: "first"}, Score: 0.5},
		{Headline: types.Headline{Title: "second"}, Score: 0.5},
	}
	assert.Equal(t, "first", BestHeadline(2, ties).Title)
}

func TestDirection(t *testing.T) {
	assert.Equal(t, "rose", Direction(0.01))
	assert.Equal(t, "fell", Direction(0))
	assert.Equal(t, "fell", Direction(-3))
}

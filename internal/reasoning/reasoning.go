package reasoning

import (
	"context"
	"fmt"
	"math"
	"strconv"

	"stock-spike-analyzer/internal/interfaces"
	"stock-spike-analyzer/internal/logger"
	"stock-spike-analyzer/internal/types"
)

const promptTemplate = `
You are a financial market analyst. Explain the stock movement clearly.

Stock: %s
Price Movement: %s%% (%s)
Key News Headline: "%s"
Sentiment Score: %s (%.2f)

Generate a short and crisp explanation:
- What could have caused the spike/drop?
- Why does this specific headline matter?
- Keep it factual, avoid speculation.
- Keep it within 4-6 sentences.
`

// Explainer turns a price move and its scored headlines into a narrative
type Explainer struct {
	gen interfaces.Generator
}

// NewExplainer creates an explainer backed by a language model
func NewExplainer(gen interfaces.Generator) *Explainer {
	return &Explainer{gen: gen}
}

// Explain never fails: missing news, a missing key and model errors are
// all reported through the returned status and text.
func (e *Explainer) Explain(ctx context.Context, ticker string, change float64, scored []types.ScoredHeadline) types.Explanation {
	direction := Direction(change)
	magnitude := math.Abs(change)
	header := fmt.Sprintf("📌 **%s %s %.2f%%**", ticker, direction, magnitude)

	ex := types.Explanation{
		Ticker:    ticker,
		ChangePct: change,
		Direction: direction,
		Magnitude: magnitude,
	}

	if len(scored) == 0 {
		ex.Status = types.StatusNoNews
		ex.Text = header + " — No recent news available for explanation."
		logger.Explanation(ctx, ticker, ex.Status, "")
		return ex
	}

	best := BestHeadline(change, scored)
	ex.Headline = &best

	if !e.gen.Configured() {
		ex.Status = types.StatusNoKey
		ex.Text = fmt.Sprintf("%s\nKey Trigger: **%s**\nSentiment: **%s (%.2f)**\n⚠ No %s API key — cannot generate explanation.",
			header, best.Title, best.Sentiment, best.Score, e.gen.Name())
		logger.Explanation(ctx, ticker, ex.Status, best.Title)
		return ex
	}

	text, err := e.gen.Generate(ctx, Prompt(ticker, change, best))
	if err != nil {
		ex.Status = types.StatusLLMError
		ex.Text = fmt.Sprintf("%s error → %v", e.gen.Name(), err)
		logger.Explanation(ctx, ticker, ex.Status, best.Title, "error", err)
		return ex
	}

	ex.Status = types.StatusExplained
	ex.Text = fmt.Sprintf("%s\n\n🧠 **Reason:**\n%s", header, text)
	logger.Explanation(ctx, ticker, ex.Status, best.Title)
	return ex
}

// Direction is "rose" for a positive change and "fell" otherwise
func Direction(change float64) string {
	if change > 0 {
		return "rose"
	}
	return "fell"
}

// BestHeadline picks the most positive headline for a rise and the most
// negative one for a fall. The first of equal scores wins.
func BestHeadline(change float64, scored []types.ScoredHeadline) types.ScoredHeadline {
	best := scored[0]
	for _, h := range scored[1:] {
		if change > 0 && h.Score > best.Score {
			best = h
		}
		if change <= 0 && h.Score < best.Score {
			best = h
		}
	}
	return best
}

// Prompt builds the analyst prompt for one move and its key headline
func Prompt(ticker string, change float64, best types.ScoredHeadline) string {
	magnitude := strconv.FormatFloat(math.Abs(change), 'f', -1, 64)
	return fmt.Sprintf(promptTemplate, ticker, magnitude, Direction(change), best.Title, best.Sentiment, best.Score)
}

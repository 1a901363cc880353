package sentiment

import (
	"strings"
	"unicode"

	"stock-spike-analyzer/internal/types"
)

// Probability indexes
const (
	Negative = iota
	Neutral
	Positive
)

// Result is the sentiment of one piece of text
type Result struct {
	Label     string     `json:"label"`
	LabelProb float64    `json:"label_prob"`
	Probs     [3]float64 `json:"probs"` // negative, neutral, positive
	Score     float64    `json:"score"` // positive - negative, in [-1, 1]
}

// Analyzer scores financial headlines against a word list
type Analyzer struct {
	positiveWords map[string]bool
	negativeWords map[string]bool
	negations     map[string]bool
}

// NewAnalyzer creates an analyzer with the built-in financial lexicon
func NewAnalyzer() *Analyzer {
	return &Analyzer{
		positiveWords: toSet(positiveWords),
		negativeWords: toSet(negativeWords),
		negations:     toSet(negationWords),
	}
}

var defaultAnalyzer = NewAnalyzer()

// Analyse scores text with the default analyzer
func Analyse(text string) Result {
	return defaultAnalyzer.Analyse(text)
}

// Analyse counts positive and negative hits and turns them into
// probabilities. A negation word flips the polarity of the next hit.
func (a *Analyzer) Analyse(text string) Result {
	var pos, neg int
	negate := false

	for _, word := range tokenize(text) {
		if a.negations[word] {
			negate = true
			continue
		}

		hit := 0
		switch {
		case a.positiveWords[word]:
			hit = 1
		case a.negativeWords[word]:
			hit = -1
		default:
			continue
		}
		if negate {
			hit = -hit
			negate = false
		}
		if hit > 0 {
			pos++
		} else {
			neg++
		}
	}

	// neutral weighs half a hit, so one unopposed hit carries the label
	total := float64(pos+neg) + neutralWeight
	var r Result
	r.Probs[Negative] = float64(neg) / total
	r.Probs[Neutral] = neutralWeight / total
	r.Probs[Positive] = float64(pos) / total
	r.Score = r.Probs[Positive] - r.Probs[Negative]

	r.Label, r.LabelProb = types.SentimentNeutral, r.Probs[Neutral]
	if r.Probs[Positive] > r.LabelProb && r.Probs[Positive] > r.Probs[Negative] {
		r.Label, r.LabelProb = types.SentimentPositive, r.Probs[Positive]
	} else if r.Probs[Negative] > r.LabelProb && r.Probs[Negative] > r.Probs[Positive] {
		r.Label, r.LabelProb = types.SentimentNegative, r.Probs[Negative]
	}
	return r
}

const neutralWeight = 0.5

// ScoreHeadlines attaches a label and score to each headline title
func ScoreHeadlines(headlines []types.Headline) []types.ScoredHeadline {
	return defaultAnalyzer.ScoreHeadlines(headlines)
}

func (a *Analyzer) ScoreHeadlines(headlines []types.Headline) []types.ScoredHeadline {
	out := make([]types.ScoredHeadline, 0, len(headlines))
	for _, h := range headlines {
		r := a.Analyse(h.Title)
		out = append(out, types.ScoredHeadline{
			Headline:  h,
			Sentiment: r.Label,
			Score:     r.Score,
		})
	}
	return out
}

// tokenize lower-cases text and splits it into letter/number runs
func tokenize(text string) []string {
	var words []string
	var current strings.Builder

	for _, r := range strings.ToLower(text) {
		if unicode.IsLetter(r) || unicode.IsNumber(r) {
			current.WriteRune(r)
		} else if current.Len() > 0 {
			words = append(words, current.String())
			current.Reset()
		}
	}
	if current.Len() > 0 {
		words = append(words, current.String())
	}
	return words
}

func toSet(words []string) map[string]bool {
	m := make(map[string]bool, len(words))
	for _, w := range words {
		m[w] = true
	}
	return m
}

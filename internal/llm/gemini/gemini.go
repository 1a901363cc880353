package gemini

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"stock-spike-analyzer/internal/api"
	"stock-spike-analyzer/internal/interfaces"
	"stock-spike-analyzer/internal/trace"
)

// DefaultBaseURL is the public generative-language endpoint
const DefaultBaseURL = "https://generativelanguage.googleapis.com"

// DefaultModel is used when no model is configured
const DefaultModel = "gemini-2.5-pro"

// ErrEmptyResponse is returned when the model produced no text
var ErrEmptyResponse = errors.New("gemini returned no text")

// Client calls the Gemini generateContent API
type Client struct {
	http        *api.Client
	apiKey      string
	model       string
	maxTokens   int
	temperature float32
	retry       *api.RetryConfig
}

var _ interfaces.Generator = (*Client)(nil)

// Params configures a Gemini client
type Params struct {
	APIKey      string
	Model       string
	BaseURL     string
	MaxTokens   int
	Temperature float32
	Timeout     time.Duration
}

// New creates a Gemini client. An empty API key yields an unconfigured client.
func New(p Params) *Client {
	if p.BaseURL == "" {
		p.BaseURL = DefaultBaseURL
	}
	if p.Model == "" {
		p.Model = DefaultModel
	}
	if p.Timeout == 0 {
		p.Timeout = 60 * time.Second
	}
	return &Client{
		http: api.NewClient(
			api.WithBaseURL(strings.TrimRight(p.BaseURL, "/")),
			api.WithTimeout(p.Timeout),
		),
		apiKey:      p.APIKey,
		model:       p.Model,
		maxTokens:   p.MaxTokens,
		temperature: p.Temperature,
		retry:       api.DefaultRetryConfig(),
	}
}

// WithRetry overrides the retry policy
func (c *Client) WithRetry(cfg *api.RetryConfig) *Client {
	c.retry = cfg
	return c
}

func (c *Client) Name() string { return "Gemini" }

func (c *Client) Configured() bool { return c.apiKey != "" }

type part struct {
	Text string `json:"text"`
}

type content struct {
	Role  string `json:"role,omitempty"`
	Parts []part `json:"parts"`
}

type generationConfig struct {
	MaxOutputTokens int     `json:"maxOutputTokens,omitempty"`
	Temperature     float32 `json:"temperature,omitempty"`
}

type generateRequest struct {
	Contents         []content        `json:"contents"`
	GenerationConfig generationConfig `json:"generationConfig"`
}

type generateResponse struct {
	Candidates []struct {
		Content      content `json:"content"`
		FinishReason string  `json:"finishReason"`
	} `json:"candidates"`
	PromptFeedback struct {
		BlockReason string `json:"blockReason"`
	} `json:"promptFeedback"`
}

// Generate sends a single-turn prompt and returns the joined text parts
func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	ctx, span := trace.StartSpan(ctx, "gemini-api-call")
	defer span.End()

	if c.apiKey == "" {
		return "", errors.New("GEMINI_API_KEY missing")
	}

	body := generateRequest{
		Contents: []content{{Role: "user", Parts: []part{{Text: prompt}}}},
		GenerationConfig: generationConfig{
			MaxOutputTokens: c.maxTokens,
			Temperature:     c.temperature,
		},
	}

	path := fmt.Sprintf("/v1beta/models/%s:generateContent", url.PathEscape(c.model))
	req := api.NewRequest(http.MethodPost, path).
		WithContext(ctx).
		WithBody(body).
		WithHeader("x-goog-api-key", c.apiKey)

	resp, err := c.http.DoWithRetry(req, c.retry)
	if err != nil {
		return "", fmt.Errorf("gemini request failed: %w", err)
	}

	var r generateResponse
	if err := resp.ParseJSON(&r); err != nil {
		return "", err
	}

	if len(r.Candidates) == 0 {
		if r.PromptFeedback.BlockReason != "" {
			return "", fmt.Errorf("%w: prompt blocked (%s)", ErrEmptyResponse, r.PromptFeedback.BlockReason)
		}
		return "", ErrEmptyResponse
	}

	var sb strings.Builder
	for _, p := range r.Candidates[0].Content.Parts {
		sb.WriteString(p.Text)
	}
	text := strings.TrimSpace(sb.String())
	if text == "" {
		return "", fmt.Errorf("%w: finish reason %s", ErrEmptyResponse, r.Candidates[0].FinishReason)
	}
	return text, nil
}

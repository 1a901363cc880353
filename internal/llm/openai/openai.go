package openai

import (
	"context"
	"errors"
	"fmt"
	"strings"

	gpt "github.com/sashabaranov/go-openai"

	"stock-spike-analyzer/internal/interfaces"
	"stock-spike-analyzer/internal/trace"
)

// DefaultModel is used when no model is configured
const DefaultModel = "gpt-4o-mini"

const systemPrompt = "You are a concise equity market analyst covering Indian large caps."

// Generator produces explanations through the chat completions API
type Generator struct {
	client      *gpt.Client
	apiKey      string
	model       string
	maxTokens   int
	temperature float32
}

var _ interfaces.Generator = (*Generator)(nil)

// Params configures an OpenAI generator
type Params struct {
	APIKey      string
	Model       string
	BaseURL     string // optional, for proxies and compatible servers
	MaxTokens   int
	Temperature float32
}

// New creates an OpenAI generator. An empty API key yields an unconfigured generator.
func New(p Params) *Generator {
	config := gpt.DefaultConfig(p.APIKey)
	if p.BaseURL != "" {
		config.BaseURL = strings.TrimRight(p.BaseURL, "/")
	}
	if p.Model == "" {
		p.Model = DefaultModel
	}
	return &Generator{
		client:      gpt.NewClientWithConfig(config),
		apiKey:      p.APIKey,
		model:       p.Model,
		maxTokens:   p.MaxTokens,
		temperature: p.Temperature,
	}
}

func (g *Generator) Name() string { return "OpenAI" }

func (g *Generator) Configured() bool { return g.apiKey != "" }

// Generate sends the prompt as a single user message
func (g *Generator) Generate(ctx context.Context, prompt string) (string, error) {
	ctx, span := trace.StartSpan(ctx, "openai-api-call")
	defer span.End()

	if g.apiKey == "" {
		return "", errors.New("OPENAI_API_KEY missing")
	}

	resp, err := g.client.CreateChatCompletion(ctx, gpt.ChatCompletionRequest{
		Model: g.model,
		Messages: []gpt.ChatCompletionMessage{
			{Role: gpt.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: gpt.ChatMessageRoleUser, Content: prompt},
		},
		MaxTokens:   g.maxTokens,
		Temperature: g.temperature,
	})
	if err != nil {
		return "", fmt.Errorf("OpenAI API error: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", errors.New("no response from OpenAI")
	}
	text := strings.TrimSpace(resp.Choices[0].Message.Content)
	if text == "" {
		return "", errors.New("empty response from OpenAI")
	}
	return text, nil
}

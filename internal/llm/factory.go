package llm

import (
	"os"
	"time"

	"stock-spike-analyzer/internal/interfaces"
	"stock-spike-analyzer/internal/llm/gemini"
	"stock-spike-analyzer/internal/llm/llmobs"
	"stock-spike-analyzer/internal/llm/openai"
	"stock-spike-analyzer/internal/store"
)

// New creates the configured generator wrapped with observability.
// The API key is read from the environment variable named by llm.api_key_env.
func New(cfg *store.Config) interfaces.Generator {
	key := os.Getenv(cfg.LLM.APIKeyEnv)

	var gen interfaces.Generator
	switch cfg.LLM.Provider {
	case "OPENAI":
		gen = openai.New(openai.Params{
			APIKey:      key,
			Model:       cfg.LLM.Model,
			BaseURL:     cfg.LLM.BaseURL,
			MaxTokens:   cfg.LLM.MaxTokens,
			Temperature: cfg.LLM.Temperature,
		})
	case "GEMINI":
		gen = gemini.New(gemini.Params{
			APIKey:      key,
			Model:       cfg.LLM.Model,
			BaseURL:     cfg.LLM.BaseURL,
			MaxTokens:   cfg.LLM.MaxTokens,
			Temperature: cfg.LLM.Temperature,
			Timeout:     60 * time.Second,
		})
	default:
		return NewNoopGenerator("LLM")
	}
	return llmobs.Wrap(gen)
}

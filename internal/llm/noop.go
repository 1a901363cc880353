package llm

import (
	"context"
	"errors"

	"stock-spike-analyzer/internal/interfaces"
	"stock-spike-analyzer/internal/logger"
)

// ErrNoProvider is returned when no language model is configured
var ErrNoProvider = errors.New("no language model provider configured")

// NoopGenerator is used when no provider or API key is configured
type NoopGenerator struct {
	name string
}

var _ interfaces.Generator = (*NoopGenerator)(nil)

// NewNoopGenerator returns a generator that never produces text.
// name is the provider reported in user-facing messages.
func NewNoopGenerator(name string) *NoopGenerator {
	return &NoopGenerator{name: name}
}

// Generate always fails with ErrNoProvider
func (g *NoopGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	logger.Debug(ctx, "Noop generator called", "provider", g.name)
	return "", ErrNoProvider
}

func (g *NoopGenerator) Name() string { return g.name }

func (g *NoopGenerator) Configured() bool { return false }

package llmobs

import (
	"context"
	"strings"
	"time"

	"stock-spike-analyzer/internal/interfaces"
	"stock-spike-analyzer/internal/logger"
	"stock-spike-analyzer/internal/metrics"
	"stock-spike-analyzer/internal/trace"
)

// observableGenerator wraps a Generator with observability (logging, tracing & metrics)
type observableGenerator struct {
	gen interfaces.Generator
}

// Compile-time interface check
var _ interfaces.Generator = (*observableGenerator)(nil)

// Wrap wraps a generator with observability middleware
func Wrap(gen interfaces.Generator) interfaces.Generator {
	return &observableGenerator{gen: gen}
}

func (og *observableGenerator) Name() string { return og.gen.Name() }

func (og *observableGenerator) Configured() bool { return og.gen.Configured() }

// Generate requests an explanation with observability
func (og *observableGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	ctx, span := trace.StartSpan(ctx, "llm.Generate")
	defer span.End()

	provider := strings.ToLower(og.gen.Name())

	// Use DebugSkip(1) to report the actual caller, not this middleware wrapper
	logger.DebugSkip(ctx, 1, "Requesting explanation",
		"provider", og.gen.Name(),
		"promptChars", len(prompt),
	)

	start := time.Now()
	text, err := og.gen.Generate(ctx, prompt)
	metrics.LLMRequestDuration.WithLabelValues(provider).Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.LLMRequestsTotal.WithLabelValues(provider, "error").Inc()
		logger.ErrorWithErrSkip(ctx, 1, "Failed to get explanation", err,
			"provider", og.gen.Name(),
			"duration", time.Since(start),
		)
		return "", err
	}
	metrics.LLMRequestsTotal.WithLabelValues(provider, "ok").Inc()

	logger.InfoSkip(ctx, 1, "Explanation received",
		"provider", og.gen.Name(),
		"chars", len(text),
		"duration", time.Since(start),
	)
	return text, nil
}

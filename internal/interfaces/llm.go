package interfaces

import "context"

// Generator sends a prompt to a language model and returns its text
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
	// Name is the provider shown in user-facing messages
	Name() string
	// Configured reports whether credentials are present
	Configured() bool
}

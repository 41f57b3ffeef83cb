package llm

import (
	"context"

	"github.com/pipe-works/pipeworks-axis-descriptor-lab/internal/model"
)

// Provider is a generation backend. Implementations must forward the
// request's sampling parameters, seed included: the seed is part of the
// provenance chain, and recording it without forwarding it would make the
// chain ID claim a determinism the model never had.
type Provider interface {
	// Name returns the provider name.
	Name() string

	// Generate produces one passage for the request.
	Generate(ctx context.Context, req model.GenerateRequest) (*model.GenerateResponse, error)

	// Models lists the model identifiers the backend currently serves.
	Models(ctx context.Context) ([]string, error)

	// IsAvailable checks if the provider is configured and reachable.
	IsAvailable(ctx context.Context) bool
}

// Config holds provider configuration.
type Config struct {
	// Provider name: "ollama", "openai", "" (disabled)
	Provider string

	// Model is the default model when a request names none.
	Model string

	// APIKey for hosted backends.
	APIKey string

	// BaseURL for custom endpoints (e.g. a remote Ollama).
	BaseURL string

	// Timeout for API requests, in seconds.
	Timeout int

	// Temperature is the default sampling temperature.
	Temperature float64

	// MaxTokens is the default generation budget.
	MaxTokens int
}

// DefaultConfig returns sensible defaults for a local lab setup.
func DefaultConfig() Config {
	return Config{
		Provider:    "ollama",
		Model:       "gemma2:2b",
		Timeout:     120,
		Temperature: 0.2,
		MaxTokens:   512,
	}
}

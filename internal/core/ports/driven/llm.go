package driven

import "context"

// LLMService is the generative oracle the analysis pipeline drives.
// Its output is untrusted free-form text; callers extract structure from it.
//
// Implementations include:
//   - Anthropic (Claude)
//   - OpenAI (GPT-4o and compatible gateways)
//   - Ollama (local models)
type LLMService interface {
	// Generate produces text completion from a prompt.
	// An error is returned when the call fails or the reply has no text content.
	Generate(ctx context.Context, prompt string, opts GenerateOptions) (string, error)

	// ModelName returns the name of the LLM model being used.
	ModelName() string

	// Ping validates the service is reachable by making a lightweight test request.
	Ping(ctx context.Context) error

	// Close releases resources.
	Close() error
}

// GenerateOptions configures text generation behaviour.
type GenerateOptions struct {
	// MaxTokens is the maximum number of tokens to generate.
	MaxTokens int

	// Temperature controls randomness (0.0 = deterministic, 1.0 = creative).
	Temperature float64

	// StopWords are sequences that stop generation when encountered.
	StopWords []string
}

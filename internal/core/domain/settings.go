package domain

import "time"

const unknownDescription = "Unknown"

// AIProvider identifies an LLM service provider.
type AIProvider string

// Available AI providers.
const (
	// AIProviderOllama is local Ollama instance.
	AIProviderOllama AIProvider = "ollama"

	// AIProviderOpenAI is OpenAI cloud API.
	AIProviderOpenAI AIProvider = "openai"

	// AIProviderAnthropic is Anthropic cloud API.
	AIProviderAnthropic AIProvider = "anthropic"
)

// AllLLMProviders returns the supported providers, default first.
func AllLLMProviders() []AIProvider {
	return []AIProvider{AIProviderAnthropic, AIProviderOpenAI, AIProviderOllama}
}

// IsValid returns true if the AI provider is recognised.
func (p AIProvider) IsValid() bool {
	switch p {
	case AIProviderOllama, AIProviderOpenAI, AIProviderAnthropic:
		return true
	default:
		return false
	}
}

// RequiresAPIKey returns true if this provider needs an API key.
func (p AIProvider) RequiresAPIKey() bool {
	return p == AIProviderOpenAI || p == AIProviderAnthropic
}

// IsLocal returns true if this provider runs locally.
func (p AIProvider) IsLocal() bool {
	return p == AIProviderOllama
}

// APIKeyEnv returns the environment variable consulted when no key is stored.
func (p AIProvider) APIKeyEnv() string {
	switch p {
	case AIProviderAnthropic:
		return "ANTHROPIC_API_KEY"
	case AIProviderOpenAI:
		return "OPENAI_API_KEY"
	default:
		return ""
	}
}

// String returns the string representation.
func (p AIProvider) String() string {
	return string(p)
}

// Description returns a human-readable description of the provider.
func (p AIProvider) Description() string {
	switch p {
	case AIProviderOllama:
		return "Ollama (local)"
	case AIProviderOpenAI:
		return "OpenAI (cloud)"
	case AIProviderAnthropic:
		return "Anthropic (cloud)"
	default:
		return unknownDescription
	}
}

// LLMSettings holds oracle provider configuration.
type LLMSettings struct {
	// Provider is the LLM service provider.
	Provider AIProvider

	// Model is the LLM model name.
	Model string

	// BaseURL is the API endpoint (for Ollama or compatible gateways).
	BaseURL string

	// APIKey is the API key (for OpenAI/Anthropic).
	APIKey string

	// MaxTokens caps the completion length of coverage batches.
	MaxTokens int

	// RequestsPerSecond paces oracle calls across invocations.
	RequestsPerSecond float64

	// Burst is the number of calls allowed without pacing.
	Burst int
}

// IsConfigured returns true if the LLM provider is set up.
func (l LLMSettings) IsConfigured() bool {
	if !l.Provider.IsValid() {
		return false
	}
	if l.Provider.RequiresAPIKey() && l.APIKey == "" {
		return false
	}
	return true
}

// FetchSettings holds content retrieval configuration.
type FetchSettings struct {
	// Timeout bounds a single page request.
	Timeout time.Duration

	// UserAgent is sent with every page request.
	UserAgent string

	// MinContentChars is the shortest normalised text accepted.
	MinContentChars int
}

// AppSettings holds all application settings.
type AppSettings struct {
	// LLM holds oracle provider settings.
	LLM LLMSettings

	// Fetch holds content retrieval settings.
	Fetch FetchSettings
}

// DefaultAppSettings returns settings with sensible defaults.
// The provider defaults to Anthropic, which still needs an API key.
func DefaultAppSettings() AppSettings {
	return AppSettings{
		LLM: LLMSettings{
			Provider:          AIProviderAnthropic,
			Model:             "claude-sonnet-4-20250514",
			MaxTokens:         8000,
			RequestsPerSecond: 1,
			Burst:             2,
		},
		Fetch: FetchSettings{
			Timeout:         30 * time.Second,
			UserAgent:       "Mozilla/5.0 (compatible; FanoutMCP/1.0)",
			MinContentChars: 500,
		},
	}
}

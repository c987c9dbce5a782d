package services

import (
	"fmt"
	"os"
	"time"

	"github.com/custodia-labs/fanout-cli/internal/core/domain"
	"github.com/custodia-labs/fanout-cli/internal/core/ports/driven"
	"github.com/custodia-labs/fanout-cli/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
//
//nolint:gosec // G101: These are config key names, not actual credentials.
const (
	keyLLMProvider     = "llm.provider"
	keyLLMModel        = "llm.model"
	keyLLMBaseURL      = "llm.base_url"
	keyLLMAPIKey       = "llm.api_key"
	keyLLMMaxTokens    = "llm.max_tokens"
	keyLLMRequestsPerS = "llm.requests_per_second"
	keyLLMBurst        = "llm.burst"
	keyFetchTimeout    = "fetch.timeout_seconds"
	keyFetchUserAgent  = "fetch.user_agent"
	keyFetchMinChars   = "fetch.min_content_chars"
	defaultOllamaURL   = "http://localhost:11434"
	defaultOllamaModel = "llama3.2"
	defaultOpenAIModel = "gpt-4o-mini"
	defaultClaudeModel = "claude-sonnet-4-20250514"
)

// defaultLLMModels maps each provider to the model used when none is given.
var defaultLLMModels = map[domain.AIProvider]string{
	domain.AIProviderOllama:    defaultOllamaModel,
	domain.AIProviderOpenAI:    defaultOpenAIModel,
	domain.AIProviderAnthropic: defaultClaudeModel,
}

// SettingsService manages application settings.
type SettingsService struct {
	configStore driven.ConfigStore
	aiValidator driven.AIConfigValidator
	getenv      func(string) string
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore, aiValidator driven.AIConfigValidator) *SettingsService {
	return &SettingsService{
		configStore: configStore,
		aiValidator: aiValidator,
		getenv:      os.Getenv,
	}
}

// SetEnvLookup replaces the environment lookup used for API key fallback.
func (s *SettingsService) SetEnvLookup(getenv func(string) string) {
	s.getenv = getenv
}

// Get retrieves current application settings.
// An empty stored API key falls back to the provider's environment variable.
func (s *SettingsService) Get() (*domain.AppSettings, error) {
	defaults := domain.DefaultAppSettings()

	provider := s.getProvider(keyLLMProvider, defaults.LLM.Provider)
	model := s.configStore.GetString(keyLLMModel)
	if model == "" {
		model = defaultLLMModels[provider]
	}

	apiKey := s.configStore.GetString(keyLLMAPIKey)
	if apiKey == "" && s.getenv != nil {
		if env := provider.APIKeyEnv(); env != "" {
			apiKey = s.getenv(env)
		}
	}

	settings := &domain.AppSettings{
		LLM: domain.LLMSettings{
			Provider:          provider,
			Model:             model,
			BaseURL:           s.configStore.GetString(keyLLMBaseURL), // No default - empty is valid for cloud providers
			APIKey:            apiKey,
			MaxTokens:         s.getInt(keyLLMMaxTokens, defaults.LLM.MaxTokens),
			RequestsPerSecond: s.getFloat(keyLLMRequestsPerS, defaults.LLM.RequestsPerSecond),
			Burst:             s.getInt(keyLLMBurst, defaults.LLM.Burst),
		},
		Fetch: domain.FetchSettings{
			Timeout:         s.getSeconds(keyFetchTimeout, defaults.Fetch.Timeout),
			UserAgent:       s.getString(keyFetchUserAgent, defaults.Fetch.UserAgent),
			MinContentChars: s.getInt(keyFetchMinChars, defaults.Fetch.MinContentChars),
		},
	}

	return settings, nil
}

// Save persists application settings.
func (s *SettingsService) Save(settings *domain.AppSettings) error {
	// Save LLM settings
	if err := s.configStore.Set(keyLLMProvider, settings.LLM.Provider.String()); err != nil {
		return fmt.Errorf("save llm provider: %w", err)
	}
	if err := s.configStore.Set(keyLLMModel, settings.LLM.Model); err != nil {
		return fmt.Errorf("save llm model: %w", err)
	}
	if err := s.configStore.Set(keyLLMBaseURL, settings.LLM.BaseURL); err != nil {
		return fmt.Errorf("save llm base_url: %w", err)
	}
	if settings.LLM.APIKey != "" {
		if err := s.configStore.Set(keyLLMAPIKey, settings.LLM.APIKey); err != nil {
			return fmt.Errorf("save llm api_key: %w", err)
		}
	}
	if err := s.configStore.Set(keyLLMMaxTokens, settings.LLM.MaxTokens); err != nil {
		return fmt.Errorf("save llm max_tokens: %w", err)
	}
	if err := s.configStore.Set(keyLLMRequestsPerS, settings.LLM.RequestsPerSecond); err != nil {
		return fmt.Errorf("save llm requests_per_second: %w", err)
	}
	if err := s.configStore.Set(keyLLMBurst, settings.LLM.Burst); err != nil {
		return fmt.Errorf("save llm burst: %w", err)
	}

	// Save fetch settings
	if err := s.configStore.Set(keyFetchTimeout, int(settings.Fetch.Timeout/time.Second)); err != nil {
		return fmt.Errorf("save fetch timeout_seconds: %w", err)
	}
	if err := s.configStore.Set(keyFetchUserAgent, settings.Fetch.UserAgent); err != nil {
		return fmt.Errorf("save fetch user_agent: %w", err)
	}
	if err := s.configStore.Set(keyFetchMinChars, settings.Fetch.MinContentChars); err != nil {
		return fmt.Errorf("save fetch min_content_chars: %w", err)
	}

	return nil
}

// SetLLMProvider configures the LLM provider.
func (s *SettingsService) SetLLMProvider(provider domain.AIProvider, model, apiKey string) error {
	if !provider.IsValid() {
		return fmt.Errorf("invalid LLM provider: %s", provider)
	}

	// Validate API key if required
	if provider.RequiresAPIKey() && apiKey == "" {
		return fmt.Errorf("API key required for %s", provider)
	}

	settings, err := s.Get()
	if err != nil {
		return err
	}

	settings.LLM.Provider = provider

	// Set model - use provided or default
	if model != "" {
		settings.LLM.Model = model
	} else {
		settings.LLM.Model = defaultLLMModels[provider]
	}

	// Set base URL based on provider type
	if provider.IsLocal() {
		// Local providers need a base URL
		if settings.LLM.BaseURL == "" {
			settings.LLM.BaseURL = defaultOllamaURL
		}
	} else {
		// Cloud providers don't need a custom base URL
		settings.LLM.BaseURL = ""
	}

	settings.LLM.APIKey = apiKey

	return s.Save(settings)
}

// SetLLMBaseURL configures the LLM endpoint.
func (s *SettingsService) SetLLMBaseURL(baseURL string) error {
	if err := s.configStore.Set(keyLLMBaseURL, baseURL); err != nil {
		return fmt.Errorf("save llm base_url: %w", err)
	}
	return nil
}

// Validate checks that the current settings can run an analysis.
func (s *SettingsService) Validate() error {
	settings, err := s.Get()
	if err != nil {
		return err
	}

	if !settings.LLM.IsConfigured() {
		if env := settings.LLM.Provider.APIKeyEnv(); env != "" {
			return fmt.Errorf("%w: %s requires an API key (run 'fanout settings llm' or set %s)",
				domain.ErrLLMUnavailable, settings.LLM.Provider.Description(), env)
		}
		return fmt.Errorf("%w: provider %q is not configured", domain.ErrLLMUnavailable, settings.LLM.Provider)
	}
	if settings.LLM.RequestsPerSecond < 0 {
		return fmt.Errorf("%w: llm.requests_per_second must not be negative", domain.ErrInvalidInput)
	}
	if settings.Fetch.Timeout <= 0 {
		return fmt.Errorf("%w: fetch.timeout_seconds must be positive", domain.ErrInvalidInput)
	}

	return nil
}

// GetDefaults returns default settings.
func (s *SettingsService) GetDefaults() domain.AppSettings {
	return domain.DefaultAppSettings()
}

// ValidateLLMConfig validates the current LLM configuration by pinging the provider.
func (s *SettingsService) ValidateLLMConfig() error {
	if s.aiValidator == nil {
		return nil
	}
	settings, err := s.Get()
	if err != nil {
		return err
	}
	return s.aiValidator.ValidateLLM(&settings.LLM)
}

// Helper methods for reading config with defaults.

func (s *SettingsService) getString(key, defaultVal string) string {
	val := s.configStore.GetString(key)
	if val == "" {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getInt(key string, defaultVal int) int {
	val := s.configStore.GetInt(key)
	if val == 0 {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getFloat(key string, defaultVal float64) float64 {
	if _, exists := s.configStore.Get(key); !exists {
		return defaultVal
	}
	return s.configStore.GetFloat(key)
}

func (s *SettingsService) getSeconds(key string, defaultVal time.Duration) time.Duration {
	val := s.configStore.GetInt(key)
	if val <= 0 {
		return defaultVal
	}
	return time.Duration(val) * time.Second
}

func (s *SettingsService) getProvider(key string, defaultVal domain.AIProvider) domain.AIProvider {
	val := s.configStore.GetString(key)
	if val == "" {
		return defaultVal
	}
	provider := domain.AIProvider(val)
	if !provider.IsValid() {
		return defaultVal
	}
	return provider
}

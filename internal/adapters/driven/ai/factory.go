// Package ai provides factory functions for creating AI service adapters.
package ai

import (
	"context"
	"fmt"
	"time"

	"github.com/custodia-labs/fanout-cli/internal/adapters/driven/llm"
	anthropicllm "github.com/custodia-labs/fanout-cli/internal/adapters/driven/llm/anthropic"
	ollamallm "github.com/custodia-labs/fanout-cli/internal/adapters/driven/llm/ollama"
	openaillm "github.com/custodia-labs/fanout-cli/internal/adapters/driven/llm/openai"
	"github.com/custodia-labs/fanout-cli/internal/core/domain"
	"github.com/custodia-labs/fanout-cli/internal/core/ports/driven"
)

// pingTimeout is the maximum time to wait for service connectivity validation.
const pingTimeout = 5 * time.Second

// ValidateLLMConfig validates an LLM configuration by creating a service and pinging it.
// This is intended for use by 'settings llm' to validate credentials on configuration.
func ValidateLLMConfig(settings *domain.LLMSettings) error {
	if settings == nil || !settings.IsConfigured() {
		return nil
	}

	svc, err := CreateProviderService(settings)
	if err != nil {
		return err
	}
	defer svc.Close()

	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()
	return svc.Ping(ctx)
}

// CreateLLMService creates the provider service for settings, paced by
// its requests_per_second and burst limits.
func CreateLLMService(settings *domain.LLMSettings) (driven.LLMService, error) {
	svc, err := CreateProviderService(settings)
	if err != nil {
		return nil, err
	}
	return llm.NewRateLimited(svc, llm.RateLimitConfig{
		RequestsPerSecond: settings.RequestsPerSecond,
		BurstSize:         settings.Burst,
	}), nil
}

// CreateProviderService creates the bare provider adapter for settings.
func CreateProviderService(settings *domain.LLMSettings) (driven.LLMService, error) {
	if settings == nil {
		return nil, fmt.Errorf("no LLM settings")
	}
	if settings.Provider.RequiresAPIKey() && settings.APIKey == "" {
		return nil, fmt.Errorf("API key required for %s", settings.Provider)
	}

	switch settings.Provider {
	case domain.AIProviderOllama:
		return createOllamaLLM(settings), nil

	case domain.AIProviderOpenAI:
		return createOpenAILLM(settings)

	case domain.AIProviderAnthropic:
		return createAnthropicLLM(settings)

	default:
		return nil, fmt.Errorf("%w: LLM provider %q", domain.ErrUnsupportedType, settings.Provider)
	}
}

// createOllamaLLM creates an Ollama LLM service.
func createOllamaLLM(settings *domain.LLMSettings) driven.LLMService {
	return ollamallm.NewLLMService(ollamallm.LLMConfig{
		BaseURL: settings.BaseURL,
		Model:   settings.Model,
	})
}

// createOpenAILLM creates an OpenAI LLM service.
func createOpenAILLM(settings *domain.LLMSettings) (driven.LLMService, error) {
	return openaillm.NewLLMService(openaillm.LLMConfig{
		APIKey:  settings.APIKey,
		BaseURL: settings.BaseURL,
		Model:   settings.Model,
	})
}

// createAnthropicLLM creates an Anthropic LLM service.
func createAnthropicLLM(settings *domain.LLMSettings) (driven.LLMService, error) {
	return anthropicllm.NewLLMService(anthropicllm.Config{
		APIKey:  settings.APIKey,
		BaseURL: settings.BaseURL,
		Model:   settings.Model,
	})
}

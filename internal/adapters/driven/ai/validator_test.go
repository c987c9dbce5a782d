package ai

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/fanout-cli/internal/core/domain"
)

func TestNewConfigValidator(t *testing.T) {
	validator := NewConfigValidator()

	require.NotNil(t, validator)
}

func TestConfigValidator_ValidateLLM_NilConfig(t *testing.T) {
	// nil config returns nil (nothing to validate)
	assert.NoError(t, NewConfigValidator().ValidateLLM(nil))
}

func TestConfigValidator_ValidateLLM_UnconfiguredProvider(t *testing.T) {
	config := &domain.LLMSettings{Provider: "", Model: "test-model"}

	assert.NoError(t, NewConfigValidator().ValidateLLM(config))
}

func TestConfigValidator_ValidateLLM_PingsProvider(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/tags", r.URL.Path)
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	err := NewConfigValidator().ValidateLLM(&domain.LLMSettings{
		Provider: domain.AIProviderOllama,
		BaseURL:  server.URL,
	})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "503")
}

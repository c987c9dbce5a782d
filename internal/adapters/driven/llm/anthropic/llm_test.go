package anthropic

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/fanout-cli/internal/core/domain"
	"github.com/custodia-labs/fanout-cli/internal/core/ports/driven"
)

func newTestService(t *testing.T, handler http.HandlerFunc) *LLMService {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	svc, err := NewLLMService(Config{APIKey: "test-key", BaseURL: server.URL})
	require.NoError(t, err)
	return svc
}

func TestNewLLMService_RequiresAPIKey(t *testing.T) {
	_, err := NewLLMService(Config{})

	assert.ErrorContains(t, err, "API key is required")
}

func TestNewLLMService_Defaults(t *testing.T) {
	svc, err := NewLLMService(Config{APIKey: "k"})

	require.NoError(t, err)
	assert.Equal(t, DefaultModel, svc.ModelName())
	assert.Equal(t, DefaultBaseURL, svc.baseURL)
}

func TestGenerate_SendsMessageAndJoinsTextBlocks(t *testing.T) {
	svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/messages", r.URL.Path)
		assert.Equal(t, "test-key", r.Header.Get("x-api-key"))
		assert.Equal(t, anthropicVersion, r.Header.Get("anthropic-version"))

		var req messagesRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, DefaultModel, req.Model)
		assert.Equal(t, 4000, req.MaxTokens)
		assert.InDelta(t, 0.7, req.Temperature, 1e-9)
		require.Len(t, req.Messages, 1)
		assert.Equal(t, "user", req.Messages[0].Role)
		assert.Equal(t, "hello", req.Messages[0].Content)

		_, _ = w.Write([]byte(`{"content":[
			{"type":"text","text":"<thinking>x</thinking>"},
			{"type":"tool_use"},
			{"type":"text","text":"[]"}
		]}`))
	})

	text, err := svc.Generate(context.Background(), "hello", driven.GenerateOptions{MaxTokens: 4000, Temperature: 0.7})

	require.NoError(t, err)
	assert.Equal(t, "<thinking>x</thinking>[]", text)
}

func TestGenerate_DefaultMaxTokens(t *testing.T) {
	svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		var req messagesRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, DefaultMaxTokens, req.MaxTokens)
		_, _ = w.Write([]byte(`{"content":[{"type":"text","text":"ok"}]}`))
	})

	_, err := svc.Generate(context.Background(), "p", driven.GenerateOptions{})
	require.NoError(t, err)
}

func TestGenerate_Errors(t *testing.T) {
	tests := []struct {
		name        string
		status      int
		body        string
		errContains string
		rateLimited bool
	}{
		{"rate limited", http.StatusTooManyRequests, `{"error":{"type":"rate_limit_error"}}`, "rate limited", true},
		{"api error", http.StatusBadRequest, `{"error":{"type":"invalid_request_error","message":"bad model"}}`, "bad model", false},
		{"non json", http.StatusBadGateway, `<html>`, "decode response", false},
		{"no text blocks", http.StatusOK, `{"content":[{"type":"tool_use"}]}`, "no text content", false},
		{"empty content", http.StatusOK, `{"content":[]}`, "no text content", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newTestService(t, func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			})

			_, err := svc.Generate(context.Background(), "p", driven.GenerateOptions{})

			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errContains)
			assert.Equal(t, tt.rateLimited, errors.Is(err, domain.ErrRateLimited))
		})
	}
}

func TestPing(t *testing.T) {
	svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/models", r.URL.Path)
		if r.Header.Get("x-api-key") != "test-key" {
			w.WriteHeader(http.StatusUnauthorized)
		}
	})

	assert.NoError(t, svc.Ping(context.Background()))
	assert.NoError(t, svc.Close())
}

package mcp

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/fanout-cli/internal/prompts"
)

func TestExtractPromptName(t *testing.T) {
	tests := []struct {
		name     string
		uri      string
		expected string
	}{
		{name: "valid prompt URI", uri: "fanout://prompts/decomposition", expected: "decomposition"},
		{name: "invalid prefix", uri: "file://prompts/decomposition", expected: ""},
		{name: "nested path", uri: "fanout://prompts/a/b", expected: ""},
		{name: "list URI", uri: "fanout://prompts", expected: ""},
		{name: "empty URI", uri: "", expected: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, extractPromptName(tt.uri))
		})
	}
}

// Helper to create a ReadResourceRequest with the given URI.
func makeReadResourceRequest(uri string) *mcp.ReadResourceRequest {
	return &mcp.ReadResourceRequest{
		Params: &mcp.ReadResourceParams{
			URI: uri,
		},
	}
}

func TestServer_handlePromptsResource(t *testing.T) {
	server, err := NewServer(&Ports{Analysis: &mockAnalysisService{}})
	require.NoError(t, err)

	res, err := server.handlePromptsResource(context.Background(), makeReadResourceRequest("fanout://prompts"))
	require.NoError(t, err)
	require.Len(t, res.Contents, 1)
	assert.Equal(t, "application/json", res.Contents[0].MIMEType)

	var infos []promptInfo
	require.NoError(t, json.Unmarshal([]byte(res.Contents[0].Text), &infos))
	require.Len(t, infos, 3)
	assert.Equal(t, promptInfo{Name: "assessment", URI: "fanout://prompts/assessment"}, infos[0])
	assert.Equal(t, "decomposition", infos[1].Name)
	assert.Equal(t, "fanout", infos[2].Name)
}

func TestServer_handlePromptResource(t *testing.T) {
	ctx := context.Background()

	t.Run("serves embedded default without a store", func(t *testing.T) {
		server, err := NewServer(&Ports{Analysis: &mockAnalysisService{}})
		require.NoError(t, err)

		res, err := server.handlePromptResource(ctx, makeReadResourceRequest("fanout://prompts/decomposition"))
		require.NoError(t, err)

		want, _ := prompts.Default("decomposition")
		assert.Equal(t, want, res.Contents[0].Text)
		assert.Equal(t, "text/plain", res.Contents[0].MIMEType)
	})

	t.Run("prefers the store copy", func(t *testing.T) {
		store := &mockPromptStore{templates: map[string]string{"fanout": "custom {{.Keyword}}"}}
		server, err := NewServer(&Ports{Analysis: &mockAnalysisService{}, Prompts: store})
		require.NoError(t, err)

		res, err := server.handlePromptResource(ctx, makeReadResourceRequest("fanout://prompts/fanout"))
		require.NoError(t, err)
		assert.Equal(t, "custom {{.Keyword}}", res.Contents[0].Text)
	})

	t.Run("falls back when the store fails", func(t *testing.T) {
		server, err := NewServer(&Ports{Analysis: &mockAnalysisService{}, Prompts: &mockPromptStore{}})
		require.NoError(t, err)

		res, err := server.handlePromptResource(ctx, makeReadResourceRequest("fanout://prompts/assessment"))
		require.NoError(t, err)

		want, _ := prompts.Default("assessment")
		assert.Equal(t, want, res.Contents[0].Text)
	})

	t.Run("unknown prompt is not found", func(t *testing.T) {
		store := &mockPromptStore{templates: map[string]string{"secret": "x"}}
		server, err := NewServer(&Ports{Analysis: &mockAnalysisService{}, Prompts: store})
		require.NoError(t, err)

		_, err = server.handlePromptResource(ctx, makeReadResourceRequest("fanout://prompts/secret"))
		assert.Error(t, err)
	})

	t.Run("invalid URI is not found", func(t *testing.T) {
		server, err := NewServer(&Ports{Analysis: &mockAnalysisService{}})
		require.NoError(t, err)

		_, err = server.handlePromptResource(ctx, makeReadResourceRequest("fanout://other"))
		assert.Error(t, err)
	})
}

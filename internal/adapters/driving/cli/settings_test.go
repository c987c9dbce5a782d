package cli

import (
	"bufio"
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/fanout-cli/internal/core/domain"
)

func TestMaskAPIKey(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "Short key", input: "abc123", expected: "****"},
		{name: "Exactly 8 chars", input: "12345678", expected: "****"},
		{name: "Long key", input: "sk-1234567890abcdef", expected: "sk-1...cdef"},
		{name: "Very long key", input: "sk-ant-REDACTED", expected: "sk-a...mnop"},
		{name: "Empty key", input: "", expected: "****"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, maskAPIKey(tt.input))
		})
	}
}

func TestParseChoice(t *testing.T) {
	tests := []struct {
		name       string
		input      string
		maxVal     int
		defaultVal int
		expected   int
	}{
		{name: "Empty input returns default", input: "", maxVal: 3, defaultVal: 1, expected: 1},
		{name: "Valid choice within range", input: "2", maxVal: 3, defaultVal: 1, expected: 2},
		{name: "Choice below minimum returns default", input: "0", maxVal: 3, defaultVal: 1, expected: 1},
		{name: "Choice above maximum returns default", input: "4", maxVal: 3, defaultVal: 1, expected: 1},
		{name: "Invalid input returns default", input: "abc", maxVal: 3, defaultVal: 2, expected: 2},
		{name: "Negative number returns default", input: "-1", maxVal: 3, defaultVal: 1, expected: 1},
		{name: "Maximum value is valid", input: "3", maxVal: 3, defaultVal: 1, expected: 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, parseChoice(tt.input, tt.maxVal, tt.defaultVal))
		})
	}
}

func TestSettingsShow_Defaults(t *testing.T) {
	_, _, cleanup := setupTestServices()
	defer cleanup()

	out, err := runRoot(t, "settings", "show")

	require.NoError(t, err)
	assert.Contains(t, out, "[LLM]")
	assert.Contains(t, out, "Provider: Anthropic (cloud)")
	assert.Contains(t, out, "API Key: (not set)")
	assert.Contains(t, out, "Status: not configured")
	assert.Contains(t, out, "[Fetch]")
	assert.Contains(t, out, "Timeout: 30s")
	assert.Contains(t, out, "Min Content: 500 characters")
	assert.Contains(t, out, "Run 'fanout settings llm'")
}

func TestSettingsShow_Configured(t *testing.T) {
	_, settings, cleanup := setupTestServices()
	defer cleanup()
	require.NoError(t, settings.SetLLMProvider(domain.AIProviderOpenAI, "gpt-4o", "sk-test-1234567890"))

	out, err := runRoot(t, "settings")

	require.NoError(t, err)
	assert.Contains(t, out, "Provider: OpenAI (cloud)")
	assert.Contains(t, out, "Model: gpt-4o")
	assert.Contains(t, out, "API Key: sk-t...7890")
	assert.Contains(t, out, "Status: configured")
	assert.Contains(t, out, "Configuration is valid.")
}

func TestSettingsShow_ServiceNotConfigured(t *testing.T) {
	_, _, cleanup := setupTestServices()
	defer cleanup()
	settingsService = nil

	_, err := runRoot(t, "settings", "show")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "settings service not configured")
}

func runWithInput(t *testing.T, input string, args ...string) (string, error) {
	t.Helper()
	rootCmd.SetIn(strings.NewReader(input))
	defer rootCmd.SetIn(nil)
	return runRoot(t, args...)
}

func TestSettingsLLM_CloudProvider(t *testing.T) {
	_, settings, cleanup := setupTestServices()
	defer cleanup()

	out, err := runWithInput(t, "2\n\nsk-test-1234567890\n", "settings", "llm")

	require.NoError(t, err)
	assert.Contains(t, out, "Validating configuration... OK")
	assert.Contains(t, out, "LLM provider configured: OpenAI (cloud) (gpt-4o-mini)")

	got, err := settings.Get()
	require.NoError(t, err)
	assert.Equal(t, domain.AIProviderOpenAI, got.LLM.Provider)
	assert.Equal(t, "sk-test-1234567890", got.LLM.APIKey)
}

func TestSettingsLLM_LocalProviderWithBaseURL(t *testing.T) {
	_, settings, cleanup := setupTestServices()
	defer cleanup()

	_, err := runWithInput(t, "3\nqwen2.5\nhttp://gpu-box:11434\n", "settings", "llm")
	require.NoError(t, err)

	got, err := settings.Get()
	require.NoError(t, err)
	assert.Equal(t, domain.AIProviderOllama, got.LLM.Provider)
	assert.Equal(t, "qwen2.5", got.LLM.Model)
	assert.Equal(t, "http://gpu-box:11434", got.LLM.BaseURL)
}

func TestSettingsLLM_MissingAPIKey(t *testing.T) {
	_, _, cleanup := setupTestServices()
	defer cleanup()
	t.Setenv("ANTHROPIC_API_KEY", "")

	_, err := runWithInput(t, "1\n\n\n", "settings", "llm")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "API key is required")
}

func TestSettingsLLM_KeyFromEnvironment(t *testing.T) {
	_, settings, cleanup := setupTestServices()
	defer cleanup()
	t.Setenv("ANTHROPIC_API_KEY", "sk-ant-from-env-123")

	_, err := runWithInput(t, "\n\n\n", "settings", "llm")
	require.NoError(t, err)

	got, err := settings.Get()
	require.NoError(t, err)
	assert.Equal(t, "sk-ant-from-env-123", got.LLM.APIKey)
}

func TestReadPassword_NonTerminalReadsLine(t *testing.T) {
	in := strings.NewReader("secret-key\n")
	assert.Equal(t, "secret-key", readPassword(in, bufio.NewReader(in)))
}

func TestSettingsCmd_Subcommands(t *testing.T) {
	var buf bytes.Buffer
	for _, c := range settingsCmd.Commands() {
		buf.WriteString(c.Name() + " ")
	}
	assert.Contains(t, buf.String(), "show")
	assert.Contains(t, buf.String(), "llm")
}

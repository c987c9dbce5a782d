package services

import (
	"context"
	"errors"
	"sync"

	"github.com/custodia-labs/fanout-cli/internal/core/domain"
	"github.com/custodia-labs/fanout-cli/internal/core/ports/driven"
)

// scriptedLLM replays canned replies in order and records every call.
type scriptedLLM struct {
	mu      sync.Mutex
	replies []string
	errs    map[int]error
	prompts []string
	opts    []driven.GenerateOptions
}

func newScriptedLLM(replies ...string) *scriptedLLM {
	return &scriptedLLM{replies: replies, errs: map[int]error{}}
}

// failOn makes the call with the given zero-based index fail.
func (m *scriptedLLM) failOn(call int, err error) *scriptedLLM {
	m.errs[call] = err
	return m
}

func (m *scriptedLLM) Generate(_ context.Context, prompt string, opts driven.GenerateOptions) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	call := len(m.prompts)
	m.prompts = append(m.prompts, prompt)
	m.opts = append(m.opts, opts)

	if err, ok := m.errs[call]; ok {
		return "", err
	}
	if call >= len(m.replies) {
		return "", errors.New("unexpected oracle call")
	}
	return m.replies[call], nil
}

func (m *scriptedLLM) ModelName() string          { return "test-model" }
func (m *scriptedLLM) Ping(context.Context) error { return nil }
func (m *scriptedLLM) Close() error               { return nil }

func (m *scriptedLLM) calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.prompts)
}

// mockFetcher returns a fixed artifact or error.
type mockFetcher struct {
	content *domain.ContentArtifact
	err     error
	urls    []string
}

func (m *mockFetcher) Fetch(_ context.Context, url string) (*domain.ContentArtifact, error) {
	m.urls = append(m.urls, url)
	if m.err != nil {
		return nil, m.err
	}
	c := *m.content
	c.URL = url
	return &c, nil
}

// mockPromptStore serves templates from a map.
type mockPromptStore struct {
	templates map[string]string
	reloads   int
}

func (m *mockPromptStore) Load(name string) (string, error) {
	if t, ok := m.templates[name]; ok {
		return t, nil
	}
	return "", errors.New("not found")
}

func (m *mockPromptStore) Reload() { m.reloads++ }

// mockValidator records the settings it was asked to validate.
type mockValidator struct {
	err    error
	called *domain.LLMSettings
}

func (m *mockValidator) ValidateLLM(cfg *domain.LLMSettings) error {
	m.called = cfg
	return m.err
}

func testContent() *domain.ContentArtifact {
	return &domain.ContentArtifact{
		URL:            "https://example.com/protein",
		Title:          "Best Protein Powder Guide for Runners and Lifters in 2024 and Beyond",
		Description:    "We tested twenty protein powders for taste, mixability and value.",
		NormalizedText: "# Best Protein Powder\n\nThis guide covers Whey Isolate and PlantBased options. Whey is fast. Casein is slow!",
		WordCount:      18,
	}
}

func strPtr(s string) *string { return &s }

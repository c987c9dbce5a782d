package mcp

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/custodia-labs/fanout-cli/internal/core/domain"
)

// mockAnalysisService is a mock implementation of driving.AnalysisService.
type mockAnalysisService struct {
	mu       sync.Mutex
	report   *domain.AnalysisReport
	err      error
	requests []domain.AnalysisRequest
}

func (m *mockAnalysisService) Analyze(_ context.Context, req domain.AnalysisRequest) (*domain.AnalysisReport, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.requests = append(m.requests, req)
	return m.report, m.err
}

func (m *mockAnalysisService) lastRequest() domain.AnalysisRequest {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.requests[len(m.requests)-1]
}

// mockPromptStore is a mock implementation of driven.PromptStore.
type mockPromptStore struct {
	templates map[string]string
}

func (m *mockPromptStore) Load(name string) (string, error) {
	if t, ok := m.templates[name]; ok {
		return t, nil
	}
	return "", errors.New("not found")
}

func (m *mockPromptStore) Reload() {}

func testReport() *domain.AnalysisReport {
	return &domain.AnalysisReport{
		ID:          "report-1",
		GeneratedAt: time.Date(2024, 11, 30, 0, 0, 0, 0, time.UTC),
		Content:     domain.ContentArtifact{URL: "https://example.com/guide", Title: "Guide"},
		Graph: domain.QueryGraph{
			TierGraph: domain.TierGraph{Core: []domain.QueryItem{{Text: "how to brew"}}},
		},
		Verdicts: []domain.CoverageVerdict{
			{Query: "how to brew", Status: domain.StatusCovered, Confidence: 90},
		},
		CoverageSummary: domain.CoverageSummary{
			CoverageScore: 100,
			Statistics:    domain.Statistics{TotalQueries: 1, Covered: 1},
		},
	}
}

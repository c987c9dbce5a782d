package cli

import (
	"context"
	"errors"
	"time"

	"github.com/custodia-labs/fanout-cli/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/fanout-cli/internal/core/domain"
	"github.com/custodia-labs/fanout-cli/internal/core/services"
)

// mockAnalysisService is a mock implementation of driving.AnalysisService.
type mockAnalysisService struct {
	report   *domain.AnalysisReport
	err      error
	requests []domain.AnalysisRequest
}

func (m *mockAnalysisService) Analyze(_ context.Context, req domain.AnalysisRequest) (*domain.AnalysisReport, error) {
	m.requests = append(m.requests, req)
	if m.err != nil {
		return nil, m.err
	}
	return m.report, nil
}

// mockPromptStore is a mock implementation of driven.PromptStore.
type mockPromptStore struct{}

func (m *mockPromptStore) Load(string) (string, error) { return "", errors.New("not found") }
func (m *mockPromptStore) Reload()                     {}

func testReport() *domain.AnalysisReport {
	return &domain.AnalysisReport{
		ID:          "report-1",
		GeneratedAt: time.Date(2024, 11, 30, 0, 0, 0, 0, time.UTC),
		Content:     domain.ContentArtifact{URL: "https://example.com/guide", Title: "Brewing Guide"},
		Graph: domain.QueryGraph{
			TierGraph: domain.TierGraph{Core: []domain.QueryItem{{Text: "how to brew coffee"}}},
		},
		Verdicts: []domain.CoverageVerdict{
			{Query: "how to brew coffee", Status: domain.StatusGap, Confidence: 80, Recommendation: "Add steps"},
		},
		CoverageSummary: domain.CoverageSummary{
			Statistics:      domain.Statistics{TotalQueries: 1, Gaps: 1},
			Recommendations: domain.Recommendations{High: []string{"Add steps"}},
		},
	}
}

// newTestSettings returns a settings service on an in-memory store that
// ignores the process environment.
func newTestSettings() *services.SettingsService {
	svc := services.NewSettingsService(memory.NewConfigStore(), nil)
	svc.SetEnvLookup(func(string) string { return "" })
	return svc
}

// setupTestServices installs mock services and returns a cleanup func
// that restores the previous ones.
func setupTestServices() (*mockAnalysisService, *services.SettingsService, func()) {
	oldAnalysis, oldSettings, oldPrompts, oldWatch := analysisService, settingsService, promptStore, watchPrompts
	oldBootstrap := bootstrap

	analysis := &mockAnalysisService{report: testReport()}
	settings := newTestSettings()
	SetServices(&Services{Analysis: analysis, Settings: settings, Prompts: &mockPromptStore{}})
	bootstrap = nil

	return analysis, settings, func() {
		analysisService, settingsService, promptStore, watchPrompts = oldAnalysis, oldSettings, oldPrompts, oldWatch
		bootstrap = oldBootstrap
	}
}

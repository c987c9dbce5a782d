package services

import (
	"time"

	"github.com/google/uuid"

	"github.com/custodia-labs/fanout-cli/internal/core/domain"
)

// ReportInput is everything a report is built from.
type ReportInput struct {
	Content    domain.ContentArtifact
	Graph      domain.QueryGraph
	Verdicts   []domain.CoverageVerdict
	ModelUsed  string
	Processing domain.ProcessingMetrics
}

// ReportBuilder assembles immutable analysis reports.
type ReportBuilder struct {
	now   func() time.Time
	newID func() string
}

// NewReportBuilder creates a builder using the wall clock and random UUIDs.
func NewReportBuilder() *ReportBuilder {
	return &ReportBuilder{
		now:   time.Now,
		newID: uuid.NewString,
	}
}

// WithClock returns a copy of the builder reading time from now.
func (b *ReportBuilder) WithClock(now func() time.Time) *ReportBuilder {
	c := *b
	c.now = now
	return &c
}

// Build scores the verdicts and computes the report metrics.
// Graph queries that no verdict matches by exact text are listed in Unmatched.
func (b *ReportBuilder) Build(in ReportInput) *domain.AnalysisReport {
	report := &domain.AnalysisReport{
		ID:              b.newID(),
		GeneratedAt:     b.now().UTC(),
		Content:         in.Content,
		Graph:           in.Graph,
		Verdicts:        in.Verdicts,
		CoverageSummary: Score(in.Verdicts),
		Technical: domain.TechnicalMetrics{
			Content:    ContentMetricsFor(in.Content.NormalizedText),
			Queries:    QueryMetricsFor(in.Graph, in.ModelUsed, in.Content.NormalizedText),
			Evaluation: EvaluationMetricsFor(in.Verdicts),
			Processing: in.Processing,
		},
	}
	if report.Verdicts == nil {
		report.Verdicts = []domain.CoverageVerdict{}
	}

	answered := make(map[string]struct{}, len(in.Verdicts))
	for _, v := range in.Verdicts {
		answered[v.Query] = struct{}{}
	}
	for _, q := range in.Graph.AllQueries() {
		if _, ok := answered[q.Text]; !ok {
			report.Unmatched = append(report.Unmatched, q.Text)
		}
	}

	return report
}

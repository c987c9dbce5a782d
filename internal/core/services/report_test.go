package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/fanout-cli/internal/core/domain"
)

func TestReportBuilder_Build(t *testing.T) {
	fixed := time.Date(2024, 11, 29, 23, 30, 0, 0, time.FixedZone("PST", -8*3600))
	b := NewReportBuilder().WithClock(func() time.Time { return fixed })

	graph := Assemble(domain.TierGraph{
		Core: []domain.QueryItem{{Text: "best whey"}, {Text: "whey dosage"}},
	}, nil, "")
	in := ReportInput{
		Content: *testContent(),
		Graph:   graph,
		Verdicts: []domain.CoverageVerdict{
			{Query: "best whey", Status: domain.StatusCovered},
			{Query: "Whey dosage?", Status: domain.StatusGap, Recommendation: "add dosage"},
		},
		ModelUsed:  "test-model",
		Processing: domain.ProcessingMetrics{OracleCalls: 2},
	}

	report := b.Build(in)

	require.NotNil(t, report)
	assert.NotEmpty(t, report.ID)
	assert.Equal(t, fixed.UTC(), report.GeneratedAt)
	assert.Equal(t, "2024-11-30", report.AnalysisDate())
	assert.Equal(t, 50, report.CoverageScore)
	assert.Equal(t, []string{"add dosage"}, report.Recommendations.High)
	assert.Equal(t, "test-model", report.Technical.Queries.ModelUsed)
	assert.Equal(t, 2, report.Technical.Processing.OracleCalls)
	assert.Equal(t, []string{"whey dosage"}, report.Unmatched)

	v, ok := report.VerdictFor("best whey")
	assert.True(t, ok)
	assert.Equal(t, domain.StatusCovered, v.Status)
}

func TestReportBuilder_UniqueIDs(t *testing.T) {
	b := NewReportBuilder()

	first := b.Build(ReportInput{})
	second := b.Build(ReportInput{})

	assert.NotEqual(t, first.ID, second.ID)
	assert.NotNil(t, first.Verdicts)
	assert.Empty(t, first.Unmatched)
}

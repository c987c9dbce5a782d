package driving

import (
	"context"

	"github.com/custodia-labs/fanout-cli/internal/core/domain"
)

// AnalysisService runs the content coverage pipeline.
type AnalysisService interface {
	// Analyze fetches the page, generates and evaluates queries, and returns
	// the complete report. No partial report is returned on error.
	Analyze(ctx context.Context, req domain.AnalysisRequest) (*domain.AnalysisReport, error)
}

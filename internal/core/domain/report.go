package domain

import "time"

// Statistics counts verdicts by status.
type Statistics struct {
	TotalQueries int `json:"totalQueries"`
	Covered      int `json:"covered"`
	Partial      int `json:"partial"`
	Gaps         int `json:"gaps"`
}

// Percent returns n as a rounded percentage of TotalQueries, or 0 when empty.
func (s Statistics) Percent(n int) int {
	if s.TotalQueries == 0 {
		return 0
	}
	return (n*100 + s.TotalQueries/2) / s.TotalQueries
}

// Recommendations buckets verdict recommendations by priority.
type Recommendations struct {
	// High holds recommendations of gap verdicts, in verdict order.
	High []string `json:"high"`

	// Medium holds recommendations of partial verdicts, in verdict order.
	Medium []string `json:"medium"`
}

// CoverageSummary is the deterministic scoring result for a verdict list.
type CoverageSummary struct {
	CoverageScore   int             `json:"coverageScore"`
	Statistics      Statistics      `json:"statistics"`
	Recommendations Recommendations `json:"recommendations"`
}

// ContentMetrics are heuristic descriptions of the content text.
// They approximate readability and density; they are not exact linguistic measures.
type ContentMetrics struct {
	TotalCharacters   int     `json:"totalCharacters"`
	TotalWords        int     `json:"totalWords"`
	ReadabilityScore  int     `json:"readabilityScore"`
	TechnicalDensity  float64 `json:"technicalDensity"`
	AvgSentenceLength float64 `json:"avgSentenceLength"`
	AvgWordLength     float64 `json:"avgWordLength"`
}

// TierShare is one tier's share of the decomposition.
type TierShare struct {
	Count       int    `json:"count"`
	Percentage  int    `json:"percentage"`
	TargetRange string `json:"targetRange"`
}

// QueryMetrics describe the generated query graph.
type QueryMetrics struct {
	ModelUsed       string             `json:"modelUsed"`
	Mode            AnalysisMode       `json:"mode"`
	TotalQueries    int                `json:"totalQueries"`
	Distribution    map[Tier]TierShare `json:"distribution"`
	FanOutVariants  int                `json:"fanOutVariants"`
	DomainTermUsage float64            `json:"domainTermUsage"`
}

// StatusShare is one status's share of the verdicts.
type StatusShare struct {
	Count      int     `json:"count"`
	Percentage float64 `json:"percentage"`
}

// EvaluationMetrics describe the verdicts returned by coverage evaluation.
type EvaluationMetrics struct {
	FullyCovered       StatusShare `json:"fullyCovered"`
	PartiallyCovered   StatusShare `json:"partiallyCovered"`
	Gaps               StatusShare `json:"gaps"`
	AvgEvidenceLength  int         `json:"avgEvidenceLength"`
	AvgConfidenceScore float64     `json:"avgConfidenceScore"`
}

// ProcessingMetrics record wall-clock time per pipeline stage.
type ProcessingMetrics struct {
	Fetch       time.Duration `json:"fetch"`
	Decompose   time.Duration `json:"decompose"`
	FanOut      time.Duration `json:"fanOut"`
	Evaluate    time.Duration `json:"evaluate"`
	Total       time.Duration `json:"total"`
	OracleCalls int           `json:"oracleCalls"`
}

// TechnicalMetrics groups the secondary metrics of a report.
type TechnicalMetrics struct {
	Content    ContentMetrics    `json:"contentMetrics"`
	Queries    QueryMetrics      `json:"queryDecomposition"`
	Evaluation EvaluationMetrics `json:"coverageEvaluation"`
	Processing ProcessingMetrics `json:"processingMetrics"`
}

// AnalysisReport is the immutable result of one analysis run.
type AnalysisReport struct {
	ID          string            `json:"id"`
	GeneratedAt time.Time         `json:"generatedAt"`
	Content     ContentArtifact   `json:"content"`
	Graph       QueryGraph        `json:"queryGraph"`
	Verdicts    []CoverageVerdict `json:"assessments"`
	CoverageSummary
	Technical TechnicalMetrics `json:"technical"`

	// Unmatched lists graph queries with no verdict of identical text.
	Unmatched []string `json:"unmatched,omitempty"`
}

// AnalysisDate returns the report date as YYYY-MM-DD.
func (r *AnalysisReport) AnalysisDate() string {
	return r.GeneratedAt.UTC().Format("2006-01-02")
}

// VerdictFor returns the first verdict whose query text equals query exactly.
func (r *AnalysisReport) VerdictFor(query string) (CoverageVerdict, bool) {
	for _, v := range r.Verdicts {
		if v.Query == query {
			return v, true
		}
	}
	return CoverageVerdict{}, false
}

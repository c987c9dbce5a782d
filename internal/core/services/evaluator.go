package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/custodia-labs/fanout-cli/internal/core/domain"
	"github.com/custodia-labs/fanout-cli/internal/core/ports/driven"
	"github.com/custodia-labs/fanout-cli/internal/logger"
)

// EvaluatorConfig holds coverage evaluation parameters.
type EvaluatorConfig struct {
	// BatchSize is the number of queries judged per oracle call.
	BatchSize int

	// MaxTokens bounds each oracle reply.
	MaxTokens int
}

// DefaultEvaluatorConfig returns batches of 5 with an 8000 token budget.
func DefaultEvaluatorConfig() EvaluatorConfig {
	return EvaluatorConfig{BatchSize: 5, MaxTokens: 8000}
}

// CoverageEvaluator judges, batch by batch, whether content answers each query.
type CoverageEvaluator struct {
	llm       driven.LLMService
	extractor *Extractor
	cfg       EvaluatorConfig
	prompts   promptRenderer
}

// Ensure CoverageEvaluator accepts custom prompts.
var _ driven.PromptStoreAware = (*CoverageEvaluator)(nil)

// NewCoverageEvaluator creates an evaluator. Zero config fields take defaults.
func NewCoverageEvaluator(llm driven.LLMService, extractor *Extractor, cfg EvaluatorConfig) *CoverageEvaluator {
	defaults := DefaultEvaluatorConfig()
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = defaults.BatchSize
	}
	if cfg.MaxTokens <= 0 {
		cfg.MaxTokens = defaults.MaxTokens
	}
	return &CoverageEvaluator{llm: llm, extractor: extractor, cfg: cfg}
}

// SetPromptStore sets the prompt store for loading customisable prompts.
func (e *CoverageEvaluator) SetPromptStore(store driven.PromptStore) {
	e.prompts.store = store
}

// assessmentPromptData is the data rendered into the assessment template.
type assessmentPromptData struct {
	Content   string
	QueryList string
}

// wireVerdict mirrors one element of the oracle reply.
type wireVerdict struct {
	Query            string   `json:"query"`
	Status           *string  `json:"status"`
	Confidence       *float64 `json:"confidence"`
	Evidence         *string  `json:"evidence"`
	EvidenceLocation *string  `json:"evidence_location"`
	GapDescription   *string  `json:"gap_description"`
	Recommendation   *string  `json:"recommendation"`
}

// Evaluate judges queries in consecutive batches, one oracle call at a time,
// and concatenates the verdicts in batch order. The first failing batch
// aborts the evaluation.
//
// Verdicts are not aligned with queries: a batch may return more or fewer
// verdicts than it was given, which is logged as a warning.
func (e *CoverageEvaluator) Evaluate(
	ctx context.Context,
	content *domain.ContentArtifact,
	queries []domain.QueryItem,
) ([]domain.CoverageVerdict, error) {
	batches := Batch(queries, e.cfg.BatchSize)
	verdicts := make([]domain.CoverageVerdict, 0, len(queries))

	for i, batch := range batches {
		stage := fmt.Sprintf("coverage batch %d/%d", i+1, len(batches))

		got, err := e.evaluateBatch(ctx, stage, content, batch)
		if err != nil {
			return nil, err
		}
		if len(got) != len(batch) {
			logger.Warn("%s: %d queries sent, %d verdicts returned", stage, len(batch), len(got))
		}
		verdicts = append(verdicts, got...)
	}

	return verdicts, nil
}

func (e *CoverageEvaluator) evaluateBatch(
	ctx context.Context,
	stage string,
	content *domain.ContentArtifact,
	batch []domain.QueryItem,
) ([]domain.CoverageVerdict, error) {
	prompt, err := e.prompts.render(driven.PromptAssessment, assessmentPromptData{
		Content:   content.NormalizedText,
		QueryList: queryList(batch),
	})
	if err != nil {
		return nil, err
	}

	text, err := generate(ctx, e.llm, stage, prompt, driven.GenerateOptions{MaxTokens: e.cfg.MaxTokens})
	if err != nil {
		return nil, err
	}

	raw, err := e.extractor.Extract(text, '[')
	if err != nil {
		return nil, stageError(err, stage)
	}

	verdicts, err := parseVerdicts(raw)
	if err != nil {
		return nil, domain.NewPipelineError(domain.ErrorKindStructure, stage,
			"invalid assessment structure", string(raw), err)
	}
	return verdicts, nil
}

// parseVerdicts decodes an array of verdicts. Every element needs a known status.
func parseVerdicts(raw json.RawMessage) ([]domain.CoverageVerdict, error) {
	var wire []wireVerdict
	if err := json.Unmarshal(raw, &wire); err != nil {
		return nil, err
	}

	out := make([]domain.CoverageVerdict, 0, len(wire))
	for i, w := range wire {
		if w.Status == nil {
			return nil, fmt.Errorf("verdict %d has no status", i+1)
		}
		status := domain.CoverageStatus(strings.ToLower(strings.TrimSpace(*w.Status)))
		if !status.IsValid() {
			return nil, fmt.Errorf("verdict %d has unknown status %q", i+1, *w.Status)
		}

		v := domain.CoverageVerdict{
			Query:            w.Query,
			Status:           status,
			Evidence:         w.Evidence,
			EvidenceLocation: w.EvidenceLocation,
			GapDescription:   w.GapDescription,
		}
		if w.Confidence != nil {
			v.Confidence = min(100, max(0, *w.Confidence))
		}
		if w.Recommendation != nil {
			v.Recommendation = *w.Recommendation
		}
		out = append(out, v)
	}
	return out, nil
}

// queryList numbers and quotes each query, one per line.
func queryList(batch []domain.QueryItem) string {
	lines := make([]string, len(batch))
	for i, q := range batch {
		lines[i] = strconv.Itoa(i+1) + ". " + strconv.Quote(q.Text)
	}
	return strings.Join(lines, "\n")
}

// Batch splits items into consecutive chunks of size n; the last may be shorter.
func Batch[T any](items []T, n int) [][]T {
	if n <= 0 {
		n = 1
	}
	var out [][]T
	for start := 0; start < len(items); start += n {
		end := min(start+n, len(items))
		out = append(out, items[start:end])
	}
	return out
}

package services

import (
	"context"
	"fmt"
	"time"

	"github.com/custodia-labs/fanout-cli/internal/core/domain"
	"github.com/custodia-labs/fanout-cli/internal/core/ports/driven"
	"github.com/custodia-labs/fanout-cli/internal/core/ports/driving"
	"github.com/custodia-labs/fanout-cli/internal/logger"
)

// Ensure AnalysisService implements the interface.
var _ driving.AnalysisService = (*AnalysisService)(nil)

// Ensure AnalysisService accepts custom prompts.
var _ driven.PromptStoreAware = (*AnalysisService)(nil)

// AnalysisService runs the full pipeline: fetch, decompose, fan out,
// assemble, evaluate and report. Oracle calls are made one at a time.
//
// It holds no per-analysis state, so concurrent Analyze calls are safe as
// long as the fetcher and oracle are.
type AnalysisService struct {
	fetcher   driven.ContentFetcher
	llm       driven.LLMService
	extractor *Extractor
	filter    *VariantFilter
	evalCfg   EvaluatorConfig
	reports   *ReportBuilder
	prompts   driven.PromptStore
}

// NewAnalysisService creates an analysis service with default extractor,
// filter and evaluator settings. llm may be nil, in which case every
// analysis fails with domain.ErrLLMUnavailable.
func NewAnalysisService(fetcher driven.ContentFetcher, llm driven.LLMService) *AnalysisService {
	return &AnalysisService{
		fetcher:   fetcher,
		llm:       llm,
		extractor: NewExtractor(DefaultExtractorConfig()),
		filter:    NewVariantFilter(DefaultFilterConfig()),
		evalCfg:   DefaultEvaluatorConfig(),
		reports:   NewReportBuilder(),
	}
}

// SetPromptStore sets the prompt store for loading customisable prompts.
func (s *AnalysisService) SetPromptStore(store driven.PromptStore) {
	s.prompts = store
}

// SetFilterConfig replaces the variant realism rules.
func (s *AnalysisService) SetFilterConfig(cfg FilterConfig) {
	s.filter = NewVariantFilter(cfg)
}

// SetExtractorConfig replaces the reasoning markers stripped from oracle output.
func (s *AnalysisService) SetExtractorConfig(cfg ExtractorConfig) {
	s.extractor = NewExtractor(cfg)
}

// SetEvaluatorConfig replaces the coverage batch settings.
func (s *AnalysisService) SetEvaluatorConfig(cfg EvaluatorConfig) {
	s.evalCfg = cfg
}

// SetClock sets the clock used to stamp reports.
func (s *AnalysisService) SetClock(now func() time.Time) {
	s.reports = s.reports.WithClock(now)
}

// Analyze runs one analysis. Any stage failure aborts the run and no
// partial report is returned.
func (s *AnalysisService) Analyze(ctx context.Context, req domain.AnalysisRequest) (*domain.AnalysisReport, error) {
	logger.Section("Content Analysis")

	req = req.WithDefaults()
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if s.llm == nil {
		return nil, domain.ErrLLMUnavailable
	}
	if s.fetcher == nil {
		return nil, fmt.Errorf("%w: no content fetcher configured", domain.ErrFetchFailed)
	}

	// Per-analysis oracle so the call count belongs to this run only.
	oracle := &countingOracle{LLMService: s.llm}
	var processing domain.ProcessingMetrics
	stopTotal := logger.Timed("analysis")

	logger.Info("Fetching %s", req.URL)
	stop := logger.Timed("fetch")
	content, err := s.fetcher.Fetch(ctx, req.URL)
	processing.Fetch = stop()
	if err != nil {
		return nil, err
	}
	logger.Info("Fetched %q (%d words)", content.Title, content.WordCount)

	var tiers domain.TierGraph
	if !req.FanOutOnly {
		decomposer := NewQueryDecomposer(oracle, s.extractor)
		decomposer.SetPromptStore(s.prompts)

		stop = logger.Timed("decomposition")
		tiers, err = decomposer.Decompose(ctx, content, req.Depth, req.FocusArea)
		processing.Decompose = stop()
		if err != nil {
			return nil, err
		}
	}

	var variants []domain.FanOutQuery
	if req.WantsFanOut() {
		fanOut := NewKeywordFanOut(oracle, s.extractor, s.filter)
		fanOut.SetPromptStore(s.prompts)

		stop = logger.Timed("fan-out")
		variants, err = fanOut.Generate(ctx, req.TargetKeyword, content, req.FanOutTypes, req.Context)
		processing.FanOut = stop()
		if err != nil {
			return nil, err
		}
	}

	graph := Assemble(tiers, variants, req.TargetKeyword)
	queries := graph.AllQueries()
	logger.Info("Evaluating %d queries (%s)", len(queries), graph.Mode())

	evaluator := NewCoverageEvaluator(oracle, s.extractor, s.evalCfg)
	evaluator.SetPromptStore(s.prompts)

	stop = logger.Timed("evaluation")
	verdicts, err := evaluator.Evaluate(ctx, content, queries)
	processing.Evaluate = stop()
	if err != nil {
		return nil, err
	}

	processing.Total = stopTotal()
	processing.OracleCalls = oracle.Calls()

	report := s.reports.Build(ReportInput{
		Content:    *content,
		Graph:      graph,
		Verdicts:   verdicts,
		ModelUsed:  s.llm.ModelName(),
		Processing: processing,
	})
	if len(report.Unmatched) > 0 {
		logger.Warn("%d queries have no verdict with matching text", len(report.Unmatched))
	}

	logger.Info("Coverage score %d/100 after %d oracle calls", report.CoverageScore, processing.OracleCalls)
	return report, nil
}

package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/custodia-labs/fanout-cli/internal/core/domain"
	"github.com/custodia-labs/fanout-cli/internal/core/ports/driven"
	"github.com/custodia-labs/fanout-cli/internal/logger"
)

// Decomposition limits.
const (
	// decompositionTextLimit is the number of content characters sent to the oracle.
	decompositionTextLimit = 8000

	decompositionMaxTokens = 4000
)

// QueryDecomposer asks the oracle for a three-tier query graph.
type QueryDecomposer struct {
	llm       driven.LLMService
	extractor *Extractor
	prompts   promptRenderer
}

// Ensure QueryDecomposer accepts custom prompts.
var _ driven.PromptStoreAware = (*QueryDecomposer)(nil)

// NewQueryDecomposer creates a decomposer using the given oracle.
func NewQueryDecomposer(llm driven.LLMService, extractor *Extractor) *QueryDecomposer {
	return &QueryDecomposer{llm: llm, extractor: extractor}
}

// SetPromptStore sets the prompt store for loading customisable prompts.
func (d *QueryDecomposer) SetPromptStore(store driven.PromptStore) {
	d.prompts.store = store
}

// decompositionPromptData is the data rendered into the decomposition template.
type decompositionPromptData struct {
	Title        string
	WordCount    int
	Text         string
	Total        int
	Prerequisite int
	Core         int
	Followup     int
	FocusArea    string
}

// wireTierGraph mirrors the oracle reply. Pointers distinguish a missing
// tier from an empty one.
type wireTierGraph struct {
	Prerequisite *[]wireQuery `json:"prerequisite"`
	Core         *[]wireQuery `json:"core"`
	Followup     *[]wireQuery `json:"followup"`
}

type wireQuery struct {
	Query      string `json:"query"`
	Importance string `json:"importance"`
	Rationale  string `json:"rationale"`
}

// Decompose generates the tiered query graph for content.
func (d *QueryDecomposer) Decompose(
	ctx context.Context,
	content *domain.ContentArtifact,
	depth domain.Depth,
	focusArea string,
) (domain.TierGraph, error) {
	const stage = "query decomposition"

	targets := depth.TierTargets()
	logger.Debug("Depth %s: %d queries requested (%d/%d/%d)",
		depth, depth.TotalQueries(), targets.Prerequisite, targets.Core, targets.Followup)

	prompt, err := d.prompts.render(driven.PromptDecomposition, decompositionPromptData{
		Title:        content.Title,
		WordCount:    content.WordCount,
		Text:         domain.Truncate(content.NormalizedText, decompositionTextLimit),
		Total:        depth.TotalQueries(),
		Prerequisite: targets.Prerequisite,
		Core:         targets.Core,
		Followup:     targets.Followup,
		FocusArea:    strings.TrimSpace(focusArea),
	})
	if err != nil {
		return domain.TierGraph{}, err
	}

	text, err := generate(ctx, d.llm, stage, prompt, driven.GenerateOptions{MaxTokens: decompositionMaxTokens})
	if err != nil {
		return domain.TierGraph{}, err
	}

	raw, err := d.extractor.Extract(text, '{')
	if err != nil {
		return domain.TierGraph{}, stageError(err, stage)
	}

	graph, err := parseTierGraph(raw)
	if err != nil {
		return domain.TierGraph{}, domain.NewPipelineError(domain.ErrorKindStructure, stage,
			"invalid query graph structure", string(raw), err)
	}

	logger.Info("Decomposition returned %d/%d/%d queries",
		len(graph.Prerequisite), len(graph.Core), len(graph.Followup))
	return graph, nil
}

// parseTierGraph decodes and validates the oracle's tier graph.
func parseTierGraph(raw json.RawMessage) (domain.TierGraph, error) {
	var wire wireTierGraph
	if err := json.Unmarshal(raw, &wire); err != nil {
		return domain.TierGraph{}, err
	}

	var graph domain.TierGraph
	tiers := []struct {
		name domain.Tier
		in   *[]wireQuery
		out  *[]domain.QueryItem
	}{
		{domain.TierPrerequisite, wire.Prerequisite, &graph.Prerequisite},
		{domain.TierCore, wire.Core, &graph.Core},
		{domain.TierFollowup, wire.Followup, &graph.Followup},
	}

	for _, tier := range tiers {
		if tier.in == nil {
			return domain.TierGraph{}, fmt.Errorf("missing %q array", tier.name)
		}
		items := make([]domain.QueryItem, 0, len(*tier.in))
		for i, q := range *tier.in {
			text := strings.TrimSpace(q.Query)
			if text == "" {
				return domain.TierGraph{}, fmt.Errorf("%s query %d has empty text", tier.name, i+1)
			}
			items = append(items, domain.QueryItem{
				Text:       text,
				Importance: parseImportance(q.Importance),
				Rationale:  q.Rationale,
			})
		}
		*tier.out = items
	}

	return graph, nil
}

// parseImportance maps oracle importance to a known level, defaulting to medium.
func parseImportance(s string) domain.Importance {
	imp := domain.Importance(strings.ToLower(strings.TrimSpace(s)))
	if !imp.IsValid() {
		return domain.ImportanceMedium
	}
	return imp
}

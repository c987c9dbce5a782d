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

// Fan-out generation parameters.
const (
	fanOutMaxTokens   = 4000
	fanOutTemperature = 0.7

	summaryTitleWords       = 10
	summaryDescriptionWords = 20
)

// KeywordFanOut generates typed query variants for a seed keyword.
type KeywordFanOut struct {
	llm       driven.LLMService
	extractor *Extractor
	filter    *VariantFilter
	prompts   promptRenderer
}

// Ensure KeywordFanOut accepts custom prompts.
var _ driven.PromptStoreAware = (*KeywordFanOut)(nil)

// NewKeywordFanOut creates a fan-out generator. Generated variants pass
// through filter before they are returned.
func NewKeywordFanOut(llm driven.LLMService, extractor *Extractor, filter *VariantFilter) *KeywordFanOut {
	return &KeywordFanOut{llm: llm, extractor: extractor, filter: filter}
}

// SetPromptStore sets the prompt store for loading customisable prompts.
func (f *KeywordFanOut) SetPromptStore(store driven.PromptStore) {
	f.prompts.store = store
}

// fanOutPromptData is the data rendered into the fan-out template.
type fanOutPromptData struct {
	Keyword          string
	ContentSummary   string
	ContentType      string
	ContextLines     []string
	TypeInstructions string
	Types            []domain.VariantType
}

// Generate asks the oracle for variants of keyword and returns the filtered,
// scored result. Only the requested types are kept, in canonical type order.
func (f *KeywordFanOut) Generate(
	ctx context.Context,
	keyword string,
	content *domain.ContentArtifact,
	types []domain.VariantType,
	actx *domain.AnalysisContext,
) ([]domain.FanOutQuery, error) {
	const stage = "keyword fan-out"

	requested := canonicalTypes(types)
	if len(requested) == 0 {
		requested = domain.DefaultVariantTypes()
	}

	prompt, err := f.prompts.render(driven.PromptFanOut, fanOutPromptData{
		Keyword:          keyword,
		ContentSummary:   contentSummary(content),
		ContentType:      detectContentType(content),
		ContextLines:     contextLines(actx),
		TypeInstructions: typeInstructions(requested, keyword),
		Types:            requested,
	})
	if err != nil {
		return nil, err
	}

	text, err := generate(ctx, f.llm, stage, prompt, driven.GenerateOptions{
		MaxTokens:   fanOutMaxTokens,
		Temperature: fanOutTemperature,
	})
	if err != nil {
		return nil, err
	}

	raw, err := f.extractor.Extract(text, '{')
	if err != nil {
		return nil, stageError(err, stage)
	}

	variants, err := parseVariants(raw, requested)
	if err != nil {
		return nil, domain.NewPipelineError(domain.ErrorKindStructure, stage,
			"invalid fan-out structure", string(raw), err)
	}

	kept := f.filter.FilterAndScore(variants, keyword, actx)
	logger.Info("Fan-out for %q: %d generated, %d kept", keyword, len(variants), len(kept))
	return kept, nil
}

// parseVariants reads the per-type arrays of the oracle reply.
// Keys for unrequested types and non-string entries are ignored.
func parseVariants(raw json.RawMessage, requested []domain.VariantType) ([]RawVariant, error) {
	var reply map[string]json.RawMessage
	if err := json.Unmarshal(raw, &reply); err != nil {
		return nil, err
	}

	var out []RawVariant
	for _, t := range requested {
		field, ok := reply[string(t)]
		if !ok {
			continue
		}
		var items []any
		if err := json.Unmarshal(field, &items); err != nil {
			logger.Warn("Fan-out key %q is not an array, skipping", t)
			continue
		}
		for _, item := range items {
			s, ok := item.(string)
			if !ok {
				continue
			}
			if s = strings.TrimSpace(s); s != "" {
				out = append(out, RawVariant{Text: s, Type: t})
			}
		}
	}
	return out, nil
}

// canonicalTypes returns the valid members of types, deduplicated, in canonical order.
func canonicalTypes(types []domain.VariantType) []domain.VariantType {
	want := make(map[domain.VariantType]bool, len(types))
	for _, t := range types {
		want[t] = true
	}
	var out []domain.VariantType
	for _, t := range domain.AllVariantTypes() {
		if want[t] {
			out = append(out, t)
		}
	}
	return out
}

// contentSummary is the first title words followed by the first description words.
func contentSummary(content *domain.ContentArtifact) string {
	return firstWords(content.Title, summaryTitleWords) + "... " +
		firstWords(content.Description, summaryDescriptionWords)
}

func firstWords(s string, n int) string {
	words := strings.Fields(s)
	if len(words) > n {
		words = words[:n]
	}
	return strings.Join(words, " ")
}

// detectContentType guesses the page type from keywords in its text.
func detectContentType(content *domain.ContentArtifact) string {
	text := strings.ToLower(content.NormalizedText)
	containsAny := func(terms ...string) bool {
		for _, term := range terms {
			if strings.Contains(text, term) {
				return true
			}
		}
		return false
	}

	switch {
	case containsAny("review", "rating"):
		return "review/comparison"
	case containsAny("how to", "guide", "tutorial"):
		return "guide/tutorial"
	case containsAny("buy", "price"):
		return "product page"
	default:
		return "article/informational"
	}
}

// contextLines renders the analysis context for the prompt.
func contextLines(actx *domain.AnalysisContext) []string {
	if actx == nil {
		return nil
	}
	var lines []string
	if actx.Temporal != nil {
		if actx.Temporal.CurrentDate != "" {
			lines = append(lines, "Current Date: "+actx.Temporal.CurrentDate)
		}
		if actx.Temporal.Season != "" {
			lines = append(lines, "Season: "+actx.Temporal.Season)
		}
	}
	if actx.Intent != "" {
		lines = append(lines, "User Intent: "+string(actx.Intent))
	}
	if actx.SpecificityPreference != "" {
		lines = append(lines, "Specificity Preference: "+string(actx.SpecificityPreference))
	}
	return lines
}

// typeGuide describes how to generate one variant type.
type typeGuide struct {
	heading    string
	count      string
	definition string
	criteria   []string
	examples   []string
}

var typeGuides = map[domain.VariantType]typeGuide{
	domain.VariantEquivalent: {
		heading:    "EQUIVALENT",
		count:      "3-5",
		definition: "Alternative phrasings with the same intent; different ways to express %q",
		criteria: []string{
			"Must have identical search intent",
			"Natural language variations",
			"Regional/dialect differences acceptable",
		},
		examples: []string{
			`"sim racing cockpit" -> "racing simulator rig", "sim rig setup"`,
			`"best protein powder" -> "top protein supplements", "recommended protein powder"`,
		},
	},
	domain.VariantSpecification: {
		heading:    "SPECIFICATION",
		count:      "3-5",
		definition: "More specific/detailed versions with added qualifiers",
		criteria: []string{
			"Add brands, models, use cases, or technical details",
			"Must be answerable with specific information",
			"Drill down into particular aspects",
		},
		examples: []string{
			`"sim racing wheels" -> "Fanatec DD Pro wheel review", "best sim racing wheel for Formula 1"`,
			`"protein powder" -> "whey protein isolate for muscle gain", "vegan protein powder brands"`,
		},
	},
	domain.VariantGeneralization: {
		heading:    "GENERALIZATION",
		count:      "2-3",
		definition: "Broader versions that encompass the keyword within larger context",
		criteria: []string{
			"Zoom out to related broader topics",
			"Must still be relevant to original intent",
			"Opens up to category-level questions",
		},
		examples: []string{
			`"direct drive sim racing wheels" -> "sim racing wheels comparison", "force feedback racing wheels"`,
			`"vegan protein powder" -> "plant-based protein sources", "vegan supplements"`,
		},
	},
	domain.VariantFollowUp: {
		heading:    "FOLLOW-UP",
		count:      "3-5",
		definition: "Logical next questions after learning about %q",
		criteria: []string{
			"Assumes user has basic knowledge from original query",
			"Explores deeper aspects or related topics",
			"Natural progression of learning/research",
		},
		examples: []string{
			`"sim racing wheels" -> "how to calibrate sim racing wheel", "best pedals to pair with racing wheel"`,
			`"protein powder" -> "when to take protein powder", "protein powder side effects"`,
		},
	},
	domain.VariantComparison: {
		heading:    "COMPARISON",
		count:      "3-5",
		definition: "Queries seeking to compare options, alternatives, or solutions",
		criteria: []string{
			"Must compare specific entities or approaches",
			`"vs", "versus", "compared to" patterns`,
			`"best" for specific criteria`,
		},
		examples: []string{
			`"sim racing wheels" -> "Fanatec vs Thrustmaster wheels", "direct drive vs belt driven wheels"`,
			`"protein powder" -> "whey vs casein protein", "best budget protein powder"`,
		},
	},
	domain.VariantClarification: {
		heading:    "CLARIFICATION",
		count:      "2-3",
		definition: "Questions seeking to understand concepts, definitions, mechanisms",
		criteria: []string{
			`"What is...", "How does...", "Why..." patterns`,
			"Address knowledge gaps",
			"Explain mechanisms or concepts",
		},
		examples: []string{
			`"direct drive wheels" -> "what is direct drive technology", "how do direct drive wheels work"`,
			`"protein powder" -> "what is whey protein", "how is protein powder made"`,
		},
	},
	domain.VariantRelatedAspects: {
		heading:    "RELATED ASPECTS",
		count:      "3-5",
		definition: "Connected topics or implicit facets not stated in original query",
		criteria: []string{
			"Identify underlying facets (setup, compatibility, maintenance, etc.)",
			"Natural extensions of the topic",
			"Address implicit user needs",
		},
		examples: []string{
			`"sim racing wheels" -> "sim racing wheel setup guide", "wheel compatibility with PC games"`,
			`"protein powder" -> "protein powder recipes", "how to mix protein powder"`,
		},
	},
	domain.VariantTemporal: {
		heading:    "TEMPORAL",
		count:      "2-3",
		definition: "Time-specific versions with temporal qualifiers",
		criteria: []string{
			"Include year, season, or time-based context",
			`"latest", "new" or year qualifiers`,
			"Current trends or releases",
		},
		examples: []string{
			`"sim racing wheels" -> "best sim racing wheels this year", "new sim racing wheels released"`,
			`"protein powder" -> "protein powder black friday deals", "trending protein powders"`,
		},
	},
}

// typeInstructions renders the numbered guides for the requested types only.
func typeInstructions(types []domain.VariantType, keyword string) string {
	sections := make([]string, 0, len(types))
	for i, t := range types {
		g, ok := typeGuides[t]
		if !ok {
			continue
		}
		definition := g.definition
		if strings.Contains(definition, "%q") {
			definition = fmt.Sprintf(definition, keyword)
		}

		var b strings.Builder
		fmt.Fprintf(&b, "%d. %s VARIANTS (%s variants)\n", i+1, g.heading, g.count)
		fmt.Fprintf(&b, "Definition: %s\n", definition)
		b.WriteString("Quality Criteria:\n")
		for _, c := range g.criteria {
			fmt.Fprintf(&b, "- %s\n", c)
		}
		b.WriteString("\nExamples:\n")
		for _, e := range g.examples {
			fmt.Fprintf(&b, "- %s\n", e)
		}
		fmt.Fprintf(&b, "\nUse the key %q for these variants.", t)
		sections = append(sections, b.String())
	}
	return strings.Join(sections, "\n\n")
}

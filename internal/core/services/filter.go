package services

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/custodia-labs/fanout-cli/internal/core/domain"
	"github.com/custodia-labs/fanout-cli/internal/logger"
)

// FilterConfig holds the realism rules applied to fan-out variants.
type FilterConfig struct {
	// MinLength and MaxLength bound the query length in characters.
	MinLength int
	MaxLength int

	// MaxWords is the most whitespace-delimited words a query may have.
	MaxWords int

	// ExcludedTerms rejects any query containing one of them (case-insensitive).
	ExcludedTerms []string
}

// DefaultFilterConfig returns the standard realism rules.
func DefaultFilterConfig() FilterConfig {
	return FilterConfig{
		MinLength: 5,
		MaxLength: 150,
		MaxWords:  15,
		ExcludedTerms: []string{
			"revolutionary",
			"game-changing",
			"cutting-edge",
			"state-of-the-art",
			"next-generation",
		},
	}
}

// RawVariant is a variant as generated, before filtering and scoring.
type RawVariant struct {
	Text string
	Type domain.VariantType
}

// VariantFilter dedupes, realism-filters and scores fan-out variants.
// Its configuration is fixed at construction.
type VariantFilter struct {
	cfg      FilterConfig
	excluded []string
}

// NewVariantFilter creates a filter with the given rules.
func NewVariantFilter(cfg FilterConfig) *VariantFilter {
	excluded := make([]string, 0, len(cfg.ExcludedTerms))
	for _, term := range cfg.ExcludedTerms {
		if term = strings.ToLower(strings.TrimSpace(term)); term != "" {
			excluded = append(excluded, term)
		}
	}
	cfg.ExcludedTerms = append([]string(nil), cfg.ExcludedTerms...)
	return &VariantFilter{cfg: cfg, excluded: excluded}
}

// Config returns a copy of the filter rules.
func (f *VariantFilter) Config() FilterConfig {
	cfg := f.cfg
	cfg.ExcludedTerms = append([]string(nil), f.cfg.ExcludedTerms...)
	return cfg
}

// FilterAndScore keeps the first occurrence of each normalised query, drops
// unrealistic ones, and attaches importance and specificity.
// Output order is first-seen input order.
func (f *VariantFilter) FilterAndScore(
	raw []RawVariant,
	keyword string,
	actx *domain.AnalysisContext,
) []domain.FanOutQuery {
	seen := make(map[string]struct{}, len(raw))
	out := make([]domain.FanOutQuery, 0, len(raw))

	for _, v := range raw {
		text := strings.TrimSpace(v.Text)
		key := domain.NormalizeQuery(text)
		if _, dup := seen[key]; dup {
			logger.Debug("Dropping duplicate variant %q", text)
			continue
		}
		seen[key] = struct{}{}

		if reason := f.reject(text); reason != "" {
			logger.Debug("Dropping variant %q: %s", text, reason)
			continue
		}

		out = append(out, domain.FanOutQuery{
			QueryItem: domain.QueryItem{
				Text:       text,
				Importance: ImportanceFor(v.Type),
				Rationale:  fmt.Sprintf("Generated via keyword fan-out (%s variant of %q)", v.Type, keyword),
			},
			VariantType:      v.Type,
			SourceKeyword:    keyword,
			GenerationMethod: domain.GenerationMethodFanOut,
			ContextSignals:   contextSignals(v.Type, actx),
		})
	}

	return out
}

// reject returns why a query is unrealistic, or "" if it passes.
func (f *VariantFilter) reject(text string) string {
	n := utf8.RuneCountInString(text)
	if n < f.cfg.MinLength || n > f.cfg.MaxLength {
		return fmt.Sprintf("length %d outside [%d, %d]", n, f.cfg.MinLength, f.cfg.MaxLength)
	}
	if words := len(strings.Fields(text)); words > f.cfg.MaxWords {
		return fmt.Sprintf("%d words exceeds %d", words, f.cfg.MaxWords)
	}
	lower := strings.ToLower(text)
	for _, term := range f.excluded {
		if strings.Contains(lower, term) {
			return fmt.Sprintf("contains excluded term %q", term)
		}
	}
	return ""
}

// variantImportance maps each variant type to a fixed importance.
var variantImportance = map[domain.VariantType]domain.Importance{
	domain.VariantEquivalent:     domain.ImportanceHigh,
	domain.VariantSpecification:  domain.ImportanceHigh,
	domain.VariantComparison:     domain.ImportanceHigh,
	domain.VariantClarification:  domain.ImportanceMedium,
	domain.VariantGeneralization: domain.ImportanceMedium,
	domain.VariantFollowUp:       domain.ImportanceMedium,
	domain.VariantRelatedAspects: domain.ImportanceLow,
	domain.VariantTemporal:       domain.ImportanceLow,
}

// baseSpecificity is the per-type specificity before preference scaling.
var baseSpecificity = map[domain.VariantType]float64{
	domain.VariantSpecification:  0.9,
	domain.VariantEquivalent:     0.7,
	domain.VariantComparison:     0.7,
	domain.VariantClarification:  0.5,
	domain.VariantFollowUp:       0.6,
	domain.VariantGeneralization: 0.3,
	domain.VariantRelatedAspects: 0.5,
	domain.VariantTemporal:       0.6,
}

// ImportanceFor returns the fixed importance of a variant type.
// Unknown types are low.
func ImportanceFor(t domain.VariantType) domain.Importance {
	if imp, ok := variantImportance[t]; ok {
		return imp
	}
	return domain.ImportanceLow
}

// Specificity scales the type's base specificity by the caller's preference
// (0.7 broad, 1.3 specific, 1.0 otherwise) and clamps it to [0, 1].
func Specificity(t domain.VariantType, pref domain.Specificity) float64 {
	s := baseSpecificity[t]
	switch pref {
	case domain.SpecificityBroad:
		s *= 0.7
	case domain.SpecificitySpecific:
		s *= 1.3
	}
	return min(1, max(0, s))
}

// contextSignals builds the signals attached to a variant, or nil without context.
func contextSignals(t domain.VariantType, actx *domain.AnalysisContext) *domain.ContextSignals {
	if actx == nil {
		return nil
	}
	signals := &domain.ContextSignals{
		Intent:      actx.Intent,
		Specificity: Specificity(t, actx.SpecificityPreference),
	}
	if actx.Temporal != nil {
		signals.Temporal = actx.Temporal.CurrentDate
	}
	return signals
}

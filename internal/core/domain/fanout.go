package domain

// VariantType is a semantic relationship between a seed keyword and a variant.
type VariantType string

// The eight fan-out variant types.
const (
	VariantEquivalent     VariantType = "equivalent"
	VariantSpecification  VariantType = "specification"
	VariantGeneralization VariantType = "generalization"
	VariantFollowUp       VariantType = "followUp"
	VariantComparison     VariantType = "comparison"
	VariantClarification  VariantType = "clarification"
	VariantRelatedAspects VariantType = "relatedAspects"
	VariantTemporal       VariantType = "temporal"
)

// AllVariantTypes returns every variant type in canonical order.
func AllVariantTypes() []VariantType {
	return []VariantType{
		VariantEquivalent,
		VariantSpecification,
		VariantGeneralization,
		VariantFollowUp,
		VariantComparison,
		VariantClarification,
		VariantRelatedAspects,
		VariantTemporal,
	}
}

// DefaultVariantTypes returns the variant types generated when none are requested.
func DefaultVariantTypes() []VariantType {
	return []VariantType{
		VariantEquivalent,
		VariantSpecification,
		VariantFollowUp,
		VariantComparison,
		VariantClarification,
	}
}

// IsValid returns true if the variant type is recognised.
func (v VariantType) IsValid() bool {
	for _, t := range AllVariantTypes() {
		if v == t {
			return true
		}
	}
	return false
}

// String returns the string representation.
func (v VariantType) String() string {
	return string(v)
}

// GenerationMethodFanOut marks queries produced by keyword fan-out.
const GenerationMethodFanOut = "fan-out"

// FanOutQuery is a keyword variant that extends QueryItem with its provenance.
type FanOutQuery struct {
	QueryItem

	// VariantType is the relationship of this query to SourceKeyword.
	VariantType VariantType `json:"variant_type"`

	// SourceKeyword is the seed keyword the variant was expanded from.
	SourceKeyword string `json:"source_keyword"`

	// GenerationMethod records how the query was produced.
	GenerationMethod string `json:"generation_method"`

	// ContextSignals is set only when the caller supplied an AnalysisContext.
	ContextSignals *ContextSignals `json:"context_signals,omitempty"`
}

// ContextSignals are the context values attached to a generated variant.
type ContextSignals struct {
	Temporal    string  `json:"temporal,omitempty"`
	Intent      Intent  `json:"intent,omitempty"`
	Specificity float64 `json:"specificity"`
}

// Intent is the user intent hinted to fan-out generation.
type Intent string

// Available intents.
const (
	IntentShopping      Intent = "shopping"
	IntentResearch      Intent = "research"
	IntentNavigation    Intent = "navigation"
	IntentEntertainment Intent = "entertainment"
)

// IsValid returns true if the intent is recognised.
func (i Intent) IsValid() bool {
	switch i {
	case IntentShopping, IntentResearch, IntentNavigation, IntentEntertainment:
		return true
	default:
		return false
	}
}

// Specificity is the caller's preferred query specificity.
type Specificity string

// Available specificity preferences.
const (
	SpecificityBroad    Specificity = "broad"
	SpecificitySpecific Specificity = "specific"
	SpecificityBalanced Specificity = "balanced"
)

// IsValid returns true if the specificity preference is recognised.
func (s Specificity) IsValid() bool {
	switch s {
	case SpecificityBroad, SpecificitySpecific, SpecificityBalanced:
		return true
	default:
		return false
	}
}

// TemporalContext carries optional time hints for fan-out generation.
type TemporalContext struct {
	// CurrentDate is a YYYY-MM-DD date.
	CurrentDate string `json:"currentDate,omitempty"`

	// Season is one of winter, spring, summer, fall.
	Season string `json:"season,omitempty"`
}

// AnalysisContext is passed through to fan-out generation only.
type AnalysisContext struct {
	Temporal              *TemporalContext `json:"temporal,omitempty"`
	Intent                Intent           `json:"intent,omitempty"`
	SpecificityPreference Specificity      `json:"specificity_preference,omitempty"`
}

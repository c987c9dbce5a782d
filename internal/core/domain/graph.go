package domain

// AnalysisMode describes which query sources populated a QueryGraph.
type AnalysisMode string

// Available analysis modes.
const (
	// ModeContentOnly uses tier decomposition only.
	ModeContentOnly AnalysisMode = "content_only"

	// ModeKeywordOnly uses keyword fan-out only.
	ModeKeywordOnly AnalysisMode = "keyword_only"

	// ModeHybrid combines decomposition and fan-out.
	ModeHybrid AnalysisMode = "hybrid"
)

// Description returns a human-readable description of the mode.
func (m AnalysisMode) Description() string {
	switch m {
	case ModeContentOnly:
		return "Content inference (tiered decomposition)"
	case ModeKeywordOnly:
		return "Keyword fan-out only"
	case ModeHybrid:
		return "Hybrid (decomposition + keyword fan-out)"
	default:
		return "Unknown"
	}
}

// GenerationMetadata summarises the fan-out variants in a graph.
type GenerationMetadata struct {
	// VariantDistribution counts variants per type, with every type present.
	VariantDistribution map[VariantType]int `json:"variantDistribution"`

	// TotalVariants is the sum of VariantDistribution.
	TotalVariants int `json:"totalVariants"`
}

// QueryGraph is the merged query graph for one analysis.
//
// HasFanOut is set once by the assembler. When it is false FanOutVariants,
// TargetKeyword and Metadata are all zero.
type QueryGraph struct {
	TierGraph

	HasFanOut      bool                          `json:"has_fan_out"`
	FanOutVariants map[VariantType][]FanOutQuery `json:"fanOutVariants,omitempty"`
	TargetKeyword  string                        `json:"targetKeyword,omitempty"`
	Metadata       *GenerationMetadata           `json:"generationMetadata,omitempty"`
}

// Mode reports which query sources populated the graph.
func (g QueryGraph) Mode() AnalysisMode {
	switch {
	case g.HasFanOut && g.TierGraph.Len() == 0:
		return ModeKeywordOnly
	case g.HasFanOut:
		return ModeHybrid
	default:
		return ModeContentOnly
	}
}

// Variants returns the fan-out variants in canonical type order.
func (g QueryGraph) Variants() []FanOutQuery {
	if !g.HasFanOut {
		return nil
	}
	var out []FanOutQuery
	for _, t := range AllVariantTypes() {
		out = append(out, g.FanOutVariants[t]...)
	}
	return out
}

// AllQueries returns the full ordered query list: tiers first, then
// fan-out variants in canonical type order.
func (g QueryGraph) AllQueries() []QueryItem {
	out := g.TierGraph.Queries()
	for _, v := range g.Variants() {
		out = append(out, v.QueryItem)
	}
	return out
}

package domain

import "strings"

// Importance ranks how much a query matters to the reader.
type Importance string

// Available importance levels.
const (
	ImportanceHigh   Importance = "high"
	ImportanceMedium Importance = "medium"
	ImportanceLow    Importance = "low"
)

// IsValid returns true if the importance level is recognised.
func (i Importance) IsValid() bool {
	switch i {
	case ImportanceHigh, ImportanceMedium, ImportanceLow:
		return true
	default:
		return false
	}
}

// QueryItem is a single candidate user query.
type QueryItem struct {
	// Text is the query as a user would type it.
	Text string `json:"query"`

	// Importance is the oracle's ranking of the query.
	Importance Importance `json:"importance"`

	// Rationale explains why the query matters.
	Rationale string `json:"rationale"`
}

// NormalizeQuery returns the form used to compare query texts for identity.
func NormalizeQuery(text string) string {
	return strings.ToLower(strings.TrimSpace(text))
}

// Tier identifies one of the three decomposition tiers.
type Tier string

// The decomposition tiers, in reading order.
const (
	TierPrerequisite Tier = "prerequisite"
	TierCore         Tier = "core"
	TierFollowup     Tier = "followup"
)

// TierGraph is the hierarchical output of content decomposition.
type TierGraph struct {
	// Prerequisite holds foundation queries a reader needs first.
	Prerequisite []QueryItem `json:"prerequisite"`

	// Core holds queries the content is primarily about.
	Core []QueryItem `json:"core"`

	// Followup holds advanced or edge-case queries.
	Followup []QueryItem `json:"followup"`
}

// Len returns the number of queries across all tiers.
func (g TierGraph) Len() int {
	return len(g.Prerequisite) + len(g.Core) + len(g.Followup)
}

// Queries returns all tier queries in tier order.
func (g TierGraph) Queries() []QueryItem {
	out := make([]QueryItem, 0, g.Len())
	out = append(out, g.Prerequisite...)
	out = append(out, g.Core...)
	out = append(out, g.Followup...)
	return out
}

// Tier returns the queries of the given tier.
func (g TierGraph) Tier(t Tier) []QueryItem {
	switch t {
	case TierPrerequisite:
		return g.Prerequisite
	case TierCore:
		return g.Core
	case TierFollowup:
		return g.Followup
	default:
		return nil
	}
}

// Depth controls how many queries decomposition asks for.
type Depth string

// Available analysis depths.
const (
	DepthQuick         Depth = "quick"
	DepthStandard      Depth = "standard"
	DepthComprehensive Depth = "comprehensive"
)

// IsValid returns true if the depth is recognised.
func (d Depth) IsValid() bool {
	switch d {
	case DepthQuick, DepthStandard, DepthComprehensive:
		return true
	default:
		return false
	}
}

// TotalQueries returns the total number of queries requested at this depth.
// Unknown depths fall back to the standard count.
func (d Depth) TotalQueries() int {
	switch d {
	case DepthQuick:
		return 5
	case DepthComprehensive:
		return 30
	default:
		return 15
	}
}

// TierTargets is the per-tier query count requested from decomposition.
type TierTargets struct {
	Prerequisite int
	Core         int
	Followup     int
}

// Sum returns the total of the tier targets.
func (t TierTargets) Sum() int {
	return t.Prerequisite + t.Core + t.Followup
}

// TierTargets splits the depth's total 20/50/30 with floor rounding.
// The rounding remainder is dropped, not redistributed.
func (d Depth) TierTargets() TierTargets {
	n := d.TotalQueries()
	return TierTargets{
		Prerequisite: n * 2 / 10,
		Core:         n * 5 / 10,
		Followup:     n * 3 / 10,
	}
}

package services

import "github.com/custodia-labs/fanout-cli/internal/core/domain"

// Assemble merges the tier graph and fan-out variants into one QueryGraph.
//
// A non-empty keyword marks fan-out as requested: the graph then carries
// HasFanOut, the keyword, and a distribution over every variant type, even
// when no variants survived filtering. Tier arrays are copied unchanged.
func Assemble(tiers domain.TierGraph, fanOut []domain.FanOutQuery, keyword string) domain.QueryGraph {
	graph := domain.QueryGraph{
		TierGraph: domain.TierGraph{
			Prerequisite: cloneItems(tiers.Prerequisite),
			Core:         cloneItems(tiers.Core),
			Followup:     cloneItems(tiers.Followup),
		},
	}
	if keyword == "" {
		return graph
	}

	grouped := make(map[domain.VariantType][]domain.FanOutQuery)
	distribution := make(map[domain.VariantType]int, len(domain.AllVariantTypes()))
	for _, t := range domain.AllVariantTypes() {
		distribution[t] = 0
	}
	for _, q := range fanOut {
		grouped[q.VariantType] = append(grouped[q.VariantType], q)
		distribution[q.VariantType]++
	}

	graph.HasFanOut = true
	graph.FanOutVariants = grouped
	graph.TargetKeyword = keyword
	graph.Metadata = &domain.GenerationMetadata{
		VariantDistribution: distribution,
		TotalVariants:       len(fanOut),
	}
	return graph
}

func cloneItems(items []domain.QueryItem) []domain.QueryItem {
	if items == nil {
		return nil
	}
	return append(make([]domain.QueryItem, 0, len(items)), items...)
}

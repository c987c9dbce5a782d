package services

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/fanout-cli/internal/core/domain"
)

func sampleTiers() domain.TierGraph {
	return domain.TierGraph{
		Prerequisite: []domain.QueryItem{{Text: "what is whey", Importance: domain.ImportanceHigh}},
		Core:         []domain.QueryItem{{Text: "best whey"}, {Text: "whey dosage"}},
		Followup:     []domain.QueryItem{},
	}
}

func sampleVariants() []domain.FanOutQuery {
	return []domain.FanOutQuery{
		{QueryItem: domain.QueryItem{Text: "top whey"}, VariantType: domain.VariantEquivalent},
		{QueryItem: domain.QueryItem{Text: "whey vs casein"}, VariantType: domain.VariantComparison},
		{QueryItem: domain.QueryItem{Text: "whey protein"}, VariantType: domain.VariantEquivalent},
	}
}

func TestAssemble_ContentOnly(t *testing.T) {
	graph := Assemble(sampleTiers(), nil, "")

	assert.False(t, graph.HasFanOut)
	assert.Nil(t, graph.FanOutVariants)
	assert.Nil(t, graph.Metadata)
	assert.Empty(t, graph.TargetKeyword)
	assert.Equal(t, domain.ModeContentOnly, graph.Mode())
	assert.Equal(t, sampleTiers(), graph.TierGraph)
}

func TestAssemble_IgnoresVariantsWithoutKeyword(t *testing.T) {
	graph := Assemble(sampleTiers(), sampleVariants(), "")

	assert.False(t, graph.HasFanOut)
	assert.Len(t, graph.AllQueries(), 3)
}

func TestAssemble_Hybrid(t *testing.T) {
	graph := Assemble(sampleTiers(), sampleVariants(), "whey")

	require.True(t, graph.HasFanOut)
	assert.Equal(t, domain.ModeHybrid, graph.Mode())
	assert.Equal(t, "whey", graph.TargetKeyword)
	assert.Len(t, graph.FanOutVariants[domain.VariantEquivalent], 2)
	assert.Len(t, graph.FanOutVariants[domain.VariantComparison], 1)

	require.NotNil(t, graph.Metadata)
	assert.Equal(t, 3, graph.Metadata.TotalVariants)
	assert.Len(t, graph.Metadata.VariantDistribution, len(domain.AllVariantTypes()))
	assert.Equal(t, 2, graph.Metadata.VariantDistribution[domain.VariantEquivalent])
	assert.Equal(t, 0, graph.Metadata.VariantDistribution[domain.VariantTemporal])

	var all []string
	for _, q := range graph.AllQueries() {
		all = append(all, q.Text)
	}
	assert.Equal(t, []string{"what is whey", "best whey", "whey dosage", "top whey", "whey protein", "whey vs casein"}, all)
}

func TestAssemble_KeywordOnlyWithNoSurvivors(t *testing.T) {
	graph := Assemble(domain.TierGraph{}, nil, "whey")

	assert.True(t, graph.HasFanOut)
	assert.Equal(t, domain.ModeKeywordOnly, graph.Mode())
	assert.Equal(t, 0, graph.Metadata.TotalVariants)
	assert.Empty(t, graph.AllQueries())
}

func TestAssemble_CopiesTierSlices(t *testing.T) {
	tiers := sampleTiers()
	graph := Assemble(tiers, nil, "")

	tiers.Core[0].Text = "mutated"

	assert.Equal(t, "best whey", graph.Core[0].Text)
}

func TestAssemble_KeepsEmptyTiersEmpty(t *testing.T) {
	tiers, err := parseTierGraph(json.RawMessage(`{"prerequisite":[{"query":"what is whey"}],"core":[],"followup":[]}`))
	require.NoError(t, err)

	graph := Assemble(tiers, nil, "")

	require.NotNil(t, graph.Core)
	require.NotNil(t, graph.Followup)
	data, err := json.Marshal(graph.TierGraph)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"core":[]`)
	assert.Contains(t, string(data), `"followup":[]`)
	assert.NotContains(t, string(data), "null")
}

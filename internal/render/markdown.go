// Package render turns analysis reports into markdown for terminals and
// MCP clients.
package render

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/custodia-labs/fanout-cli/internal/core/domain"
)

// ArtifactInstruction prefixes reports returned to MCP clients so the
// assistant renders them as an interactive artifact.
const ArtifactInstruction = `[INSTRUCTION TO CLAUDE: Please create an interactive HTML artifact to visualize this content gap analysis. The artifact should include:
- A header with the URL, title, and coverage score
- Color-coded sections for prerequisite/core/follow-up queries
- Expandable query cards showing coverage status, evidence, and recommendations
- A summary section with prioritized action items
- Make it visually appealing with good UX]

---

`

// tierSections lists the tier headings in reading order.
var tierSections = []struct {
	tier  domain.Tier
	title string
}{
	{domain.TierPrerequisite, "PRE-REQUISITE QUERIES (Foundation)"},
	{domain.TierCore, "CORE QUERIES (Main Content)"},
	{domain.TierFollowup, "FOLLOW-UP QUERIES (Advanced)"},
}

var variantTitles = map[domain.VariantType]string{
	domain.VariantEquivalent:     "EQUIVALENT",
	domain.VariantSpecification:  "SPECIFICATION",
	domain.VariantGeneralization: "GENERALIZATION",
	domain.VariantFollowUp:       "FOLLOW-UP",
	domain.VariantComparison:     "COMPARISON",
	domain.VariantClarification:  "CLARIFICATION",
	domain.VariantRelatedAspects: "RELATED ASPECTS",
	domain.VariantTemporal:       "TEMPORAL",
}

// ForMCP renders the report behind the artifact instruction block.
func ForMCP(report *domain.AnalysisReport) string {
	return ArtifactInstruction + Markdown(report)
}

// Markdown renders the full report.
func Markdown(report *domain.AnalysisReport) string {
	var b strings.Builder

	b.WriteString("## Query Coverage Analysis\n\n")
	fmt.Fprintf(&b, "**URL:** %s\n", report.Content.URL)
	fmt.Fprintf(&b, "**Title:** %s\n", report.Content.Title)
	fmt.Fprintf(&b, "**Coverage Score:** %d/100\n", report.CoverageScore)
	fmt.Fprintf(&b, "**Analysis Date:** %s\n", report.AnalysisDate())
	fmt.Fprintf(&b, "**Mode:** %s\n", report.Graph.Mode().Description())
	if report.Graph.HasFanOut {
		fmt.Fprintf(&b, "**Target Keyword:** %s\n", report.Graph.TargetKeyword)
	}
	b.WriteString("\n")

	if report.Graph.TierGraph.Len() > 0 {
		b.WriteString("### Query Graph Breakdown\n\n")
		for _, s := range tierSections {
			writeQuerySection(&b, s.title, report.Graph.Tier(s.tier), report)
		}
	}

	if report.Graph.HasFanOut {
		writeFanOut(&b, report)
	}

	if len(report.Unmatched) > 0 {
		b.WriteString("### Unassessed Queries\n\n")
		b.WriteString("No verdict was returned with the exact text of these queries:\n\n")
		for _, q := range report.Unmatched {
			fmt.Fprintf(&b, "- %q\n", q)
		}
		b.WriteString("\n")
	}

	writeRecommendations(&b, report.Recommendations)
	writeBreakdown(&b, report.Statistics)
	writeTechnical(&b, report.Technical)

	return strings.TrimRight(b.String(), "\n") + "\n"
}

func writeQuerySection(b *strings.Builder, title string, queries []domain.QueryItem, report *domain.AnalysisReport) {
	fmt.Fprintf(b, "#### %s\n\n", title)
	for _, q := range queries {
		if v, ok := report.VerdictFor(q.Text); ok {
			writeVerdict(b, q.Text, v)
		}
	}
}

func writeFanOut(b *strings.Builder, report *domain.AnalysisReport) {
	fmt.Fprintf(b, "### Keyword Fan-Out Variants (%q)\n\n", report.Graph.TargetKeyword)

	total := 0
	if report.Graph.Metadata != nil {
		total = report.Graph.Metadata.TotalVariants
	}
	if total == 0 {
		b.WriteString("No variants passed the realism filter.\n\n")
		return
	}

	for _, t := range domain.AllVariantTypes() {
		variants := report.Graph.FanOutVariants[t]
		if len(variants) == 0 {
			continue
		}
		fmt.Fprintf(b, "#### %s VARIANTS (%d)\n\n", variantTitles[t], len(variants))
		for _, q := range variants {
			if v, ok := report.VerdictFor(q.Text); ok {
				writeVerdict(b, q.Text, v)
			}
		}
	}
}

func writeVerdict(b *strings.Builder, query string, v domain.CoverageVerdict) {
	fmt.Fprintf(b, "%s %q - **%s** (%s%% confidence)\n",
		statusIcon(v.Status), query, v.Status.Label(), formatNumber(v.Confidence))

	if v.Evidence != nil && *v.Evidence != "" {
		fmt.Fprintf(b, "   Evidence: %q\n", *v.Evidence)
		if v.EvidenceLocation != nil && *v.EvidenceLocation != "" {
			fmt.Fprintf(b, "   Location: %s\n", *v.EvidenceLocation)
		}
	}
	if v.GapDescription != nil && *v.GapDescription != "" {
		fmt.Fprintf(b, "   Gap: %s\n", *v.GapDescription)
	}
	if v.Recommendation != "" {
		fmt.Fprintf(b, "   Recommendation: %s\n", v.Recommendation)
	}
	b.WriteString("\n")
}

func writeRecommendations(b *strings.Builder, recs domain.Recommendations) {
	b.WriteString("### Summary Recommendations\n\n")

	groups := []struct {
		heading string
		items   []string
	}{
		{"**Immediate Actions** (Priority: HIGH)", recs.High},
		{"**Future Enhancements** (Priority: MEDIUM)", recs.Medium},
	}

	wrote := false
	for _, g := range groups {
		items := nonEmpty(g.items)
		if len(items) == 0 {
			continue
		}
		b.WriteString(g.heading + "\n")
		for i, item := range items {
			fmt.Fprintf(b, "%d. %s\n", i+1, item)
		}
		b.WriteString("\n")
		wrote = true
	}
	if !wrote {
		b.WriteString("No gaps or partial coverage found.\n\n")
	}
}

func writeBreakdown(b *strings.Builder, s domain.Statistics) {
	b.WriteString("---\n\n")
	b.WriteString("**Coverage Breakdown:**\n")
	fmt.Fprintf(b, "- Total Queries: %d\n", s.TotalQueries)
	fmt.Fprintf(b, "- Fully Covered: %d (%d%%)\n", s.Covered, s.Percent(s.Covered))
	fmt.Fprintf(b, "- Partially Covered: %d (%d%%)\n", s.Partial, s.Percent(s.Partial))
	fmt.Fprintf(b, "- Gaps Identified: %d (%d%%)\n\n", s.Gaps, s.Percent(s.Gaps))
}

// technicalView is the JSON shape of the technical metrics block.
type technicalView struct {
	Content    domain.ContentMetrics    `json:"contentMetrics"`
	Queries    domain.QueryMetrics      `json:"queryDecomposition"`
	Evaluation domain.EvaluationMetrics `json:"coverageEvaluation"`
	Processing processingView           `json:"processingMetrics"`
}

type processingView struct {
	Total       string `json:"totalProcessingTime"`
	Fetch       string `json:"contentFetchTime"`
	Decompose   string `json:"queryGenerationTime"`
	FanOut      string `json:"fanOutTime,omitempty"`
	Evaluate    string `json:"assessmentTime"`
	OracleCalls int    `json:"apiCalls"`
}

func writeTechnical(b *strings.Builder, t domain.TechnicalMetrics) {
	view := technicalView{
		Content:    t.Content,
		Queries:    t.Queries,
		Evaluation: t.Evaluation,
		Processing: processingView{
			Total:       seconds(t.Processing.Total),
			Fetch:       seconds(t.Processing.Fetch),
			Decompose:   seconds(t.Processing.Decompose),
			Evaluate:    seconds(t.Processing.Evaluate),
			OracleCalls: t.Processing.OracleCalls,
		},
	}
	if t.Processing.FanOut > 0 {
		view.Processing.FanOut = seconds(t.Processing.FanOut)
	}

	data, err := json.MarshalIndent(view, "", "  ")
	if err != nil {
		return
	}
	b.WriteString("### Technical Metrics\n\n```json\n")
	b.Write(data)
	b.WriteString("\n```\n")
}

func statusIcon(s domain.CoverageStatus) string {
	switch s {
	case domain.StatusCovered:
		return "✅"
	case domain.StatusPartial:
		return "⚠️"
	default:
		return "❌"
	}
}

func seconds(d time.Duration) string {
	return fmt.Sprintf("%.1fs", d.Seconds())
}

// formatNumber drops the fraction of whole numbers.
func formatNumber(f float64) string {
	if f == float64(int64(f)) {
		return fmt.Sprintf("%d", int64(f))
	}
	return fmt.Sprintf("%.1f", f)
}

func nonEmpty(items []string) []string {
	out := make([]string, 0, len(items))
	for _, s := range items {
		if strings.TrimSpace(s) != "" {
			out = append(out, s)
		}
	}
	return out
}

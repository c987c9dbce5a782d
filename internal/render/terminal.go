package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/fanout-cli/internal/core/domain"
)

// Palette colours for the terminal summary.
const (
	colorSuccess = lipgloss.Color("#A6E3A1")
	colorWarning = lipgloss.Color("#F9E2AF")
	colorError   = lipgloss.Color("#F38BA8")
	colorMuted   = lipgloss.Color("#6C7086")
)

// Summary writes a one-line coverage summary to w, styled for w's
// colour profile. Writers that are not terminals get plain text.
func Summary(w io.Writer, report *domain.AnalysisReport) error {
	r := lipgloss.NewRenderer(w)

	title := r.NewStyle().Bold(true).Foreground(scoreColor(report.CoverageScore))
	muted := r.NewStyle().Foreground(colorMuted)
	stats := report.Statistics

	parts := []string{
		title.Render(fmt.Sprintf("Coverage %d/100", report.CoverageScore)),
		r.NewStyle().Foreground(colorSuccess).Render(fmt.Sprintf("%d covered", stats.Covered)),
		r.NewStyle().Foreground(colorWarning).Render(fmt.Sprintf("%d partial", stats.Partial)),
		r.NewStyle().Foreground(colorError).Render(fmt.Sprintf("%d gaps", stats.Gaps)),
	}
	if n := len(report.Unmatched); n > 0 {
		parts = append(parts, muted.Render(fmt.Sprintf("%d unassessed", n)))
	}

	_, err := fmt.Fprintln(w, strings.Join(parts, muted.Render(" | ")))
	return err
}

// scoreColor returns the palette colour for a coverage score band.
func scoreColor(score int) lipgloss.Color {
	switch {
	case score >= 80:
		return colorSuccess
	case score >= 50:
		return colorWarning
	default:
		return colorError
	}
}

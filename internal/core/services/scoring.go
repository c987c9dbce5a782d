package services

import (
	"math"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/custodia-labs/fanout-cli/internal/core/domain"
)

// Score computes the coverage score, status counts and recommendations.
// It is pure: the same verdicts always give the same summary.
//
// The score is the mean of 100 per covered, 50 per partial and 0 per gap,
// rounded half up; an empty list scores 0.
func Score(verdicts []domain.CoverageVerdict) domain.CoverageSummary {
	summary := domain.CoverageSummary{
		Statistics: domain.Statistics{TotalQueries: len(verdicts)},
		Recommendations: domain.Recommendations{
			High:   []string{},
			Medium: []string{},
		},
	}

	points := 0
	for _, v := range verdicts {
		points += v.Status.Points()
		switch v.Status {
		case domain.StatusCovered:
			summary.Statistics.Covered++
		case domain.StatusPartial:
			summary.Statistics.Partial++
			summary.Recommendations.Medium = append(summary.Recommendations.Medium, v.Recommendation)
		case domain.StatusGap:
			summary.Statistics.Gaps++
			summary.Recommendations.High = append(summary.Recommendations.High, v.Recommendation)
		}
	}

	if n := len(verdicts); n > 0 {
		summary.CoverageScore = (2*points + n) / (2 * n)
	}
	return summary
}

// Heuristic metrics. These approximate readability and density for display
// only; they never affect the coverage score.

var (
	sentenceBreak = regexp.MustCompile(`[.!?]+`)
	technicalTerm = regexp.MustCompile(`\b[A-Z][a-z]*(?:[A-Z][a-z]*)+\b`)
)

// tierTargetRanges are the displayed target shares per tier.
var tierTargetRanges = map[domain.Tier]string{
	domain.TierPrerequisite: "15-25%",
	domain.TierCore:         "45-55%",
	domain.TierFollowup:     "25-35%",
}

// ContentMetricsFor describes text with a Flesch-style readability
// approximation, CamelCase term density and average lengths.
func ContentMetricsFor(text string) domain.ContentMetrics {
	words := strings.Fields(text)
	m := domain.ContentMetrics{
		TotalCharacters: utf8.RuneCountInString(text),
		TotalWords:      len(words),
	}
	if len(words) == 0 {
		return m
	}

	sentences := 0
	for _, s := range sentenceBreak.Split(text, -1) {
		if strings.TrimSpace(s) != "" {
			sentences++
		}
	}
	sentences = max(sentences, 1)

	letters := 0
	for _, r := range text {
		if !unicode.IsSpace(r) {
			letters++
		}
	}

	avgSentence := float64(len(words)) / float64(sentences)
	avgWord := float64(letters) / float64(len(words))
	readability := 206.835 - 1.015*avgSentence - 84.6*avgWord/5
	density := float64(len(technicalTerm.FindAllString(text, -1))) / float64(len(words))

	m.ReadabilityScore = int(math.Round(min(100, max(0, readability))))
	m.TechnicalDensity = roundTo(density, 2)
	m.AvgSentenceLength = roundTo(avgSentence, 1)
	m.AvgWordLength = roundTo(avgWord, 1)
	return m
}

// QueryMetricsFor describes the tier distribution of graph and how many of
// its query terms appear in the content.
func QueryMetricsFor(graph domain.QueryGraph, model, contentText string) domain.QueryMetrics {
	total := graph.TierGraph.Len()
	m := domain.QueryMetrics{
		ModelUsed:       model,
		Mode:            graph.Mode(),
		TotalQueries:    total,
		Distribution:    make(map[domain.Tier]domain.TierShare, 3),
		FanOutVariants:  len(graph.Variants()),
		DomainTermUsage: domainTermUsage(graph.AllQueries(), contentText),
	}
	for _, tier := range []domain.Tier{domain.TierPrerequisite, domain.TierCore, domain.TierFollowup} {
		count := len(graph.Tier(tier))
		share := domain.TierShare{Count: count, TargetRange: tierTargetRanges[tier]}
		if total > 0 {
			share.Percentage = int(math.Round(float64(count) * 100 / float64(total)))
		}
		m.Distribution[tier] = share
	}
	return m
}

// EvaluationMetricsFor summarises the verdict breakdown and evidence.
func EvaluationMetricsFor(verdicts []domain.CoverageVerdict) domain.EvaluationMetrics {
	var m domain.EvaluationMetrics
	n := len(verdicts)
	if n == 0 {
		return m
	}

	evidenceChars, withEvidence := 0, 0
	confidence := 0.0
	for _, v := range verdicts {
		switch v.Status {
		case domain.StatusCovered:
			m.FullyCovered.Count++
		case domain.StatusPartial:
			m.PartiallyCovered.Count++
		case domain.StatusGap:
			m.Gaps.Count++
		}
		if v.Evidence != nil && *v.Evidence != "" {
			evidenceChars += utf8.RuneCountInString(*v.Evidence)
			withEvidence++
		}
		confidence += v.Confidence
	}

	for _, share := range []*domain.StatusShare{&m.FullyCovered, &m.PartiallyCovered, &m.Gaps} {
		share.Percentage = roundTo(float64(share.Count)*100/float64(n), 1)
	}
	if withEvidence > 0 {
		m.AvgEvidenceLength = int(math.Round(float64(evidenceChars) / float64(withEvidence)))
	}
	m.AvgConfidenceScore = roundTo(confidence/float64(n), 1)
	return m
}

// domainTermUsage is the share of distinct query terms of four or more
// letters that occur in the content.
func domainTermUsage(queries []domain.QueryItem, contentText string) float64 {
	content := strings.ToLower(contentText)
	terms := make(map[string]struct{})
	for _, q := range queries {
		for _, w := range strings.FieldsFunc(strings.ToLower(q.Text), notWordRune) {
			if utf8.RuneCountInString(w) >= 4 {
				terms[w] = struct{}{}
			}
		}
	}
	if len(terms) == 0 {
		return 0
	}

	found := 0
	for term := range terms {
		if strings.Contains(content, term) {
			found++
		}
	}
	return roundTo(float64(found)/float64(len(terms)), 2)
}

func notWordRune(r rune) bool {
	return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '-'
}

func roundTo(v float64, places int) float64 {
	scale := math.Pow(10, float64(places))
	return math.Round(v*scale) / scale
}

package services

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/custodia-labs/fanout-cli/internal/core/domain"
)

// ExtractorConfig holds the reasoning markers stripped before extraction.
type ExtractorConfig struct {
	// ReasoningOpen starts a reasoning span, matched case-insensitively.
	ReasoningOpen string

	// ReasoningClose ends a reasoning span, matched case-insensitively.
	ReasoningClose string
}

// DefaultExtractorConfig strips <thinking>...</thinking> spans.
func DefaultExtractorConfig() ExtractorConfig {
	return ExtractorConfig{
		ReasoningOpen:  "<thinking>",
		ReasoningClose: "</thinking>",
	}
}

// Extractor turns raw oracle text into a JSON value.
// It is stateless after construction and safe for concurrent use.
type Extractor struct {
	reasoning *regexp.Regexp
}

// NewExtractor creates an extractor for the given markers.
func NewExtractor(cfg ExtractorConfig) *Extractor {
	pattern := `(?is)` + regexp.QuoteMeta(cfg.ReasoningOpen) + `.*?` + regexp.QuoteMeta(cfg.ReasoningClose)
	return &Extractor{reasoning: regexp.MustCompile(pattern)}
}

// Strip removes every reasoning span and surrounding whitespace.
func (e *Extractor) Strip(raw string) string {
	return strings.TrimSpace(e.reasoning.ReplaceAllString(raw, ""))
}

// Extract returns the first balanced JSON value starting with root ('[' or '{').
// Trailing commas before a closing bracket are removed before parsing.
//
// Failures are *domain.PipelineError of kind extraction, carrying the
// first domain.DiagnosticLimit characters of the stripped text.
func (e *Extractor) Extract(raw string, root byte) (json.RawMessage, error) {
	text := e.Strip(raw)

	if root != '[' && root != '{' {
		return nil, domain.NewPipelineError(domain.ErrorKindExtraction, "",
			fmt.Sprintf("unsupported root %q", root), "", nil)
	}

	candidate, ok := balancedSpan(text, root)
	if !ok {
		return nil, domain.NewPipelineError(domain.ErrorKindExtraction, "",
			"failed to extract JSON from response", text, nil)
	}

	repaired := removeTrailingCommas(candidate)

	var parsed any
	if err := json.Unmarshal([]byte(repaired), &parsed); err != nil {
		return nil, domain.NewPipelineError(domain.ErrorKindExtraction, "",
			"JSON parsing failed", text, err)
	}

	return json.RawMessage(repaired), nil
}

// balancedSpan returns the substring from the first root to the point where
// bracket depth returns to zero. Brackets inside string literals are ignored.
func balancedSpan(text string, root byte) (string, bool) {
	start := strings.IndexByte(text, root)
	if start < 0 {
		return "", false
	}

	depth := 0
	inString := false
	escaped := false

	for i := start; i < len(text); i++ {
		c := text[i]

		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}

		switch c {
		case '"':
			inString = true
		case '[', '{':
			depth++
		case ']', '}':
			depth--
			if depth == 0 {
				return text[start : i+1], true
			}
		}
	}

	return "", false
}

// removeTrailingCommas drops commas that are followed only by whitespace and
// a closing bracket or brace. Commas inside strings are kept.
func removeTrailingCommas(s string) string {
	var b strings.Builder
	b.Grow(len(s))

	inString := false
	escaped := false

	for i := 0; i < len(s); i++ {
		c := s[i]

		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			b.WriteByte(c)
			continue
		}

		if c == '"' {
			inString = true
		}

		if c == ',' && closesNext(s[i+1:]) {
			continue
		}
		b.WriteByte(c)
	}

	return b.String()
}

// closesNext reports whether the next non-whitespace byte closes a container.
func closesNext(rest string) bool {
	trimmed := strings.TrimLeft(rest, " \t\r\n")
	return trimmed != "" && (trimmed[0] == ']' || trimmed[0] == '}')
}

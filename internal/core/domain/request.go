package domain

import (
	"fmt"
	"net/url"
	"strings"
)

// AnalysisRequest holds the arguments of one analysis invocation.
type AnalysisRequest struct {
	// URL is the page to analyse (required).
	URL string

	// Depth selects the number of decomposition queries (default: standard).
	Depth Depth

	// FocusArea constrains decomposition to a topic.
	FocusArea string

	// TargetKeyword enables keyword fan-out when non-empty.
	TargetKeyword string

	// FanOutTypes selects the variant types to generate (default: DefaultVariantTypes).
	FanOutTypes []VariantType

	// FanOutOnly skips decomposition entirely.
	FanOutOnly bool

	// Context is passed through to fan-out generation only.
	Context *AnalysisContext
}

// WantsFanOut returns true if keyword fan-out was requested.
func (r AnalysisRequest) WantsFanOut() bool {
	return strings.TrimSpace(r.TargetKeyword) != ""
}

// WithDefaults returns a copy with default depth and variant types filled in.
func (r AnalysisRequest) WithDefaults() AnalysisRequest {
	if r.Depth == "" {
		r.Depth = DepthStandard
	}
	if len(r.FanOutTypes) == 0 {
		r.FanOutTypes = DefaultVariantTypes()
	}
	r.TargetKeyword = strings.TrimSpace(r.TargetKeyword)
	return r
}

// Validate checks the request arguments.
// All failures wrap ErrInvalidInput.
func (r AnalysisRequest) Validate() error {
	u, err := url.Parse(r.URL)
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return fmt.Errorf("%w: must be a valid URL: %q", ErrInvalidInput, r.URL)
	}
	if r.Depth != "" && !r.Depth.IsValid() {
		return fmt.Errorf("%w: unknown depth %q (valid: quick, standard, comprehensive)", ErrInvalidInput, r.Depth)
	}
	for _, t := range r.FanOutTypes {
		if !t.IsValid() {
			return fmt.Errorf("%w: unknown fan-out type %q", ErrInvalidInput, t)
		}
	}
	if r.FanOutOnly && !r.WantsFanOut() {
		return fmt.Errorf("%w: fan_out_only requires target_keyword", ErrInvalidInput)
	}
	if c := r.Context; c != nil {
		if c.Intent != "" && !c.Intent.IsValid() {
			return fmt.Errorf("%w: unknown intent %q", ErrInvalidInput, c.Intent)
		}
		if c.SpecificityPreference != "" && !c.SpecificityPreference.IsValid() {
			return fmt.Errorf("%w: unknown specificity preference %q", ErrInvalidInput, c.SpecificityPreference)
		}
	}
	return nil
}

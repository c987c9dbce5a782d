package domain

import (
	"errors"
	"fmt"
)

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnsupportedType indicates an unknown provider type.
	ErrUnsupportedType = errors.New("unsupported type")

	// ErrLLMUnavailable indicates the LLM service is not configured.
	// Analysis cannot run without an oracle.
	ErrLLMUnavailable = errors.New("LLM service unavailable")

	// ErrRateLimited indicates the API rate limit was exceeded.
	ErrRateLimited = errors.New("rate limited")

	// Content Retrieval Errors.

	// ErrFetchFailed indicates the content could not be retrieved.
	ErrFetchFailed = errors.New("failed to fetch content")

	// ErrContentTooShort indicates the page had too little text to analyse.
	ErrContentTooShort = errors.New("content too short")

	// ErrPaywalled indicates the page requires authentication or a subscription.
	ErrPaywalled = errors.New("content is paywalled or requires authentication")

	// Pipeline Errors. These match any PipelineError of the same kind via errors.Is.

	// ErrExtraction indicates no parseable structured value was found in oracle output.
	ErrExtraction = &PipelineError{Kind: ErrorKindExtraction}

	// ErrStructure indicates a parsed value lacks required fields.
	ErrStructure = &PipelineError{Kind: ErrorKindStructure}

	// ErrOracle indicates the oracle call failed or returned unusable content.
	ErrOracle = &PipelineError{Kind: ErrorKindOracle}
)

// ErrorKind enumerates the fatal pipeline failure kinds.
type ErrorKind string

// Available pipeline error kinds.
const (
	ErrorKindExtraction ErrorKind = "extraction"
	ErrorKindStructure  ErrorKind = "structure"
	ErrorKindOracle     ErrorKind = "oracle"
)

// DiagnosticLimit is the maximum number of characters of raw oracle text
// carried by a PipelineError.
const DiagnosticLimit = 500

// PipelineError is a fatal failure of one pipeline stage.
//
// Use errors.As to obtain the Kind, or errors.Is against ErrExtraction,
// ErrStructure or ErrOracle to test for one kind.
type PipelineError struct {
	// Kind classifies the failure.
	Kind ErrorKind

	// Stage names the pipeline stage, e.g. "decomposition" or "coverage batch 2/3".
	Stage string

	// Msg describes what went wrong.
	Msg string

	// Diagnostic holds the leading raw oracle text, truncated to DiagnosticLimit.
	Diagnostic string

	// Err is the underlying cause, if any.
	Err error
}

// NewPipelineError creates a PipelineError, truncating the diagnostic text.
func NewPipelineError(kind ErrorKind, stage, msg, diagnostic string, err error) *PipelineError {
	return &PipelineError{
		Kind:       kind,
		Stage:      stage,
		Msg:        msg,
		Diagnostic: Truncate(diagnostic, DiagnosticLimit),
		Err:        err,
	}
}

// Error implements the error interface.
func (e *PipelineError) Error() string {
	msg := string(e.Kind) + " error"
	if e.Stage != "" {
		msg = e.Stage + ": " + msg
	}
	if e.Msg != "" {
		msg += ": " + e.Msg
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	if e.Diagnostic != "" {
		msg += fmt.Sprintf(". Response text: %s", e.Diagnostic)
	}
	return msg
}

// Unwrap returns the underlying cause.
func (e *PipelineError) Unwrap() error {
	return e.Err
}

// Is reports whether target is a PipelineError of the same kind.
func (e *PipelineError) Is(target error) bool {
	t, ok := target.(*PipelineError)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

// WithStage returns a copy of the error attributed to a stage.
// An existing stage is kept as a suffix.
func (e *PipelineError) WithStage(stage string) *PipelineError {
	c := *e
	if c.Stage == "" {
		c.Stage = stage
	} else {
		c.Stage = stage + " (" + c.Stage + ")"
	}
	return &c
}

// Truncate returns at most n runes of s.
func Truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}

package domain

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestErrors_Existence tests that all error variables exist and are not nil
func TestErrors_Existence(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{"ErrInvalidInput", ErrInvalidInput},
		{"ErrUnsupportedType", ErrUnsupportedType},
		{"ErrLLMUnavailable", ErrLLMUnavailable},
		{"ErrRateLimited", ErrRateLimited},
		{"ErrFetchFailed", ErrFetchFailed},
		{"ErrContentTooShort", ErrContentTooShort},
		{"ErrPaywalled", ErrPaywalled},
		{"ErrExtraction", ErrExtraction},
		{"ErrStructure", ErrStructure},
		{"ErrOracle", ErrOracle},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NotNil(t, tt.err)
			assert.NotEmpty(t, tt.err.Error())
		})
	}
}

func TestErrors_WrappedSentinels(t *testing.T) {
	wrapped := fmt.Errorf("fetch https://x: %w", ErrPaywalled)

	assert.True(t, errors.Is(wrapped, ErrPaywalled))
	assert.False(t, errors.Is(wrapped, ErrContentTooShort))
}

func TestPipelineError_IsMatchesKind(t *testing.T) {
	err := NewPipelineError(ErrorKindStructure, "query decomposition", "missing tier", "", nil)
	wrapped := fmt.Errorf("analyze: %w", err)

	assert.True(t, errors.Is(wrapped, ErrStructure))
	assert.False(t, errors.Is(wrapped, ErrExtraction))
	assert.False(t, errors.Is(wrapped, ErrOracle))

	var pe *PipelineError
	require.True(t, errors.As(wrapped, &pe))
	assert.Equal(t, ErrorKindStructure, pe.Kind)
}

func TestPipelineError_Error(t *testing.T) {
	tests := []struct {
		name string
		err  *PipelineError
		want string
	}{
		{
			name: "kind only",
			err:  &PipelineError{Kind: ErrorKindOracle},
			want: "oracle error",
		},
		{
			name: "full",
			err:  NewPipelineError(ErrorKindExtraction, "coverage batch 2/3", "JSON parsing failed", "[oops", errors.New("bad char")),
			want: "coverage batch 2/3: extraction error: JSON parsing failed: bad char. Response text: [oops",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.Error())
		})
	}
}

func TestPipelineError_UnwrapsCause(t *testing.T) {
	cause := errors.New("connection reset")
	err := NewPipelineError(ErrorKindOracle, "s", "oracle call failed", "", cause)

	assert.ErrorIs(t, err, cause)
	assert.ErrorIs(t, err, ErrOracle)
}

func TestPipelineError_DiagnosticTruncated(t *testing.T) {
	err := NewPipelineError(ErrorKindExtraction, "", "", strings.Repeat("é", 800), nil)

	assert.Equal(t, DiagnosticLimit, len([]rune(err.Diagnostic)))
}

func TestPipelineError_WithStage(t *testing.T) {
	base := NewPipelineError(ErrorKindExtraction, "", "m", "", nil)

	staged := base.WithStage("keyword fan-out")
	nested := staged.WithStage("analysis")

	assert.Empty(t, base.Stage)
	assert.Equal(t, "keyword fan-out", staged.Stage)
	assert.Equal(t, "analysis (keyword fan-out)", nested.Stage)
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "abc", Truncate("abc", 5))
	assert.Equal(t, "ab", Truncate("abc", 2))
	assert.Equal(t, "日本", Truncate("日本語", 2))
	assert.Equal(t, "", Truncate("abc", 0))
}

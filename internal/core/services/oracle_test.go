package services

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/fanout-cli/internal/core/domain"
	"github.com/custodia-labs/fanout-cli/internal/core/ports/driven"
)

func TestCountingOracle_CountsConcurrentCalls(t *testing.T) {
	replies := make([]string, 20)
	for i := range replies {
		replies[i] = "ok"
	}
	oracle := &countingOracle{LLMService: newScriptedLLM(replies...)}

	var wg sync.WaitGroup
	for range 20 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = oracle.Generate(context.Background(), "p", driven.GenerateOptions{})
		}()
	}
	wg.Wait()

	assert.Equal(t, 20, oracle.Calls())
	assert.Equal(t, "test-model", oracle.ModelName())
}

func TestOracleGenerate_WrapsFailures(t *testing.T) {
	cause := errors.New("dial tcp: refused")
	_, err := generate(context.Background(), newScriptedLLM().failOn(0, cause), "stage x", "p", driven.GenerateOptions{})

	var pe *domain.PipelineError
	require.True(t, errors.As(err, &pe))
	assert.Equal(t, domain.ErrorKindOracle, pe.Kind)
	assert.Equal(t, "stage x", pe.Stage)
	assert.ErrorIs(t, err, cause)
}

func TestStageError(t *testing.T) {
	plain := errors.New("plain")
	assert.Same(t, plain, stageError(plain, "s"))

	pe := domain.NewPipelineError(domain.ErrorKindExtraction, "", "m", "", nil)
	got := stageError(pe, "coverage batch 1/2")
	assert.Contains(t, got.Error(), "coverage batch 1/2: extraction error")
}

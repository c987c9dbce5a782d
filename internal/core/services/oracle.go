package services

import (
	"context"
	"sync/atomic"

	"github.com/custodia-labs/fanout-cli/internal/core/domain"
	"github.com/custodia-labs/fanout-cli/internal/core/ports/driven"
	"github.com/custodia-labs/fanout-cli/internal/logger"
)

// generate makes one oracle call, classifying any failure as an oracle error.
func generate(
	ctx context.Context,
	llm driven.LLMService,
	stage, prompt string,
	opts driven.GenerateOptions,
) (string, error) {
	logger.Debug("%s: calling %s (%d prompt chars)", stage, llm.ModelName(), len(prompt))

	text, err := llm.Generate(ctx, prompt, opts)
	if err != nil {
		return "", domain.NewPipelineError(domain.ErrorKindOracle, stage, "oracle call failed", "", err)
	}
	if text == "" {
		return "", domain.NewPipelineError(domain.ErrorKindOracle, stage, "oracle returned no text content", "", nil)
	}

	logger.Debug("%s: received %d chars", stage, len(text))
	return text, nil
}

// stageError attributes an extractor error to a pipeline stage.
func stageError(err error, stage string) error {
	if pe, ok := err.(*domain.PipelineError); ok {
		return pe.WithStage(stage)
	}
	return err
}

// countingOracle counts the calls made through it.
// One is created per analysis so counts never mix across invocations.
type countingOracle struct {
	driven.LLMService
	calls atomic.Int64
}

func (c *countingOracle) Generate(ctx context.Context, prompt string, opts driven.GenerateOptions) (string, error) {
	c.calls.Add(1)
	return c.LLMService.Generate(ctx, prompt, opts)
}

// Calls returns the number of Generate calls made.
func (c *countingOracle) Calls() int {
	return int(c.calls.Load())
}

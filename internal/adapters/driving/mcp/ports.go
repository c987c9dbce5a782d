package mcp

import (
	"github.com/custodia-labs/fanout-cli/internal/core/ports/driven"
	"github.com/custodia-labs/fanout-cli/internal/core/ports/driving"
)

// Ports aggregates the services required by the MCP server.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Analysis runs the coverage pipeline.
	Analysis driving.AnalysisService

	// Prompts serves the active prompt templates as resources.
	// When nil the embedded defaults are served.
	Prompts driven.PromptStore
}

// Validate ensures all required ports are set.
// Returns an error if any required port is nil.
func (p *Ports) Validate() error {
	if p.Analysis == nil {
		return ErrMissingAnalysisService
	}
	return nil
}

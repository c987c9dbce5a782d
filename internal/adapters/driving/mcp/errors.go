// Package mcp provides an MCP (Model Context Protocol) server adapter for fanout.
// It exposes content coverage analysis to AI assistants as the
// analyze_content_gap tool.
package mcp

import "errors"

// ErrMissingAnalysisService is returned when the analysis service is not provided.
var ErrMissingAnalysisService = errors.New("mcp: analysis service is required")

package mcp

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/fanout-cli/internal/core/domain"
	"github.com/custodia-labs/fanout-cli/internal/logger"
	"github.com/custodia-labs/fanout-cli/internal/render"
)

// toolName is the name clients call the analysis tool by.
const toolName = "analyze_content_gap"

const toolDescription = "Analyze how well a web page covers the queries users search for. " +
	"Decomposes the content into prerequisite, core and follow-up queries, optionally " +
	"expands a target keyword into fan-out variants, and reports which queries the page " +
	"covers, partially covers, or misses, with a 0-100 coverage score and recommendations."

// AnalyzeInput is the input schema for the analyze_content_gap tool.
type AnalyzeInput struct {
	URL           string        `json:"url" jsonschema:"the URL of the page to analyze"`
	Depth         string        `json:"depth,omitempty" jsonschema:"analysis depth: quick (5 queries), standard (15) or comprehensive (30); default standard"`
	FocusArea     string        `json:"focus_area,omitempty" jsonschema:"optional topic to focus the query decomposition on"`
	TargetKeyword string        `json:"target_keyword,omitempty" jsonschema:"optional seed keyword; enables keyword fan-out"`
	FanOutTypes   []string      `json:"fan_out_types,omitempty" jsonschema:"variant types to generate: equivalent, specification, generalization, followUp, comparison, clarification, relatedAspects, temporal"`
	FanOutOnly    bool          `json:"fan_out_only,omitempty" jsonschema:"skip content decomposition and evaluate fan-out variants only (requires target_keyword)"`
	Context       *ContextInput `json:"context,omitempty" jsonschema:"optional hints passed to keyword fan-out"`
}

// ContextInput carries the optional fan-out context hints.
type ContextInput struct {
	Temporal              *TemporalInput `json:"temporal,omitempty" jsonschema:"time hints for temporal variants"`
	Intent                string         `json:"intent,omitempty" jsonschema:"user intent: shopping, research, navigation or entertainment"`
	SpecificityPreference string         `json:"specificity_preference,omitempty" jsonschema:"query specificity: broad, specific or balanced"`
}

// TemporalInput carries date hints.
type TemporalInput struct {
	CurrentDate string `json:"currentDate,omitempty" jsonschema:"current date as YYYY-MM-DD"`
	Season      string `json:"season,omitempty" jsonschema:"winter, spring, summer or fall"`
}

// Request converts the tool input to an analysis request.
func (in AnalyzeInput) Request() domain.AnalysisRequest {
	req := domain.AnalysisRequest{
		URL:           in.URL,
		Depth:         domain.Depth(in.Depth),
		FocusArea:     in.FocusArea,
		TargetKeyword: in.TargetKeyword,
		FanOutOnly:    in.FanOutOnly,
	}
	for _, t := range in.FanOutTypes {
		req.FanOutTypes = append(req.FanOutTypes, domain.VariantType(t))
	}
	if c := in.Context; c != nil {
		req.Context = &domain.AnalysisContext{
			Intent:                domain.Intent(c.Intent),
			SpecificityPreference: domain.Specificity(c.SpecificityPreference),
		}
		if c.Temporal != nil {
			req.Context.Temporal = &domain.TemporalContext{
				CurrentDate: c.Temporal.CurrentDate,
				Season:      c.Temporal.Season,
			}
		}
	}
	return req
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        toolName,
		Description: toolDescription,
	}, s.handleAnalyze)
}

// handleAnalyze runs one analysis and returns the rendered report.
// Failures are reported as a single error-flagged text result.
func (s *Server) handleAnalyze(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input AnalyzeInput,
) (*mcp.CallToolResult, any, error) {
	report, err := s.ports.Analysis.Analyze(ctx, input.Request())
	if err != nil {
		logger.Error("%s: %v", toolName, err)
		return errorResult("Content gap analysis failed: " + err.Error()), nil, nil
	}

	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: render.ForMCP(report)}},
	}, nil, nil
}

func errorResult(msg string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: msg}},
		IsError: true,
	}
}

package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/fanout-cli/internal/prompts"
)

const (
	// uriScheme is the custom URI scheme for fanout resources.
	uriScheme = "fanout://"

	promptsURI = uriScheme + "prompts"
)

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	s.server.AddResource(&mcp.Resource{
		URI:         promptsURI,
		Name:        "prompts",
		Description: "Names of the prompt templates used by the analysis",
		MIMEType:    "application/json",
	}, s.handlePromptsResource)

	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: promptsURI + "/{name}",
		Name:        "prompt-template",
		Description: "The active text/template source of a prompt",
		MIMEType:    "text/plain",
	}, s.handlePromptResource)
}

// promptInfo describes one prompt template.
type promptInfo struct {
	Name string `json:"name"`
	URI  string `json:"uri"`
}

// handlePromptsResource lists the known prompt templates.
func (s *Server) handlePromptsResource(
	_ context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	names := prompts.Names()
	infos := make([]promptInfo, len(names))
	for i, name := range names {
		infos[i] = promptInfo{Name: name, URI: promptsURI + "/" + name}
	}

	data, err := json.MarshalIndent(infos, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling prompts: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

// handlePromptResource returns the template the analysis currently uses,
// which is the user's edited copy when one exists.
func (s *Server) handlePromptResource(
	_ context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	name := extractPromptName(req.Params.URI)
	if name == "" {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	text, ok := s.loadPrompt(name)
	if !ok {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      req.Params.URI,
			MIMEType: "text/plain",
			Text:     text,
		}},
	}, nil
}

func (s *Server) loadPrompt(name string) (string, bool) {
	if _, known := prompts.Default(name); !known {
		return "", false
	}
	if s.ports.Prompts != nil {
		if text, err := s.ports.Prompts.Load(name); err == nil && text != "" {
			return text, true
		}
	}
	return prompts.Default(name)
}

// extractPromptName extracts the name from a URI like fanout://prompts/{name}.
func extractPromptName(uri string) string {
	const prefix = promptsURI + "/"

	if !strings.HasPrefix(uri, prefix) {
		return ""
	}

	name := strings.TrimPrefix(uri, prefix)
	if strings.Contains(name, "/") {
		return ""
	}
	return name
}

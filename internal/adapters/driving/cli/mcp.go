package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/custodia-labs/fanout-cli/internal/adapters/driving/mcp"
	"github.com/custodia-labs/fanout-cli/internal/logger"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "MCP server commands",
	Long:  `Commands for the Model Context Protocol (MCP) server integration.`,
}

var mcpServeCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the MCP server",
	Long: `Start the Model Context Protocol server exposing the analyze_content_gap tool.

By default, the server communicates over stdio using JSON-RPC and can be
used with Claude Desktop and other MCP-compatible AI assistants.

Use --port to start an HTTP server instead, which enables:
  - Testing with MCP Inspector web UI
  - Remote access via HTTP

Prompt templates in the config directory are reloaded when edited.

Examples:
  # Stdio mode (default, for Claude Desktop)
  fanout mcp serve

  # HTTP mode (for MCP Inspector, remote access)
  fanout mcp serve --port 8080

Claude Desktop configuration (claude_desktop_config.json):
  {
    "mcpServers": {
      "fanout": {
        "command": "/path/to/fanout",
        "args": ["mcp", "serve"]
      }
    }
  }`,
	RunE: runMCPServe,
}

func init() {
	mcpServeCmd.Flags().IntP("port", "p", 0, "HTTP port (0 = use stdio)")
	mcpCmd.AddCommand(mcpServeCmd)
	rootCmd.AddCommand(mcpCmd)
}

func runMCPServe(cmd *cobra.Command, _ []string) error {
	port, err := cmd.Flags().GetInt("port")
	if err != nil {
		return fmt.Errorf("getting port flag: %w", err)
	}

	if analysisService == nil {
		return errors.New("analysis service not configured")
	}

	// Serve anyway: each tool call reports the configuration problem itself.
	if settingsService != nil {
		if err := settingsService.Validate(); err != nil {
			logger.Warn("%v", err)
		} else if err := settingsService.ValidateLLMConfig(); err != nil {
			logger.Warn("LLM provider unreachable: %v", err)
		}
	}

	server, err := mcp.NewServer(&mcp.Ports{
		Analysis: analysisService,
		Prompts:  promptStore,
	})
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	g, ctx := errgroup.WithContext(ctx)
	if watchPrompts != nil {
		g.Go(func() error {
			if err := watchPrompts(ctx); err != nil {
				logger.Warn("prompt reload disabled: %v", err)
			}
			return nil
		})
	}

	g.Go(func() error {
		// The watcher runs for as long as the server does.
		defer cancel()
		if port > 0 {
			addr := fmt.Sprintf(":%d", port)
			fmt.Fprintf(cmd.OutOrStdout(), "MCP server listening on http://localhost%s\n", addr)
			return server.RunHTTP(ctx, addr)
		}
		return server.Run(ctx)
	})

	return g.Wait()
}

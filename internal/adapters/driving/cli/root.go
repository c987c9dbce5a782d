// Package cli provides the fanout command-line interface.
package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/fanout-cli/internal/core/ports/driven"
	"github.com/custodia-labs/fanout-cli/internal/core/ports/driving"
	"github.com/custodia-labs/fanout-cli/internal/logger"
)

// version is set at build time.
var version = "dev"

var (
	verbose   bool
	configDir string
)

// Services holds everything the commands need.
type Services struct {
	Analysis driving.AnalysisService
	Settings driving.SettingsService
	Prompts  driven.PromptStore

	// WatchPrompts reloads Prompts on template edits until ctx is done.
	// It is optional.
	WatchPrompts func(ctx context.Context) error
}

// Bootstrap builds the services for a config directory.
// An empty directory selects the default (~/.fanout).
type Bootstrap func(configDir string) (*Services, error)

var (
	analysisService driving.AnalysisService
	settingsService driving.SettingsService
	promptStore     driven.PromptStore
	watchPrompts    func(ctx context.Context) error
	bootstrap       Bootstrap
)

var rootCmd = &cobra.Command{
	Use:   "fanout",
	Short: "Content coverage analysis for search queries",
	Long: `fanout finds the questions a page fails to answer.

It decomposes a page into the prerequisite, core and follow-up queries a
reader would search for, optionally expands a target keyword into fan-out
variants, and asks an LLM which of those queries the content covers.
The result is a 0-100 coverage score with prioritised recommendations.

Run it directly with 'fanout analyze <url>' or expose it to AI assistants
with 'fanout mcp serve'.`,
	SilenceUsage:      true,
	PersistentPreRunE: initServices,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log pipeline progress to stderr")
	rootCmd.PersistentFlags().StringVar(&configDir, "config-dir", "", "configuration directory (default ~/.fanout)")
}

// SetServices injects the services used by commands.
func SetServices(s *Services) {
	if s == nil {
		s = &Services{}
	}
	analysisService = s.Analysis
	settingsService = s.Settings
	promptStore = s.Prompts
	watchPrompts = s.WatchPrompts
}

// SetBootstrap registers the function that builds services once flags are parsed.
func SetBootstrap(b Bootstrap) {
	bootstrap = b
}

// SetVersion sets the version reported by 'fanout version'.
func SetVersion(v string) {
	if v != "" {
		version = v
	}
}

// Execute runs the root command until it completes or the process is interrupted.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return rootCmd.ExecuteContext(ctx)
}

// initServices applies global flags and builds services on first use.
func initServices(_ *cobra.Command, _ []string) error {
	logger.SetVerbose(verbose)

	if bootstrap == nil || analysisService != nil || settingsService != nil {
		return nil
	}

	svc, err := bootstrap(configDir)
	if err != nil {
		return fmt.Errorf("initialising services: %w", err)
	}
	SetServices(svc)
	return nil
}

// Command fanout analyses how well web content covers the queries users search for.
package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/custodia-labs/fanout-cli/internal/adapters/driven/ai"
	"github.com/custodia-labs/fanout-cli/internal/adapters/driven/config/file"
	"github.com/custodia-labs/fanout-cli/internal/adapters/driven/fetcher/web"
	"github.com/custodia-labs/fanout-cli/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/fanout-cli/internal/adapters/driving/cli"
	"github.com/custodia-labs/fanout-cli/internal/core/domain"
	"github.com/custodia-labs/fanout-cli/internal/core/ports/driven"
	"github.com/custodia-labs/fanout-cli/internal/core/services"
	"github.com/custodia-labs/fanout-cli/internal/logger"
)

// version is set with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	cli.SetVersion(version)
	cli.SetBootstrap(bootstrap)
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}

// bootstrap wires the driven adapters into the core services.
func bootstrap(configDir string) (*cli.Services, error) {
	if configDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("get home directory: %w", err)
		}
		configDir = filepath.Join(home, ".fanout")
	}

	var store driven.ConfigStore
	fileStore, err := file.NewConfigStore(configDir)
	if err != nil {
		logger.Warn("Config file unavailable, settings will not persist: %v", err)
		store = memory.NewConfigStore()
	} else {
		store = fileStore
	}

	settingsService := services.NewSettingsService(store, ai.NewConfigValidator())
	settings, err := settingsService.Get()
	if err != nil {
		return nil, fmt.Errorf("load settings: %w", err)
	}

	promptDir := filepath.Join(configDir, "prompts")
	promptStore, err := file.NewPromptStore(promptDir)
	if err != nil {
		return nil, err
	}

	fetcher, err := web.NewFetcher(web.Config{
		UserAgent:       settings.Fetch.UserAgent,
		Timeout:         settings.Fetch.Timeout,
		MinContentChars: settings.Fetch.MinContentChars,
	})
	if err != nil {
		return nil, fmt.Errorf("create fetcher: %w", err)
	}

	analysis := services.NewAnalysisService(fetcher, newOracle(settings))
	analysis.SetPromptStore(promptStore)
	evalCfg := services.DefaultEvaluatorConfig()
	if settings.LLM.MaxTokens > 0 {
		evalCfg.MaxTokens = settings.LLM.MaxTokens
	}
	analysis.SetEvaluatorConfig(evalCfg)

	return &cli.Services{
		Analysis: analysis,
		Settings: settingsService,
		Prompts:  promptStore,
		WatchPrompts: func(ctx context.Context) error {
			// Loading seeds the directory so it can be watched.
			if _, err := promptStore.Load(driven.PromptDecomposition); err != nil {
				return err
			}
			w, err := file.NewPromptWatcher(promptStore, promptStore.Dir())
			if err != nil {
				return err
			}
			return w.Run(ctx)
		},
	}, nil
}

// newOracle returns nil when the provider is not configured; the analysis
// service then fails each run with domain.ErrLLMUnavailable.
func newOracle(settings *domain.AppSettings) driven.LLMService {
	if !settings.LLM.IsConfigured() {
		return nil
	}
	svc, err := ai.CreateLLMService(&settings.LLM)
	if err != nil {
		logger.Warn("LLM provider unavailable: %v", err)
		return nil
	}
	return svc
}

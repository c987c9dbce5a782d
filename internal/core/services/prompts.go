package services

import (
	"fmt"
	"strings"
	"text/template"

	"github.com/custodia-labs/fanout-cli/internal/core/ports/driven"
	"github.com/custodia-labs/fanout-cli/internal/logger"
	"github.com/custodia-labs/fanout-cli/internal/prompts"
)

// promptRenderer renders named templates, preferring a user PromptStore
// and falling back to the embedded defaults.
type promptRenderer struct {
	store driven.PromptStore
}

// render executes the named template with data.
// A user template that fails to parse or execute is replaced by the embedded one.
func (r *promptRenderer) render(name string, data any) (string, error) {
	if r.store != nil {
		if text, err := r.store.Load(name); err == nil {
			out, err := execute(name, text, data)
			if err == nil {
				return out, nil
			}
			logger.Warn("Custom prompt %q unusable, using default: %v", name, err)
		}
	}

	text, ok := prompts.Default(name)
	if !ok {
		return "", fmt.Errorf("no prompt template named %q", name)
	}
	return execute(name, text, data)
}

func execute(name, text string, data any) (string, error) {
	tmpl, err := template.New(name).Option("missingkey=error").Parse(text)
	if err != nil {
		return "", fmt.Errorf("parse prompt %q: %w", name, err)
	}
	var b strings.Builder
	if err := tmpl.Execute(&b, data); err != nil {
		return "", fmt.Errorf("render prompt %q: %w", name, err)
	}
	return b.String(), nil
}

package file

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/custodia-labs/fanout-cli/internal/core/ports/driven"
	"github.com/custodia-labs/fanout-cli/internal/logger"
)

// defaultReloadDelay coalesces bursts of editor writes into one reload.
const defaultReloadDelay = 200 * time.Millisecond

// PromptWatcher reloads a PromptStore whenever a template in its directory changes.
type PromptWatcher struct {
	store   driven.PromptStore
	dir     string
	delay   time.Duration
	watcher *fsnotify.Watcher
}

// NewPromptWatcher watches dir and reloads store on template changes.
// The directory must exist; call Load on the store first to create it.
func NewPromptWatcher(store driven.PromptStore, dir string) (*PromptWatcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create prompt watcher: %w", err)
	}
	if err := w.Add(dir); err != nil {
		_ = w.Close()
		return nil, fmt.Errorf("watch %s: %w", dir, err)
	}
	return &PromptWatcher{store: store, dir: dir, delay: defaultReloadDelay, watcher: w}, nil
}

// Run processes file events until ctx is cancelled, then closes the watcher.
func (w *PromptWatcher) Run(ctx context.Context) error {
	defer w.watcher.Close()

	var timer *time.Timer
	var fire <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			return nil

		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			if !isTemplateEvent(event) {
				continue
			}
			logger.Debug("Prompt change: %s %s", event.Op, filepath.Base(event.Name))
			if timer == nil {
				timer = time.NewTimer(w.delay)
			} else {
				timer.Reset(w.delay)
			}
			fire = timer.C

		case <-fire:
			fire = nil
			w.store.Reload()
			logger.Info("Reloaded prompt templates from %s", w.dir)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("Prompt watcher error: %v", err)
		}
	}
}

func isTemplateEvent(event fsnotify.Event) bool {
	if !strings.HasSuffix(event.Name, promptExt) {
		return false
	}
	return event.Has(fsnotify.Write) || event.Has(fsnotify.Create) ||
		event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename)
}

package themecss

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/hashicorp/go-hclog"

	"github.com/jmylchreest/themeregistry/internal/theme"
)

// DefaultDebounce coalesces editor save bursts into one regeneration.
const DefaultDebounce = 200 * time.Millisecond

// Watch runs the generator once, then again whenever a theme file in
// ThemesDir is written, created, removed or renamed, until ctx is done.
// Every run is reported to onRun; a failed run does not stop the watch.
func (g *Generator) Watch(ctx context.Context, debounce time.Duration, onRun func(count int, err error)) error {
	logger := g.Logger
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	logger = logger.Named("watch")

	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(g.ThemesDir); err != nil {
		return fmt.Errorf("failed to watch %s: %w", g.ThemesDir, err)
	}

	onRun(g.Run())

	timer := time.NewTimer(debounce)
	timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Ext(event.Name) != theme.FileExt || event.Op == fsnotify.Chmod {
				continue
			}
			logger.Debug("theme changed", "path", event.Name, "op", event.Op.String())
			timer.Reset(debounce)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watch error", "error", err)

		case <-timer.C:
			onRun(g.Run())
		}
	}
}

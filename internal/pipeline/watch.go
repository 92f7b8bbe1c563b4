package pipeline

import (
	"context"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/geo-labs/choromap/internal/cliconfig"
)

// debounceDelay coalesces editor write bursts into a single re-render.
const debounceDelay = 200 * time.Millisecond

// Watch renders once, then re-runs the pipeline whenever the input CSV
// changes, until the context is cancelled. Render failures after the first
// run are logged, not fatal, so a half-saved file does not kill the watch.
func Watch(ctx context.Context, cfg cliconfig.Config) error {
	if _, err := Run(ctx, cfg); err != nil {
		return err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	// Watch the directory: editors replace files on save, which swaps the
	// inode a file watch would be pinned to.
	dir := filepath.Dir(cfg.CSVPath)
	if err := watcher.Add(dir); err != nil {
		return err
	}
	target := filepath.Clean(cfg.CSVPath)
	logger.Info().Str("path", target).Msg("watching for changes")

	var debounce *time.Timer
	defer func() {
		if debounce != nil {
			debounce.Stop()
		}
	}()
	rerender := make(chan struct{}, 1)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != target {
				continue
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
				continue
			}
			if debounce != nil {
				debounce.Stop()
			}
			debounce = time.AfterFunc(debounceDelay, func() {
				select {
				case rerender <- struct{}{}:
				default:
				}
			})

		case <-rerender:
			if _, err := Run(ctx, cfg); err != nil {
				logger.Error().Err(err).Msg("re-render failed")
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Error().Err(err).Msg("watch error")
		}
	}
}

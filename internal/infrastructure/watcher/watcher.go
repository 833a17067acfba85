package watcher

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Watcher triggers a callback whenever the watched workbook changes on disk.
// The parent directory is watched, not the file itself: spreadsheet editors
// save by writing a temp file and renaming it over the original, which would
// detach a file-level watch. Rapid save bursts are debounced.
type Watcher struct {
	path     string
	debounce time.Duration
	logger   *slog.Logger
}

// New builds a watcher for one file path.
func New(path string, logger *slog.Logger) *Watcher {
	return &Watcher{path: path, debounce: 500 * time.Millisecond, logger: logger}
}

// Run blocks until ctx is cancelled, invoking trigger after each debounced
// change to the watched file. Trigger failures are logged, not fatal: the
// next save gets another full rebuild.
func (w *Watcher) Run(ctx context.Context, trigger func(context.Context) error) error {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer fsw.Close()

	dir := filepath.Dir(w.path)
	if err := fsw.Add(dir); err != nil {
		return fmt.Errorf("watch %s: %w", dir, err)
	}

	w.logger.Info("watching workbook", "path", w.path, "debounce", w.debounce)

	timer := time.NewTimer(w.debounce)
	if !timer.Stop() {
		<-timer.C
	}

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			if filepath.Base(event.Name) != filepath.Base(w.path) {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			w.logger.Debug("workbook changed", "op", event.Op.String())
			timer.Reset(w.debounce)

		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("watch error", "error", err)

		case <-timer.C:
			if err := trigger(ctx); err != nil {
				w.logger.Error("rebuild failed", "error", err)
			}
		}
	}
}

package catalog

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/couchcryptid/messier-skychart/internal/observability"
)

// DefaultDebounce is how long the file must be quiet before a reload.
const DefaultDebounce = 250 * time.Millisecond

// Watcher reloads a file source into a Store when the file changes. Editors
// often save through a temp file and rename, so the parent directory is
// watched and events are filtered by name.
type Watcher struct {
	source   *FileSource
	loader   *Loader
	store    *Store
	logger   *slog.Logger
	metrics  *observability.Metrics
	debounce time.Duration
}

// NewWatcher creates a watcher for src.
func NewWatcher(src *FileSource, loader *Loader, store *Store, logger *slog.Logger, metrics *observability.Metrics) *Watcher {
	return &Watcher{
		source:   src,
		loader:   loader,
		store:    store,
		logger:   logger.With("component", "watcher", "path", src.Path),
		metrics:  metrics,
		debounce: DefaultDebounce,
	}
}

// Run watches until ctx is cancelled.
func (w *Watcher) Run(ctx context.Context) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer fw.Close()

	target, err := filepath.Abs(w.source.Path)
	if err != nil {
		return fmt.Errorf("resolve %s: %w", w.source.Path, err)
	}
	if err := fw.Add(filepath.Dir(target)); err != nil {
		return fmt.Errorf("watch %s: %w", filepath.Dir(target), err)
	}
	w.logger.Info("watching catalog file")

	ticker := clock.NewTicker(w.debounce)
	defer ticker.Stop()

	var pending time.Time
	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Rename) {
				pending = clock.Now()
			}

		case <-ticker.Chan():
			if pending.IsZero() || clock.Since(pending) < w.debounce {
				continue
			}
			pending = time.Time{}
			w.reload(ctx)

		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("watch error", "error", err)
		}
	}
}

// reload keeps the previous dataset when the new file cannot be used.
func (w *Watcher) reload(ctx context.Context) {
	ds, err := w.loader.LoadFrom(ctx, w.source)
	if err != nil {
		w.metrics.DatasetReloads.WithLabelValues("error").Inc()
		w.logger.Warn("reload failed, keeping previous catalog", "error", err)
		return
	}
	w.store.Set(ds)
	w.metrics.DatasetReloads.WithLabelValues("success").Inc()
	w.logger.Info("catalog reloaded", "objects", ds.Len(), "generation", ds.Generation)
}

// Package watch provides a filesystem watcher that feeds newly created or
// modified source files into the import queue.
package watch

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"

	"github.com/docforge/docforge/internal/core/ports/driving"
	"github.com/docforge/docforge/internal/logger"
)

// Watcher monitors a directory for new and modified source files and
// enqueues them for import. Hidden files, directories, and unsupported
// extensions are ignored.
type Watcher struct {
	dir        string
	extensions map[string]bool
	queue      driving.ImportQueue
}

// NewWatcher creates a watcher for the given directory. Extensions are
// lowercase with a leading dot (e.g. ".md", ".pdf").
func NewWatcher(dir string, extensions []string, queue driving.ImportQueue) *Watcher {
	exts := make(map[string]bool, len(extensions))
	for _, ext := range extensions {
		exts[strings.ToLower(ext)] = true
	}
	return &Watcher{
		dir:        dir,
		extensions: exts,
		queue:      queue,
	}
}

// Run blocks watching the directory until ctx is cancelled. Every created
// or written file with a supported extension becomes an import job.
func (w *Watcher) Run(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(w.dir); err != nil {
		return fmt.Errorf("watching %s: %w", w.dir, err)
	}

	logger.Info("Watching %s for new documents", w.dir)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if fileURL := w.handleFsEvent(event); fileURL != "" {
				logger.Debug("Watch event %s: enqueuing %s", event.Op, fileURL)
				w.queue.Enqueue(ctx, fileURL)
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("Watch error: %v", err)
		}
	}
}

// handleFsEvent converts a filesystem event into a file URL to import, or
// "" when the event should be ignored.
func (w *Watcher) handleFsEvent(event fsnotify.Event) string {
	if !event.Op.Has(fsnotify.Create) && !event.Op.Has(fsnotify.Write) {
		return ""
	}

	base := filepath.Base(event.Name)
	if strings.HasPrefix(base, ".") {
		return ""
	}

	if !w.extensions[strings.ToLower(filepath.Ext(event.Name))] {
		return ""
	}

	info, err := os.Stat(event.Name)
	if err != nil || info.IsDir() {
		return ""
	}

	return "file://" + event.Name
}

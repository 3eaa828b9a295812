package watch

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/nomenworks/nomen/internal/files/scanner"
	"github.com/nomenworks/nomen/pkg/nomen"
)

// PassFunc is the pass a watcher re-runs after each change burst.
type PassFunc func(ctx context.Context) error

// Watcher watches a tree root and re-runs a pass after debounced
// change bursts.
type Watcher struct {
	tax      *nomen.Taxonomy
	root     string
	debounce time.Duration
	logger   nomen.Logger
	fsw      *fsnotify.Watcher

	pendingMu sync.Mutex
	pending   map[string]fsnotify.Op
}

// NewWatcher creates a watcher for root. Panics if tax or logger is
// nil; returns an error when the OS watch facility is unavailable.
func NewWatcher(tax *nomen.Taxonomy, root string, debounce time.Duration, logger nomen.Logger) (*Watcher, error) {
	if tax == nil {
		panic("taxonomy cannot be nil")
	}
	if logger == nil {
		panic("logger cannot be nil")
	}
	if debounce <= 0 {
		debounce = nomen.DefaultWatchDebounce
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating file watcher: %w", err)
	}

	return &Watcher{
		tax:      tax,
		root:     root,
		debounce: debounce,
		logger:   logger,
		fsw:      fsw,
		pending:  make(map[string]fsnotify.Op),
	}, nil
}

// Run watches until ctx is cancelled, invoking fn after every debounced
// burst of changes. A failing pass is reported and the watch continues;
// the next change gets a fresh run.
func (w *Watcher) Run(ctx context.Context, fn PassFunc) error {
	defer w.fsw.Close()

	if err := w.addWatchesRecursive(w.root); err != nil {
		return fmt.Errorf("watching %s: %v: %w", w.root, err, nomen.ErrFatalIO)
	}
	w.logger.Info("watching %s (debounce %s)", w.root, w.debounce)

	ticker := time.NewTicker(w.debounce)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.fsw.Events:
			if !ok {
				return nil
			}
			w.handleEvent(event)

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return nil
			}
			w.logger.Error("watch error: %v", err)

		case <-ticker.C:
			if w.takePending() == 0 {
				continue
			}
			if err := fn(ctx); err != nil {
				if ctx.Err() != nil {
					return nil
				}
				w.logger.Error("pass failed: %v", err)
			}
		}
	}
}

// addWatchesRecursive registers every non-pruned directory under root.
func (w *Watcher) addWatchesRecursive(root string) error {
	return filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.IsDir() {
			return nil
		}

		base := filepath.Base(path)
		rel := w.relPath(path)
		if rel != "." && (strings.HasPrefix(base, ".") || scanner.IgnoredDir(w.tax, rel)) {
			return filepath.SkipDir
		}

		if err := w.fsw.Add(path); err != nil {
			w.logger.Error("cannot watch %s: %v", path, err)
			return nil
		}
		w.logger.Verbose("watching directory %s", path)
		return nil
	})
}

// handleEvent filters one fsnotify event and accumulates it for the
// next flush.
func (w *Watcher) handleEvent(event fsnotify.Event) {
	if event.Op == fsnotify.Chmod {
		return
	}

	base := filepath.Base(event.Name)
	rel := w.relPath(event.Name)

	// New directories need their own watch before their content shows
	// up in events.
	if event.Has(fsnotify.Create) {
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
			if !strings.HasPrefix(base, ".") && !scanner.IgnoredDir(w.tax, rel) {
				if err := w.addWatchesRecursive(event.Name); err != nil {
					w.logger.Error("cannot watch new directory %s: %v", event.Name, err)
				}
			}
			return
		}
	}

	// The same exclusions as the scanner, plus the manifest: a build
	// pass rewriting it must not retrigger the watch.
	if strings.HasPrefix(base, ".") || rel == w.tax.ManifestName || scanner.Ignored(w.tax, rel) {
		return
	}

	w.pendingMu.Lock()
	w.pending[rel] |= event.Op
	w.pendingMu.Unlock()
	w.logger.Verbose("change detected: %s (%s)", rel, event.Op)
}

// takePending drains the accumulated changes and returns how many
// distinct paths changed.
func (w *Watcher) takePending() int {
	w.pendingMu.Lock()
	defer w.pendingMu.Unlock()
	n := len(w.pending)
	if n > 0 {
		w.pending = make(map[string]fsnotify.Op)
	}
	return n
}

// relPath maps an event path to the slash-relative form the ignore
// rules understand.
func (w *Watcher) relPath(path string) string {
	rel, err := filepath.Rel(w.root, path)
	if err != nil {
		return path
	}
	return filepath.ToSlash(rel)
}

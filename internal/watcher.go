package internal

import (
	"context"
	"os"
	"path/filepath"
	"slices"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Watcher wraps fsnotify watcher with photo filtering and tags photos once
// they stop changing.
type Watcher struct {
	watcher *fsnotify.Watcher
	root    string
	filter  *MediaFilter
	proc    FileProcessor
	log     *Logger
	settle  time.Duration

	pending map[string]time.Time
	stats   *ErrorStats
	tagged  int
}

// NewWatcher creates a watcher for root and all its sub-directories.
func NewWatcher(root string, cfg *Config, proc FileProcessor, log *Logger) (*Watcher, error) {
	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	w := &Watcher{
		watcher: fsWatcher,
		root:    root,
		filter:  NewMediaFilter(cfg),
		proc:    proc,
		log:     log,
		settle:  cfg.WatchSettle,
		pending: make(map[string]time.Time),
		stats:   NewErrorStats(),
	}
	if w.settle <= 0 {
		w.settle = time.Second
	}

	if err := w.addRecursive(root); err != nil {
		fsWatcher.Close()
		return nil, err
	}
	return w, nil
}

// addRecursive adds a directory and all its subdirectories to the watcher
func (w *Watcher) addRecursive(dir string) error {
	return filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.IsDir() {
			return nil
		}
		if w.filter.Ignored(relSlash(w.root, path), true) {
			return filepath.SkipDir
		}
		return w.watcher.Add(path)
	})
}

// Run processes events until ctx is done. Photos are handed to the processor
// one at a time, after no event touched them for the settle period.
func (w *Watcher) Run(ctx context.Context) error {
	ticker := time.NewTicker(w.tickInterval())
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			w.handle(event)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			w.log.Warn("watcher error", "err", err)

		case now := <-ticker.C:
			w.flush(now)
		}
	}
}

// tickInterval is how often pending photos are checked, never below 1ms.
func (w *Watcher) tickInterval() time.Duration {
	return max(w.settle/2, time.Millisecond)
}

func (w *Watcher) handle(event fsnotify.Event) {
	if event.Has(fsnotify.Create) {
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
			if err := w.addRecursive(event.Name); err != nil {
				w.log.Warn("failed to watch directory", "path", event.Name, "err", err)
			}
			return
		}
	}

	if !w.filter.IsImage(event.Name) || w.filter.Ignored(relSlash(w.root, event.Name), false) {
		return
	}
	if event.Has(fsnotify.Create) || event.Has(fsnotify.Write) {
		w.pending[event.Name] = time.Now()
	}
	if event.Has(fsnotify.Remove) {
		delete(w.pending, event.Name)
	}
}

// flush processes the pending photos that have settled at now.
func (w *Watcher) flush(now time.Time) {
	var ready []string
	for p, last := range w.pending {
		if now.Sub(last) >= w.settle {
			ready = append(ready, p)
		}
	}
	slices.Sort(ready)

	for _, p := range ready {
		delete(w.pending, p)
		if _, err := os.Stat(p); err != nil {
			continue
		}
		modified, err := w.proc.RewriteFile(p)
		if err != nil {
			w.stats.Add(CategorizeError(p, err))
			w.log.Error("error while processing path", "path", p, "err", err)
			continue
		}
		if modified {
			w.tagged++
			w.log.Info("tagged", "path", p)
		}
	}
}

// Tagged returns the number of photos modified so far.
func (w *Watcher) Tagged() int { return w.tagged }

// Errors returns the errors collected so far.
func (w *Watcher) Errors() *ErrorStats { return w.stats }

// Close stops the watcher and cleans up resources
func (w *Watcher) Close() error {
	return w.watcher.Close()
}

// Package watch reports changes to individual files, such as a dot file
// rewritten by another program while it is open.
package watch

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDelay is how long a burst of events must be quiet before it is
// reported.
const DefaultDelay = 150 * time.Millisecond

// Watcher watches a set of files by watching their directories, so files
// replaced by rename are still seen.
type Watcher struct {
	fs    *fsnotify.Watcher
	delay time.Duration

	mu    sync.Mutex
	files map[string]bool
	dirs  map[string]bool
}

// New returns a watcher with nothing watched.
func New(delay time.Duration) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}
	if delay <= 0 {
		delay = DefaultDelay
	}
	return &Watcher{fs: fw, delay: delay, files: map[string]bool{}, dirs: map[string]bool{}}, nil
}

// Set replaces the watched files.
func (w *Watcher) Set(paths ...string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	files := map[string]bool{}
	dirs := map[string]bool{}
	for _, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			return err
		}
		files[abs] = true
		dirs[filepath.Dir(abs)] = true
	}
	for d := range w.dirs {
		if !dirs[d] {
			if err := w.fs.Remove(d); err != nil {
				slog.Debug("unwatch", "dir", d, "error", err)
			}
		}
	}
	for d := range dirs {
		if !w.dirs[d] {
			if err := w.fs.Add(d); err != nil {
				return fmt.Errorf("watch %s: %w", d, err)
			}
		}
	}
	w.files, w.dirs = files, dirs
	return nil
}

func (w *Watcher) relevant(ev fsnotify.Event) (string, bool) {
	if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
		return "", false
	}
	abs, err := filepath.Abs(ev.Name)
	if err != nil {
		return "", false
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	return abs, w.files[abs]
}

// Run delivers changed paths to fn until ctx is done or the watcher is
// closed. Events for the same file within the delay are merged.
func (w *Watcher) Run(ctx context.Context, fn func(path string)) {
	debounce := time.NewTimer(w.delay)
	if !debounce.Stop() {
		<-debounce.C
	}
	pending := map[string]bool{}

	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-w.fs.Events:
			if !ok {
				return
			}
			path, ok := w.relevant(ev)
			if !ok {
				continue
			}
			pending[path] = true
			debounce.Reset(w.delay)
		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			slog.Warn("watcher error", "error", err)
		case <-debounce.C:
			for p := range pending {
				fn(p)
			}
			pending = map[string]bool{}
		}
	}
}

// Close stops watching.
func (w *Watcher) Close() error { return w.fs.Close() }

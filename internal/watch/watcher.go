// Package watch re-runs tests when Python sources under the project change.
package watch

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/fsnotify/fsnotify"
)

// SkipFunc reports whether a directory (by base name) should not be watched
type SkipFunc func(name string) bool

// Watcher debounces .py changes below a set of watched directories
type Watcher struct {
	fs       *fsnotify.Watcher
	skip     SkipFunc
	debounce time.Duration
	logger   *log.Logger
}

// New creates a Watcher. Call AddTree before Run.
func New(skip SkipFunc, debounce time.Duration, logger *log.Logger) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	if skip == nil {
		skip = func(string) bool { return false }
	}
	return &Watcher{
		fs:       fw,
		skip:     skip,
		debounce: debounce,
		logger:   logger,
	}, nil
}

// AddTree watches root and every directory below it that is not skipped
func (w *Watcher) AddTree(root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if path != root && w.skip(d.Name()) {
			return filepath.SkipDir
		}
		if err := w.fs.Add(path); err != nil {
			return fmt.Errorf("watch %s: %w", path, err)
		}
		return nil
	})
}

// Watched returns the directories currently watched
func (w *Watcher) Watched() []string {
	return w.fs.WatchList()
}

// Run calls onChange once per burst of changes, after the debounce interval
// has passed without further changes. onChange runs on the calling goroutine so
// runs never overlap. Run returns nil when ctx is cancelled.
func (w *Watcher) Run(ctx context.Context, onChange func(ctx context.Context)) error {
	timer := time.NewTimer(w.debounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.fs.Events:
			if !ok {
				return nil
			}
			if event.Has(fsnotify.Create) {
				w.watchNewDir(event.Name)
			}
			if !relevant(event) {
				continue
			}
			w.logger.Debug("change detected", "path", event.Name, "op", event.Op.String())
			timer.Reset(w.debounce)

		case err, ok := <-w.fs.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("watch error", "error", err)

		case <-timer.C:
			onChange(ctx)
		}
	}
}

// Close stops watching
func (w *Watcher) Close() error {
	return w.fs.Close()
}

func (w *Watcher) watchNewDir(path string) {
	info, err := os.Stat(path)
	if err != nil || !info.IsDir() || w.skip(info.Name()) {
		return
	}
	if err := w.AddTree(path); err != nil {
		w.logger.Warn("could not watch new directory", "path", path, "error", err)
	}
}

func relevant(event fsnotify.Event) bool {
	if !strings.HasSuffix(event.Name, ".py") {
		return false
	}
	return event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Rename)
}

package demos

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"

	"github.com/hirepath/showcase/internal/logging"
)

// ErrNothingToWatch is returned by Watcher.Run when no content directory exists.
var ErrNothingToWatch = errors.New("no content directory to watch")

// DefaultWatchDebounce collapses editor save bursts into one reload.
const DefaultWatchDebounce = 300 * time.Millisecond

// Watcher reloads the catalog whenever content files in the search paths
// change.
type Watcher struct {
	projectDir string
	dir        string
	debounce   time.Duration
	logger     zerolog.Logger
}

// NewWatcher creates a watcher over SearchPaths(projectDir, dir). A
// non-positive debounce uses DefaultWatchDebounce.
func NewWatcher(projectDir, dir string, debounce time.Duration) *Watcher {
	if debounce <= 0 {
		debounce = DefaultWatchDebounce
	}
	return &Watcher{
		projectDir: projectDir,
		dir:        dir,
		debounce:   debounce,
		logger:     logging.Component("demos"),
	}
}

// Dirs returns the existing directories the watcher will observe.
func (w *Watcher) Dirs() []string {
	dirs := make([]string, 0, 3)
	for _, path := range SearchPaths(w.projectDir, w.dir) {
		if info, err := os.Stat(path); err == nil && info.IsDir() {
			dirs = append(dirs, path)
		}
	}
	return dirs
}

// Run blocks until ctx is done. After each settled burst of changes the
// catalog is reloaded and passed to onReload, or the load error is.
func (w *Watcher) Run(ctx context.Context, onReload func(*Catalog, error)) error {
	dirs := w.Dirs()
	if len(dirs) == 0 {
		return ErrNothingToWatch
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()

	for _, dir := range dirs {
		if err := watcher.Add(dir); err != nil {
			return fmt.Errorf("watch %s: %w", dir, err)
		}
		w.logger.Debug().Str("dir", dir).Msg("watching content")
	}

	timer := time.NewTimer(w.debounce)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !contentEvent(event) {
				continue
			}
			w.logger.Debug().Str("path", event.Name).Str("op", event.Op.String()).Msg("content changed")
			timer.Reset(w.debounce)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn().Err(err).Msg("content watcher error")
		case <-timer.C:
			catalog, err := LoadCatalog(w.projectDir, w.dir)
			if onReload != nil {
				onReload(catalog, err)
			}
		}
	}
}

func contentEvent(event fsnotify.Event) bool {
	ext := strings.ToLower(filepath.Ext(event.Name))
	if ext != ".yaml" && ext != ".yml" {
		return false
	}
	return event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) != 0
}

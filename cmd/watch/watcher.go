package watch

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/LegacyCodeHQ/deadfiles/depgraph/registry"
	"github.com/charmbracelet/log"
	"github.com/fsnotify/fsnotify"
)

const debounceInterval = 300 * time.Millisecond

var skippedDirs = map[string]bool{
	".git":    true,
	".hg":     true,
	".svn":    true,
	".idea":   true,
	".vscode": true,
}

// skipSet merges the vendor directories into the directories never watched.
func skipSet(vendorDirs []string) map[string]bool {
	skip := make(map[string]bool, len(skippedDirs)+len(vendorDirs))
	for dir := range skippedDirs {
		skip[dir] = true
	}
	for _, dir := range vendorDirs {
		skip[dir] = true
	}
	return skip
}

func watchAndRebuild(ctx context.Context, root string, skip map[string]bool, rb *rebuilder, logger *log.Logger) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	defer watcher.Close()

	if err := addWatchDirs(watcher, root, skip); err != nil {
		return fmt.Errorf("failed to watch directories: %w", err)
	}

	var debounceTimer *time.Timer
	for {
		select {
		case <-ctx.Done():
			if debounceTimer != nil {
				debounceTimer.Stop()
			}
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}

			if !isRelevantChange(event) {
				continue
			}
			logger.Debug("change detected", "path", event.Name, "op", event.Op.String())

			if debounceTimer != nil {
				debounceTimer.Stop()
			}
			debounceTimer = time.AfterFunc(debounceInterval, func() {
				_ = rb.rebuild()
			})

			if event.Has(fsnotify.Create) {
				addIfDirectory(watcher, event.Name, skip)
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Error("watcher error", "err", err)
		}
	}
}

// isRelevantChange reports whether event can change the analysis. Creating, removing
// or renaming any file changes the corpus; writes matter only for parsed modules.
func isRelevantChange(event fsnotify.Event) bool {
	base := filepath.Base(event.Name)
	if strings.HasPrefix(base, ".") || strings.HasSuffix(base, "~") {
		return false
	}

	switch {
	case event.Has(fsnotify.Create), event.Has(fsnotify.Remove), event.Has(fsnotify.Rename):
		return true
	case event.Has(fsnotify.Write):
		return registry.IsSupportedLanguageExtension(strings.ToLower(filepath.Ext(event.Name)))
	}
	return false
}

func addWatchDirs(watcher *fsnotify.Watcher, root string, skip map[string]bool) error {
	return addWatchDirsWithAdder(root, skip, watcher.Add)
}

// addWatchDirsWithAdder walks root and passes every directory not in skip to add.
// Directories that vanish during the walk are ignored.
func addWatchDirsWithAdder(root string, skip map[string]bool, add func(string) error) error {
	return filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return nil
			}
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if path != root && skip[d.Name()] {
			return filepath.SkipDir
		}
		if err := add(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return err
		}
		return nil
	})
}

func addIfDirectory(watcher *fsnotify.Watcher, path string, skip map[string]bool) {
	info, err := os.Stat(path)
	if err != nil {
		return
	}
	if info.IsDir() && !skip[info.Name()] {
		_ = addWatchDirs(watcher, path, skip)
	}
}

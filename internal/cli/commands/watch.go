package commands

import (
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
)

// debounceInterval coalesces bursts of filesystem events into one re-run.
const debounceInterval = 300 * time.Millisecond

// watchAndRun runs the check once, then re-runs it whenever a .rb, .yml or
// .yaml file under root changes. Blocks until the command context is done.
func watchAndRun(cmd *cobra.Command, root string, logger *slog.Logger, run func() (bool, error)) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer watcher.Close()

	if err := addWatchDirs(watcher, root); err != nil {
		return err
	}

	if _, err := run(); err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), "Watching for changes... (ctrl-c to stop)")

	var timer *time.Timer
	rerun := make(chan struct{}, 1)

	for {
		select {
		case <-cmd.Context().Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !relevantChange(event) {
				continue
			}
			// New directories need to be picked up by the watcher.
			if event.Op.Has(fsnotify.Create) {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					_ = addWatchDirs(watcher, event.Name)
				}
			}
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(debounceInterval, func() {
				select {
				case rerun <- struct{}{}:
				default:
				}
			})

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watch error", "error", err)

		case <-rerun:
			fmt.Fprintln(cmd.OutOrStdout())
			if _, err := run(); err != nil {
				logger.Error("check failed", "error", err)
			}
		}
	}
}

// addWatchDirs registers root and every non-hidden directory below it.
func addWatchDirs(watcher *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil || !d.IsDir() {
			return nil //nolint:nilerr // unreadable subtrees are skipped, not fatal
		}
		name := d.Name()
		if p != root && (strings.HasPrefix(name, ".") || name == "node_modules" || name == "vendor" || name == "tmp") {
			return filepath.SkipDir
		}
		return watcher.Add(p)
	})
}

// relevantChange filters events down to source and manifest edits.
func relevantChange(event fsnotify.Event) bool {
	if event.Op == fsnotify.Chmod {
		return false
	}
	switch filepath.Ext(event.Name) {
	case ".rb", ".yml", ".yaml":
		return true
	}
	// Directory creations have no extension but may contain sources.
	return event.Op.Has(fsnotify.Create)
}

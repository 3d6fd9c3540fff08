package cli

import (
	"context"
	"io/fs"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/custodia-labs/folio/internal/core/ports/driving"
	"github.com/custodia-labs/folio/internal/logger"
)

// watchDebounce coalesces bursts of file events (editors often write several
// times per save) into a single recompile.
var watchDebounce = 300 * time.Millisecond

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Recompile the site whenever its sources change",
	Long: `Compiles the site, then watches the lib directories and every local data
source root. Each change unloads the site and compiles it again. Remote data
sources are only re-read on the next change to a local file.`,
	Args: cobra.NoArgs,
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, _ []string) error {
	site, err := loadSite()
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	for _, root := range site.WatchRoots() {
		if err := addRecursive(watcher, root); err != nil {
			return err
		}
	}

	if isTerminal(os.Stdout) {
		cmd.Println(newStyles().muted.Render("Watching for changes. Press Ctrl+C to stop."))
	}
	return watchLoop(ctx, cmd, site, watcher.Events, watcher.Errors, func(dir string) {
		if err := addRecursive(watcher, dir); err != nil {
			logger.Warn("failed to watch %s: %v", dir, err)
		}
	})
}

// watchLoop compiles once, then recompiles after every debounced batch of
// events until ctx is cancelled or the event channel closes. onNewDir is
// called for directories created while watching.
func watchLoop(
	ctx context.Context,
	cmd *cobra.Command,
	site driving.Site,
	events <-chan fsnotify.Event,
	errs <-chan error,
	onNewDir func(string),
) error {
	recompile := func() {
		site.Unload()
		if err := compileSite(ctx, cmd, site); err != nil {
			cmd.PrintErrln(newStyles().err.Render("Error: ") + err.Error())
		}
	}
	recompile()

	var timer *time.Timer
	var fire <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			if ignoredEvent(ev) {
				continue
			}
			logger.Debug("change: %s %s", ev.Op, ev.Name)
			if ev.Has(fsnotify.Create) && onNewDir != nil {
				if info, err := os.Stat(ev.Name); err == nil && info.IsDir() {
					onNewDir(ev.Name)
				}
			}
			if timer == nil {
				timer = time.NewTimer(watchDebounce)
			} else {
				timer.Reset(watchDebounce)
			}
			fire = timer.C
		case err, ok := <-errs:
			if !ok {
				return nil
			}
			logger.Warn("watch error: %v", err)
		case <-fire:
			fire = nil
			recompile()
		}
	}
}

func ignoredEvent(ev fsnotify.Event) bool {
	if ev.Op == fsnotify.Chmod {
		return true
	}
	base := filepath.Base(ev.Name)
	return strings.HasPrefix(base, ".") || strings.HasSuffix(base, "~")
}

// addRecursive watches dir and every directory beneath it. fsnotify only
// watches a single directory level. A missing root is skipped.
func addRecursive(w *fsnotify.Watcher, dir string) error {
	info, err := os.Stat(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	if !info.IsDir() {
		return w.Add(dir)
	}
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if path != dir && strings.HasPrefix(d.Name(), ".") {
			return filepath.SkipDir
		}
		return w.Add(path)
	})
}

func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	doc2xhtml "github.com/alnah/go-doc2xhtml"
	"github.com/alnah/go-doc2xhtml/internal/fileutil"
)

// watchDebounce is the quiet period after the last change before re-expanding.
const watchDebounce = 300 * time.Millisecond

// treeExpander is the part of doc2xhtml.Expander used by watch mode.
type treeExpander interface {
	Expand(ctx context.Context, inDir, outDir string) (*doc2xhtml.Result, error)
}

// Compile-time interface implementation check.
var _ treeExpander = (*doc2xhtml.Expander)(nil)

// runWatch expands inDir once, then again after every burst of changes,
// until ctx is canceled. Failed runs are reported and watching continues.
func runWatch(ctx context.Context, exp treeExpander, inDir, outDir string, env *Environment, logger *slog.Logger) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("fsnotify: %w", err)
	}
	defer func() { _ = watcher.Close() }()

	// Outputs written inside the input tree must not retrigger a run.
	skip, err := filepath.Abs(outDir)
	if err != nil {
		return err
	}
	if !isWithin(skip, inDir) {
		skip = ""
	}
	if err := addDirsRecursive(watcher, inDir, skip, logger); err != nil {
		return err
	}

	rebuild := func() {
		start := env.Now()
		result, err := exp.Expand(ctx, inDir, outDir)
		if err != nil {
			fmt.Fprintf(env.Stderr, "error: %v\n", err)
			return
		}
		fmt.Fprintf(env.Stdout, "[%s] expanded %d file(s)\n", start.Format(time.TimeOnly), len(result.Files))
	}

	rebuild()

	rebuildReq, trigger := newDebouncer(watchDebounce)
	logger.Info("watching for changes", "dir", inDir)

	for {
		select {
		case <-ctx.Done():
			logger.Info("stopped watching", "dir", inDir)
			return nil
		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			handleWatchEvent(watcher, ev, skip, trigger, logger)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watcher error", "error", err)
		case <-rebuildReq:
			rebuild()
		}
	}
}

// newDebouncer returns a channel that receives once per burst of trigger
// calls, delay after the last one.
func newDebouncer(delay time.Duration) (<-chan struct{}, func()) {
	var mu sync.Mutex
	var timer *time.Timer
	req := make(chan struct{}, 1)

	trigger := func() {
		mu.Lock()
		defer mu.Unlock()
		if timer != nil {
			timer.Stop()
		}
		timer = time.AfterFunc(delay, func() {
			select {
			case req <- struct{}{}:
			default:
			}
		})
	}

	return req, trigger
}

// handleWatchEvent triggers a rebuild for relevant events and watches new
// subdirectories. Events under skip are dropped.
func handleWatchEvent(watcher *fsnotify.Watcher, ev fsnotify.Event, skip string, trigger func(), logger *slog.Logger) {
	if shouldIgnoreEvent(ev.Name) || isWithin(ev.Name, skip) {
		return
	}
	if ev.Has(fsnotify.Create) {
		if fileutil.DirExists(ev.Name) {
			_ = addDirsRecursive(watcher, ev.Name, skip, logger)
		}
	}
	logger.Debug("change detected", "path", ev.Name, "op", ev.Op.String())
	trigger()
}

// addDirsRecursive watches root and every directory below it, except skip.
func addDirsRecursive(w *fsnotify.Watcher, root, skip string, logger *slog.Logger) error {
	info, err := os.Stat(root)
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return fmt.Errorf("%w: %s", doc2xhtml.ErrInvalidDirectory, root)
	}

	return filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if d.IsDir() {
			if isWithin(path, skip) {
				return filepath.SkipDir
			}
			if err := w.Add(path); err != nil {
				logger.Warn("watch add failed", "dir", path, "error", err)
			}
		}
		return nil
	})
}

// shouldIgnoreEvent returns true for filesystem events that should not trigger rebuilds.
func shouldIgnoreEvent(path string) bool {
	base := filepath.Base(path)

	// Hidden files, including .#lock files
	if strings.HasPrefix(base, ".") {
		return true
	}

	// Editor temp/swap files
	if strings.HasSuffix(base, "~") ||
		strings.HasSuffix(base, ".swp") ||
		strings.HasSuffix(base, ".swx") ||
		(strings.HasPrefix(base, "#") && strings.HasSuffix(base, "#")) {
		return true
	}

	return base == "Thumbs.db"
}

// isWithin reports whether path is dir or lies below it. An empty dir
// contains nothing.
func isWithin(path, dir string) bool {
	if dir == "" {
		return false
	}
	absPath, errPath := filepath.Abs(path)
	absDir, errDir := filepath.Abs(dir)
	if errPath != nil || errDir != nil {
		return false
	}
	rel, err := filepath.Rel(absDir, absPath)
	return err == nil && rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

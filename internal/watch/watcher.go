// SPDX-License-Identifier: MPL-2.0

// Package watch reruns a callback when files below a project root change.
//
// Events are filtered by doublestar patterns and coalesced: the callback
// fires once per quiet period with every path that changed in it.
package watch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"sync"
	"sync/atomic"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/charmbracelet/log"
	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is the quiet period used when Config.Debounce is not positive.
const DefaultDebounce = 300 * time.Millisecond

var (
	// ErrInvalidPattern is the sentinel error wrapped by InvalidPatternError.
	ErrInvalidPattern = errors.New("invalid watch pattern")
	// ErrAlreadyRunning is returned when Run is called a second time.
	ErrAlreadyRunning = errors.New("watcher already running")

	defaultIgnores = []string{
		"**/.git",
		"**/.git/**",
		"**/vendor",
		"**/vendor/**",
		"**/node_modules",
		"**/node_modules/**",
		"**/*.swp",
		"**/*~",
		"**/.DS_Store",
	}
)

type (
	// Config holds the parameters for a Watcher.
	Config struct {
		// Root is the directory to watch recursively. Empty means the working directory.
		Root string
		// Patterns select, relative to Root, the files that trigger the
		// callback. No patterns means every file that is not ignored.
		Patterns []string
		// Ignore adds patterns to the built-in ignore list.
		Ignore []string
		// Debounce is the quiet period after the last event.
		Debounce time.Duration
		// OnChange receives the changed paths, relative to Root and sorted.
		OnChange func(ctx context.Context, changed []string) error
		// Logger reports skipped directories and callback failures.
		Logger *log.Logger
	}

	// InvalidPatternError is returned by New for a malformed glob.
	InvalidPatternError struct {
		Pattern string
		Err     error
	}

	// Watcher monitors Root and fires OnChange after each burst of matching events.
	Watcher struct {
		cfg      Config
		fsw      *fsnotify.Watcher
		root     string
		ignores  []string
		debounce time.Duration
		logger   *log.Logger
		started  atomic.Bool
	}
)

// Error implements the error interface for InvalidPatternError.
func (e *InvalidPatternError) Error() string {
	return fmt.Sprintf("invalid watch pattern %q: %v", e.Pattern, e.Err)
}

// Unwrap returns ErrInvalidPattern for errors.Is() compatibility.
func (e *InvalidPatternError) Unwrap() error { return ErrInvalidPattern }

// New validates cfg and registers every non-ignored directory under Root.
func New(cfg Config) (*Watcher, error) {
	for _, pat := range slices.Concat(cfg.Patterns, cfg.Ignore) {
		if !doublestar.ValidatePattern(pat) {
			return nil, &InvalidPatternError{Pattern: pat, Err: doublestar.ErrBadPattern}
		}
	}

	root := cfg.Root
	if root == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("determine working directory: %w", err)
		}
		root = wd
	}
	root, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolve watch root: %w", err)
	}

	logger := cfg.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	debounce := cfg.Debounce
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create file watcher: %w", err)
	}

	w := &Watcher{
		cfg:      cfg,
		fsw:      fsw,
		root:     root,
		ignores:  slices.Concat(defaultIgnores, cfg.Ignore),
		debounce: debounce,
		logger:   logger,
	}
	if err := w.addTree(root); err != nil {
		_ = fsw.Close()
		return nil, err
	}
	return w, nil
}

// Root returns the absolute directory being watched.
func (w *Watcher) Root() string {
	return w.root
}

// Run processes events until ctx is canceled. It returns nil on
// cancellation and an error when the underlying watcher breaks. A callback
// in progress completes before Run returns.
func (w *Watcher) Run(ctx context.Context) error {
	if !w.started.CompareAndSwap(false, true) {
		return ErrAlreadyRunning
	}
	defer func() {
		if err := w.fsw.Close(); err != nil {
			w.logger.Warn("close file watcher", "err", err)
		}
	}()

	var (
		mu      sync.Mutex
		pending = make(map[string]struct{})
		timer   *time.Timer
		busy    atomic.Bool

		// cbMu is held while OnChange runs; stopped is set under it on return.
		cbMu    sync.Mutex
		stopped bool
	)

	fire := func() {
		if ctx.Err() != nil {
			return
		}
		// A slow callback is not re-entered; the pending set waits for the next tick.
		if !busy.CompareAndSwap(false, true) {
			mu.Lock()
			timer.Reset(w.debounce)
			mu.Unlock()
			return
		}
		defer busy.Store(false)

		cbMu.Lock()
		defer cbMu.Unlock()
		if stopped {
			return
		}

		mu.Lock()
		changed := slices.Sorted(maps.Keys(pending))
		clear(pending)
		mu.Unlock()

		if len(changed) == 0 || w.cfg.OnChange == nil {
			return
		}
		if err := w.cfg.OnChange(ctx, changed); err != nil {
			w.logger.Error("change handler failed", "err", err)
		}
	}

	defer func() {
		mu.Lock()
		if timer != nil {
			timer.Stop()
		}
		mu.Unlock()

		cbMu.Lock()
		stopped = true
		cbMu.Unlock()
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case evt, ok := <-w.fsw.Events:
			if !ok {
				return errors.New("file watcher event channel closed")
			}
			if evt.Has(fsnotify.Create) {
				w.addIfDir(evt.Name)
			}

			rel, err := filepath.Rel(w.root, evt.Name)
			if err != nil {
				continue
			}
			rel = filepath.ToSlash(rel)
			if w.ignored(rel) || !w.matches(rel) {
				continue
			}

			mu.Lock()
			pending[rel] = struct{}{}
			if timer == nil {
				timer = time.AfterFunc(w.debounce, fire)
			} else {
				timer.Reset(w.debounce)
			}
			mu.Unlock()

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return errors.New("file watcher error channel closed")
			}
			if isFatalWatchError(err) {
				return fmt.Errorf("file watcher failed: %w", err)
			}
			w.logger.Warn("file watcher error", "err", err)
		}
	}
}

// addTree registers dir and every non-ignored directory below it.
func (w *Watcher) addTree(dir string) error {
	err := filepath.WalkDir(dir, func(p string, d os.DirEntry, walkErr error) error {
		if walkErr != nil {
			w.logger.Debug("skipping unreadable path", "path", p, "err", walkErr)
			return nil
		}
		if !d.IsDir() {
			return nil
		}
		if rel, relErr := filepath.Rel(w.root, p); relErr == nil && rel != "." {
			if w.ignored(filepath.ToSlash(rel)) {
				return filepath.SkipDir
			}
		}
		if addErr := w.fsw.Add(p); addErr != nil {
			return fmt.Errorf("watch %s: %w", p, addErr)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("register watch directories: %w", err)
	}
	return nil
}

// addIfDir extends the watch to a directory created after startup.
func (w *Watcher) addIfDir(p string) {
	info, err := os.Stat(p)
	if err != nil || !info.IsDir() {
		return
	}
	if err := w.addTree(p); err != nil {
		w.logger.Warn("watch new directory", "path", p, "err", err)
	}
}

func (w *Watcher) ignored(rel string) bool {
	return matchAny(w.ignores, rel)
}

func (w *Watcher) matches(rel string) bool {
	return len(w.cfg.Patterns) == 0 || matchAny(w.cfg.Patterns, rel)
}

func matchAny(patterns []string, rel string) bool {
	for _, pat := range patterns {
		if ok, _ := doublestar.Match(pat, rel); ok {
			return true
		}
	}
	return false
}

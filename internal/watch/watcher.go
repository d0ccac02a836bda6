// Package watch re-runs a callback when files under a directory tree change.
package watch

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"git.home.luguber.info/inful/doclinks/internal/logfields"
)

// Watcher monitors a directory tree and triggers a callback after changes settle.
type Watcher struct {
	root         string
	watcher      *fsnotify.Watcher
	debounceTime time.Duration
	logger       *slog.Logger
	skipHidden   bool
}

// Option configures a Watcher.
type Option func(*Watcher)

// WithSkipHidden ignores dot-directories and dotfiles below the root.
func WithSkipHidden(skip bool) Option {
	return func(w *Watcher) { w.skipHidden = skip }
}

// New creates a watcher for every directory under root except .git (and other
// dot-directories when WithSkipHidden is set). Directories created later are
// added as their create events arrive.
func New(root string, debounce time.Duration, logger *slog.Logger, opts ...Option) (*Watcher, error) {
	if logger == nil {
		logger = slog.Default()
	}
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}

	w := &Watcher{
		root:         root,
		watcher:      fsw,
		debounceTime: debounce,
		logger:       logger,
	}
	for _, opt := range opts {
		opt(w)
	}
	if err := w.addTree(root); err != nil {
		_ = fsw.Close()
		return nil, err
	}
	return w, nil
}

// Run blocks until ctx is done, calling onChange once per burst of relevant
// events. onChange runs on the watcher goroutine; events arriving meanwhile
// are queued by fsnotify and start a new debounce window afterwards.
func (w *Watcher) Run(ctx context.Context, onChange func(context.Context)) error {
	defer func() {
		if err := w.watcher.Close(); err != nil {
			w.logger.Error("Error closing file watcher", logfields.Error(err))
		}
	}()

	var timer *time.Timer
	var fire <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			return nil
		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			if !w.handleEvent(event) {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(w.debounceTime)
			} else {
				timer.Reset(w.debounceTime)
			}
			fire = timer.C
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("File watcher error", logfields.Error(err))
		case <-fire:
			fire = nil
			onChange(ctx)
		}
	}
}

// handleEvent tracks new directories and reports whether the event should trigger a re-run.
func (w *Watcher) handleEvent(event fsnotify.Event) bool {
	if w.ignored(event.Name) {
		return false
	}
	if event.Op == fsnotify.Chmod {
		return false
	}

	if event.Has(fsnotify.Create) {
		if err := w.addTree(event.Name); err != nil {
			w.logger.Debug("Could not watch new path", logfields.File(event.Name), logfields.Error(err))
		}
	}

	w.logger.Debug("Content change detected", logfields.File(event.Name), slog.String("op", event.Op.String()))
	return true
}

// addTree watches path and every directory beneath it that is not ignored. Regular files are skipped.
func (w *Watcher) addTree(path string) error {
	return filepath.WalkDir(path, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			if p == path {
				return err
			}
			return nil
		}
		if !d.IsDir() {
			return nil
		}
		if p != w.root && w.ignored(p) {
			return fs.SkipDir
		}
		if err := w.watcher.Add(p); err != nil {
			return fmt.Errorf("failed to watch directory %s: %w", p, err)
		}
		return nil
	})
}

// ignored reports paths whose changes never affect a check: the git
// directory, editor scratch files and, with skipHidden, any dot-name.
func (w *Watcher) ignored(path string) bool {
	base := filepath.Base(path)
	if base == ".git" || isEditorTemp(base) {
		return true
	}
	return w.skipHidden && strings.HasPrefix(base, ".")
}

// isEditorTemp reports backup, swap and lock files written by editors.
func isEditorTemp(base string) bool {
	switch {
	case strings.HasSuffix(base, "~"), strings.HasPrefix(base, ".#"):
		return true
	case strings.HasPrefix(base, ".") && (strings.HasSuffix(base, ".swp") || strings.HasSuffix(base, ".swx")):
		return true
	}
	return false
}

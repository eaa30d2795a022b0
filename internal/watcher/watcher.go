// Package watcher keeps a site's document index current while files change.
//
// It is used by `sdate watch` after an initial build.
package watcher

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/sirupsen/logrus"

	"github.com/aidanlsb/sitedates/internal/index"
	"github.com/aidanlsb/sitedates/internal/paths"
	"github.com/aidanlsb/sitedates/internal/site"
)

// Event reports one applied change.
type Event struct {
	Path    string // site-relative
	Removed bool
	Doc     site.Document
	Err     error
}

// Watcher monitors a site's input directory and reindexes changed documents.
type Watcher struct {
	root string
	opts site.WalkOptions
	db   *index.Database
	log  logrus.FieldLogger

	debounceDelay time.Duration

	fsWatcher *fsnotify.Watcher
	pending   map[string]time.Time
	mu        sync.Mutex

	// reportMu serializes onChange across the event loop and the
	// debounce goroutine.
	reportMu sync.Mutex
	onChange func(Event)
}

// Config holds configuration options for the Watcher.
type Config struct {
	Root          string
	Options       site.WalkOptions
	Database      *index.Database
	Log           logrus.FieldLogger
	DebounceDelay time.Duration // Default: 100ms
	OnChange      func(Event)   // Optional callback
}

// New creates a new Watcher with the given configuration.
func New(cfg Config) (*Watcher, error) {
	if cfg.Root == "" {
		return nil, fmt.Errorf("site root is required")
	}
	if cfg.Database == nil {
		return nil, fmt.Errorf("database is required")
	}

	debounce := cfg.DebounceDelay
	if debounce == 0 {
		debounce = 100 * time.Millisecond
	}
	log := cfg.Log
	if log == nil {
		log = logrus.StandardLogger()
	}

	return &Watcher{
		root:          cfg.Root,
		opts:          cfg.Options,
		db:            cfg.Database,
		log:           log.WithField("component", "watcher"),
		debounceDelay: debounce,
		pending:       make(map[string]time.Time),
		onChange:      cfg.OnChange,
	}, nil
}

// Start watches the site until ctx is cancelled. It returns only after the
// debounce goroutine has exited, so no index write is in flight.
func (w *Watcher) Start(ctx context.Context) error {
	var err error
	w.fsWatcher, err = fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	defer w.fsWatcher.Close()

	if err := w.addWatchRecursive(w.root); err != nil {
		return fmt.Errorf("failed to watch site: %w", err)
	}
	w.log.WithField("root", w.root).Debug("watching")

	loopCtx, cancel := context.WithCancel(ctx)
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		w.processDebounced(loopCtx)
	}()
	defer wg.Wait()
	defer cancel()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return nil
			}
			w.handleEvent(ctx, event)

		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return nil
			}
			w.log.WithError(err).Warn("watcher error")
		}
	}
}

// ReindexFile reads one markdown file and upserts it. Files with unreadable
// front matter are left out of the index and reported in the event.
func (w *Watcher) ReindexFile(ctx context.Context, path string) Event {
	if !filepath.IsAbs(path) {
		path = filepath.Join(w.root, path)
	}
	doc := site.ReadDocument(w.root, path, w.opts)
	ev := Event{Path: doc.RelativePath, Doc: doc, Err: doc.Err}
	if doc.Err != nil {
		return ev
	}
	if err := w.db.Upsert(ctx, doc.Record()); err != nil {
		ev.Err = err
	}
	return ev
}

// RemoveFromIndex drops the document at path from the index.
func (w *Watcher) RemoveFromIndex(ctx context.Context, path string) Event {
	rel, err := paths.RelPath(w.root, path)
	if err != nil {
		return Event{Path: path, Removed: true, Err: err}
	}
	return Event{Path: rel, Removed: true, Err: w.db.Delete(ctx, rel)}
}

func (w *Watcher) handleEvent(ctx context.Context, event fsnotify.Event) {
	path := event.Name

	if !strings.HasSuffix(path, ".md") {
		// Watch new directories
		if event.Op&fsnotify.Create != 0 {
			if info, err := os.Stat(path); err == nil && info.IsDir() && !w.shouldIgnore(path) {
				_ = w.addWatchRecursive(path)
			}
		}
		return
	}
	if w.shouldIgnore(path) {
		return
	}

	w.log.WithField("op", event.Op.String()).WithField("path", path).Debug("event")

	switch {
	case event.Op&(fsnotify.Write|fsnotify.Create) != 0:
		w.scheduleReindex(path)
	case event.Op&(fsnotify.Remove|fsnotify.Rename) != 0:
		w.mu.Lock()
		delete(w.pending, path)
		w.mu.Unlock()
		w.report(w.RemoveFromIndex(ctx, path))
	}
}

func (w *Watcher) scheduleReindex(path string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.pending[path] = time.Now()
}

func (w *Watcher) processDebounced(ctx context.Context) {
	ticker := time.NewTicker(50 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			w.processPending(ctx)
		}
	}
}

// processPending reindexes files whose last event is older than the
// debounce delay.
func (w *Watcher) processPending(ctx context.Context) {
	w.mu.Lock()
	now := time.Now()
	var ready []string
	for path, scheduledAt := range w.pending {
		if now.Sub(scheduledAt) >= w.debounceDelay {
			ready = append(ready, path)
			delete(w.pending, path)
		}
	}
	w.mu.Unlock()

	for _, path := range ready {
		w.report(w.ReindexFile(ctx, path))
	}
}

func (w *Watcher) report(ev Event) {
	entry := w.log.WithField("path", ev.Path)
	switch {
	case ev.Err != nil:
		entry.WithError(ev.Err).Warn("reindex failed")
	case ev.Removed:
		entry.Info("removed")
	case ev.Doc.DateErr != nil:
		entry.WithError(ev.Doc.DateErr).Warn("invalid date")
	default:
		entry.Info("reindexed")
	}
	if w.onChange != nil {
		w.reportMu.Lock()
		defer w.reportMu.Unlock()
		w.onChange(ev)
	}
}

func (w *Watcher) addWatchRecursive(root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil // Skip errors
		}
		if !d.IsDir() {
			return nil
		}
		if path != w.root && w.shouldIgnoreDir(d.Name()) {
			return filepath.SkipDir
		}
		if err := w.fsWatcher.Add(path); err != nil {
			w.log.WithError(err).WithField("path", path).Debug("failed to watch")
		}
		return nil
	})
}

func (w *Watcher) shouldIgnore(path string) bool {
	rel, err := paths.RelPath(w.root, path)
	if err != nil {
		return false
	}
	return w.opts.Ignored(rel)
}

func (w *Watcher) shouldIgnoreDir(name string) bool {
	_, skip := w.opts.Ignore[name]
	return skip
}

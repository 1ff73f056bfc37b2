// Package watch reloads the catalog when its YAML file changes on disk.
package watch

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"sync"
	"time"

	"github.com/Zachkp/portfolio/internal/catalog"
	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// A half-written file decodes as an empty catalog; never swap that in.
var errEmptyCatalog = errors.New("catalog file is empty")

// DefaultDebounce is how long the file must stay quiet before a reload.
const DefaultDebounce = 300 * time.Millisecond

// Stats counts watcher activity.
type Stats struct {
	Events    int
	Reloads   int
	Failures  int
	LastError string
}

// Watcher replaces the store contents with the catalog file each time the
// file settles after a change. A file that fails to decode or validate is
// logged and the current catalog is kept.
type Watcher struct {
	mu       sync.Mutex
	watcher  *fsnotify.Watcher
	store    *catalog.Store
	path     string
	debounce time.Duration
	logger   *zap.Logger

	pending time.Time
	stats   Stats
	running bool
	stopCh  chan struct{}
	doneCh  chan struct{}
}

// New creates a watcher of the catalog file at path. A debounce of zero
// means DefaultDebounce.
func New(path string, store *catalog.Store, debounce time.Duration, logger *zap.Logger) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		_ = fw.Close()
		return nil, err
	}
	return &Watcher{
		watcher:  fw,
		store:    store,
		path:     abs,
		debounce: debounce,
		logger:   logger.With(zap.String("catalog", abs)),
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}, nil
}

// Start begins watching and returns immediately. The directory of the file
// is watched so that editors replacing the file are seen too.
func (w *Watcher) Start(ctx context.Context) error {
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		return nil
	}
	w.running = true
	w.mu.Unlock()

	if err := w.watcher.Add(filepath.Dir(w.path)); err != nil {
		w.mu.Lock()
		w.running = false
		w.mu.Unlock()
		return fmt.Errorf("watch %s: %w", filepath.Dir(w.path), err)
	}
	w.logger.Info("watching catalog", zap.Duration("debounce", w.debounce))

	go w.run(ctx)
	return nil
}

// Stop ends the watch loop and waits for it to exit.
func (w *Watcher) Stop() {
	w.mu.Lock()
	if !w.running {
		w.mu.Unlock()
		return
	}
	w.running = false
	w.mu.Unlock()

	close(w.stopCh)
	<-w.doneCh
	if err := w.watcher.Close(); err != nil {
		w.logger.Warn("close watcher", zap.Error(err))
	}
}

// Stats returns a copy of the activity counters.
func (w *Watcher) Stats() Stats {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.stats
}

func (w *Watcher) run(ctx context.Context) {
	defer close(w.doneCh)

	ticker := time.NewTicker(tickInterval(w.debounce))
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-w.stopCh:
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.handleEvent(event)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Error("watch error", zap.Error(err))
		case <-ticker.C:
			if w.settled() {
				w.reload()
			}
		}
	}
}

func (w *Watcher) handleEvent(event fsnotify.Event) {
	if filepath.Clean(event.Name) != w.path {
		return
	}
	if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) && !event.Has(fsnotify.Rename) {
		return
	}
	w.logger.Debug("catalog changed", zap.String("op", event.Op.String()))

	w.mu.Lock()
	w.stats.Events++
	w.pending = time.Now()
	w.mu.Unlock()
}

// settled reports whether a change is pending and the debounce window has
// passed since the last event. It clears the pending change.
func (w *Watcher) settled() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.pending.IsZero() || time.Since(w.pending) < w.debounce {
		return false
	}
	w.pending = time.Time{}
	return true
}

func (w *Watcher) reload() {
	data, err := catalog.LoadFile(w.path)
	if err == nil && len(data.Projects) == 0 && len(data.Categories) == 0 {
		err = errEmptyCatalog
	}
	if err == nil {
		err = w.store.Replace(data)
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	if errors.Is(err, fs.ErrNotExist) {
		// A rename in progress; the create that follows schedules a reload.
		return
	}
	if err != nil {
		w.stats.Failures++
		w.stats.LastError = err.Error()
		w.logger.Error("catalog reload failed, keeping current catalog", zap.Error(err))
		return
	}
	w.stats.Reloads++
	w.logger.Info("catalog reloaded", zap.Int("projects", len(data.Projects)))
}

func tickInterval(debounce time.Duration) time.Duration {
	return min(max(debounce/2, 10*time.Millisecond), 100*time.Millisecond)
}

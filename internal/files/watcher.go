package files

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"serpentaware/internal/catalog"
)

const defaultDebounce = 250 * time.Millisecond

// ReloadFunc receives every successfully parsed version of the watched file.
type ReloadFunc func(ctx context.Context, d catalog.Dataset) error

// Watcher reloads a dataset file when it changes on disk. The parent directory
// is watched rather than the file so editors that replace files by rename are
// still seen.
type Watcher struct {
	path     string
	onReload ReloadFunc
	debounce time.Duration
	logger   *zap.Logger
	onError  func(error)
}

type WatcherOption func(*Watcher)

// WithDebounce collapses bursts of events into one reload.
func WithDebounce(d time.Duration) WatcherOption {
	return func(w *Watcher) { w.debounce = d }
}

func WithLogger(l *zap.Logger) WatcherOption {
	return func(w *Watcher) { w.logger = l }
}

// WithErrorHandler is called when the changed file cannot be loaded.
func WithErrorHandler(fn func(error)) WatcherOption {
	return func(w *Watcher) { w.onError = fn }
}

func NewWatcher(path string, onReload ReloadFunc, opts ...WatcherOption) *Watcher {
	w := &Watcher{
		path:     filepath.Clean(path),
		onReload: onReload,
		debounce: defaultDebounce,
		logger:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Run blocks until ctx is done. A file that fails to parse is logged and
// skipped; whatever was loaded last stays in service.
func (w *Watcher) Run(ctx context.Context) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer fw.Close()

	if err := fw.Add(filepath.Dir(w.path)); err != nil {
		return fmt.Errorf("watch %s: %w", filepath.Dir(w.path), err)
	}
	w.logger.Info("watching dataset", zap.String("path", w.path))

	timer := time.NewTimer(w.debounce)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != w.path || !relevant(ev.Op) {
				continue
			}
			timer.Reset(w.debounce)
		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("watcher error", zap.Error(err))
		case <-timer.C:
			w.reload(ctx)
		}
	}
}

func (w *Watcher) reload(ctx context.Context) {
	d, err := LoadDataset(w.path)
	if err != nil {
		w.logger.Warn("dataset reload skipped", zap.String("path", w.path), zap.Error(err))
		if w.onError != nil {
			w.onError(err)
		}
		return
	}
	if err := w.onReload(ctx, d); err != nil {
		w.logger.Warn("dataset reload rejected", zap.String("path", w.path), zap.Error(err))
		return
	}
	w.logger.Info("dataset reloaded",
		zap.String("path", w.path),
		zap.Int("snakes", len(d.Snakes)),
		zap.Int("emergency_info", len(d.EmergencyInfo)))
}

func relevant(op fsnotify.Op) bool {
	return op.Has(fsnotify.Write) || op.Has(fsnotify.Create) || op.Has(fsnotify.Rename)
}

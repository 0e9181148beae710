package preset

import (
	"context"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// Update is one reload result. Exactly one of Catalog and Err is set.
type Update struct {
	Catalog *Catalog
	Err     error
}

// Watcher reloads a preset file when it changes on disk. It watches the
// parent directory so editors that save by rename are picked up too.
type Watcher struct {
	mu       sync.Mutex
	source   string // as given, so catalog hashes match the initial load
	path     string
	logger   *zap.Logger
	watcher  *fsnotify.Watcher
	debounce time.Duration
	lastHash string
	updates  chan Update
	stopCh   chan struct{}
	doneCh   chan struct{}
	running  bool
	stopped  bool
}

// NewWatcher prepares a watcher for path. lastHash is the hash of the
// catalog already in use, so an unchanged file is not reported again.
func NewWatcher(path, lastHash string, logger *zap.Logger) (*Watcher, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		fw.Close()
		return nil, err
	}
	return &Watcher{
		source:   path,
		path:     abs,
		logger:   logger,
		watcher:  fw,
		debounce: 200 * time.Millisecond,
		lastHash: lastHash,
		updates:  make(chan Update, 1),
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}, nil
}

// Updates delivers reload results. Only the latest undelivered result is
// kept.
func (w *Watcher) Updates() <-chan Update {
	return w.updates
}

// Start begins watching in a background goroutine. Calling it again is a
// no-op.
func (w *Watcher) Start(ctx context.Context) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.running || w.stopped {
		return nil
	}
	if err := w.watcher.Add(filepath.Dir(w.path)); err != nil {
		return err
	}
	w.running = true
	w.logger.Debug("watching presets", zap.String("path", w.path))
	go w.run(ctx)
	return nil
}

// Stop ends the watch loop and releases the underlying watcher. Safe to
// call more than once and before Start.
func (w *Watcher) Stop() {
	w.mu.Lock()
	if w.stopped {
		w.mu.Unlock()
		return
	}
	w.stopped = true
	running := w.running
	w.running = false
	w.mu.Unlock()

	close(w.stopCh)
	if running {
		<-w.doneCh
	}
	if err := w.watcher.Close(); err != nil {
		w.logger.Warn("closing preset watcher", zap.Error(err))
	}
}

func (w *Watcher) run(ctx context.Context) {
	defer close(w.doneCh)

	var timer *time.Timer
	var fire <-chan time.Time
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return
		case <-w.stopCh:
			return
		case ev, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != w.path {
				continue
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			fire = timer.C
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Warn("preset watcher error", zap.Error(err))
		case <-fire:
			fire = nil
			w.reload()
		}
	}
}

func (w *Watcher) reload() {
	c, err := Load(w.source, w.logger)
	if err != nil {
		w.logger.Warn("preset reload failed", zap.Error(err))
		w.publish(Update{Err: err})
		return
	}
	if c.Hash == w.lastHash {
		return
	}
	w.lastHash = c.Hash
	w.logger.Info("presets reloaded", zap.String("path", w.source), zap.Strings("presets", c.Names()))
	w.publish(Update{Catalog: c})
}

func (w *Watcher) publish(u Update) {
	select {
	case w.updates <- u:
		return
	default:
	}
	// drop the stale pending update and retry once
	select {
	case <-w.updates:
	default:
	}
	select {
	case w.updates <- u:
	default:
	}
}

// file: internal/watcher/watcher.go
// version: 3.0.0
// guid: b2c3d4e5-f6a7-8901-bcde-f23456789012

// Package watcher reloads the catalog when its file changes on disk.
package watcher

import (
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/jdfalk/cover-preview/internal/clock"
)

// DefaultDebounce is the default debounce period.
const DefaultDebounce = 500 * time.Millisecond

// Callback is invoked after the debounce period with the watched file path.
type Callback func(path string)

// Watcher monitors a single file and invokes a callback once writes to it
// settle. The parent directory is watched so editors that replace the file
// by rename are still seen.
type Watcher struct {
	fsWatcher *fsnotify.Watcher
	path      string
	debounce  time.Duration
	callback  Callback
	clock     clock.Clock
	log       *zap.Logger
	stop      chan struct{}
	stopped   chan struct{}
	mu        sync.Mutex
	timer     clock.Timer
	running   bool
}

// Option configures a Watcher.
type Option func(*Watcher)

// WithClock replaces the clock used for debouncing.
func WithClock(c clock.Clock) Option {
	return func(w *Watcher) { w.clock = c }
}

// WithLogger sets the logger.
func WithLogger(log *zap.Logger) Option {
	return func(w *Watcher) { w.log = log.Named("watcher") }
}

// New creates a Watcher. Pass 0 for debounce to use DefaultDebounce.
func New(callback Callback, debounce time.Duration, opts ...Option) *Watcher {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	w := &Watcher{
		debounce: debounce,
		callback: callback,
		clock:    clock.Real(),
		log:      zap.NewNop(),
		stop:     make(chan struct{}),
		stopped:  make(chan struct{}),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Start begins watching path. Calling it again is a no-op.
func (w *Watcher) Start(path string) error {
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		return nil
	}
	w.running = true
	w.mu.Unlock()

	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	if err := fsw.Add(filepath.Dir(abs)); err != nil {
		fsw.Close()
		return err
	}
	w.fsWatcher = fsw
	w.path = abs

	go w.eventLoop()
	return nil
}

// Stop shuts down the watcher and waits for the event loop to exit.
func (w *Watcher) Stop() {
	w.mu.Lock()
	if !w.running {
		w.mu.Unlock()
		return
	}
	w.running = false
	w.mu.Unlock()

	close(w.stop)
	if w.fsWatcher != nil {
		w.fsWatcher.Close()
		<-w.stopped
	}

	w.mu.Lock()
	if w.timer != nil {
		w.timer.Stop()
		w.timer = nil
	}
	w.mu.Unlock()
}

func (w *Watcher) eventLoop() {
	defer close(w.stopped)

	for {
		select {
		case <-w.stop:
			return
		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return
			}
			w.handleEvent(event)
		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return
			}
			w.log.Error("watch error", zap.Error(err))
		}
	}
}

func (w *Watcher) handleEvent(event fsnotify.Event) {
	if !w.matches(event.Name) {
		return
	}
	if !event.Op.Has(fsnotify.Create) && !event.Op.Has(fsnotify.Write) && !event.Op.Has(fsnotify.Rename) {
		return
	}
	w.log.Debug("catalog changed", zap.String("op", event.Op.String()))
	w.scheduleReload()
}

func (w *Watcher) matches(name string) bool {
	abs, err := filepath.Abs(name)
	if err != nil {
		return false
	}
	return abs == w.path
}

func (w *Watcher) scheduleReload() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.timer != nil {
		w.timer.Reset(w.debounce)
		return
	}

	w.timer = w.clock.AfterFunc(w.debounce, func() {
		w.mu.Lock()
		w.timer = nil
		w.mu.Unlock()

		w.log.Info("reloading catalog", zap.String("path", w.path))
		if w.callback != nil {
			w.callback(w.path)
		}
	})
}

// Package watch reports when the contents of a folder change, so that a
// listing can be refreshed. It does not interpret the change; consumers ask
// the engine again.
package watch

import (
	"context"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/Ning0612/drawfolders/internal/domain"
	"github.com/Ning0612/drawfolders/internal/logger"
)

// DefaultDebounce is how long the folder must stay quiet before an Event fires
const DefaultDebounce = 300 * time.Millisecond

// Event says that the watched folder changed at least once
type Event struct {
	Path string
	At   time.Time
	// Changes is the number of raw notifications folded into this event
	Changes int
}

// Option configures a Watcher
type Option func(*Watcher)

// WithDebounce sets the quiet period; non-positive values keep the default
func WithDebounce(d time.Duration) Option {
	return func(w *Watcher) {
		if d > 0 {
			w.debounce = d
		}
	}
}

// WithLogger sets the logger
func WithLogger(l logger.Logger) Option {
	return func(w *Watcher) {
		if l != nil {
			w.log = l
		}
	}
}

// Watcher watches the immediate children of one folder
type Watcher struct {
	mu       sync.Mutex
	path     string
	watcher  *fsnotify.Watcher
	debounce time.Duration
	log      logger.Logger
	events   chan Event
	stopCh   chan struct{}
	doneCh   chan struct{}
	started  bool
	stopped  bool
}

// New creates a watcher for path. Nothing is watched until Start.
func New(path string, opts ...Option) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	w := &Watcher{
		path:     path,
		watcher:  fw,
		debounce: DefaultDebounce,
		log:      &logger.NullLogger{},
		events:   make(chan Event, 1),
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}
	for _, opt := range opts {
		opt(w)
	}
	w.log = w.log.With("component", "watch", "path", path)
	return w, nil
}

// Events delivers debounced change notifications. The channel is closed
// once the watcher stops. A consumer that falls behind misses no change:
// pending notifications are merged into the event it has not read yet.
func (w *Watcher) Events() <-chan Event {
	return w.events
}

// Start begins watching. It returns a *domain.DirectoryError when the folder
// cannot be watched. Calling Start again has no effect.
func (w *Watcher) Start(ctx context.Context) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.started || w.stopped {
		return nil
	}
	if err := w.watcher.Add(w.path); err != nil {
		return &domain.DirectoryError{Path: w.path, Err: err}
	}
	w.started = true

	go w.run(ctx)
	w.log.Debug("watching folder", "debounce", w.debounce)
	return nil
}

// Stop ends the watch and waits for the event loop to exit. It is safe to
// call more than once and without a prior Start.
func (w *Watcher) Stop() {
	w.mu.Lock()
	if w.stopped {
		w.mu.Unlock()
		return
	}
	w.stopped = true
	started := w.started
	w.mu.Unlock()

	close(w.stopCh)
	if started {
		<-w.doneCh
	} else {
		close(w.events)
	}

	if err := w.watcher.Close(); err != nil {
		w.log.Warn("closing watcher failed", "error", err)
	}
	w.log.Debug("watch stopped")
}

func (w *Watcher) run(ctx context.Context) {
	defer close(w.doneCh)
	defer close(w.events)

	timer := time.NewTimer(w.debounce)
	timer.Stop()
	defer timer.Stop()

	pending := 0
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
			if ev.Op == fsnotify.Chmod {
				continue
			}
			pending++
			timer.Reset(w.debounce)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.log.Warn("watch error", "error", err)

		case <-timer.C:
			if pending == 0 {
				continue
			}
			w.emit(pending)
			pending = 0
		}
	}
}

// emit delivers without blocking, merging into an unread event if there is one
func (w *Watcher) emit(changes int) {
	ev := Event{Path: w.path, At: time.Now(), Changes: changes}
	for {
		select {
		case w.events <- ev:
			return
		default:
		}
		select {
		case old := <-w.events:
			ev.Changes += old.Changes
		default:
		}
	}
}

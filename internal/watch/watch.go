// Package watch implements the filesystem-change monitor collaborator
// named in spec.md §1 as external to the core: the index-build pipeline
// consumes its events to re-tokenize changed files, but the core itself
// never watches anything. Grounded on the teacher's
// internal/indexing.FileWatcher (fsnotify-backed, debounced event
// dispatch over a cancellable context).
package watch

import (
	"context"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/standardbeagle/extentix/internal/obslog"
)

// EventType mirrors the teacher's FileEventType enum.
type EventType int

const (
	Created EventType = iota
	Written
	Removed
	Renamed
)

// Event is one debounced filesystem change ready for the build pipeline
// to act on.
type Event struct {
	Path string
	Type EventType
}

// Watcher wraps an fsnotify.Watcher with debouncing so a burst of writes
// to the same path (the common case for editors that write-then-rename)
// collapses into a single Event.
type Watcher struct {
	fsw      *fsnotify.Watcher
	debounce time.Duration
	log      *obslog.Logger

	mu      sync.Mutex
	pending map[string]Event
	timers  map[string]*time.Timer

	events chan Event
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// New creates a Watcher that coalesces events within debounce of each
// other per path, per the teacher's eventDebouncer.
func New(debounce time.Duration) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	return &Watcher{
		fsw:      fsw,
		debounce: debounce,
		log:      obslog.New("watch: ", false),
		pending:  make(map[string]Event),
		timers:   make(map[string]*time.Timer),
		events:   make(chan Event, 256),
	}, nil
}

// Add registers a directory for monitoring. Non-recursive; callers walk
// the tree and Add each directory, matching fsnotify's own model.
func (w *Watcher) Add(dir string) error {
	return w.fsw.Add(dir)
}

// Events returns the channel of debounced, ready-to-process events.
func (w *Watcher) Events() <-chan Event { return w.events }

// Start begins dispatching fsnotify events through the debouncer until
// ctx is canceled or Close is called.
func (w *Watcher) Start(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	w.cancel = cancel
	w.wg.Add(1)
	go w.run(ctx)
}

func (w *Watcher) run(ctx context.Context) {
	defer w.wg.Done()
	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			w.schedule(toEvent(ev))
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			w.log.Errorf("fsnotify error: %v", err)
		}
	}
}

func toEvent(ev fsnotify.Event) Event {
	switch {
	case ev.Op&fsnotify.Create != 0:
		return Event{Path: ev.Name, Type: Created}
	case ev.Op&fsnotify.Remove != 0:
		return Event{Path: ev.Name, Type: Removed}
	case ev.Op&fsnotify.Rename != 0:
		return Event{Path: ev.Name, Type: Renamed}
	default:
		return Event{Path: ev.Name, Type: Written}
	}
}

// schedule coalesces repeated events for the same path into one Event
// emitted debounce after the last observed change.
func (w *Watcher) schedule(ev Event) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.pending[ev.Path] = ev
	if t, ok := w.timers[ev.Path]; ok {
		t.Stop()
	}
	w.timers[ev.Path] = time.AfterFunc(w.debounce, func() { w.flush(ev.Path) })
}

func (w *Watcher) flush(path string) {
	w.mu.Lock()
	ev, ok := w.pending[path]
	delete(w.pending, path)
	delete(w.timers, path)
	w.mu.Unlock()
	if !ok {
		return
	}
	select {
	case w.events <- ev:
	default:
		w.log.Warnf("event channel full, dropping event for %s", path)
	}
}

// Close stops dispatching and releases the underlying fsnotify watcher.
func (w *Watcher) Close() error {
	if w.cancel != nil {
		w.cancel()
	}
	w.wg.Wait()
	close(w.events)
	return w.fsw.Close()
}

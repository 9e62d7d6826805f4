package backend

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/atomicstack/a11yfy/internal/logging/events"
	"github.com/atomicstack/a11yfy/internal/markup"
	"github.com/atomicstack/a11yfy/internal/menu"
)

// Kind represents the type of data emitted by the watcher.
type Kind int

const (
	KindVisibility Kind = iota
)

// Event conveys a re-read snapshot or the error that prevented one.
type Event struct {
	Kind Kind
	Data interface{}
	Err  error
}

const reloadInterval = 100 * time.Millisecond

// Watcher re-reads an HTML file whenever it changes on disk and publishes
// the menu's item visibility.
type Watcher struct {
	path     string
	selector string
	fs       *fsnotify.Watcher

	ctx    context.Context
	cancel context.CancelFunc

	events chan Event
	wg     sync.WaitGroup
}

// NewWatcher starts watching path. The first snapshot is published
// immediately.
func NewWatcher(path, selector string) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	// Watch the directory: editors often replace files by renaming.
	if err := fsw.Add(filepath.Dir(abs)); err != nil {
		fsw.Close()
		return nil, fmt.Errorf("watch %s: %w", filepath.Dir(abs), err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	w := &Watcher{
		path:     abs,
		selector: selector,
		fs:       fsw,
		ctx:      ctx,
		cancel:   cancel,
		events:   make(chan Event, 16),
	}

	w.wg.Add(1)
	go w.run()

	go func() {
		w.wg.Wait()
		close(w.events)
	}()

	return w, nil
}

// Events returns a channel of watcher events.
func (w *Watcher) Events() <-chan Event {
	return w.events
}

// Stop cancels the watcher.
func (w *Watcher) Stop() {
	w.cancel()
}

// Wait blocks until the watcher goroutine has exited and the events channel
// is closed.
func (w *Watcher) Wait() {
	w.wg.Wait()
}

func (w *Watcher) run() {
	defer w.wg.Done()
	defer w.fs.Close()

	throttle := newThrottle(reloadInterval)
	if !w.emit() {
		return
	}
	for {
		select {
		case <-w.ctx.Done():
			return
		case ev, ok := <-w.fs.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != w.path || !(ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create)) {
				continue
			}
			if !throttle.wait(w.ctx) || !w.emit() {
				return
			}
		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			if !w.send(Event{Kind: KindVisibility, Err: err}) {
				return
			}
		}
	}
}

func (w *Watcher) emit() bool {
	snapshot, err := w.load()
	events.Watch.Reload(w.path, err)
	return w.send(Event{Kind: KindVisibility, Data: snapshot, Err: err})
}

func (w *Watcher) load() ([]menu.Visibility, error) {
	doc, err := markup.ParseFile(w.path)
	if err != nil {
		return nil, err
	}
	root, err := doc.Element(w.selector)
	if err != nil {
		return nil, err
	}
	return menu.Snapshot(root)
}

func (w *Watcher) send(evt Event) bool {
	select {
	case <-w.ctx.Done():
		return false
	case w.events <- evt:
		return true
	}
}

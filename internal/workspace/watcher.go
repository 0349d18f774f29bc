package workspace

import (
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/onecode/onecode/internal/log"
	"github.com/onecode/onecode/internal/pubsub"
)

// DefaultDebounce is how long a file must be quiet before its change is
// reported.
const DefaultDebounce = 200 * time.Millisecond

// FileEvent is the payload of a watcher event. Err is set for
// pubsub.ErrorEvent only.
type FileEvent struct {
	Path string
	Err  error
}

// Watcher reports external changes to a set of open files. Editors often
// save by writing a new file and renaming it over the old one, so the
// watcher follows the parent directories rather than the files.
type Watcher struct {
	fsWatcher *fsnotify.Watcher
	broker    *pubsub.Broker[FileEvent]
	debounce  time.Duration

	mu    sync.Mutex
	files map[string]bool // cleaned absolute paths
	dirs  map[string]int  // watched directory -> open files inside

	done chan struct{}
	wg   sync.WaitGroup
}

// NewWatcher starts a watcher whose events are published on broker.
func NewWatcher(broker *pubsub.Broker[FileEvent], debounce time.Duration) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating fsnotify watcher: %w", err)
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	w := &Watcher{
		fsWatcher: fsw,
		broker:    broker,
		debounce:  debounce,
		files:     make(map[string]bool),
		dirs:      make(map[string]int),
		done:      make(chan struct{}),
	}
	w.wg.Add(1)
	go w.loop()
	return w, nil
}

// Add starts reporting changes to path.
func (w *Watcher) Add(path string) error {
	path, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("resolving %s: %w", path, err)
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	if w.files[path] {
		return nil
	}
	dir := filepath.Dir(path)
	if w.dirs[dir] == 0 {
		if err := w.fsWatcher.Add(dir); err != nil {
			return fmt.Errorf("watching directory %s: %w", dir, err)
		}
	}
	w.dirs[dir]++
	w.files[path] = true
	log.Debug(log.CatWorkspace, "watching", "path", path)
	return nil
}

// Remove stops reporting changes to path.
func (w *Watcher) Remove(path string) {
	path, err := filepath.Abs(path)
	if err != nil {
		return
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	if !w.files[path] {
		return
	}
	delete(w.files, path)
	dir := filepath.Dir(path)
	w.dirs[dir]--
	if w.dirs[dir] == 0 {
		delete(w.dirs, dir)
		_ = w.fsWatcher.Remove(dir)
	}
}

// Close stops the watcher.
func (w *Watcher) Close() error {
	select {
	case <-w.done:
		return nil
	default:
	}
	close(w.done)
	err := w.fsWatcher.Close()
	w.wg.Wait()
	return err
}

// loop coalesces bursts of events per file and publishes one event per
// file once the burst is over.
func (w *Watcher) loop() {
	defer w.wg.Done()

	var (
		timer   *time.Timer
		timerC  <-chan time.Time
		pending = make(map[string]pubsub.EventType)
	)

	for {
		select {
		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return
			}
			typ, relevant := w.classify(event)
			if !relevant {
				continue
			}
			pending[filepath.Clean(event.Name)] = typ

			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				if !timer.Stop() {
					select {
					case <-timer.C:
					default:
					}
				}
				timer.Reset(w.debounce)
			}
			timerC = timer.C

		case <-timerC:
			timerC = nil
			for path, typ := range pending {
				log.Debug(log.CatWorkspace, "file event", "path", path, "type", typ)
				w.broker.Publish(typ, FileEvent{Path: path})
			}
			clear(pending)

		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return
			}
			log.ErrorErr(log.CatWorkspace, "watch error", err)
			w.broker.Publish(pubsub.ErrorEvent, FileEvent{Err: err})

		case <-w.done:
			if timer != nil {
				timer.Stop()
			}
			return
		}
	}
}

// classify maps an fsnotify event on a watched file to an event type.
// Writes and creates (a rename landing on the path) are changes; removes
// and renames away are removals. Chmod is ignored.
func (w *Watcher) classify(event fsnotify.Event) (pubsub.EventType, bool) {
	w.mu.Lock()
	watched := w.files[filepath.Clean(event.Name)]
	w.mu.Unlock()
	if !watched {
		return "", false
	}

	switch {
	case event.Op.Has(fsnotify.Write), event.Op.Has(fsnotify.Create):
		return pubsub.ChangedEvent, true
	case event.Op.Has(fsnotify.Remove), event.Op.Has(fsnotify.Rename):
		return pubsub.RemovedEvent, true
	}
	return "", false
}

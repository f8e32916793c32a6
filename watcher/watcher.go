// Package watcher observes the artifact directories and reports every
// relevant filesystem change as a classified topic event. It runs for the
// lifetime of the process as an explicitly owned component; there is no
// global instance.
package watcher

import (
	"os"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"

	"claudeboard/config"
	"claudeboard/log"
	"claudeboard/notifications"
)

// Watcher maps filesystem events to change notifications. It is either
// stopped (initial) or running; Start and Stop are idempotent.
type Watcher struct {
	paths  config.Paths
	notify func(notifications.Event)

	mu     sync.Mutex
	fsw    *fsnotify.Watcher
	stopCh chan struct{}
	wg     sync.WaitGroup
}

// New creates a watcher that passes each classified event to notify.
func New(paths config.Paths, notify func(notifications.Event)) *Watcher {
	return &Watcher{
		paths:  paths,
		notify: notify,
	}
}

// Start begins watching. The initial directory walk only registers watches;
// it never produces notifications. Starting a running watcher is a no-op.
func (w *Watcher) Start() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.fsw != nil {
		return nil
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	w.fsw = fsw
	w.stopCh = make(chan struct{})

	// The claude root itself is watched non-recursively for the stats cache;
	// the artifact directories are watched recursively.
	if err := fsw.Add(w.paths.Claude); err != nil {
		log.Warn().Err(err).Str("path", w.paths.Claude).Msg("failed to watch claude directory")
	}
	for _, root := range []string{w.paths.Plans, w.paths.Tasks, w.paths.Todos, w.paths.Projects} {
		w.watchRecursive(root)
	}

	w.wg.Add(1)
	go w.eventLoop()

	log.Info().Str("root", w.paths.Claude).Msg("file watcher started")
	return nil
}

// Stop stops the watcher and waits for its event loop to exit. Stopping a
// stopped watcher is a no-op.
func (w *Watcher) Stop() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.fsw == nil {
		return
	}

	close(w.stopCh)
	w.fsw.Close()
	w.wg.Wait()
	w.fsw = nil

	log.Info().Msg("file watcher stopped")
}

// watchRecursive adds root and all directories under it to the watcher.
// Missing roots are skipped; they may appear later under an already watched
// parent.
func (w *Watcher) watchRecursive(root string) {
	filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return nil // Skip errors
		}
		if info.IsDir() {
			if err := w.fsw.Add(path); err != nil {
				log.Warn().Err(err).Str("path", path).Msg("failed to watch directory")
			}
		}
		return nil
	})
}

// eventLoop processes filesystem events until the watcher stops.
func (w *Watcher) eventLoop() {
	defer w.wg.Done()

	for {
		select {
		case event, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			w.handleEvent(event)

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			log.Error().Err(err).Msg("watcher error")

		case <-w.stopCh:
			return
		}
	}
}

// handleEvent classifies one filesystem event and emits a notification.
// Events are forwarded one-for-one; there is no coalescing or debouncing, so
// rapid successive writes each produce their own notification.
func (w *Watcher) handleEvent(event fsnotify.Event) {
	if event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) == 0 {
		return
	}

	// New directories join the watch; directory events are not notified.
	if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
		if event.Op&fsnotify.Create != 0 {
			w.watchRecursive(event.Name)
		}
		return
	}

	topic, ok := classify(event.Name)
	if !ok {
		return
	}

	log.Debug().Str("path", event.Name).Str("topic", string(topic)).Msg("file change")
	w.notify(notifications.Event{Type: topic, Path: event.Name})
}

// Package watcher provides a debounced directory watcher used by watch mode
// to reprocess mesh files as they appear or change.
package watcher

import (
	"fmt"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DirWatcher watches a directory and triggers a callback for changed files
type DirWatcher struct {
	watcher  *fsnotify.Watcher
	mu       sync.Mutex
	match    func(string) bool
	callback func(string)
	debounce time.Duration
	timers   map[string]*time.Timer
}

// New creates a new directory watcher. Events for the same path within the
// debounce window collapse into a single callback, so a file still being
// written is only processed once it settles.
func New(debounce time.Duration) (*DirWatcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}

	return &DirWatcher{
		watcher:  watcher,
		debounce: debounce,
		timers:   make(map[string]*time.Timer),
	}, nil
}

// Watch starts watching dir. match filters paths; callback is called with
// the path of each created or modified file that passes the filter.
func (dw *DirWatcher) Watch(dir string, match func(string) bool, callback func(string)) error {
	dw.mu.Lock()
	dw.match = match
	dw.callback = callback
	dw.mu.Unlock()

	if err := dw.watcher.Add(dir); err != nil {
		return fmt.Errorf("failed to watch %s: %w", dir, err)
	}
	return nil
}

// Start begins dispatching file change events
func (dw *DirWatcher) Start() {
	go func() {
		for {
			select {
			case event, ok := <-dw.watcher.Events:
				if !ok {
					return
				}
				if event.Op&(fsnotify.Write|fsnotify.Create) != 0 {
					dw.handleFileChange(event.Name)
				}

			case _, ok := <-dw.watcher.Errors:
				if !ok {
					return
				}
			}
		}
	}()
}

// handleFileChange schedules the callback for a path with debouncing
func (dw *DirWatcher) handleFileChange(path string) {
	dw.mu.Lock()
	defer dw.mu.Unlock()

	if dw.match == nil || !dw.match(path) {
		return
	}

	if timer, exists := dw.timers[path]; exists {
		timer.Stop()
	}

	dw.timers[path] = time.AfterFunc(dw.debounce, func() {
		dw.mu.Lock()
		delete(dw.timers, path)
		callback := dw.callback
		dw.mu.Unlock()
		if callback != nil {
			callback(path)
		}
	})
}

// Close stops the watcher
func (dw *DirWatcher) Close() error {
	return dw.watcher.Close()
}

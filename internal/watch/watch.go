package watch

import (
	"fmt"
	"log"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Watcher re-runs a callback when any watched scene input changes. Editors
// tend to fire several events per save, so changes collapse into one
// callback per debounce window.
type Watcher struct {
	watcher  *fsnotify.Watcher
	onChange func(path string)
	debounce time.Duration

	mu     sync.Mutex
	timers map[string]*time.Timer
}

// NewWatcher creates a watcher that invokes onChange with the changed path
func NewWatcher(debounce time.Duration, onChange func(path string)) (*Watcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating watcher: %w", err)
	}

	return &Watcher{
		watcher:  watcher,
		onChange: onChange,
		debounce: debounce,
		timers:   make(map[string]*time.Timer),
	}, nil
}

// Add registers scene files to watch
func (w *Watcher) Add(files ...string) error {
	for _, file := range files {
		absPath, err := filepath.Abs(file)
		if err != nil {
			return fmt.Errorf("resolving %s: %w", file, err)
		}
		if err := w.watcher.Add(absPath); err != nil {
			return fmt.Errorf("watching %s: %w", absPath, err)
		}
	}
	return nil
}

// Start begins delivering change events. It returns immediately; events are
// handled on a background goroutine until Close.
func (w *Watcher) Start() {
	go func() {
		for {
			select {
			case event, ok := <-w.watcher.Events:
				if !ok {
					return
				}
				if event.Op&(fsnotify.Write|fsnotify.Create) != 0 {
					w.scheduleChange(event.Name)
				}

			case err, ok := <-w.watcher.Errors:
				if !ok {
					return
				}
				log.Printf("watch error: %v", err)
			}
		}
	}()
}

// scheduleChange arms the debounce timer for one path, resetting any timer
// already pending for it
func (w *Watcher) scheduleChange(path string) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if timer, exists := w.timers[path]; exists {
		timer.Stop()
	}
	w.timers[path] = time.AfterFunc(w.debounce, func() {
		w.onChange(path)
	})
}

// Close stops the watcher and its event goroutine
func (w *Watcher) Close() error {
	return w.watcher.Close()
}

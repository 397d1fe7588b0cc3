// Package watch notifies when a gallery's backing folder changes on disk,
// so the application can trigger a rescan.
package watch

import (
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"galleria/internal/debug"
)

// FolderWatcher watches gallery root folders and reports which root changed,
// debounced so bursts of file events collapse into one notification.
type FolderWatcher struct {
	watcher    *fsnotify.Watcher
	mu         sync.Mutex
	watching   map[string]bool // watched gallery roots
	notify     chan string     // gallery roots with pending changes
	done       chan struct{}
	debounceMs int
}

// NewFolderWatcher creates a watcher with the given debounce interval.
func NewFolderWatcher(debounceMs int) (*FolderWatcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	if debounceMs <= 0 {
		debounceMs = 200 // Default 200ms debounce
	}

	fw := &FolderWatcher{
		watcher:    w,
		watching:   make(map[string]bool),
		notify:     make(chan string, 10),
		done:       make(chan struct{}),
		debounceMs: debounceMs,
	}

	go fw.run()
	return fw, nil
}

// run processes filesystem events with debouncing
func (fw *FolderWatcher) run() {
	lastEvent := make(map[string]time.Time)
	pending := make(map[string]bool)
	ticker := time.NewTicker(time.Duration(fw.debounceMs) * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-fw.done:
			return

		case event, ok := <-fw.watcher.Events:
			if !ok {
				return
			}

			if event.Has(fsnotify.Create) || event.Has(fsnotify.Remove) ||
				event.Has(fsnotify.Rename) || event.Has(fsnotify.Write) {
				// Galleries are scanned recursively, so any event under a
				// watched root counts against that root.
				if root := fw.rootFor(event.Name); root != "" {
					fw.mu.Lock()
					lastEvent[root] = time.Now()
					pending[root] = true
					fw.mu.Unlock()
					debug.Log(debug.WATCH, "Event %s on %s (root: %s)", event.Op, event.Name, root)
				}
			}

		case err, ok := <-fw.watcher.Errors:
			if !ok {
				return
			}
			debug.Log(debug.WATCH, "Watcher error: %v", err)

		case <-ticker.C:
			now := time.Now()
			debounce := time.Duration(fw.debounceMs) * time.Millisecond

			for root, isPending := range pending {
				if isPending && now.Sub(lastEvent[root]) >= debounce {
					select {
					case fw.notify <- root:
						debug.Log(debug.WATCH, "Folder change notification: %s", root)
					default:
						// Channel full, skip
					}
					delete(pending, root)
					delete(lastEvent, root)
				}
			}
		}
	}
}

// rootFor returns the watched gallery root containing path, or "".
func (fw *FolderWatcher) rootFor(path string) string {
	fw.mu.Lock()
	defer fw.mu.Unlock()

	for root := range fw.watching {
		if path == root || strings.HasPrefix(path, root+string(filepath.Separator)) {
			return root
		}
	}
	return ""
}

// Watch adds a gallery root to the watch list.
func (fw *FolderWatcher) Watch(root string) error {
	fw.mu.Lock()
	defer fw.mu.Unlock()

	if fw.watching[root] {
		return nil // Already watching
	}

	if err := fw.watcher.Add(root); err != nil {
		return err
	}

	fw.watching[root] = true
	debug.Log(debug.WATCH, "Now watching gallery folder: %s", root)
	return nil
}

// Unwatch removes a gallery root from the watch list.
func (fw *FolderWatcher) Unwatch(root string) error {
	fw.mu.Lock()
	defer fw.mu.Unlock()

	if !fw.watching[root] {
		return nil // Not watching
	}

	if err := fw.watcher.Remove(root); err != nil {
		// Path may already be gone
		debug.Log(debug.WATCH, "Error unwatching %s: %v", root, err)
	}

	delete(fw.watching, root)
	debug.Log(debug.WATCH, "Stopped watching gallery folder: %s", root)
	return nil
}

// Notify returns the channel that receives changed gallery roots.
func (fw *FolderWatcher) Notify() <-chan string {
	return fw.notify
}

// Close shuts down the watcher.
func (fw *FolderWatcher) Close() error {
	close(fw.done)
	return fw.watcher.Close()
}

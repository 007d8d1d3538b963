// Copyright © 2025 FileGrid contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: grid/watcher.go
// Summary: Directory change watching that drives pane refreshes.

package grid

import (
	"log"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// watchDebounce coalesces bursts of events in the same directory.
const watchDebounce = 250 * time.Millisecond

// DirWatcher watches the directories panes are showing and reports,
// debounced, which directory changed so its listings can be refreshed.
type DirWatcher struct {
	watcher *fsnotify.Watcher
	changed chan string
	quit    chan struct{}
	done    chan struct{}

	mu   sync.Mutex
	refs map[string]int
}

// NewDirWatcher returns a running watcher.
func NewDirWatcher() (*DirWatcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	dw := &DirWatcher{
		watcher: w,
		changed: make(chan string, 16),
		quit:    make(chan struct{}),
		done:    make(chan struct{}),
		refs:    make(map[string]int),
	}
	go dw.run()
	return dw, nil
}

// Changed delivers directories whose contents changed.
func (dw *DirWatcher) Changed() <-chan string {
	return dw.changed
}

// Watch adds a directory reference. The same directory can be shown by
// several panes; it stays watched until every pane lets go.
func (dw *DirWatcher) Watch(dir string) error {
	dw.mu.Lock()
	defer dw.mu.Unlock()
	dw.refs[dir]++
	if dw.refs[dir] > 1 {
		return nil
	}
	if err := dw.watcher.Add(dir); err != nil {
		dw.refs[dir]--
		if dw.refs[dir] == 0 {
			delete(dw.refs, dir)
		}
		return err
	}
	return nil
}

// Unwatch drops a directory reference, removing the watch when the last
// reference goes.
func (dw *DirWatcher) Unwatch(dir string) {
	dw.mu.Lock()
	defer dw.mu.Unlock()
	if dw.refs[dir] == 0 {
		return
	}
	dw.refs[dir]--
	if dw.refs[dir] == 0 {
		delete(dw.refs, dir)
		if err := dw.watcher.Remove(dir); err != nil {
			log.Printf("Watcher: Failed to remove watch on %s: %v", dir, err)
		}
	}
}

// Watching reports whether any reference on the directory remains.
func (dw *DirWatcher) Watching(dir string) bool {
	dw.mu.Lock()
	defer dw.mu.Unlock()
	return dw.refs[dir] > 0
}

// Close stops the watcher and waits for its goroutine to exit.
func (dw *DirWatcher) Close() error {
	close(dw.quit)
	err := dw.watcher.Close()
	<-dw.done
	return err
}

func (dw *DirWatcher) run() {
	defer close(dw.done)

	pending := make(map[string]struct{})
	timer := time.NewTimer(watchDebounce)
	if !timer.Stop() {
		<-timer.C
	}

	for {
		select {
		case event, ok := <-dw.watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			dir := parentDirOf(event.Name)
			if len(pending) == 0 {
				timer.Reset(watchDebounce)
			}
			pending[dir] = struct{}{}
		case <-timer.C:
			for dir := range pending {
				select {
				case dw.changed <- dir:
				case <-dw.quit:
					return
				}
				delete(pending, dir)
			}
		case err, ok := <-dw.watcher.Errors:
			if !ok {
				return
			}
			log.Printf("Watcher: %v", err)
		case <-dw.quit:
			return
		}
	}
}

// parentDirOf maps an event path to the directory panes are showing.
func parentDirOf(path string) string {
	return filepath.Dir(path)
}

package catalog

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"appdock/internal/log"
)

const defaultWatchDebounce = 500 * time.Millisecond

// dirWatcher watches directory trees recursively and signals, after
// debouncing, when a file matching the filter is created, removed,
// written or renamed. fsnotify watches are per-directory, so subtrees
// are added on setup and as new directories appear.
type dirWatcher struct {
	fsWatcher *fsnotify.Watcher
	matches   func(path string) bool
	debounce  time.Duration
	onChange  chan struct{}
	done      chan struct{}
}

func newDirWatcher(roots []string, matches func(string) bool, debounce time.Duration) (*dirWatcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating fsnotify watcher: %w", err)
	}

	if debounce <= 0 {
		debounce = defaultWatchDebounce
	}
	w := &dirWatcher{
		fsWatcher: fsw,
		matches:   matches,
		debounce:  debounce,
		onChange:  make(chan struct{}, 1),
		done:      make(chan struct{}),
	}

	watched := 0
	for _, root := range roots {
		if _, err := os.Stat(root); err != nil {
			continue
		}
		if err := w.addTree(root); err != nil {
			_ = fsw.Close()
			return nil, err
		}
		watched++
	}
	if watched == 0 {
		_ = fsw.Close()
		return nil, fmt.Errorf("no watchable roots among %d candidates", len(roots))
	}

	go w.loop()
	return w, nil
}

// Changes signals at most once per debounce window.
func (w *dirWatcher) Changes() <-chan struct{} {
	return w.onChange
}

func (w *dirWatcher) Close() {
	close(w.done)
	_ = w.fsWatcher.Close()
}

func (w *dirWatcher) addTree(root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil || !d.IsDir() {
			return nil //nolint:nilerr // unreadable subdirs are skipped, not fatal
		}
		if addErr := w.fsWatcher.Add(path); addErr != nil {
			return fmt.Errorf("watching %s: %w", path, addErr)
		}
		return nil
	})
}

func (w *dirWatcher) loop() {
	var (
		timer   *time.Timer
		pending bool
	)

	for {
		select {
		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return
			}

			if !w.handleEvent(event) {
				continue
			}

			if timer == nil {
				timer = time.NewTimer(w.debounce)
				pending = true
			} else {
				if !timer.Stop() {
					select {
					case <-timer.C:
					default:
					}
				}
				timer.Reset(w.debounce)
				pending = true
			}

		case <-func() <-chan time.Time {
			if timer != nil {
				return timer.C
			}
			return nil
		}():
			if pending {
				select {
				case w.onChange <- struct{}{}:
				default:
				}
				pending = false
			}

		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return
			}
			log.Warn(log.CatWatcher, "watcher error", "error", err)

		case <-w.done:
			if timer != nil {
				timer.Stop()
			}
			return
		}
	}
}

// handleEvent maintains subtree watches and reports whether the event
// is relevant to the filter.
func (w *dirWatcher) handleEvent(event fsnotify.Event) bool {
	if event.Op&fsnotify.Create != 0 {
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
			if err := w.addTree(event.Name); err != nil {
				log.Warn(log.CatWatcher, "could not watch new directory", "path", event.Name, "error", err)
			}
			return false
		}
	}

	if event.Op&(fsnotify.Create|fsnotify.Remove|fsnotify.Write|fsnotify.Rename) == 0 {
		return false
	}
	return w.matches(event.Name)
}

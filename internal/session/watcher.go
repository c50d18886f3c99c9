package session

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"
)

// Watcher monitors the session roots for log file changes so an
// interactive caller can reload its catalog. It coalesces bursts of
// events into a single notification; the catalog is always rebuilt by a
// full re-scan, never patched from events.
type Watcher struct {
	fsWatcher *fsnotify.Watcher
	roots     []string

	Events chan struct{}
	Errors chan error
	done   chan struct{}
}

// NewWatcher creates a watcher over the given root directories and their
// workspace subdirectories.
func NewWatcher(roots []string) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	w := &Watcher{
		fsWatcher: fsw,
		roots:     roots,
		Events:    make(chan struct{}, 1),
		Errors:    make(chan error, 10),
		done:      make(chan struct{}),
	}

	for _, root := range roots {
		if err := fsw.Add(root); err != nil {
			continue // root may not exist yet; the parent event will catch it
		}
		entries, err := os.ReadDir(root)
		if err != nil {
			continue
		}
		for _, entry := range entries {
			if entry.IsDir() {
				_ = fsw.Add(filepath.Join(root, entry.Name()))
			}
		}
	}

	return w, nil
}

// Start begins delivering change notifications on Events.
func (w *Watcher) Start() {
	go w.loop()
}

// Stop shuts the watcher down.
func (w *Watcher) Stop() error {
	close(w.done)
	return w.fsWatcher.Close()
}

func (w *Watcher) loop() {
	for {
		select {
		case <-w.done:
			return

		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return
			}
			w.handle(event)

		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return
			}
			select {
			case w.Errors <- err:
			default:
			}
		}
	}
}

func (w *Watcher) handle(event fsnotify.Event) {
	// A new workspace directory: watch it for session files.
	if event.Op&fsnotify.Create != 0 {
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
			_ = w.fsWatcher.Add(event.Name)
			return
		}
	}

	if !strings.HasSuffix(event.Name, ".jsonl") {
		return
	}
	if event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) == 0 {
		return
	}

	// Coalesce: one pending notification is enough.
	select {
	case w.Events <- struct{}{}:
	default:
	}
}

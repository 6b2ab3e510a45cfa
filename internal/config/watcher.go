package config

import (
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// Watcher runs handler whenever path is written or created, the
// single-file case of the teacher's directory-oriented
// FSNotifyWatcher: fsnotify only delivers events for a watched
// directory, so Watcher watches path's parent and filters by name.
type Watcher struct {
	fsw     *fsnotify.Watcher
	path    string
	handler func()
	done    chan struct{}
}

func newWatcher(path string, handler func()) (*Watcher, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fsw.Add(filepath.Dir(absPath)); err != nil {
		_ = fsw.Close()
		return nil, err
	}

	w := &Watcher{fsw: fsw, path: absPath, handler: handler, done: make(chan struct{})}
	go w.loop()
	return w, nil
}

func (w *Watcher) loop() {
	for {
		select {
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != w.path {
				continue
			}
			if ev.Op.Has(fsnotify.Write) || ev.Op.Has(fsnotify.Create) {
				w.handler()
			}
		case _, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
		case <-w.done:
			return
		}
	}
}

// Close stops the watch goroutine and releases the fsnotify handle.
func (w *Watcher) Close() error {
	close(w.done)
	return w.fsw.Close()
}

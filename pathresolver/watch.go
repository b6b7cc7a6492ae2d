package pathresolver

import (
	"github.com/fsnotify/fsnotify"
)

// Watcher re-invokes onChange whenever a watched file is modified on disk.
// It is a CLI convenience (the --watch flag re-runs a dump on edit) and is
// not consulted by validation or by ParameterSet construction itself.
type Watcher struct {
	w *fsnotify.Watcher
}

// NewWatcher starts watching the given files.
func NewWatcher(files ...string) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	for _, f := range files {
		if err := fw.Add(f); err != nil {
			fw.Close()
			return nil, err
		}
	}
	return &Watcher{w: fw}, nil
}

// Run blocks, invoking onChange for every write/create event until stop is
// closed or the underlying watcher's channels close. A watcher error is
// passed to onError (when non-nil) and watching continues.
func (w *Watcher) Run(stop <-chan struct{}, onChange func(file string), onError func(error)) {
	for {
		select {
		case ev, ok := <-w.w.Events:
			if !ok {
				return
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create) != 0 {
				onChange(ev.Name)
			}
		case err, ok := <-w.w.Errors:
			if !ok {
				return
			}
			if onError != nil {
				onError(err)
			}
		case <-stop:
			w.w.Close()
			return
		}
	}
}

// Close releases the underlying OS watch handles.
func (w *Watcher) Close() error { return w.w.Close() }

package device

import (
	"context"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"github.com/sirupsen/logrus"
)

// Watcher hot-reloads registry profiles when their files change on disk.
type Watcher struct {
	registry *Registry
	watcher  *fsnotify.Watcher
	log      *logrus.Logger
}

// NewWatcher starts watching the registry's profile directory. Close the
// returned watcher (or cancel the context passed to Run) to stop.
func NewWatcher(registry *Registry, log *logrus.Logger) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fsw.Add(registry.dir); err != nil {
		fsw.Close()
		return nil, err
	}
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Watcher{registry: registry, watcher: fsw, log: log}, nil
}

// Run processes filesystem events until the context is cancelled. It is
// intended to run on its own goroutine.
func (w *Watcher) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			ext := filepath.Ext(event.Name)
			if ext != ".yaml" && ext != ".yml" && ext != ".json" {
				continue
			}
			if err := w.registry.reloadFile(event.Name); err != nil {
				w.log.WithError(err).WithField("file", event.Name).Warn("Failed to reload device profile")
				continue
			}
			w.log.WithField("file", event.Name).Info("Reloaded device profile")
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.log.WithError(err).Warn("Device profile watcher error")
		}
	}
}

// Close stops the underlying filesystem watcher.
func (w *Watcher) Close() error {
	return w.watcher.Close()
}

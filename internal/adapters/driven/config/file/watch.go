package file

import (
	"context"
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	"github.com/custodia-labs/ensaio/internal/logger"
)

// Watcher reloads a ConfigStore whenever its file changes on disk.
type Watcher struct {
	store *ConfigStore
}

// NewWatcher creates a watcher for store.
func NewWatcher(store *ConfigStore) *Watcher {
	return &Watcher{store: store}
}

// Watch starts watching the config directory.
// After every successful reload a value is sent on the returned channel.
// The channel is closed when ctx is cancelled.
func (w *Watcher) Watch(ctx context.Context) (<-chan struct{}, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	// Editors often replace the file, so watch the directory instead of the file.
	if err := fsw.Add(filepath.Dir(w.store.Path())); err != nil {
		_ = fsw.Close()
		return nil, err
	}

	changes := make(chan struct{}, 1)

	go func() {
		defer close(changes)
		defer fsw.Close()

		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-fsw.Events:
				if !ok {
					return
				}
				if !w.handleFsEvent(event) {
					continue
				}
				select {
				case changes <- struct{}{}:
				default:
					// A reload notification is already pending.
				}
			case err, ok := <-fsw.Errors:
				if !ok {
					return
				}
				logger.Warn("config watcher: %v", err)
			}
		}
	}()

	return changes, nil
}

// handleFsEvent reloads the store if event touches the config file.
// Reports whether a reload happened.
func (w *Watcher) handleFsEvent(event fsnotify.Event) bool {
	if filepath.Clean(event.Name) != filepath.Clean(w.store.Path()) {
		return false
	}
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) &&
		!event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
		return false
	}

	if err := w.store.Load(); err != nil {
		logger.Warn("config reload failed: %v", err)
		return false
	}
	logger.Debug("config reloaded from %s", w.store.Path())
	return true
}

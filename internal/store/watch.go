package store

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// Watch signals on the returned channel whenever the task file is written,
// created, renamed or removed. Bursts are coalesced into one signal. The
// channel is closed once ctx is done.
//
// The parent directory is watched rather than the file, because Save
// replaces the file with a rename.
func (s *Store) Watch(ctx context.Context) (<-chan struct{}, error) {
	dir := filepath.Dir(s.Path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create %s: %w", dir, err)
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("start watcher: %w", err)
	}
	if err := w.Add(dir); err != nil {
		w.Close()
		return nil, fmt.Errorf("watch %s: %w", dir, err)
	}

	changed := make(chan struct{}, 1)
	target := filepath.Clean(s.Path)

	go func() {
		defer close(changed)
		defer w.Close()

		for {
			select {
			case <-ctx.Done():
				return
			case ev, ok := <-w.Events:
				if !ok {
					return
				}
				if filepath.Clean(ev.Name) != target || ev.Op == fsnotify.Chmod {
					continue
				}
				s.log.Debug("task file changed", zap.String("op", ev.Op.String()))
				select {
				case changed <- struct{}{}:
				default:
				}
			case err, ok := <-w.Errors:
				if !ok {
					return
				}
				s.log.Warn("watcher error", zap.Error(err))
			}
		}
	}()

	return changed, nil
}

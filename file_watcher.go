package fade

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// FileWatcher watches a style file and emits its contents whenever it is
// written or replaced.
//
// The parent directory is watched rather than the file itself so that
// editors and deploy tools that replace the file by rename keep being
// observed.
type FileWatcher struct {
	path string
}

// NewFileWatcher creates a FileWatcher for the style file at path.
func NewFileWatcher(path string) *FileWatcher {
	return &FileWatcher{path: filepath.Clean(path)}
}

// Watch emits the current file contents, then the new contents after every
// write, create or rename onto the path.
func (w *FileWatcher) Watch(ctx context.Context) (<-chan []byte, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create fsnotify watcher: %w", err)
	}

	dir := filepath.Dir(w.path)
	if err := fsw.Add(dir); err != nil {
		fsw.Close()
		return nil, fmt.Errorf("failed to watch directory %s: %w", dir, err)
	}

	out := make(chan []byte)

	go func() {
		defer close(out)
		defer fsw.Close()

		emit := func() bool {
			data, err := os.ReadFile(w.path)
			if err != nil {
				// Missing mid-replace; the create event follows.
				return true
			}
			select {
			case out <- data:
				return true
			case <-ctx.Done():
				return false
			}
		}

		if !emit() {
			return
		}

		for {
			select {
			case <-ctx.Done():
				return

			case event, ok := <-fsw.Events:
				if !ok {
					return
				}
				if filepath.Clean(event.Name) != w.path {
					continue
				}
				if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
					continue
				}
				if !emit() {
					return
				}

			case _, ok := <-fsw.Errors:
				if !ok {
					return
				}
			}
		}
	}()

	return out, nil
}

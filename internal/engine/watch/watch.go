// Package watch reports changes to a single file on disk.
package watch

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/Faultbox/objviewer/internal/logger"
)

// DefaultSettle is how long a file must stay quiet before a change is reported.
const DefaultSettle = 150 * time.Millisecond

// Watcher watches one file. Editors commonly replace files by renaming a
// temporary over them, so the parent directory is watched and events are
// filtered by name.
type Watcher struct {
	path    string
	fs      *fsnotify.Watcher
	changed chan struct{}
	done    chan struct{}
	settle  time.Duration
}

// New starts watching path. A settle of zero uses DefaultSettle.
func New(path string, settle time.Duration) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolving %s: %w", path, err)
	}
	if settle <= 0 {
		settle = DefaultSettle
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating file watcher: %w", err)
	}
	if err := fsw.Add(filepath.Dir(abs)); err != nil {
		fsw.Close()
		return nil, fmt.Errorf("watching %s: %w", filepath.Dir(abs), err)
	}

	w := &Watcher{
		path:    abs,
		fs:      fsw,
		changed: make(chan struct{}, 1),
		done:    make(chan struct{}),
		settle:  settle,
	}
	go w.run()

	logger.Debug("watching file", zap.String("path", abs))
	return w, nil
}

func (w *Watcher) run() {
	defer close(w.done)

	timer := time.NewTimer(w.settle)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case event, ok := <-w.fs.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Rename) {
				timer.Reset(w.settle)
			}

		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			logger.Warn("file watcher error", zap.String("path", w.path), zap.Error(err))

		case <-timer.C:
			// Coalesce: one pending notification is enough
			select {
			case w.changed <- struct{}{}:
			default:
			}
		}
	}
}

// Path returns the absolute path being watched.
func (w *Watcher) Path() string { return w.path }

// Changed reports whether the file changed since the last call. It never blocks.
func (w *Watcher) Changed() bool {
	select {
	case <-w.changed:
		return true
	default:
		return false
	}
}

// C returns the notification channel for callers that want to block.
func (w *Watcher) C() <-chan struct{} { return w.changed }

// Close stops the watcher and waits for its goroutine to exit.
func (w *Watcher) Close() error {
	err := w.fs.Close()
	<-w.done
	return err
}

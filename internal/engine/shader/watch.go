package shader

import (
	"errors"
	"fmt"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/Faultbox/midgard-globe/internal/logger"
)

// Watcher reports edits to shader files in a directory. It watches the
// directory rather than the files so editors that save by rename are seen.
type Watcher struct {
	fs      *fsnotify.Watcher
	names   map[string]bool
	changes chan string
	done    chan struct{}
	wg      sync.WaitGroup

	closeOnce sync.Once
}

// Watch starts watching dir for changes to the named files.
func Watch(dir string, names ...string) (*Watcher, error) {
	if dir == "" {
		return nil, errors.New("watch shaders: no directory")
	}
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("watch shaders: %w", err)
	}
	if err := fsw.Add(dir); err != nil {
		fsw.Close()
		return nil, fmt.Errorf("watch shaders in %s: %w", dir, err)
	}

	w := &Watcher{
		fs:      fsw,
		names:   make(map[string]bool, len(names)),
		changes: make(chan string, 1),
		done:    make(chan struct{}),
	}
	for _, n := range names {
		w.names[n] = true
	}

	w.wg.Add(1)
	go w.run()

	logger.Info("watching shaders", zap.String("dir", dir), zap.Strings("files", names))
	return w, nil
}

// Changes delivers the base name of an edited shader. Bursts of events
// coalesce, so one receive may stand for several writes.
func (w *Watcher) Changes() <-chan string {
	return w.changes
}

// Close stops the watcher.
func (w *Watcher) Close() error {
	var err error
	w.closeOnce.Do(func() {
		close(w.done)
		err = w.fs.Close()
		w.wg.Wait()
	})
	return err
}

func (w *Watcher) run() {
	defer w.wg.Done()
	for {
		select {
		case <-w.done:
			return
		case e, ok := <-w.fs.Events:
			if !ok {
				return
			}
			if !e.Has(fsnotify.Write) && !e.Has(fsnotify.Create) && !e.Has(fsnotify.Rename) {
				continue
			}
			name := filepath.Base(e.Name)
			if !w.names[name] {
				continue
			}
			select {
			case w.changes <- name:
			default:
			}
		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			logger.Warn("shader watcher error", zap.Error(err))
		}
	}
}

package services

import (
	"context"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"

	xlog "muserc/internal/log"
)

type WatchEvent struct {
	Removed bool
}

// FileWatcher reports external changes to the settings file so the UI can
// reload. The parent directory is watched rather than the file: atomic saves
// replace the inode, and the file may not exist yet at all.
type FileWatcher struct {
	path    string
	watcher *fsnotify.Watcher
	events  chan WatchEvent
	logger  zerolog.Logger
}

func NewFileWatcher(path string) (*FileWatcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := watcher.Add(filepath.Dir(path)); err != nil {
		_ = watcher.Close()
		return nil, err
	}
	return &FileWatcher{
		path:    path,
		watcher: watcher,
		events:  make(chan WatchEvent, 8),
		logger:  xlog.WithComponent("watcher"),
	}, nil
}

func (fw *FileWatcher) Events() <-chan WatchEvent {
	return fw.events
}

func (fw *FileWatcher) Start(ctx context.Context) {
	go func() {
		defer close(fw.events)
		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-fw.watcher.Events:
				if !ok {
					return
				}
				if filepath.Base(event.Name) != filepath.Base(fw.path) {
					continue
				}
				switch {
				case event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename):
					fw.send(WatchEvent{Removed: true})
				case event.Has(fsnotify.Write) || event.Has(fsnotify.Create):
					fw.send(WatchEvent{})
				}
			case err, ok := <-fw.watcher.Errors:
				if !ok {
					return
				}
				fw.logger.Warn().Err(err).Msg("settings watch error")
			}
		}
	}()
}

// send drops events when the UI is not draining; a reload is idempotent so
// losing intermediate notifications is fine.
func (fw *FileWatcher) send(event WatchEvent) {
	select {
	case fw.events <- event:
	default:
	}
}

func (fw *FileWatcher) Close() error {
	return fw.watcher.Close()
}

package watcher

import (
	"fmt"

	"github.com/fsnotify/fsnotify"

	"github.com/minicolabs/minutes-flow/internal/logger"
)

// New creates a Watcher on the inbox directory.
func New(inboxDir string, handler ClipHandler, log logger.Logger) (Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}

	if err := fsw.Add(inboxDir); err != nil {
		fsw.Close()
		return nil, fmt.Errorf("add watch path: %w", err)
	}

	return &implWatcher{
		inboxDir: inboxDir,
		handler:  handler,
		logger:   log,
		watcher:  fsw,
	}, nil
}

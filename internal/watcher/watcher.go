package watcher

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/minicolabs/minutes-flow/internal/capture"
	"github.com/minicolabs/minutes-flow/internal/logger"
)

// settleDelay gives the writer time to finish before the file is read.
const settleDelay = 500 * time.Millisecond

type implWatcher struct {
	inboxDir string
	handler  ClipHandler
	logger   logger.Logger
	watcher  *fsnotify.Watcher
	wg       sync.WaitGroup
}

// Start begins monitoring the inbox for new audio files. Each dropped file
// is loaded into a clip and handed to the handler. Runs until the context is
// cancelled.
func (w *implWatcher) Start(ctx context.Context) error {
	w.logger.Info(ctx, "Inbox watcher started. Monitoring: %s", w.inboxDir)
	w.logger.Info(ctx, "Supported formats: .wav, .mp3, .m4a, .webm, .ogg, .flac")

	for {
		select {
		case <-ctx.Done():
			w.wg.Wait()
			w.logger.Info(ctx, "Inbox watcher stopped")
			return ctx.Err()

		case event, ok := <-w.watcher.Events:
			if !ok {
				w.wg.Wait()
				return fmt.Errorf("watcher events channel closed")
			}

			if event.Op&fsnotify.Create != fsnotify.Create {
				continue
			}
			if !capture.IsAudioFile(event.Name) {
				w.logger.Debug(ctx, "Ignoring non-audio file: %s", event.Name)
				continue
			}

			w.logger.Info(ctx, "New audio file detected: %s", event.Name)

			// Settle and load off the event loop so one slow file does
			// not delay every event queued behind it.
			w.wg.Add(1)
			go func(name string) {
				defer w.wg.Done()
				w.deliver(ctx, name)
			}(event.Name)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				w.wg.Wait()
				return fmt.Errorf("watcher errors channel closed")
			}
			w.logger.Error(ctx, "Watcher error: %v", err)
		}
	}
}

// deliver waits out the settle delay, loads the dropped file and hands the
// clip to the handler.
func (w *implWatcher) deliver(ctx context.Context, name string) {
	select {
	case <-ctx.Done():
		return
	case <-time.After(settleDelay):
	}

	clip, err := capture.LoadClip(name)
	if err != nil {
		w.logger.Error(ctx, "Failed to load %s: %v", name, err)
		return
	}

	if err := w.handler(ctx, clip); err != nil {
		w.logger.Error(ctx, "Failed to handle %s: %v", name, err)
	}
}

// Stop closes the underlying file watcher.
func (w *implWatcher) Stop() error {
	return w.watcher.Close()
}

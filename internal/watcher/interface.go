package watcher

import (
	"context"

	"github.com/minicolabs/minutes-flow/internal/capture"
)

// Watcher monitors the inbox directory for dropped audio files.
type Watcher interface {
	Start(ctx context.Context) error
	Stop() error
}

// ClipHandler receives each audio file found in the inbox as a loaded clip.
type ClipHandler func(ctx context.Context, clip *capture.Clip) error

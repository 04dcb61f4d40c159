package capture

import (
	"sync"

	"github.com/minicolabs/minutes-flow/internal/config"
	"github.com/minicolabs/minutes-flow/internal/logger"
	"github.com/minicolabs/minutes-flow/pkg/executor"
)

type implRecorder struct {
	cfg      config.CaptureConfig
	executor executor.Executor
	logger   logger.Logger

	mu       sync.Mutex
	handle   executor.Handle
	filePath string
	verified bool
}

// New creates a Recorder backed by an external recorder process (ffmpeg by
// default).
func New(cfg config.CaptureConfig, exec executor.Executor, log logger.Logger) Recorder {
	return &implRecorder{
		cfg:      cfg,
		executor: exec,
		logger:   log,
	}
}

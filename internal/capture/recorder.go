package capture

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"time"

	"github.com/minicolabs/minutes-flow/internal/minutes"
)

// Start begins recording from the default input device into a temp WAV file.
// A second Start while recording is rejected.
func (r *implRecorder) Start(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.handle != nil {
		return minutes.NewError(minutes.ErrDeviceAccess, "recording already in progress", nil)
	}

	// Preflight the recorder binary once, so a missing install fails here
	// with a clear error instead of an orphaned capture process.
	if !r.verified {
		if _, err := r.executor.Execute(ctx, r.cfg.RecorderBinary, "-version"); err != nil {
			return minutes.NewError(minutes.ErrDeviceAccess,
				fmt.Sprintf("recorder binary %q unavailable", r.cfg.RecorderBinary), err)
		}
		r.verified = true
	}

	filePath := filepath.Join(r.cfg.TempDir, fmt.Sprintf("capture-%d.wav", time.Now().UnixNano()))

	args := r.recordArgs(filePath)
	r.logger.Info(ctx, "Starting microphone capture: %s %v", r.cfg.RecorderBinary, args)

	handle, err := r.executor.Start(ctx, r.cfg.RecorderBinary, args...)
	if err != nil {
		return minutes.NewError(minutes.ErrDeviceAccess, "microphone unavailable", err)
	}

	r.handle = handle
	r.filePath = filePath
	return nil
}

// Stop ends the capture, releases the device and returns the recorded clip.
// The device is released exactly once even if reading the file fails.
func (r *implRecorder) Stop(ctx context.Context) (*Clip, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.handle == nil {
		return nil, minutes.NewError(minutes.ErrDeviceAccess, "no recording in progress", nil)
	}

	handle := r.handle
	filePath := r.filePath
	r.handle = nil
	r.filePath = ""

	if err := handle.Stop(); err != nil {
		os.Remove(filePath)
		return nil, minutes.NewError(minutes.ErrDeviceAccess, "recorder did not stop cleanly", err)
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, minutes.NewError(minutes.ErrDeviceAccess, "read captured audio", err)
	}
	os.Remove(filePath)

	r.logger.Info(ctx, "Capture stopped: %d bytes", len(data))

	return &Clip{
		Data:     data,
		MIMEType: "audio/wav",
		Ref:      filepath.Base(filePath),
	}, nil
}

// recordArgs builds the ffmpeg capture command for the host platform.
// 16kHz mono PCM keeps payloads small without hurting speech quality.
func (r *implRecorder) recordArgs(outputPath string) []string {
	format, device := "alsa", "default"
	if runtime.GOOS == "darwin" {
		format, device = "avfoundation", ":default"
	}
	if r.cfg.Device != "" {
		device = r.cfg.Device
	}

	return []string{
		"-f", format,
		"-i", device,
		"-ac", "1",
		"-ar", strconv.Itoa(r.cfg.SampleRate),
		"-y",
		outputPath,
	}
}

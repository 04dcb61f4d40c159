package capture

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/minicolabs/minutes-flow/internal/config"
	"github.com/minicolabs/minutes-flow/internal/logger"
	"github.com/minicolabs/minutes-flow/internal/minutes"
	"github.com/minicolabs/minutes-flow/pkg/executor"
)

type fakeExecutor struct {
	execErr  error
	startErr error
	handle   *fakeHandle
	lastName string
	lastArgs []string
	executes int
}

func (f *fakeExecutor) Execute(ctx context.Context, name string, args ...string) (string, error) {
	f.executes++
	if f.execErr != nil {
		return "", f.execErr
	}
	return "", nil
}

func (f *fakeExecutor) Start(ctx context.Context, name string, args ...string) (executor.Handle, error) {
	f.lastName = name
	f.lastArgs = args
	if f.startErr != nil {
		return nil, f.startErr
	}
	return f.handle, nil
}

type fakeHandle struct {
	stopErr error
	onStop  func()
	stopped int
}

func (h *fakeHandle) Stop() error {
	h.stopped++
	if h.onStop != nil {
		h.onStop()
	}
	return h.stopErr
}

func testConfig(t *testing.T) config.CaptureConfig {
	t.Helper()
	return config.CaptureConfig{
		RecorderBinary: "ffmpeg",
		SampleRate:     16000,
		TempDir:        t.TempDir(),
	}
}

func TestStartDenied(t *testing.T) {
	ctx := context.Background()
	exec := &fakeExecutor{startErr: errors.New("device busy")}
	r := New(testConfig(t), exec, logger.New("error"))

	err := r.Start(ctx)
	if err == nil {
		t.Fatal("Start() should fail when the recorder cannot launch")
	}
	if minutes.KindOf(err) != minutes.ErrDeviceAccess {
		t.Errorf("error kind = %v, want device_access", minutes.KindOf(err))
	}
}

func TestStartFailsWhenRecorderBinaryMissing(t *testing.T) {
	ctx := context.Background()
	exec := &fakeExecutor{execErr: errors.New(`command "ffmpeg" failed: executable file not found`)}
	r := New(testConfig(t), exec, logger.New("error"))

	err := r.Start(ctx)
	if err == nil {
		t.Fatal("Start() should fail when the recorder binary is missing")
	}
	if minutes.KindOf(err) != minutes.ErrDeviceAccess {
		t.Errorf("error kind = %v, want device_access", minutes.KindOf(err))
	}
	if exec.lastName != "" {
		t.Error("capture process should not be launched when the preflight fails")
	}
}

func TestPreflightRunsOnce(t *testing.T) {
	ctx := context.Background()
	handle := &fakeHandle{}
	exec := &fakeExecutor{handle: handle}
	r := New(testConfig(t), exec, logger.New("error"))

	for i := 0; i < 2; i++ {
		if err := r.Start(ctx); err != nil {
			t.Fatalf("Start() error = %v", err)
		}
		path := r.(*implRecorder).filePath
		handle.onStop = func() { os.WriteFile(path, []byte("RIFF"), 0644) }
		if _, err := r.Stop(ctx); err != nil {
			t.Fatalf("Stop() error = %v", err)
		}
	}

	if exec.executes != 1 {
		t.Errorf("binary checked %d times, want once", exec.executes)
	}
}

func TestStartStopProducesClip(t *testing.T) {
	ctx := context.Background()
	cfg := testConfig(t)

	handle := &fakeHandle{}
	exec := &fakeExecutor{handle: handle}
	r := New(cfg, exec, logger.New("error"))

	if err := r.Start(ctx); err != nil {
		t.Fatalf("Start() error = %v", err)
	}

	// Simulate the recorder writing the capture file before Stop reads it.
	// The path is taken before Stop clears it.
	path := r.(*implRecorder).filePath
	handle.onStop = func() {
		if err := os.WriteFile(path, []byte("RIFFdata"), 0644); err != nil {
			t.Fatal(err)
		}
	}

	clip, err := r.Stop(ctx)
	if err != nil {
		t.Fatalf("Stop() error = %v", err)
	}

	if handle.stopped != 1 {
		t.Errorf("handle stopped %d times, want exactly once", handle.stopped)
	}
	if string(clip.Data) != "RIFFdata" {
		t.Errorf("clip data = %q", clip.Data)
	}
	if clip.MIMEType != "audio/wav" {
		t.Errorf("MIMEType = %q, want audio/wav", clip.MIMEType)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("temp capture file should be removed after Stop")
	}
}

func TestDoubleStartRejected(t *testing.T) {
	ctx := context.Background()
	exec := &fakeExecutor{handle: &fakeHandle{}}
	r := New(testConfig(t), exec, logger.New("error"))

	if err := r.Start(ctx); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	if err := r.Start(ctx); err == nil {
		t.Error("second Start() should fail while recording")
	}
}

func TestStopWithoutStart(t *testing.T) {
	ctx := context.Background()
	r := New(testConfig(t), &fakeExecutor{}, logger.New("error"))

	if _, err := r.Stop(ctx); err == nil {
		t.Error("Stop() without Start() should fail")
	}
}

func TestIsAudioFile(t *testing.T) {
	tests := []struct {
		path string
		want bool
	}{
		{"meeting.wav", true},
		{"meeting.MP3", true},
		{"meeting.webm", true},
		{"notes.txt", false},
		{"video.mp4", false},
	}

	for _, tt := range tests {
		if got := IsAudioFile(tt.path); got != tt.want {
			t.Errorf("IsAudioFile(%q) = %v, want %v", tt.path, got, tt.want)
		}
	}
}

func TestLoadClip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "standup.mp3")
	if err := os.WriteFile(path, []byte{0xFF, 0xFB}, 0644); err != nil {
		t.Fatal(err)
	}

	clip, err := LoadClip(path)
	if err != nil {
		t.Fatalf("LoadClip() error = %v", err)
	}
	if clip.MIMEType != "audio/mpeg" {
		t.Errorf("MIMEType = %q, want audio/mpeg", clip.MIMEType)
	}
	if clip.Ref != "standup.mp3" {
		t.Errorf("Ref = %q, want standup.mp3", clip.Ref)
	}
}

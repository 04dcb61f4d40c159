package executor

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"
)

type implExecutor struct{}

// New creates a new Executor instance
func New() Executor {
	return &implExecutor{}
}

// Execute runs an external command and waits for it to complete.
func (e *implExecutor) Execute(ctx context.Context, name string, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, name, args...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		// Include stderr in error message for debugging
		stderrStr := strings.TrimSpace(stderr.String())
		if stderrStr != "" {
			return "", fmt.Errorf("command '%s' failed: %w\nstderr: %s", name, err, stderrStr)
		}
		return "", fmt.Errorf("command '%s' failed: %w", name, err)
	}

	return stdout.String(), nil
}

// Start launches a command without waiting. The returned handle stops it.
func (e *implExecutor) Start(ctx context.Context, name string, args ...string) (Handle, error) {
	cmd := exec.CommandContext(ctx, name, args...)

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("start command '%s': %w", name, err)
	}

	return &implHandle{cmd: cmd, stderr: &stderr}, nil
}

type implHandle struct {
	cmd    *exec.Cmd
	stderr *bytes.Buffer
}

func (h *implHandle) Stop() error {
	if err := h.cmd.Process.Signal(os.Interrupt); err != nil {
		h.cmd.Process.Kill()
	}

	err := h.cmd.Wait()
	if err == nil {
		return nil
	}

	// An interrupt-terminated recorder exits non-zero; that is the normal
	// stop path, not a failure.
	if _, ok := err.(*exec.ExitError); ok {
		return nil
	}

	stderrStr := strings.TrimSpace(h.stderr.String())
	if stderrStr != "" {
		return fmt.Errorf("command failed: %w\nstderr: %s", err, stderrStr)
	}
	return fmt.Errorf("command failed: %w", err)
}

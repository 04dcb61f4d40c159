package executor

import "context"

// Executor runs external commands.
type Executor interface {
	Execute(ctx context.Context, name string, args ...string) (string, error)
	Start(ctx context.Context, name string, args ...string) (Handle, error)
}

// Handle controls a long-running command started with Start.
type Handle interface {
	// Stop asks the process to exit (interrupt, then kill on failure) and
	// waits for it to finish.
	Stop() error
}

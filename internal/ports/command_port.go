package ports

import "context"

type CommandResult struct {
	ExitCode int
	Stdout   []byte
	Stderr   []byte
}

type CommandRunner interface {
	// Run executes name with args and waits for it. A non-zero exit is reported
	// through CommandResult, not the error; the error is reserved for failures
	// to start or wait on the process, including context expiry.
	Run(ctx context.Context, name string, args ...string) (*CommandResult, error)
}

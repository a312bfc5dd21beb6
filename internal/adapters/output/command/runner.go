package command

import (
	"bytes"
	"context"
	"errors"
	"kiel-home/internal/ports"
	"os/exec"
	"time"
)

// waitDelay bounds how long Run waits for output pipes after the process was
// killed, in case it left children holding them open.
const waitDelay = 5 * time.Second

// ExecRunner runs commands as child processes, capturing their output.
type ExecRunner struct{}

func NewExecRunner() *ExecRunner {
	return &ExecRunner{}
}

func (r *ExecRunner) Run(ctx context.Context, name string, args ...string) (*ports.CommandResult, error) {
	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	cmd.WaitDelay = waitDelay

	err := cmd.Run()
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	res := &ports.CommandResult{Stdout: stdout.Bytes(), Stderr: stderr.Bytes()}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		res.ExitCode = exitErr.ExitCode()
		return res, nil
	}
	if err != nil {
		return nil, err
	}
	return res, nil
}

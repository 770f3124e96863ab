package toolchain

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
	"time"
)

// waitDelay bounds how long Wait blocks on output pipes after the child is
// killed by context cancellation.
const waitDelay = 2 * time.Second

// Exec runs tools with os/exec, streaming their output.
type Exec struct {
	// Dir is the working directory; empty means the current directory.
	Dir string
	// Stdout and Stderr can be set for testing; defaults to os.Stdout/os.Stderr.
	Stdout io.Writer
	Stderr io.Writer
}

// Run executes name with args and waits for it. Cancelling ctx kills the child.
func (e *Exec) Run(ctx context.Context, name string, args ...string) (ExitStatus, error) {
	bin, err := exec.LookPath(name)
	if err != nil {
		return ExitStatus{}, fmt.Errorf("%w: %s not found (is it installed?): %v", ErrUnavailable, name, err)
	}

	cmd := exec.CommandContext(ctx, bin, args...)
	cmd.Dir = e.Dir
	cmd.WaitDelay = waitDelay
	cmd.Stdout = e.stdout()
	cmd.Stderr = e.stderr()

	return exitStatus(name, cmd.Run())
}

// Output executes name with args and returns its trimmed stdout.
// Stderr is still streamed to the configured writer.
func (e *Exec) Output(ctx context.Context, name string, args ...string) (string, error) {
	bin, err := exec.LookPath(name)
	if err != nil {
		return "", fmt.Errorf("%w: %s not found (is it installed?): %v", ErrUnavailable, name, err)
	}

	var stdout bytes.Buffer
	cmd := exec.CommandContext(ctx, bin, args...)
	cmd.Dir = e.Dir
	cmd.WaitDelay = waitDelay
	cmd.Stdout = &stdout
	cmd.Stderr = e.stderr()

	status, err := exitStatus(name, cmd.Run())
	if err != nil {
		return "", err
	}
	if !status.Success() {
		return "", fmt.Errorf("%s %s exited with status %d", name, strings.Join(args, " "), status.Code)
	}
	return strings.TrimSpace(stdout.String()), nil
}

func (e *Exec) stdout() io.Writer {
	if e.Stdout == nil {
		return os.Stdout
	}
	return e.Stdout
}

func (e *Exec) stderr() io.Writer {
	if e.Stderr == nil {
		return os.Stderr
	}
	return e.Stderr
}

// exitStatus maps the result of cmd.Run to an ExitStatus.
func exitStatus(name string, err error) (ExitStatus, error) {
	if err == nil {
		return ExitStatus{Code: 0}, nil
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return ExitStatus{Code: exitErr.ExitCode()}, nil
	}
	if errors.Is(err, exec.ErrNotFound) || errors.Is(err, os.ErrNotExist) {
		return ExitStatus{}, fmt.Errorf("%w: launching %s: %v", ErrUnavailable, name, err)
	}
	return ExitStatus{}, fmt.Errorf("running %s: %w", name, err)
}

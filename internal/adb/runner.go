// File: internal/adb/runner.go
package adb

import (
	"bytes"
	"context"
	"os/exec"
	"strings"
	"time"
)

// runner abstracts the process channel to the adb binary so that tests can
// substitute a fake without spawning subprocesses.
type runner interface {
	run(ctx context.Context, args ...string) (string, error)
}

// execRunner shells out to the resolved adb binary.
type execRunner struct {
	path    string
	timeout time.Duration
}

func (r *execRunner) run(ctx context.Context, args ...string) (string, error) {
	// Caller cancellation must not kill an already-issued adb command: an
	// interrupt unwinds the loop between operations, while the in-flight
	// process runs to completion so the device is never left mid-gesture.
	// Only the per-command timeout terminates the child.
	ctx = context.WithoutCancel(ctx)
	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	cmd := exec.CommandContext(ctx, r.path, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return "", &ChannelError{
			Args:   args,
			Stderr: strings.TrimSpace(stderr.String()),
			Err:    err,
		}
	}
	return stdout.String(), nil
}

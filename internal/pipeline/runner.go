package pipeline

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/alnah/go-mdfmt/internal/process"
)

// defaultWaitDelay bounds how long Wait blocks on output pipes held open by
// grandchildren after the formatter was killed.
const defaultWaitDelay = 2 * time.Second

// CommandRunner abstracts command execution to enable testing without real subprocesses.
// Implementations write stdin fully, close it, and return the captured output.
// Errors are classified with the dispatcher sentinels (ErrToolNotFound,
// ErrToolFailed, ErrToolIO, ErrToolTimeout).
type CommandRunner interface {
	Run(ctx context.Context, stdin string, name string, args ...string) (stdout string, stderr string, err error)
}

// ExecRunner implements CommandRunner using os/exec. Each command runs in its
// own process group, killed as a whole when ctx is done.
type ExecRunner struct {
	WaitDelay time.Duration
}

func (r *ExecRunner) Run(ctx context.Context, stdin string, name string, args ...string) (string, string, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	process.Isolate(cmd)
	cmd.WaitDelay = r.WaitDelay
	if cmd.WaitDelay == 0 {
		cmd.WaitDelay = defaultWaitDelay
	}

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	stdinPipe, err := cmd.StdinPipe()
	if err != nil {
		return "", "", fmt.Errorf("%w: creating stdin pipe: %w", ErrToolIO, err)
	}

	if err := cmd.Start(); err != nil {
		if errors.Is(err, exec.ErrNotFound) || errors.Is(err, fs.ErrNotExist) {
			return "", "", fmt.Errorf("%w: %s", ErrToolNotFound, name)
		}
		return "", "", fmt.Errorf("%w: starting %s: %w", ErrToolIO, name, err)
	}

	written := make(chan error, 1)
	go func() {
		_, werr := io.WriteString(stdinPipe, stdin)
		if cerr := stdinPipe.Close(); werr == nil && !errors.Is(cerr, os.ErrClosed) {
			werr = cerr
		}
		written <- werr
	}()

	waitErr := cmd.Wait()
	writeErr := <-written

	if ctxErr := ctx.Err(); ctxErr != nil {
		if errors.Is(ctxErr, context.DeadlineExceeded) {
			return "", stderr.String(), fmt.Errorf("%w: %s", ErrToolTimeout, name)
		}
		return "", stderr.String(), ctxErr
	}

	var exitErr *exec.ExitError
	if errors.As(waitErr, &exitErr) {
		return "", stderr.String(), fmt.Errorf("%w: %s exited with code %d: %s",
			ErrToolFailed, name, exitErr.ExitCode(), strings.TrimSpace(stderr.String()))
	}
	if waitErr != nil {
		return "", stderr.String(), fmt.Errorf("%w: %s: %w", ErrToolIO, name, waitErr)
	}
	if writeErr != nil {
		return "", stderr.String(), fmt.Errorf("%w: writing to %s: %w", ErrToolIO, name, writeErr)
	}
	return stdout.String(), stderr.String(), nil
}

// Package exec is the single boundary through which covgate invokes
// external tools (git, mvn, gh). Callers always wait for completion and
// inspect the exit code plus captured output; nothing reads streams
// incrementally.
package exec

import (
	"context"
	"errors"
	"fmt"
	osexec "os/exec"
	"strings"
	"time"
)

// DefaultTimeout bounds a single tool invocation when the caller does not
// supply its own deadline. Maven test runs are the slowest consumer.
const DefaultTimeout = 10 * time.Minute

// ErrTimeout reports that a tool ran past the invocation deadline.
var ErrTimeout = errors.New("command timed out")

// Result is the captured outcome of one tool invocation.
type Result struct {
	ExitCode int
	Stdout   string
	Stderr   string
}

// Combined returns stdout and stderr joined for diagnostics, trimmed.
func (r Result) Combined() string {
	out := strings.TrimSpace(r.Stdout)
	errOut := strings.TrimSpace(r.Stderr)
	switch {
	case out == "":
		return errOut
	case errOut == "":
		return out
	default:
		return out + "\n" + errOut
	}
}

// Runner abstracts tool execution for testability.
type Runner interface {
	Run(ctx context.Context, dir string, name string, args ...string) (Result, error)
}

// CLIRunner implements Runner by spawning the tool and waiting for exit.
// A non-zero exit code is reported in the Result, not as an error; errors
// mean the tool could not be run at all (missing binary, timeout).
type CLIRunner struct {
	Timeout time.Duration // 0 means DefaultTimeout
}

func (r *CLIRunner) Run(ctx context.Context, dir string, name string, args ...string) (Result, error) {
	timeout := r.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	cmd := osexec.CommandContext(ctx, name, args...)
	cmd.Dir = dir

	var stdoutBuf, stderrBuf strings.Builder
	cmd.Stdout = &stdoutBuf
	cmd.Stderr = &stderrBuf

	err := cmd.Run()
	res := Result{Stdout: stdoutBuf.String(), Stderr: stderrBuf.String()}
	if err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			res.ExitCode = -1
			return res, fmt.Errorf("%s after %s: %w", name, timeout, ErrTimeout)
		}
		if exitErr, ok := err.(*osexec.ExitError); ok {
			res.ExitCode = exitErr.ExitCode()
			return res, nil
		}
		res.ExitCode = -1
		return res, fmt.Errorf("exec %s: %w", name, err)
	}
	return res, nil
}

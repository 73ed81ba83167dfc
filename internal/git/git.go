// Package git wraps the version-control operations the commit pipeline
// consumes: status, staging, commit, and push.
package git

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/covgate/covgate/internal/exec"
)

// ErrDetachedHead reports that the current branch cannot be determined,
// either because HEAD is detached or the repository has no commits yet.
var ErrDetachedHead = errors.New("cannot determine current branch")

// Client runs git against a single repository directory.
type Client struct {
	runner exec.Runner
	dir    string
}

// NewClient creates a client bound to the repository at dir.
func NewClient(runner exec.Runner, dir string) *Client {
	return &Client{runner: runner, dir: dir}
}

// Dir returns the repository directory the client operates on.
func (c *Client) Dir() string { return c.dir }

func (c *Client) run(ctx context.Context, args ...string) (exec.Result, error) {
	res, err := c.runner.Run(ctx, c.dir, "git", args...)
	if err != nil {
		return res, fmt.Errorf("git %s: %w", strings.Join(args, " "), err)
	}
	return res, nil
}

// StagedFiles lists the paths staged for the next commit. The index is
// queried fresh on every call; nothing is cached.
func (c *Client) StagedFiles(ctx context.Context) ([]string, error) {
	res, err := c.run(ctx, "diff", "--name-only", "--cached")
	if err != nil {
		return nil, err
	}
	if res.ExitCode != 0 {
		return nil, fmt.Errorf("git diff --cached: %s", strings.TrimSpace(res.Combined()))
	}
	return splitLines(res.Stdout), nil
}

// CurrentBranch resolves the checked-out branch name. A detached HEAD or
// an unborn branch yields ErrDetachedHead.
func (c *Client) CurrentBranch(ctx context.Context) (string, error) {
	res, err := c.run(ctx, "rev-parse", "--abbrev-ref", "HEAD")
	if err != nil {
		return "", err
	}
	name := strings.TrimSpace(res.Stdout)
	if res.ExitCode != 0 || name == "" || name == "HEAD" {
		return "", ErrDetachedHead
	}
	return name, nil
}

// Add stages the given paths. A nil or empty list is a no-op.
func (c *Client) Add(ctx context.Context, paths []string) error {
	if len(paths) == 0 {
		return nil
	}
	args := append([]string{"add", "--"}, paths...)
	res, err := c.run(ctx, args...)
	if err != nil {
		return err
	}
	if res.ExitCode != 0 {
		return fmt.Errorf("git add: %s", strings.TrimSpace(res.Combined()))
	}
	return nil
}

// Commit records the staged changes with the given message and returns
// git's combined output.
func (c *Client) Commit(ctx context.Context, message string) (string, error) {
	res, err := c.run(ctx, "commit", "-m", message)
	if err != nil {
		return "", err
	}
	if res.ExitCode != 0 {
		return res.Combined(), fmt.Errorf("git commit: %s", strings.TrimSpace(res.Combined()))
	}
	return res.Combined(), nil
}

func splitLines(s string) []string {
	var out []string
	for _, ln := range strings.Split(s, "\n") {
		if t := strings.TrimSpace(ln); t != "" {
			out = append(out, t)
		}
	}
	return out
}

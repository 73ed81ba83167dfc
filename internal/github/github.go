// Package github creates pull requests through the gh CLI.
package github

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/covgate/covgate/internal/exec"
)

// ErrNoCLI reports that the gh binary is unavailable.
var ErrNoCLI = errors.New("GitHub CLI 'gh' not found")

// Defaults used when the caller leaves title or body empty.
const (
	DefaultBase  = "main"
	DefaultTitle = "[AUTO] Pull request: changes and tests"
	DefaultBody  = "Automated pull request created by covgate. Includes test or coverage updates when applicable.\n"
)

// Client drives gh against one repository directory.
type Client struct {
	runner exec.Runner
	dir    string
}

// NewClient creates a client bound to the repository at dir.
func NewClient(runner exec.Runner, dir string) *Client {
	return &Client{runner: runner, dir: dir}
}

// Available probes for a working gh binary.
func (c *Client) Available(ctx context.Context) bool {
	res, err := c.runner.Run(ctx, c.dir, "gh", "--version")
	return err == nil && res.ExitCode == 0
}

// PROptions parameterize one pull-request creation.
type PROptions struct {
	Base  string
	Title string
	Body  string
}

// PullRequest references the created PR. gh prints the URL as the last
// line of its stdout.
type PullRequest struct {
	URL    string `json:"url"`
	Output string `json:"output,omitempty"`
}

// CreatePR opens a pull request against the base branch, probing for gh
// first so a missing CLI yields ErrNoCLI rather than a bare exec error.
func (c *Client) CreatePR(ctx context.Context, opts PROptions) (PullRequest, error) {
	if opts.Base == "" {
		opts.Base = DefaultBase
	}
	if opts.Title == "" {
		opts.Title = DefaultTitle
	}
	if opts.Body == "" {
		opts.Body = DefaultBody
	}
	if !c.Available(ctx) {
		return PullRequest{}, fmt.Errorf("%w: install it or create the pull request manually", ErrNoCLI)
	}

	res, err := c.runner.Run(ctx, c.dir, "gh",
		"pr", "create", "--base", opts.Base, "--title", opts.Title, "--body", opts.Body)
	if err != nil {
		return PullRequest{}, err
	}
	if res.ExitCode != 0 {
		return PullRequest{}, fmt.Errorf("gh pr create: %s", strings.TrimSpace(res.Combined()))
	}
	return PullRequest{URL: lastLine(res.Stdout), Output: res.Stdout}, nil
}

func lastLine(s string) string {
	lines := strings.Split(strings.TrimSpace(s), "\n")
	return strings.TrimSpace(lines[len(lines)-1])
}

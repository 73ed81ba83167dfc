// Package gate implements the coverage-gated commit flow: staged-change
// check, optional coverage annotation and threshold enforcement, then the
// commit itself.
package gate

import (
	"context"
	"fmt"

	"github.com/covgate/covgate/internal/jacoco"
)

// State names the terminal outcome of one gate run.
type State string

const (
	StateNoStagedChanges State = "no_staged_changes"
	StateThresholdFailed State = "threshold_failed"
	StateCommitted       State = "committed"
)

// Repo is the slice of the git client the gate drives.
type Repo interface {
	StagedFiles(ctx context.Context) ([]string, error)
	Commit(ctx context.Context, message string) (string, error)
}

// CoverageSource computes overall line coverage for a project, returning
// the summary and the report path it used. jacoco.Percent is the
// production implementation.
type CoverageSource func(projectDir, reportPath string) (jacoco.Summary, string, error)

// Options control one commit attempt.
type Options struct {
	Message         string
	IncludeCoverage bool
	ReportPath      string   // explicit report location; empty means search
	Threshold       *float64 // minimum percent; nil disables the check
}

// Outcome is the immutable result of one gate run. It is never retried
// automatically; the caller decides whether to run again.
type Outcome struct {
	State    State           `json:"state"`
	Message  string          `json:"message"`
	Coverage *jacoco.Summary `json:"coverage,omitempty"`
	Staged   []string        `json:"staged,omitempty"`
	Output   string          `json:"output,omitempty"`
}

// Ok reports whether the run ended in a commit.
func (o Outcome) Ok() bool { return o.State == StateCommitted }

// Gate runs coverage-gated commits against one repository.
type Gate struct {
	repo     Repo
	dir      string
	coverage CoverageSource
}

// New builds a gate for the repository at dir.
func New(repo Repo, dir string) *Gate {
	return &Gate{repo: repo, dir: dir, coverage: jacoco.Percent}
}

// WithCoverageSource overrides the coverage lookup, primarily for tests.
func (g *Gate) WithCoverageSource(src CoverageSource) *Gate {
	g.coverage = src
	return g
}

// Run executes the gate. The index is queried first so an empty stage
// short-circuits before any other work. Coverage is computed when
// requested or when a threshold is set; a failed computation annotates
// the message instead of blocking the commit, while a computed percent
// below the threshold aborts before git commit runs.
func (g *Gate) Run(ctx context.Context, opts Options) (Outcome, error) {
	staged, err := g.repo.StagedFiles(ctx)
	if err != nil {
		return Outcome{}, err
	}
	if len(staged) == 0 {
		return Outcome{
			State:   StateNoStagedChanges,
			Message: "No staged changes to commit.",
		}, nil
	}

	message := opts.Message
	var coverage *jacoco.Summary
	if opts.IncludeCoverage || opts.Threshold != nil {
		summary, _, covErr := g.coverage(g.dir, opts.ReportPath)
		if covErr != nil {
			message = fmt.Sprintf("%s | Coverage: unknown (%v)", message, covErr)
		} else {
			coverage = &summary
			message = fmt.Sprintf("%s | Coverage: %.2f%% (%d/%d)",
				message, summary.Percent, summary.Covered, summary.Total())
			if opts.Threshold != nil && summary.Percent < *opts.Threshold {
				return Outcome{
					State: StateThresholdFailed,
					Message: fmt.Sprintf("Coverage %.2f%% below threshold %.2f%% - aborting commit.",
						summary.Percent, *opts.Threshold),
					Coverage: coverage,
					Staged:   staged,
				}, nil
			}
		}
	}

	out, err := g.repo.Commit(ctx, message)
	if err != nil {
		return Outcome{}, err
	}
	return Outcome{
		State:    StateCommitted,
		Message:  message,
		Coverage: coverage,
		Staged:   staged,
		Output:   out,
	}, nil
}

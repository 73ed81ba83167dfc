// Package maven shells out to the Maven build tool and manages the
// JaCoCo plugin block in pom files.
package maven

import (
	"context"

	"github.com/covgate/covgate/internal/exec"
)

// DefaultGoals is the goal list used when the caller supplies none.
var DefaultGoals = []string{"test"}

// Runner invokes Maven in a project directory. Output is captured whole
// and handed back untouched; reading coverage out of the build artifacts
// is the report parser's job.
type Runner struct {
	exec    exec.Runner
	command string
}

// NewRunner builds a Runner on the given process boundary. A non-empty
// command overrides the mvn binary name (e.g. "./mvnw").
func NewRunner(execRunner exec.Runner, command string) *Runner {
	if command == "" {
		command = "mvn"
	}
	return &Runner{exec: execRunner, command: command}
}

// Run executes the goals in projectDir, defaulting to DefaultGoals.
func (r *Runner) Run(ctx context.Context, projectDir string, goals []string) (exec.Result, error) {
	if len(goals) == 0 {
		goals = DefaultGoals
	}
	return r.exec.Run(ctx, projectDir, r.command, goals...)
}

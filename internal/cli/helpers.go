package cli

import (
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/covgate/covgate/internal/config"
	"github.com/covgate/covgate/internal/db"
	"github.com/covgate/covgate/internal/exec"
	"github.com/covgate/covgate/internal/gate"
)

var (
	flagConfig  string
	flagProject string
)

// loadConfig resolves configuration for one command invocation: the
// --config flag wins, then the COVGATE_CONFIG environment variable, then
// the standard search path (covgate.yaml, .covgate.yaml, ~/.covgate/).
func loadConfig() (*config.Config, error) {
	path := flagConfig
	if path == "" {
		path = os.Getenv("COVGATE_CONFIG")
	}
	if path != "" {
		return config.Load(path)
	}
	return config.LoadDefault()
}

// projectDir resolves the Maven project root: --project beats the
// configured directory.
func projectDir(cfg *config.Config) string {
	if flagProject != "" {
		return flagProject
	}
	return cfg.Project.Dir
}

func newRunner() exec.Runner {
	return &exec.CLIRunner{}
}

// openHistory opens the run-history database, creating the schema if
// needed. A nil DB with nil error means history is disabled.
func openHistory(cfg *config.Config) (*db.DB, func(), error) {
	if cfg.History.Disable {
		return nil, func() {}, nil
	}
	path := cfg.History.Path
	if path == "" {
		var err error
		path, err = db.DefaultDBPath()
		if err != nil {
			return nil, nil, err
		}
	}
	d, err := db.Open(path)
	if err != nil {
		return nil, nil, err
	}
	if err := d.Migrate(); err != nil {
		d.Close()
		return nil, nil, err
	}
	return d, func() { d.Close() }, nil
}

// recordRun logs one tool invocation to history, best effort: a broken or
// disabled history store never fails the command that did the real work.
// When outcome is non-nil the commit-gate result is logged under the same
// run id.
func recordRun(cfg *config.Config, tool string, ok bool, started time.Time, summary, detail string, outcome *gate.Outcome) {
	d, cleanup, err := openHistory(cfg)
	if err != nil || d == nil {
		return
	}
	defer cleanup()

	runID := uuid.NewString()
	_ = d.LogToolRun(runID, tool, ok, int(time.Since(started).Milliseconds()), summary, detail)
	if outcome != nil {
		var percent *float64
		var covered, missed *int
		if outcome.Coverage != nil {
			p := outcome.Coverage.Percent
			c := outcome.Coverage.Covered
			m := outcome.Coverage.Missed
			percent, covered, missed = &p, &c, &m
		}
		_ = d.LogCommitRun(runID, string(outcome.State), outcome.Message, percent, covered, missed)
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/covgate/covgate/internal/config"
	"github.com/covgate/covgate/internal/fixes"
	"github.com/covgate/covgate/internal/gate"
	"github.com/covgate/covgate/internal/git"
	"github.com/covgate/covgate/internal/github"
	"github.com/covgate/covgate/internal/jacoco"
	"github.com/covgate/covgate/internal/maven"
	"github.com/covgate/covgate/internal/scaffold"
	"github.com/covgate/covgate/internal/staging"
	"github.com/covgate/covgate/internal/surefire"
)

var toolCmd = &cobra.Command{
	Use:   "tool <name> [args...]",
	Short: "Invoke a pipeline operation by tool name, printing JSON",
	Long: `tool exposes every pipeline operation under a stable name and prints a
single JSON object with an explicit "ok" field, for driving covgate from
scripts and agents. Unknown names and failed operations yield
{"ok": false, ...} on a zero exit, never a process failure.

Tools and their positional arguments:

  git_status        [repo_dir]
  git_add_all       [repo_dir]
  git_commit        <message> [repo_dir]
  git_push          [remote] [repo_dir]
  git_pull_request  [base] [repo_dir]
  maven_run         [project_dir] [goals...]
  configure_jacoco  [project_dir]
  generate_tests    [project_dir] [out_dir]
  analyze_coverage  [project_dir] [jacoco_xml]
  test_failures     [project_dir]
  propose_fixes     [project_dir]

git_commit reads coverage settings (include, threshold, report path)
from config.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		started := time.Now()

		result := runTool(cmd.Context(), cfg, args[0], args[1:])
		ok, _ := result["ok"].(bool)
		summary, _ := result["msg"].(string)
		recordRun(cfg, args[0], ok, started, summary, "", nil)

		data, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(data))
		return nil
	},
}

// runTool dispatches one tool call. Every branch returns an envelope with
// an "ok" field; operational failures land there rather than as errors so
// callers always get parseable JSON.
func runTool(ctx context.Context, cfg *config.Config, name string, args []string) map[string]interface{} {
	switch name {
	case "git_status":
		return toolGitStatus(ctx, cfg, args)
	case "git_add_all":
		return toolGitAddAll(ctx, cfg, args)
	case "git_commit":
		return toolGitCommit(ctx, cfg, args)
	case "git_push":
		return toolGitPush(ctx, cfg, args)
	case "git_pull_request":
		return toolGitPullRequest(ctx, cfg, args)
	case "maven_run":
		return toolMavenRun(ctx, cfg, args)
	case "configure_jacoco":
		return toolConfigureJacoco(cfg, args)
	case "generate_tests":
		return toolGenerateTests(cfg, args)
	case "analyze_coverage":
		return toolAnalyzeCoverage(cfg, args)
	case "test_failures":
		return toolTestFailures(cfg, args)
	case "propose_fixes":
		return toolProposeFixes(cfg, args)
	default:
		return map[string]interface{}{"ok": false, "msg": fmt.Sprintf("Unknown tool %q", name)}
	}
}

func toolFail(err error) map[string]interface{} {
	return map[string]interface{}{"ok": false, "msg": err.Error()}
}

// toolDir resolves a tool's directory argument: positional arg beats the
// --project flag beats config.
func toolDir(cfg *config.Config, args []string, i int) string {
	if len(args) > i && args[i] != "" {
		return args[i]
	}
	return projectDir(cfg)
}

func argOr(args []string, i int, fallback string) string {
	if len(args) > i && args[i] != "" {
		return args[i]
	}
	return fallback
}

func toolGitStatus(ctx context.Context, cfg *config.Config, args []string) map[string]interface{} {
	client := git.NewClient(newRunner(), toolDir(cfg, args, 0))
	st, err := client.Status(ctx)
	if err != nil {
		return toolFail(err)
	}
	return map[string]interface{}{
		"ok":        true,
		"branch":    st.Branch,
		"upstream":  st.Upstream,
		"staged":    st.Staged,
		"unstaged":  st.Unstaged,
		"conflicts": st.Conflicts,
		"untracked": st.Untracked,
		"clean":     st.Clean,
	}
}

func toolGitAddAll(ctx context.Context, cfg *config.Config, args []string) map[string]interface{} {
	dir := toolDir(cfg, args, 0)
	client := git.NewClient(newRunner(), dir)
	changed, err := client.ChangedFiles(ctx)
	if err != nil {
		return toolFail(err)
	}
	filter := staging.NewFilter(dir, cfg.Git.Excludes)
	kept, dropped := filter.Apply(changed)
	if len(kept) > 0 {
		if err := client.Add(ctx, kept); err != nil {
			return toolFail(err)
		}
	}
	staged, err := client.StagedFiles(ctx)
	if err != nil {
		return toolFail(err)
	}
	return map[string]interface{}{
		"ok":       true,
		"msg":      fmt.Sprintf("Staged %d files (%d filtered out)", len(staged), len(dropped)),
		"staged":   staged,
		"filtered": dropped,
	}
}

func toolGitCommit(ctx context.Context, cfg *config.Config, args []string) map[string]interface{} {
	if len(args) < 1 || args[0] == "" {
		return toolFail(fmt.Errorf("git_commit requires a message argument"))
	}
	dir := toolDir(cfg, args, 1)

	opts := gate.Options{
		Message:         args[0],
		IncludeCoverage: cfg.Coverage.Include,
		ReportPath:      cfg.Coverage.Report,
	}
	if cfg.Coverage.Threshold > 0 {
		t := cfg.Coverage.Threshold
		opts.Threshold = &t
	}

	g := gate.New(git.NewClient(newRunner(), dir), dir)
	outcome, err := g.Run(ctx, opts)
	if err != nil {
		return toolFail(err)
	}
	res := map[string]interface{}{
		"ok":    outcome.Ok(),
		"state": string(outcome.State),
		"msg":   outcome.Message,
	}
	if outcome.Coverage != nil {
		res["coverage"] = outcome.Coverage
	}
	if outcome.Output != "" {
		res["output"] = outcome.Output
	}
	return res
}

func toolGitPush(ctx context.Context, cfg *config.Config, args []string) map[string]interface{} {
	remote := argOr(args, 0, cfg.Git.Remote)
	client := git.NewClient(newRunner(), toolDir(cfg, args, 1))
	res, err := client.Push(ctx, remote)
	if err != nil {
		return toolFail(err)
	}
	return map[string]interface{}{
		"ok":       res.Ok,
		"remote":   res.Remote,
		"branch":   res.Branch,
		"upstream": res.SetUpstream,
		"attempts": res.Attempts,
	}
}

func toolGitPullRequest(ctx context.Context, cfg *config.Config, args []string) map[string]interface{} {
	base := argOr(args, 0, cfg.Git.Base)
	gh := github.NewClient(newRunner(), toolDir(cfg, args, 1))
	pr, err := gh.CreatePR(ctx, github.PROptions{Base: base})
	if err != nil {
		return toolFail(err)
	}
	return map[string]interface{}{"ok": true, "msg": "PR created", "url": pr.URL}
}

func toolMavenRun(ctx context.Context, cfg *config.Config, args []string) map[string]interface{} {
	dir := toolDir(cfg, args, 0)
	goals := cfg.Maven.Goals
	if len(args) > 1 {
		goals = args[1:]
	}
	runner := maven.NewRunner(newRunner(), cfg.Maven.Command)
	res, err := runner.Run(ctx, dir, goals)
	if err != nil {
		return toolFail(err)
	}
	return map[string]interface{}{
		"ok":        res.ExitCode == 0,
		"exit_code": res.ExitCode,
		"stdout":    res.Stdout,
		"stderr":    res.Stderr,
	}
}

func toolConfigureJacoco(cfg *config.Config, args []string) map[string]interface{} {
	res, err := maven.ConfigureJacoco(toolDir(cfg, args, 0))
	if err != nil {
		return toolFail(err)
	}
	return map[string]interface{}{"ok": true, "msg": res.Message, "changed": res.Changed}
}

func toolGenerateTests(cfg *config.Config, args []string) map[string]interface{} {
	dir := toolDir(cfg, args, 0)
	gen := scaffold.NewGenerator(dir, argOr(args, 1, ""))
	if cfg.Project.SourceRoot != "" {
		gen.SourceRoot = filepath.Join(dir, cfg.Project.SourceRoot)
	}
	res, err := gen.Run()
	if err != nil {
		return toolFail(err)
	}
	return map[string]interface{}{
		"ok":            true,
		"msg":           fmt.Sprintf("Created %d test skeletons", res.Created),
		"created_tests": res.Created,
		"files":         res.Files,
	}
}

func toolAnalyzeCoverage(cfg *config.Config, args []string) map[string]interface{} {
	gr, err := jacoco.Analyze(toolDir(cfg, args, 0), argOr(args, 1, cfg.Coverage.Report))
	if err != nil {
		return toolFail(err)
	}
	return map[string]interface{}{"ok": true, "report": gr}
}

func toolTestFailures(cfg *config.Config, args []string) map[string]interface{} {
	fails, err := surefire.CollectFailures(toolDir(cfg, args, 0))
	if err != nil {
		return toolFail(err)
	}
	return map[string]interface{}{"ok": true, "count": len(fails), "failures": fails}
}

func toolProposeFixes(cfg *config.Config, args []string) map[string]interface{} {
	dir := toolDir(cfg, args, 0)
	fails, err := surefire.CollectFailures(dir)
	if err != nil {
		return toolFail(err)
	}
	store := fixes.NewStore(dir)
	iteration, err := store.NextIteration()
	if err != nil {
		return toolFail(err)
	}
	metaPath, err := store.Write(fixes.Proposal{Iteration: iteration, Failures: fails})
	if err != nil {
		return toolFail(err)
	}
	return map[string]interface{}{
		"ok":        true,
		"msg":       fmt.Sprintf("Proposal %d written (%d failures)", iteration, len(fails)),
		"iteration": iteration,
		"proposal":  metaPath,
		"failures":  len(fails),
	}
}

package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/covgate/covgate/internal/gate"
	"github.com/covgate/covgate/internal/git"
	"github.com/covgate/covgate/internal/render"
)

var commitCmd = &cobra.Command{
	Use:   "commit",
	Short: "Commit staged changes through the coverage gate",
	Long: `commit records the staged changes, optionally annotating the message with
the JaCoCo line-coverage percentage. With a threshold (flag or config),
a computed percentage below it aborts before git commit runs; a coverage
report that cannot be read annotates the message as unknown and commits
anyway.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		started := time.Now()

		message, _ := cmd.Flags().GetString("message")
		if message == "" {
			return fmt.Errorf("commit message is required (-m)")
		}
		withCoverage, _ := cmd.Flags().GetBool("coverage")
		report, _ := cmd.Flags().GetString("report")

		opts := gate.Options{
			Message:         message,
			IncludeCoverage: withCoverage || cfg.Coverage.Include,
			ReportPath:      firstNonEmpty(report, cfg.Coverage.Report),
		}
		if cmd.Flags().Changed("threshold") {
			t, _ := cmd.Flags().GetFloat64("threshold")
			opts.Threshold = &t
		} else if cfg.Coverage.Threshold > 0 {
			t := cfg.Coverage.Threshold
			opts.Threshold = &t
		}

		dir := projectDir(cfg)
		g := gate.New(git.NewClient(newRunner(), dir), dir)
		outcome, err := g.Run(cmd.Context(), opts)
		if err != nil {
			recordRun(cfg, "git_commit", false, started, err.Error(), "", nil)
			return err
		}
		recordRun(cfg, "git_commit", outcome.Ok(), started, outcome.Message, outcome.Output, &outcome)

		fmt.Fprint(cmd.OutOrStdout(), render.Outcome(outcome))
		if !outcome.Ok() {
			return fmt.Errorf("commit not created (%s)", outcome.State)
		}
		return nil
	},
}

func init() {
	commitCmd.Flags().StringP("message", "m", "", "Commit message (required)")
	commitCmd.Flags().Bool("coverage", false, "Append the coverage percentage to the message")
	commitCmd.Flags().String("report", "", "Path to jacoco.xml (default: search the project)")
	commitCmd.Flags().Float64("threshold", 0, "Minimum coverage percent; below it the commit is aborted")
}

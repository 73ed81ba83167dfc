package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/covgate/covgate/internal/git"
	"github.com/covgate/covgate/internal/render"
	"github.com/covgate/covgate/internal/staging"
)

var stageCmd = &cobra.Command{
	Use:   "stage",
	Short: "Stage changed files, filtering out build and IDE artifacts",
	Long: `stage lists every changed path in the working tree, drops the ones that
match the exclusion patterns (target/, *.class, *.jar, IDE folders and
so on, or git.excludes from config), and runs git add on the rest.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		started := time.Now()
		w := cmd.OutOrStdout()

		client := git.NewClient(newRunner(), projectDir(cfg))
		changed, err := client.ChangedFiles(cmd.Context())
		if err != nil {
			recordRun(cfg, "git_add_all", false, started, err.Error(), "", nil)
			return err
		}
		if len(changed) == 0 {
			fmt.Fprintln(w, "Working tree clean, nothing to stage.")
			recordRun(cfg, "git_add_all", true, started, "nothing to stage", "", nil)
			return nil
		}

		filter := staging.NewFilter(projectDir(cfg), cfg.Git.Excludes)
		kept, dropped := filter.Apply(changed)

		dryRun, _ := cmd.Flags().GetBool("dry-run")
		for _, p := range kept {
			fmt.Fprintf(w, "  %s %s\n", render.Mark(true), p)
		}
		for _, p := range dropped {
			fmt.Fprintf(w, "  %s %s (excluded)\n", render.Mark(false), p)
		}

		if dryRun {
			fmt.Fprintf(w, "Dry run: would stage %d of %d changed files.\n", len(kept), len(changed))
			return nil
		}
		if len(kept) == 0 {
			fmt.Fprintln(w, "All changed files matched exclusion patterns, nothing staged.")
			recordRun(cfg, "git_add_all", true, started, "all files excluded", "", nil)
			return nil
		}

		if err := client.Add(cmd.Context(), kept); err != nil {
			recordRun(cfg, "git_add_all", false, started, err.Error(), "", nil)
			return err
		}
		staged, err := client.StagedFiles(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "Staged %d files (%d filtered out).\n", len(staged), len(dropped))
		recordRun(cfg, "git_add_all", true, started,
			fmt.Sprintf("staged %d, filtered %d", len(staged), len(dropped)), "", nil)
		return nil
	},
}

func init() {
	stageCmd.Flags().Bool("dry-run", false, "Show staging decisions without running git add")
}

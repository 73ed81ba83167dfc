package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/covgate/covgate/internal/github"
)

var prCmd = &cobra.Command{
	Use:   "pr",
	Short: "Manage pull requests",
}

var prCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Open a pull request for the current branch via the GitHub CLI",
	Long: `create runs gh pr create against the configured base branch. The branch
must already be pushed (covgate push). Title and body fall back to the
standard automated-PR text when not given.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		started := time.Now()

		base, _ := cmd.Flags().GetString("base")
		title, _ := cmd.Flags().GetString("title")
		body, _ := cmd.Flags().GetString("body")

		gh := github.NewClient(newRunner(), projectDir(cfg))
		pr, err := gh.CreatePR(cmd.Context(), github.PROptions{
			Base:  firstNonEmpty(base, cfg.Git.Base),
			Title: title,
			Body:  body,
		})
		if err != nil {
			recordRun(cfg, "git_pull_request", false, started, err.Error(), "", nil)
			return err
		}
		recordRun(cfg, "git_pull_request", true, started, pr.URL, "", nil)

		fmt.Fprintf(cmd.OutOrStdout(), "PR created: %s\n", pr.URL)
		return nil
	},
}

func init() {
	prCreateCmd.Flags().String("base", "", "Base branch for the pull request (default: git.base from config, then main)")
	prCreateCmd.Flags().String("title", "", "Pull request title")
	prCreateCmd.Flags().String("body", "", "Pull request body")

	prCmd.AddCommand(prCreateCmd)
}

package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/covgate/covgate/internal/git"
	"github.com/covgate/covgate/internal/render"
)

var pushCmd = &cobra.Command{
	Use:   "push",
	Short: "Push the current branch, setting the upstream when missing",
	Long: `push sends the current branch to the remote. A plain push is tried first;
if it fails (typically because the branch has no upstream yet) one retry
with --set-upstream follows. Both attempts are reported.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		started := time.Now()

		remote, _ := cmd.Flags().GetString("remote")
		remote = firstNonEmpty(remote, cfg.Git.Remote)

		client := git.NewClient(newRunner(), projectDir(cfg))
		res, err := client.Push(cmd.Context(), remote)
		if err != nil {
			recordRun(cfg, "git_push", false, started, err.Error(), "", nil)
			return err
		}
		recordRun(cfg, "git_push", res.Ok, started,
			fmt.Sprintf("%s -> %s, %d attempts", res.Branch, res.Remote, len(res.Attempts)), "", nil)

		fmt.Fprint(cmd.OutOrStdout(), render.Push(res))
		if !res.Ok {
			return fmt.Errorf("push failed after %d attempts", len(res.Attempts))
		}
		return nil
	},
}

func init() {
	pushCmd.Flags().String("remote", "", "Remote to push to (default: git.remote from config, then origin)")
}

package cli

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/covgate/covgate/internal/git"
	"github.com/covgate/covgate/internal/render"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the working tree: branch, staged, unstaged, conflicts",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		started := time.Now()

		client := git.NewClient(newRunner(), projectDir(cfg))
		st, err := client.Status(cmd.Context())
		if err != nil {
			recordRun(cfg, "git_status", false, started, err.Error(), "", nil)
			return err
		}
		recordRun(cfg, "git_status", true, started,
			fmt.Sprintf("branch %s, %d staged, %d unstaged", st.Branch, len(st.Staged), len(st.Unstaged)), "", nil)

		format, _ := cmd.Flags().GetString("format")
		if format == "json" {
			data, _ := json.MarshalIndent(st, "", "  ")
			fmt.Fprintln(cmd.OutOrStdout(), string(data))
			return nil
		}
		fmt.Fprint(cmd.OutOrStdout(), render.GitStatus(st))
		return nil
	},
}

func init() {
	statusCmd.Flags().String("format", "text", "Output format: text or json")
}

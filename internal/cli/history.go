package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/covgate/covgate/internal/render"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent tool and commit runs from the local database",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		d, cleanup, err := openHistory(cfg)
		if err != nil {
			return err
		}
		if d == nil {
			fmt.Fprintln(cmd.OutOrStdout(), "History is disabled (history.disable in config).")
			return nil
		}
		defer cleanup()

		limit, _ := cmd.Flags().GetInt("limit")
		commits, _ := cmd.Flags().GetBool("commits")
		w := cmd.OutOrStdout()

		if commits {
			runs, err := d.RecentCommitRuns(limit)
			if err != nil {
				return err
			}
			if len(runs) == 0 {
				fmt.Fprintln(w, "No commit runs recorded.")
				return nil
			}
			fmt.Fprintf(w, "%-20s %-18s %-10s %s\n", "TIMESTAMP", "STATE", "COVERAGE", "MESSAGE")
			for _, r := range runs {
				coverage := "-"
				if r.Percent != nil {
					coverage = fmt.Sprintf("%.2f%%", *r.Percent)
				}
				fmt.Fprintf(w, "%-20s %-18s %-10s %s\n", r.Timestamp, r.State, coverage, truncate(r.Message, 60))
			}
			return nil
		}

		runs, err := d.RecentToolRuns(limit)
		if err != nil {
			return err
		}
		if len(runs) == 0 {
			fmt.Fprintln(w, "No tool runs recorded.")
			return nil
		}
		fmt.Fprintf(w, "%-20s %-18s %-3s %-8s %s\n", "TIMESTAMP", "TOOL", "OK", "MS", "SUMMARY")
		for _, r := range runs {
			fmt.Fprintf(w, "%-20s %-18s %-3s %-8d %s\n",
				r.Timestamp, r.Tool, render.Mark(r.Ok), r.DurationMs, truncate(r.Summary, 60))
		}
		return nil
	},
}

func truncate(s string, n int) string {
	s = strings.ReplaceAll(s, "\n", " ")
	if len(s) <= n {
		return s
	}
	return s[:n-3] + "..."
}

func init() {
	historyCmd.Flags().Int("limit", 20, "Maximum rows to show")
	historyCmd.Flags().Bool("commits", false, "Show commit-gate runs instead of tool runs")
}

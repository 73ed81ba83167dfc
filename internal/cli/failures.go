package cli

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/covgate/covgate/internal/fixes"
	"github.com/covgate/covgate/internal/render"
	"github.com/covgate/covgate/internal/surefire"
)

var failuresCmd = &cobra.Command{
	Use:   "failures",
	Short: "List failing test cases from the Surefire reports",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		started := time.Now()

		fails, err := surefire.CollectFailures(projectDir(cfg))
		if err != nil {
			recordRun(cfg, "test_failures", false, started, err.Error(), "", nil)
			return err
		}
		recordRun(cfg, "test_failures", true, started,
			fmt.Sprintf("%d failing test cases", len(fails)), "", nil)

		format, _ := cmd.Flags().GetString("format")
		if format == "json" {
			data, _ := json.MarshalIndent(fails, "", "  ")
			fmt.Fprintln(cmd.OutOrStdout(), string(data))
			return nil
		}

		w := cmd.OutOrStdout()
		if len(fails) == 0 {
			fmt.Fprintf(w, "%s No test failures reported.\n", render.Mark(true))
			return nil
		}
		fmt.Fprintf(w, "%s %d failing test cases:\n", render.Mark(false), len(fails))
		for _, f := range fails {
			fmt.Fprintf(w, "  %s.%s\n", f.Classname, f.Name)
			if f.Message != "" {
				fmt.Fprintf(w, "      %s\n", f.Message)
			}
		}
		return nil
	},
}

var proposeCmd = &cobra.Command{
	Use:   "propose",
	Short: "Record the current test failures as a numbered fix proposal",
	Long: `propose collects the failing test cases from the Surefire reports and
writes them as the next proposal iteration under .covgate/fixes/: a JSON
file with the failure details plus a patch placeholder for the actual
fix.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		started := time.Now()

		fails, err := surefire.CollectFailures(projectDir(cfg))
		if err != nil {
			recordRun(cfg, "propose_fixes", false, started, err.Error(), "", nil)
			return err
		}

		store := fixes.NewStore(projectDir(cfg))
		iteration, err := store.NextIteration()
		if err != nil {
			return err
		}
		metaPath, err := store.Write(fixes.Proposal{Iteration: iteration, Failures: fails})
		if err != nil {
			recordRun(cfg, "propose_fixes", false, started, err.Error(), "", nil)
			return err
		}
		recordRun(cfg, "propose_fixes", true, started,
			fmt.Sprintf("iteration %d, %d failures", iteration, len(fails)), "", nil)

		fmt.Fprintf(cmd.OutOrStdout(), "%s Proposal %d written (%d failures): %s\n",
			render.Mark(true), iteration, len(fails), metaPath)
		return nil
	},
}

func init() {
	failuresCmd.Flags().String("format", "text", "Output format: text or json")
}

package cli

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/covgate/covgate/internal/jacoco"
	"github.com/covgate/covgate/internal/render"
)

var coverageCmd = &cobra.Command{
	Use:   "coverage",
	Short: "Inspect JaCoCo line coverage",
}

var coveragePercentCmd = &cobra.Command{
	Use:   "percent",
	Short: "Print the overall line-coverage percentage",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		report, _ := cmd.Flags().GetString("report")
		summary, path, err := jacoco.Percent(projectDir(cfg), firstNonEmpty(report, cfg.Coverage.Report))
		if err != nil {
			return err
		}
		w := cmd.OutOrStdout()
		fmt.Fprintf(w, "Line coverage: %s\n", render.Coverage(summary))
		fmt.Fprintf(w, "Report: %s\n", path)
		return nil
	},
}

var coverageAnalyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "List classes with uncovered lines and suggest where to add tests",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		started := time.Now()

		report, _ := cmd.Flags().GetString("report")
		gr, err := jacoco.Analyze(projectDir(cfg), firstNonEmpty(report, cfg.Coverage.Report))
		if err != nil {
			recordRun(cfg, "analyze_coverage", false, started, err.Error(), "", nil)
			return err
		}
		recordRun(cfg, "analyze_coverage", true, started,
			fmt.Sprintf("%d classes with uncovered lines", len(gr.Uncovered)), "", nil)

		format, _ := cmd.Flags().GetString("format")
		if format == "json" {
			data, _ := json.MarshalIndent(gr, "", "  ")
			fmt.Fprintln(cmd.OutOrStdout(), string(data))
			return nil
		}
		fmt.Fprint(cmd.OutOrStdout(), render.Gaps(*gr))
		return nil
	},
}

func init() {
	coverageCmd.PersistentFlags().String("report", "", "Path to jacoco.xml (default: search the project)")
	coverageAnalyzeCmd.Flags().String("format", "text", "Output format: text or json")

	coverageCmd.AddCommand(coveragePercentCmd)
	coverageCmd.AddCommand(coverageAnalyzeCmd)
}

package cli

import (
	"github.com/spf13/cobra"
)

var version = "dev"

func SetVersion(v string) {
	version = v
}

var rootCmd = &cobra.Command{
	Use:   "covgate",
	Short: "Coverage-gated commits for Java/Maven projects",
	Long: `covgate drives the test-then-commit loop for Maven repositories: run the
build with JaCoCo instrumentation, aggregate line coverage, annotate or
block commits against a threshold, stage changes through exclusion
filters, and hand finished branches to git push and the GitHub CLI.

Run history is stored in ~/.covgate/ (SQLite); fix proposals live under
the project's .covgate/fixes/ directory.`,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to a covgate config file (overrides the search path)")
	rootCmd.PersistentFlags().StringVarP(&flagProject, "project", "C", "", "Maven project directory (overrides config)")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(stageCmd)
	rootCmd.AddCommand(commitCmd)
	rootCmd.AddCommand(pushCmd)
	rootCmd.AddCommand(prCmd)
	rootCmd.AddCommand(mvnCmd)
	rootCmd.AddCommand(jacocoCmd)
	rootCmd.AddCommand(coverageCmd)
	rootCmd.AddCommand(scaffoldCmd)
	rootCmd.AddCommand(failuresCmd)
	rootCmd.AddCommand(proposeCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(dbCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(toolCmd)
}

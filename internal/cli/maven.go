package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/covgate/covgate/internal/maven"
	"github.com/covgate/covgate/internal/render"
)

var mvnCmd = &cobra.Command{
	Use:   "mvn [goals...]",
	Short: "Run Maven goals in the project directory",
	Long: `mvn invokes the configured Maven command (mvn.command, default "mvn")
with the given goals, defaulting to "test". Pass goals after -- to keep
Maven's own flags out of covgate's flag parsing:

  covgate mvn -- clean test -DskipITs`,
	Args: cobra.ArbitraryArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		started := time.Now()
		w := cmd.OutOrStdout()

		goals := args
		if len(goals) == 0 {
			goals = cfg.Maven.Goals
		}
		runner := maven.NewRunner(newRunner(), cfg.Maven.Command)
		res, err := runner.Run(cmd.Context(), projectDir(cfg), goals)
		if err != nil {
			recordRun(cfg, "maven_run", false, started, err.Error(), "", nil)
			return err
		}

		ok := res.ExitCode == 0
		recordRun(cfg, "maven_run", ok, started,
			fmt.Sprintf("%s %s: exit %d", cfg.Maven.Command, strings.Join(goals, " "), res.ExitCode),
			res.Combined(), nil)

		if out := res.Combined(); out != "" {
			fmt.Fprintln(w, out)
		}
		fmt.Fprintf(w, "%s %s %s (exit %d)\n", render.Mark(ok), cfg.Maven.Command, strings.Join(goals, " "), res.ExitCode)
		if !ok {
			return fmt.Errorf("maven exited with code %d", res.ExitCode)
		}
		return nil
	},
}

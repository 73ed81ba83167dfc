package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/covgate/covgate/internal/maven"
	"github.com/covgate/covgate/internal/render"
)

var jacocoCmd = &cobra.Command{
	Use:   "jacoco",
	Short: "Manage JaCoCo instrumentation in the project",
}

var jacocoConfigureCmd = &cobra.Command{
	Use:   "configure",
	Short: "Insert the JaCoCo plugin into pom.xml (backs the file up first)",
	Long: `configure adds the jacoco-maven-plugin (prepare-agent plus an XML report
bound to the test phase) to pom.xml. The original file is copied to
pom.xml.bak once; a pom that already mentions the plugin is left alone.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		started := time.Now()

		res, err := maven.ConfigureJacoco(projectDir(cfg))
		if err != nil {
			recordRun(cfg, "configure_jacoco", false, started, err.Error(), "", nil)
			return err
		}
		recordRun(cfg, "configure_jacoco", true, started, res.Message, "", nil)

		fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", render.Mark(true), res.Message)
		return nil
	},
}

func init() {
	jacocoCmd.AddCommand(jacocoConfigureCmd)
}

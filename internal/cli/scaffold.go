package cli

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/covgate/covgate/internal/render"
	"github.com/covgate/covgate/internal/scaffold"
)

var scaffoldCmd = &cobra.Command{
	Use:   "scaffold",
	Short: "Generate JUnit test skeletons for classes without tests",
	Long: `scaffold walks the main source root, extracts public method signatures
from each class, and writes a failing JUnit 5 test skeleton per class
into the test root, mirroring the package layout. Existing test files
are never overwritten.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		started := time.Now()
		dir := projectDir(cfg)

		out, _ := cmd.Flags().GetString("out")
		gen := scaffold.NewGenerator(dir, out)
		if cfg.Project.SourceRoot != "" {
			gen.SourceRoot = filepath.Join(dir, cfg.Project.SourceRoot)
		}
		if out == "" && cfg.Project.TestRoot != "" {
			gen.TestRoot = filepath.Join(dir, cfg.Project.TestRoot)
		}

		res, err := gen.Run()
		if err != nil {
			recordRun(cfg, "generate_tests", false, started, err.Error(), "", nil)
			return err
		}
		recordRun(cfg, "generate_tests", true, started,
			fmt.Sprintf("created %d test skeletons", res.Created), "", nil)

		w := cmd.OutOrStdout()
		fmt.Fprintf(w, "%s Created %d test skeletons.\n", render.Mark(true), res.Created)
		for _, f := range res.Files {
			fmt.Fprintf(w, "  %s\n", f)
		}
		return nil
	},
}

func init() {
	scaffoldCmd.Flags().String("out", "", "Directory for generated tests (default: the project's test root)")
}

package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var dbCmd = &cobra.Command{
	Use:   "db",
	Short: "Manage the run-history database",
}

var dbMigrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply history schema migrations",
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
		fmt.Fprintln(cmd.OutOrStdout(), "History schema is up to date.")
		return nil
	},
}

var dbResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Drop all recorded runs (destructive!)",
	RunE: func(cmd *cobra.Command, args []string) error {
		confirm, _ := cmd.Flags().GetBool("confirm")
		if !confirm {
			return fmt.Errorf("use --confirm to reset the history database")
		}

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

		if err := d.Reset(); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "History database reset.")
		return nil
	},
}

func init() {
	dbResetCmd.Flags().Bool("confirm", false, "Confirm dropping all recorded runs")

	dbCmd.AddCommand(dbMigrateCmd)
	dbCmd.AddCommand(dbResetCmd)
}

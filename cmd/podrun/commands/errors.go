package commands

import (
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/podrun/podrun/config"
	"github.com/podrun/podrun/display"
)

// ErrorsCmd shows recent failed and timed-out executions
var ErrorsCmd = &cobra.Command{
	Use:   "errors",
	Short: "Show recent command execution errors",
	Long: `Show recent failed and timed-out executions with per-worker detail,
newest first. Timed-out runs are listed separately from failures so a hung
command is distinguishable from a broken one.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")

		cfg, err := config.Load()
		if err != nil {
			return err
		}
		store, database, err := openStore(cfg)
		if err != nil {
			return err
		}
		defer database.Close()

		records, err := store.QueryErrors(limit)
		if err != nil {
			return err
		}
		if len(records) == 0 {
			pterm.Info.Println("No errors recorded.")
			return nil
		}

		return display.ErrorsTable(records)
	},
}

func init() {
	ErrorsCmd.Flags().Int("limit", 50, "Maximum number of records to show")
}

package commands

import (
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/podrun/podrun/config"
	"github.com/podrun/podrun/display"
	"github.com/podrun/podrun/engine"
	"github.com/podrun/podrun/errors"
	"github.com/podrun/podrun/internal/util"
)

// HistoryCmd shows the execution history
var HistoryCmd = &cobra.Command{
	Use:   "history",
	Short: "Show command execution history",
	Long: `Show the execution history, newest first.

Status filters:
  success    - every worker succeeded
  failed     - at least one worker failed
  timed_out  - at least one worker hung past its timeout (and none failed)

Examples:
  podrun history                       # last 15 executions
  podrun history --status failed       # only failures
  podrun history --limit 50 --output json`,
	RunE: func(cmd *cobra.Command, args []string) error {
		statusFlag, _ := cmd.Flags().GetString("status")
		limit, _ := cmd.Flags().GetInt("limit")
		output, _ := cmd.Flags().GetString("output")

		var filter *engine.Status
		if statusFlag != "" {
			if !engine.IsValidStatus(statusFlag) {
				return errors.NewValidationError("unknown status %q (want success, failed, or timed_out)", statusFlag)
			}
			filter = util.Ptr(engine.Status(statusFlag))
		}

		cfg, err := config.Load()
		if err != nil {
			return err
		}
		store, database, err := openStore(cfg)
		if err != nil {
			return err
		}
		defer database.Close()

		records, err := store.Query(filter, limit)
		if err != nil {
			return err
		}
		if len(records) == 0 {
			pterm.Info.Println("No command history found.")
			return nil
		}

		switch output {
		case "json":
			return display.OutputJSON(records)
		case "yaml":
			return display.OutputYAML(records)
		default:
			return display.HistoryTable(records)
		}
	},
}

// HistoryPruneCmd trims the history to the newest N records
var HistoryPruneCmd = &cobra.Command{
	Use:   "prune",
	Short: "Delete all but the newest records",
	Long: `Delete all but the newest --keep records from the execution history.

The engine itself never deletes history; this is the only way records are
removed.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		keep, _ := cmd.Flags().GetInt("keep")

		cfg, err := config.Load()
		if err != nil {
			return err
		}
		store, database, err := openStore(cfg)
		if err != nil {
			return err
		}
		defer database.Close()

		deleted, err := store.Prune(keep)
		if err != nil {
			return err
		}
		pterm.Success.Printf("Pruned %d record(s), kept the newest %d\n", deleted, keep)
		return nil
	},
}

func init() {
	HistoryCmd.Flags().String("status", "", "Filter by terminal status (success, failed, timed_out)")
	HistoryCmd.Flags().Int("limit", 15, "Maximum number of records to show")
	HistoryCmd.Flags().String("output", "table", "Output format: table, json, or yaml")

	HistoryPruneCmd.Flags().Int("keep", 100, "Number of newest records to keep")
	HistoryCmd.AddCommand(HistoryPruneCmd)
}

package commands

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/podrun/podrun/config"
	"github.com/podrun/podrun/display"
	"github.com/podrun/podrun/logger"
	"github.com/podrun/podrun/tpu"
)

// StatusCmd shows the TPU's current state
var StatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show TPU status and information",
	Long: `Query the TPU API for the configured slice and show its state,
accelerator type, network, and worker count.

Example:
  podrun status
  podrun status --json`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}

		client, err := tpu.NewClient(cfg.TPU, logger.Logger)
		if err != nil {
			return err
		}

		status, err := client.Describe(context.Background())
		if err != nil {
			return err
		}

		if jsonFlag, _ := cmd.Flags().GetBool("json"); jsonFlag {
			return display.OutputJSON(status)
		}
		return display.StatusTable(status)
	},
}

func init() {
	StatusCmd.Flags().BoolP("json", "j", false, "Output status as JSON")
}

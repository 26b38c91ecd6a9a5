package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/podrun/podrun/cmd/podrun/commands"
	"github.com/podrun/podrun/logger"
)

var rootCmd = &cobra.Command{
	Use:   "podrun",
	Short: "podrun - TPU pod command runner",
	Long: `podrun - run shell commands across the workers of a TPU VM slice.

podrun dispatches a command to one or all workers of a configured TPU,
retries transient failures, enforces per-attempt timeouts, and keeps a
durable history of every execution.

Examples:
  podrun configure --project ml-research --zone us-central2-b --tpu-name pod-v4-32
  podrun run "python train.py" --worker all --retries 3 --timeout 600
  podrun run "nvidia-smi" --worker 0
  podrun status                 # TPU state and worker count
  podrun history --limit 20     # recent executions
  podrun errors                 # failed and timed-out executions`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		verbosity, _ := cmd.Flags().GetCount("verbose")
		jsonLogs, _ := cmd.Flags().GetBool("json-logs")
		if err := logger.Initialize(jsonLogs, verbosity); err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		logger.Cleanup()
	},
}

func init() {
	rootCmd.PersistentFlags().CountP("verbose", "v", "Increase output verbosity (repeat for more detail: -v, -vv)")
	rootCmd.PersistentFlags().Bool("json-logs", false, "Emit logs as structured JSON")

	rootCmd.AddCommand(commands.RunCmd)
	rootCmd.AddCommand(commands.StatusCmd)
	rootCmd.AddCommand(commands.HistoryCmd)
	rootCmd.AddCommand(commands.ErrorsCmd)
	rootCmd.AddCommand(commands.ConfigureCmd)
	rootCmd.AddCommand(commands.ConfigCmd)
	rootCmd.AddCommand(commands.VersionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

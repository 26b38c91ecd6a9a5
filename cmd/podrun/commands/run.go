package commands

import (
	"context"
	"time"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/podrun/podrun/config"
	"github.com/podrun/podrun/display"
	"github.com/podrun/podrun/engine"
	"github.com/podrun/podrun/logger"
	"github.com/podrun/podrun/tpu"
)

// RunCmd executes a command on the TPU slice
var RunCmd = &cobra.Command{
	Use:   "run <command>",
	Short: "Run a command on the TPU slice",
	Long: `Run a shell command on one or all workers of the configured TPU.

Workers are dispatched concurrently; each worker retries independently on
failure and gets a fresh timeout window per attempt. A timed-out attempt is
never retried. Every run is recorded in the execution history.

Modes:
  --interactive   Open a pass-through SSH session (no retry/timeout/history)
  --stream        Stream output to the terminal instead of capturing it
  --nohup         Launch the command in the background on the remote host

Examples:
  podrun run "python train.py --config base.yaml"
  podrun run "uptime" --worker 2
  podrun run "python train.py" --retries 5 --retry-delay 10 --timeout 3600
  podrun run "tail -f train.log" --stream --worker 0
  podrun run "python train.py" --nohup`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		command := args[0]

		cfg, err := config.Load()
		if err != nil {
			return err
		}

		workerFlag, _ := cmd.Flags().GetString("worker")
		selector, err := engine.ParseWorkerSelector(workerFlag)
		if err != nil {
			return err
		}

		interactive, _ := cmd.Flags().GetBool("interactive")
		stream, _ := cmd.Flags().GetBool("stream")
		nohup, _ := cmd.Flags().GetBool("nohup")
		if interactive || stream || nohup {
			return runPassThrough(cfg, command, workerFlag, interactive, stream)
		}

		retries := flagOrDefaultInt(cmd, "retries", cfg.Run.Retries)
		delay := flagOrDefaultFloat(cmd, "retry-delay", cfg.Run.RetryDelaySeconds)
		timeout := flagOrDefaultFloat(cmd, "timeout", cfg.Run.TimeoutSeconds)

		eng, database, err := buildEngine(cfg)
		if err != nil {
			return err
		}
		defer database.Close()

		req := engine.ExecutionRequest{
			Command:    command,
			Workers:    selector,
			MaxRetries: retries,
			RetryDelay: time.Duration(delay * float64(time.Second)),
			Timeout:    time.Duration(timeout * float64(time.Second)),
		}

		spinner, _ := pterm.DefaultSpinner.Start("Executing: " + command)
		record, err := eng.Submit(context.Background(), req)
		if spinner != nil {
			spinner.Stop()
		}
		if err != nil && record == nil {
			return err
		}

		display.RecordSummary(record)
		if record.OutputExcerpt != "" {
			pterm.Println(record.OutputExcerpt)
		}
		// A store write failure still matters even though the command ran
		return err
	},
}

// runPassThrough handles the interactive/stream/nohup modes, which bypass
// the engine entirely: direct terminal takeover, no retry or history.
func runPassThrough(cfg *config.Config, command, workerScope string, interactive, stream bool) error {
	client, err := tpu.NewClient(cfg.TPU, logger.Logger)
	if err != nil {
		return err
	}

	switch {
	case interactive:
		pterm.Warning.Println("Interactive mode is experimental. Use with caution.")
		return client.Interactive(workerScope)
	case stream:
		return client.Stream(context.Background(), workerScope, command)
	default: // nohup
		wrapped := client.NohupCommand(command, workerScope)
		if err := client.Stream(context.Background(), workerScope, wrapped); err != nil {
			pterm.Error.Printf("Failed to start command in the background on worker(s) %s\n", workerScope)
			return err
		}
		pterm.Success.Printf("Command started in the background on worker(s) %s; output in %s_%s_output.log\n",
			workerScope, cfg.TPU.Name, workerScope)
		return nil
	}
}

func init() {
	RunCmd.Flags().String("worker", "all", `Specific worker index or "all"`)
	RunCmd.Flags().Int("retries", 0, "Retries after the first failed attempt (default from config)")
	RunCmd.Flags().Float64("retry-delay", 0, "Delay between attempts in seconds (default from config)")
	RunCmd.Flags().Float64("timeout", 0, "Per-attempt timeout in seconds (default from config)")
	RunCmd.Flags().Bool("interactive", false, "Run an interactive SSH session (experimental)")
	RunCmd.Flags().Bool("stream", false, "Stream output from the specified worker(s)")
	RunCmd.Flags().Bool("nohup", false, "Run the command in the background, detached from the session")
}

func flagOrDefaultInt(cmd *cobra.Command, name string, def int) int {
	if cmd.Flags().Changed(name) {
		v, _ := cmd.Flags().GetInt(name)
		return v
	}
	return def
}

func flagOrDefaultFloat(cmd *cobra.Command, name string, def float64) float64 {
	if cmd.Flags().Changed(name) {
		v, _ := cmd.Flags().GetFloat64(name)
		return v
	}
	return def
}

package commands

import (
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/podrun/podrun/config"
	"github.com/podrun/podrun/display"
)

// ConfigureCmd saves the TPU identity to the config file
var ConfigureCmd = &cobra.Command{
	Use:   "configure",
	Short: "Configure podrun with your Google Cloud details",
	Long: `Save the Google Cloud project, zone, and TPU name podrun targets.

Example:
  podrun configure --project ml-research --zone us-central2-b --tpu-name pod-v4-32`,
	RunE: func(cmd *cobra.Command, args []string) error {
		project, _ := cmd.Flags().GetString("project")
		zone, _ := cmd.Flags().GetString("zone")
		name, _ := cmd.Flags().GetString("tpu-name")

		if err := config.Save(config.TPUConfig{Project: project, Zone: zone, Name: name}); err != nil {
			return err
		}

		pterm.Success.Printf("Configuration saved to %s\n", config.Path())
		return nil
	},
}

// ConfigCmd groups configuration inspection commands
var ConfigCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect podrun configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

// ConfigShowCmd displays the current configuration
var ConfigShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}

		if !cfg.TPU.Configured() {
			pterm.Error.Println("No configuration found. Please run 'podrun configure' first.")
			return nil
		}

		if jsonFlag, _ := cmd.Flags().GetBool("json"); jsonFlag {
			return display.OutputJSON(cfg)
		}

		data := pterm.TableData{
			{"Setting", "Value"},
			{"Project", cfg.TPU.Project},
			{"Zone", cfg.TPU.Zone},
			{"TPU Name", cfg.TPU.Name},
			{"Database", cfg.Database.Path},
		}
		return pterm.DefaultTable.WithHasHeader().WithData(data).Render()
	},
}

func init() {
	ConfigureCmd.Flags().String("project", "", "Google Cloud Project ID")
	ConfigureCmd.Flags().String("zone", "", "Google Cloud Zone")
	ConfigureCmd.Flags().String("tpu-name", "", "TPU Name")
	ConfigureCmd.MarkFlagRequired("project")
	ConfigureCmd.MarkFlagRequired("zone")
	ConfigureCmd.MarkFlagRequired("tpu-name")

	ConfigShowCmd.Flags().BoolP("json", "j", false, "Output configuration as JSON")
	ConfigCmd.AddCommand(ConfigShowCmd)
}

package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/podrun/podrun/display"
	"github.com/podrun/podrun/version"
)

// VersionCmd shows version and build information
var VersionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show podrun version information",
	Long:  `Display version, build time, commit hash, and platform information for the podrun binary.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		info := version.Get()

		if jsonFlag, _ := cmd.Flags().GetBool("json"); jsonFlag {
			return display.OutputJSON(info)
		}

		fmt.Println(info.String())
		fmt.Printf("Platform: %s\n", info.Platform)
		fmt.Printf("Go: %s\n", info.GoVersion)
		return nil
	},
}

func init() {
	VersionCmd.Flags().BoolP("json", "j", false, "Output version info as JSON")
}

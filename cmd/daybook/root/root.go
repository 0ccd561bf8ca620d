package root

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

const Version = "0.1.0"

type globalFlags struct {
	configPath string
	dataPath   string
}

var flags globalFlags

var rootCmd = &cobra.Command{
	Use:           "daybook",
	Short:         "Terminal planner for tasks, notes and habits",
	Long:          "daybook keeps tasks, notes and daily habits in a local store and edits them from a terminal UI.",
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runUI,
}

func Execute() {
	rootCmd.Version = Version
	rootCmd.SetVersionTemplate("{{.Name}} v{{.Version}}\n")

	rootCmd.PersistentFlags().StringVar(&flags.configPath, "config", "", "config file (default ~/.config/daybook/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&flags.dataPath, "data", "", "data file, overrides storage.path")

	rootCmd.AddCommand(
		newExportCmd(),
		newStatsCmd(),
		newInitConfigCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "daybook: "+err.Error())
		os.Exit(1)
	}
}

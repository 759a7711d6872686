package service

import (
	"os"

	"clawdeye-installer/cmd/root"
	"clawdeye-installer/internal/config"
	"clawdeye-installer/internal/terminal"
	"clawdeye-installer/services"

	"github.com/spf13/cobra"
)

var stopCmd = &cobra.Command{
	Use:   "stop",
	Short: "Stop the running api-server and collector",
	Long: `Reads the recorded pids, verifies each still belongs to its component,
and terminates them. Without a pid file it falls back to best-effort
command-line pattern matching.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		if err := services.StopInstalled(config.Config.Defaults.InstallDir); err != nil {
			terminal.Errorf("%v", err)
			os.Exit(1)
		}
	},
}

func init() {
	root.RootCmd.AddCommand(stopCmd)

	stopCmd.Example = `  clawdeye-installer stop`
}

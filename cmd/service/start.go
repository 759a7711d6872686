package service

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"clawdeye-installer/cmd/root"
	"clawdeye-installer/internal/config"
	"clawdeye-installer/internal/terminal"
	"clawdeye-installer/services"

	"github.com/spf13/cobra"
)

var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the api-server and collector in the foreground",
	Long: `Loads the environment file, launches the api-server and collector as
child processes, records their pids, and blocks. SIGINT/SIGTERM is cascaded
to both children before the command returns.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		if err := startSupervised(); err != nil {
			terminal.Errorf("%v", err)
			os.Exit(1)
		}
	},
}

/**
 * Run the foreground supervisor
 * @description
 * - The command stays in the foreground so its lifetime brackets both
 *   children; a single interrupt cascades to both exactly once
 */
func startSupervised() error {
	sup, err := services.NewSupervisor(config.Config.Defaults.InstallDir)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return sup.Run(ctx)
}

func init() {
	root.RootCmd.AddCommand(startCmd)

	startCmd.Example = `  clawdeye-installer start`
}

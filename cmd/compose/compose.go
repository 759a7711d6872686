package compose

import (
	"os"

	"clawdeye-installer/cmd/root"
	"clawdeye-installer/internal/config"
	"clawdeye-installer/internal/models"
	"clawdeye-installer/internal/terminal"
	"clawdeye-installer/services"

	"github.com/spf13/cobra"
)

var composeCmd = &cobra.Command{
	Use:   "compose",
	Short: "Manage the containerized clawdeye stack",
	Long:  `Lifecycle commands for a stack provisioned with 'install docker'.`,
}

// resolve re-checks the engine and compose form; the compose variant
// is useless without a reachable daemon, so failing fast here matches
// the install-time preflight.
func resolve() (string, services.ComposeCommand) {
	res, err := services.CheckPrerequisites(models.VariantDocker)
	if err != nil {
		terminal.Errorf("%v", err)
		os.Exit(1)
	}
	return config.Config.Defaults.InstallDir, res.Compose
}

func init() {
	root.RootCmd.AddCommand(composeCmd)
}

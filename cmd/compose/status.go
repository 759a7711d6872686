package compose

import (
	"os"

	"clawdeye-installer/internal/terminal"
	"clawdeye-installer/services"

	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the state of the clawdeye container stack",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		dir, composeForm := resolve()
		if err := services.ComposePs(dir, composeForm); err != nil {
			terminal.Errorf("%v", err)
			os.Exit(1)
		}
	},
}

func init() {
	composeCmd.AddCommand(statusCmd)

	statusCmd.Example = `  clawdeye-installer compose status`
}

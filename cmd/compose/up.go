package compose

import (
	"os"

	"clawdeye-installer/internal/terminal"
	"clawdeye-installer/services"

	"github.com/spf13/cobra"
)

var upCmd = &cobra.Command{
	Use:   "up",
	Short: "Start the clawdeye container stack",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		dir, composeForm := resolve()
		if err := services.ComposeUp(dir, composeForm); err != nil {
			terminal.Errorf("%v", err)
			os.Exit(1)
		}
		terminal.Successf("clawdeye stack is up")
	},
}

func init() {
	composeCmd.AddCommand(upCmd)

	upCmd.Example = `  clawdeye-installer compose up`
}

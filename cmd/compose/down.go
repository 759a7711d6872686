package compose

import (
	"os"

	"clawdeye-installer/internal/terminal"
	"clawdeye-installer/services"

	"github.com/spf13/cobra"
)

var downCmd = &cobra.Command{
	Use:   "down",
	Short: "Stop and remove the clawdeye container stack",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		dir, composeForm := resolve()
		if err := services.ComposeDown(dir, composeForm); err != nil {
			terminal.Errorf("%v", err)
			os.Exit(1)
		}
		terminal.Successf("clawdeye stack is down")
	},
}

func init() {
	composeCmd.AddCommand(downCmd)

	downCmd.Example = `  clawdeye-installer compose down`
}

package root

import (
	"github.com/spf13/cobra"
)

var RootCmd = &cobra.Command{
	Use:   "clawdeye-installer",
	Short: "Install and manage the clawdeye monitoring dashboard",
	Long: `clawdeye-installer provisions the clawdeye dashboard and collector:
it checks prerequisites, collects configuration interactively, downloads the
release (or pulls the container image), and starts/stops the running pair.`,
}

package cmd

import (
	"fmt"

	"clawdeye-installer/cmd/root"

	"github.com/spf13/cobra"
)

// Injected at link time via -ldflags.
var (
	Version   = "dev"
	GitCommit = ""
	BuildTime = ""
)

func versionString() string {
	s := "clawdeye-installer " + Version
	if GitCommit != "" {
		s += fmt.Sprintf("\n  commit: %s", GitCommit)
	}
	if BuildTime != "" {
		s += fmt.Sprintf("\n  built:  %s", BuildTime)
	}
	return s
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show installer version and build information",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println(versionString())
	},
}

func init() {
	root.RootCmd.AddCommand(versionCmd)

	versionCmd.Example = `  clawdeye-installer version`
}

package install

import (
	"context"
	"errors"
	"fmt"
	"os"

	"clawdeye-installer/cmd/root"
	"clawdeye-installer/internal/logger"
	"clawdeye-installer/internal/models"
	"clawdeye-installer/internal/terminal"
	"clawdeye-installer/services"

	"github.com/spf13/cobra"
)

var installCmd = &cobra.Command{
	Use:   "install",
	Short: "Install or update the clawdeye dashboard (node layout)",
	Long: `Interactive install: checks prerequisites, collects configuration,
downloads the latest release tarball, writes the environment file, and
pushes the database schema. Re-running updates an existing install in place.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		runInstall(models.VariantNode)
	},
}

var dockerCmd = &cobra.Command{
	Use:   "docker",
	Short: "Install the clawdeye dashboard as a container stack",
	Long: `Interactive container install: checks the docker engine and compose,
collects configuration, writes the environment file and compose manifest,
pulls the image and brings the service up detached.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		runInstall(models.VariantDocker)
	},
}

/**
 * Run one install pipeline end to end
 * @param {models.Variant} variant - Distribution form to provision
 * @description
 * Strictly linear: preflight -> prompts -> confirmation -> provision -> summary.
 * Exit codes: 0 on success or a declined confirmation, 1 on any failure.
 */
func runInstall(variant models.Variant) {
	res, err := services.CheckPrerequisites(variant)
	if err != nil {
		terminal.Errorf("%v", err)
		os.Exit(1)
	}

	p := terminal.NewTTY()
	defer p.Close()

	cfg, err := services.CollectConfig(p, variant)
	if err != nil {
		if errors.Is(err, models.ErrCancelled) {
			// declined confirmation, nothing was written
			p.Printf("Installation cancelled.\n")
			return
		}
		terminal.Errorf("%v", err)
		os.Exit(1)
	}

	ctx := context.Background()
	if variant == models.VariantDocker {
		err = services.ProvisionDocker(ctx, cfg, res.Compose)
	} else {
		err = services.ProvisionArchive(ctx, cfg)
	}
	if err != nil {
		logger.Errorf("Provisioning failed: %v", err)
		terminal.Errorf("%v", err)
		os.Exit(1)
	}

	printNextSteps(cfg)
}

func printNextSteps(cfg *models.InstallConfig) {
	terminal.Successf("\nInstallation complete.")
	if cfg.Variant == models.VariantDocker {
		fmt.Fprintf(os.Stderr, "Dashboard: http://localhost:%d\n", cfg.DashboardPort)
		fmt.Fprintf(os.Stderr, "Manage the stack with 'clawdeye-installer compose up|down|status'.\n")
		return
	}
	fmt.Fprintf(os.Stderr, "Dashboard: http://localhost:%d\n", cfg.DashboardPort)
	fmt.Fprintf(os.Stderr, "Start the dashboard and collector with 'clawdeye-installer start'.\n")
}

func init() {
	installCmd.AddCommand(dockerCmd)
	root.RootCmd.AddCommand(installCmd)

	installCmd.Example = `  clawdeye-installer install
  clawdeye-installer install docker`
}

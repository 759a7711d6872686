package server

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"clawdeye-installer/cmd/root"
	"clawdeye-installer/controllers"
	"clawdeye-installer/internal/config"
	"clawdeye-installer/internal/logger"
	"clawdeye-installer/internal/middleware"
	"clawdeye-installer/internal/terminal"
	"clawdeye-installer/services"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
)

var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Run the supervisor with a local status API",
	Long: `Like 'start', but additionally serves a status API on the configured
address: process details, health, and prometheus metrics.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		if err := startServer(context.Background()); err != nil {
			terminal.Errorf("%v", err)
			os.Exit(1)
		}
	},
}

func startServer(ctx context.Context) error {
	sup, err := services.NewSupervisor(config.Config.Defaults.InstallDir)
	if err != nil {
		return err
	}

	gin.SetMode(config.Config.Server.Mode)
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.MetricsMiddleware())

	apiController := controllers.NewAPIController(sup)
	apiController.RegisterRoutes(router)

	go func() {
		if err := router.Run(config.Config.Server.Address); err != nil {
			logger.Errorf("Status API stopped: %v", err)
		}
	}()
	logger.Infof("Status API listening on %s", config.Config.Server.Address)

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	return sup.Run(ctx)
}

func init() {
	root.RootCmd.AddCommand(serverCmd)

	serverCmd.Example = `  clawdeye-installer server`
}

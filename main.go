package main

import (
	"os"

	_ "clawdeye-installer/cmd"
	"clawdeye-installer/cmd/root"
	"clawdeye-installer/internal/config"
	"clawdeye-installer/internal/env"
	"clawdeye-installer/internal/logger"
)

func main() {
	// Supervisor modes mirror log lines to the console; plain CLI runs
	// keep stdout clean and log to the file only.
	env.Supervisor = len(os.Args) > 1 && (os.Args[1] == "start" || os.Args[1] == "server")

	logger.InitLogger(&config.Config.Log, env.Supervisor)

	if err := root.RootCmd.Execute(); err != nil {
		logger.Fatal(err)
	}
	os.Exit(0)
}

package service

import (
	"fmt"
	"time"

	"clawdeye-installer/cmd/root"
	"clawdeye-installer/internal/config"
	"clawdeye-installer/internal/models"
	"clawdeye-installer/internal/utils"
	"clawdeye-installer/services"

	"github.com/iancoleman/orderedmap"
	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the state of the api-server and collector",
	Long:  `State is inferred live from the process table via the recorded pids.`,
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		showStatus()
	},
}

type Status_Columns struct {
	Name    string `json:"name"`
	Pid     string `json:"pid"`
	Status  string `json:"status"`
	Port    string `json:"port"`
	Started string `json:"started"`
}

/**
 * Display the supervised pair as a table
 * @description
 * - One row per component with pid, state, and configured port
 */
func showStatus() {
	details := services.StatusInstalled(config.Config.Defaults.InstallDir)

	var dataList []*orderedmap.OrderedMap
	for _, detail := range details {
		row := Status_Columns{
			Name:    detail.Title,
			Pid:     "-",
			Status:  string(detail.Status),
			Port:    "-",
			Started: "-",
		}
		if detail.Pid > 0 {
			row.Pid = fmt.Sprintf("%d", detail.Pid)
		}
		if detail.Port > 0 {
			row.Port = fmt.Sprintf("%d", detail.Port)
		}
		if detail.Status == models.StatusRunning && !detail.StartTime.IsZero() {
			row.Started = detail.StartTime.Format(time.RFC3339)
		}

		recordMap, _ := utils.StructToOrderedMap(row)
		dataList = append(dataList, recordMap)
	}

	utils.PrintFormat(dataList)
}

func init() {
	root.RootCmd.AddCommand(statusCmd)

	statusCmd.Example = `  clawdeye-installer status`
}

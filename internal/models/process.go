package models

import "time"

type RunStatus string

const (
	// running: the process is alive in the process table
	StatusRunning RunStatus = "running"
	// exited: the process ended on its own
	StatusExited RunStatus = "exited"
	// stopped: terminated by `stop` or by the supervisor's signal cascade
	StatusStopped RunStatus = "stopped"
	// error: the process ended with a non-zero exit status
	StatusError RunStatus = "error"
)

type ProcessDetail struct {
	Title          string    `json:"title"`          //display name (api-server/collector)
	Pattern        string    `json:"pattern"`        //command-line pattern identifying the process
	Command        string    `json:"command"`        //launch command
	Args           []string  `json:"args"`           //command arguments
	WorkDir        string    `json:"workDir"`        //working directory
	Port           int       `json:"port"`           //listening port from the environment file
	Pid            int       `json:"pid"`            //process id (0 when not running)
	Status         RunStatus `json:"status"`         //current state
	StartTime      time.Time `json:"startTime"`      //spawn time
	LastExitTime   time.Time `json:"lastExitTime"`   //time of the last observed exit
	LastExitReason string    `json:"lastExitReason"` //reason recorded at the last exit
}

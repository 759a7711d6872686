package env

import (
	"os"
	"path/filepath"
)

// Set to true when running as the foreground supervisor (`start`/`server`).
var Supervisor bool = false

// (default: $HOME/.clawdeye)
var ClawdeyeDir string = GetClawdeyeDir()

/**
 * Get clawdeye base directory path
 * @returns {string} Returns clawdeye base directory path
 */
func GetClawdeyeDir() string {
	homeDir, _ := os.UserHomeDir()
	return filepath.Join(homeDir, ".clawdeye")
}

package utils

import (
	"fmt"
	"os"
	"strings"
)

/**
 * Find a process by pid, verifying its command line
 * @param {string} pattern - Substring the process command line must contain
 * @param {int} pid - Recorded process id
 * @returns {*os.Process} The process handle when pid is alive and matches
 * @description
 * - The pattern check guards against pid reuse: a recorded pid whose
 *   command line no longer matches belongs to someone else and must
 *   not be signalled
 */
func FindProcess(pattern string, pid int) (*os.Process, error) {
	proc, err := os.FindProcess(pid)
	if err != nil {
		return nil, err
	}

	cmdline, err := GetProcessCmdline(pid)
	if err != nil {
		return nil, fmt.Errorf("failed to get command line for PID %d: %v", pid, err)
	}

	if !strings.Contains(cmdline, pattern) {
		return nil, fmt.Errorf("command line mismatch for PID %d: expected '%s', got '%s'", pid, pattern, cmdline)
	}
	return proc, nil
}

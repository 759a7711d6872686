//go:build unix

package utils

import (
	"fmt"
	"os"
	"os/exec"
	"strconv"
	"strings"
	"syscall"
	"time"
)

// IsProcessRunning checks liveness by sending signal 0.
func IsProcessRunning(pid int) bool {
	process, err := os.FindProcess(pid)
	if err != nil {
		return false
	}
	return process.Signal(syscall.Signal(0)) == nil
}

/**
 * Get the full command line of a process
 * @param {int} pid - Process id
 * @returns {string} Space-joined command line
 * @description
 * - Reads /proc/<pid>/cmdline where procfs exists
 * - Falls back to `ps -p <pid> -o command=` elsewhere
 */
func GetProcessCmdline(pid int) (string, error) {
	cmdlinePath := fmt.Sprintf("/proc/%d/cmdline", pid)
	if cmdline, err := os.ReadFile(cmdlinePath); err == nil && len(cmdline) > 0 {
		args := strings.Split(strings.TrimRight(string(cmdline), "\x00"), "\x00")
		return strings.Join(args, " "), nil
	}

	out, err := exec.Command("ps", "-p", strconv.Itoa(pid), "-o", "command=").Output()
	if err != nil {
		return "", fmt.Errorf("no cmdline found for PID %d: %v", pid, err)
	}
	cmdline := strings.TrimSpace(string(out))
	if cmdline == "" {
		return "", fmt.Errorf("no cmdline found for PID %d", pid)
	}
	return cmdline, nil
}

/**
 * Find processes whose command line contains a pattern
 * @param {string} pattern - Substring to match against the full command line
 * @returns {[]int} Matching pids, never including the current process
 * @description
 * - Enumerates via `ps -e -o pid,command` (works on Linux and Darwin)
 * - Best-effort: matching is only as reliable as the host's process table
 */
func FindProcessesByCmdline(pattern string) []int {
	var pids []int

	selfPid := os.Getpid()
	out, err := exec.Command("ps", "-e", "-o", "pid,command").Output()
	if err != nil {
		return pids
	}

	for _, line := range strings.Split(string(out), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "PID") {
			continue
		}
		fields := strings.SplitN(line, " ", 2)
		if len(fields) < 2 {
			continue
		}
		if !strings.Contains(fields[1], pattern) {
			continue
		}
		pid, err := strconv.Atoi(strings.TrimSpace(fields[0]))
		if err != nil || pid == selfPid {
			continue
		}
		pids = append(pids, pid)
	}
	return pids
}

/**
 * Terminate a process gracefully
 * @param {int} pid - Process id to terminate
 * @description
 * - Sends SIGTERM first and polls for exit for one second
 * - Escalates to SIGKILL only when the process ignores SIGTERM
 * - An already-exited process is a non-error outcome
 */
func TerminateProcess(pid int) error {
	process, err := os.FindProcess(pid)
	if err != nil {
		return nil
	}

	if err := process.Signal(syscall.SIGTERM); err != nil {
		// ESRCH: already gone
		return nil
	}
	for i := 0; i < 10; i++ {
		if err := process.Signal(syscall.Signal(0)); err != nil {
			return nil
		}
		time.Sleep(100 * time.Millisecond)
	}

	if err := process.Signal(syscall.SIGKILL); err != nil {
		return nil
	}
	return nil
}

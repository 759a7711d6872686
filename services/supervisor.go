package services

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"syscall"
	"time"

	"clawdeye-installer/internal/logger"
	"clawdeye-installer/internal/models"
	"clawdeye-installer/internal/terminal"
	"clawdeye-installer/internal/utils"
)

// Component entry points inside the extracted release.
const (
	apiServerScript = "server.js"
	collectorScript = "collector.js"
)

type pidEntry struct {
	Name    string `json:"name"`
	Pid     int    `json:"pid"`
	Pattern string `json:"pattern"`
	Port    int    `json:"port"`
}

type pidFileData struct {
	Supervisor int        `json:"supervisor"`
	Processes  []pidEntry `json:"processes"`
}

// PidFilePath returns the identifier-file location for an install directory.
func PidFilePath(installDir string) string {
	return filepath.Join(installDir, "run", "clawdeye.pid")
}

/**
 * Supervisor owns the api-server and collector child processes.
 * The parent's lifetime brackets both children: Run blocks until both
 * have exited, either on their own or through the signal cascade.
 */
type Supervisor struct {
	installDir string
	envs       map[string]string
	procs      []*ProcessInstance
}

/**
 * Create a supervisor for an installed directory
 * @param {string} installDir - Root the release was extracted into
 * @description
 * - Loads the environment file first; both children receive the full
 *   environment and are started only after it parsed completely
 * @throws
 * - An error directing the user to `install` when no environment file exists
 */
func NewSupervisor(installDir string) (*Supervisor, error) {
	envPath := EnvFilePath(installDir)
	envs, err := LoadEnvFile(envPath)
	if err != nil {
		return nil, fmt.Errorf("no environment file at %s, run 'clawdeye-installer install' first", envPath)
	}

	childEnv := os.Environ()
	for key, value := range envs {
		childEnv = append(childEnv, key+"="+value)
	}

	api := NewProcessInstance("api-server", apiServerScript,
		"node", []string{filepath.Join(installDir, apiServerScript)})
	api.Port = atoiDefault(envs["DASHBOARD_PORT"], 3000)

	collector := NewProcessInstance("collector", collectorScript,
		"node", []string{filepath.Join(installDir, collectorScript)})
	collector.Port = atoiDefault(envs["GATEWAY_PORT"], 18789)

	for _, pi := range []*ProcessInstance{api, collector} {
		pi.WorkDir = installDir
		pi.Env = childEnv
	}

	return &Supervisor{
		installDir: installDir,
		envs:       envs,
		procs:      []*ProcessInstance{api, collector},
	}, nil
}

func atoiDefault(s string, def int) int {
	if n, err := strconv.Atoi(s); err == nil {
		return n
	}
	return def
}

// Processes returns live details for the supervised pair.
func (s *Supervisor) Processes() []models.ProcessDetail {
	details := make([]models.ProcessDetail, 0, len(s.procs))
	for _, pi := range s.procs {
		details = append(details, pi.Detail())
	}
	return details
}

/**
 * Run starts both children and blocks until both have exited.
 * @param {context.Context} ctx - Cancelled on SIGINT/SIGTERM by the caller
 * @description
 * - Spawns both children, records their pids in the identifier file,
 *   prints pids and configured ports
 * - On cancellation, cascades SIGTERM to both exactly once and keeps
 *   waiting until both are gone; an already-exited child is tolerated
 * - Removes the identifier file and confirms shutdown before returning
 */
func (s *Supervisor) Run(ctx context.Context) error {
	for i, pi := range s.procs {
		if err := pi.Start(); err != nil {
			for _, started := range s.procs[:i] {
				started.Signal(syscall.SIGTERM)
				started.Wait()
			}
			return err
		}
	}

	if err := s.writePidFile(); err != nil {
		logger.Warnf("Could not write pid file: %v", err)
	}
	for _, pi := range s.procs {
		terminal.Successf("%s running (pid %d, port %d)", pi.Title, pi.Pid(), pi.Port)
	}

	done := make(chan *ProcessInstance, len(s.procs))
	for _, pi := range s.procs {
		go func(pi *ProcessInstance) {
			pi.Wait()
			done <- pi
		}(pi)
	}

	exited := 0
	cascaded := false
	for exited < len(s.procs) {
		if cascaded {
			<-done
			exited++
			continue
		}
		select {
		case <-ctx.Done():
			cascaded = true
			terminal.Warnf("Shutting down...")
			s.cascade()
		case <-done:
			exited++
		}
	}

	os.Remove(PidFilePath(s.installDir))
	terminal.Successf("All processes stopped")
	return nil
}

// cascade sends SIGTERM to both children; a child that already exited
// is a non-error outcome.
func (s *Supervisor) cascade() {
	for _, pi := range s.procs {
		if err := pi.Signal(syscall.SIGTERM); err != nil {
			logger.Warnf("Signal %s failed: %v", pi.Title, err)
		}
	}
}

func (s *Supervisor) writePidFile() error {
	data := pidFileData{Supervisor: os.Getpid()}
	for _, pi := range s.procs {
		data.Processes = append(data.Processes, pidEntry{
			Name:    pi.Title,
			Pid:     pi.Pid(),
			Pattern: pi.Pattern,
			Port:    pi.Port,
		})
	}
	path := PidFilePath(s.installDir)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	raw, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, raw, 0644)
}

func readPidFile(installDir string) (*pidFileData, error) {
	raw, err := os.ReadFile(PidFilePath(installDir))
	if err != nil {
		return nil, err
	}
	var data pidFileData
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, err
	}
	return &data, nil
}

/**
 * Stop the installed pair from outside the supervisor
 * @param {string} installDir - Install directory holding the identifier file
 * @description
 * - Primary path: read recorded pids, verify each pid's command line still
 *   matches its component pattern, then terminate; a stale or missing pid
 *   reports "not running" rather than failing
 * - The supervisor process itself is terminated first so its own cascade
 *   reaches the children; the children are then swept directly in case the
 *   supervisor is already gone
 * - Fallback without an identifier file: best-effort command-line pattern
 *   matching, only as reliable as the host's process table
 */
func StopInstalled(installDir string) error {
	data, err := readPidFile(installDir)
	if err != nil {
		terminal.Warnf("No pid file found, falling back to process-pattern matching")
		return stopByPattern(installDir)
	}

	if data.Supervisor > 0 && utils.IsProcessRunning(data.Supervisor) {
		stopSupervisor(data.Supervisor)
	}

	for _, entry := range data.Processes {
		if _, err := utils.FindProcess(entry.Pattern, entry.Pid); err != nil {
			terminal.Warnf("%s was not running", entry.Name)
			continue
		}
		if err := utils.TerminateProcess(entry.Pid); err != nil {
			terminal.Errorf("Failed to stop %s (pid %d): %v", entry.Name, entry.Pid, err)
			continue
		}
		terminal.Successf("Stopped %s (pid %d)", entry.Name, entry.Pid)
	}

	os.Remove(PidFilePath(installDir))
	return nil
}

/**
 * Signal the supervisor and give its own cascade time to finish
 * @param {int} pid - Recorded supervisor pid
 * @description
 * - SIGTERM only, never SIGKILL: killing the supervisor mid-cascade would
 *   orphan a child and leave the pid file behind
 * - Waits up to five seconds; a supervisor still alive after that is left
 *   to the direct per-child sweep
 */
func stopSupervisor(pid int) {
	proc, err := os.FindProcess(pid)
	if err != nil {
		return
	}
	if err := proc.Signal(syscall.SIGTERM); err != nil {
		// already gone
		return
	}
	for i := 0; i < 50; i++ {
		if !utils.IsProcessRunning(pid) {
			return
		}
		time.Sleep(100 * time.Millisecond)
	}
	logger.Warnf("Supervisor (pid %d) did not exit in time, sweeping children directly", pid)
}

func stopByPattern(installDir string) error {
	for _, component := range []struct {
		name    string
		pattern string
	}{
		{"api-server", filepath.Join(installDir, apiServerScript)},
		{"collector", filepath.Join(installDir, collectorScript)},
	} {
		pids := utils.FindProcessesByCmdline(component.pattern)
		if len(pids) == 0 {
			terminal.Warnf("%s was not running", component.name)
			continue
		}
		for _, pid := range pids {
			if err := utils.TerminateProcess(pid); err != nil {
				terminal.Errorf("Failed to stop %s (pid %d): %v", component.name, pid, err)
				continue
			}
			terminal.Successf("Stopped %s (pid %d)", component.name, pid)
		}
	}
	return nil
}

/**
 * StatusInstalled reports the live state of the supervised pair.
 * @description
 * - State is inferred from the process table, nothing durable beyond the
 *   identifier file exists between runs
 */
func StatusInstalled(installDir string) []models.ProcessDetail {
	data, err := readPidFile(installDir)
	if err != nil {
		// untracked: scan by pattern
		details := []models.ProcessDetail{}
		for _, component := range []struct {
			name    string
			pattern string
		}{
			{"api-server", filepath.Join(installDir, apiServerScript)},
			{"collector", filepath.Join(installDir, collectorScript)},
		} {
			detail := models.ProcessDetail{Title: component.name, Pattern: component.pattern, Status: models.StatusExited}
			if pids := utils.FindProcessesByCmdline(component.pattern); len(pids) > 0 {
				detail.Pid = pids[0]
				detail.Status = models.StatusRunning
			}
			details = append(details, detail)
		}
		return details
	}

	details := make([]models.ProcessDetail, 0, len(data.Processes))
	for _, entry := range data.Processes {
		detail := models.ProcessDetail{
			Title:   entry.Name,
			Pattern: entry.Pattern,
			Port:    entry.Port,
			Pid:     entry.Pid,
			Status:  models.StatusExited,
		}
		if _, err := utils.FindProcess(entry.Pattern, entry.Pid); err == nil {
			detail.Status = models.StatusRunning
		} else {
			detail.Pid = 0
		}
		details = append(details, detail)
	}
	return details
}

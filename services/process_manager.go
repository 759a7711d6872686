package services

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"sync"
	"syscall"
	"time"

	"clawdeye-installer/internal/logger"
	"clawdeye-installer/internal/models"
)

/**
 * ProcessInstance - one supervised child process
 * @property {string} title - Display name (api-server/collector)
 * @property {string} pattern - Command-line substring identifying the process; pattern+pid
 *   confirm an identity before a signal is sent, so a recycled pid is never killed
 * @property {string} command - Launch command
 * @property {[]string} args - Command arguments
 * @property {string} workDir - Working directory
 * @property {[]string} env - Child environment (process env + environment file)
 * @property {int} port - Listening/upstream port shown in status output
 */
type ProcessInstance struct {
	Title   string
	Pattern string
	Command string
	Args    []string
	WorkDir string
	Env     []string
	Port    int

	Status         models.RunStatus
	StartTime      time.Time
	LastExitTime   time.Time
	LastExitReason string

	cmd   *exec.Cmd
	mutex sync.Mutex
}

func NewProcessInstance(title, pattern, command string, args []string) *ProcessInstance {
	return &ProcessInstance{
		Title:   title,
		Pattern: pattern,
		Command: command,
		Args:    args,
		Status:  models.StatusExited,
	}
}

func (pi *ProcessInstance) Pid() int {
	pi.mutex.Lock()
	defer pi.mutex.Unlock()
	if pi.cmd == nil || pi.cmd.Process == nil {
		return 0
	}
	return pi.cmd.Process.Pid
}

/**
 * Start spawns the child process in the background.
 * @description
 * - Child stdout/stderr are appended to <workDir>/logs/<title>.log
 * - Does not block; pair with Wait to observe the exit
 */
func (pi *ProcessInstance) Start() error {
	pi.mutex.Lock()
	defer pi.mutex.Unlock()

	cmd := exec.Command(pi.Command, pi.Args...)
	cmd.Dir = pi.WorkDir
	cmd.Env = pi.Env

	logDir := filepath.Join(pi.WorkDir, "logs")
	if err := os.MkdirAll(logDir, 0755); err == nil {
		logPath := filepath.Join(logDir, pi.Title+".log")
		if f, err := os.OpenFile(logPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644); err == nil {
			cmd.Stdout = f
			cmd.Stderr = f
		}
	}

	if err := cmd.Start(); err != nil {
		pi.Status = models.StatusError
		pi.LastExitReason = err.Error()
		return fmt.Errorf("start %s: %w", pi.Title, err)
	}

	pi.cmd = cmd
	pi.Status = models.StatusRunning
	pi.StartTime = time.Now()
	logger.Infof("Started %s (pid %d)", pi.Title, cmd.Process.Pid)
	return nil
}

/**
 * Wait blocks until the child exits and records the outcome.
 * @description
 * - A signal-terminated or stop-initiated exit records "stopped",
 *   a non-zero self-exit records "error", a clean exit "exited"
 */
func (pi *ProcessInstance) Wait() error {
	pi.mutex.Lock()
	cmd := pi.cmd
	pi.mutex.Unlock()
	if cmd == nil {
		return nil
	}

	err := cmd.Wait()

	pi.mutex.Lock()
	defer pi.mutex.Unlock()
	pi.LastExitTime = time.Now()
	switch {
	case err == nil:
		pi.Status = models.StatusExited
		pi.LastExitReason = "exited cleanly"
	case cmd.ProcessState != nil && !cmd.ProcessState.Exited():
		// ended by a signal (our cascade or an external stop)
		pi.Status = models.StatusStopped
		pi.LastExitReason = err.Error()
	default:
		pi.Status = models.StatusError
		pi.LastExitReason = err.Error()
	}
	IncrementProcessExit(pi.Title)
	logger.Infof("%s exited: %s", pi.Title, pi.LastExitReason)
	return err
}

/**
 * Signal sends sig to the child, tolerating one that already exited.
 * @description
 * - "process already finished" / no-such-process outcomes return nil;
 *   the cascade must reach both children even when one is gone
 */
func (pi *ProcessInstance) Signal(sig os.Signal) error {
	pi.mutex.Lock()
	defer pi.mutex.Unlock()
	if pi.cmd == nil || pi.cmd.Process == nil {
		return nil
	}
	err := pi.cmd.Process.Signal(sig)
	if err == nil || errors.Is(err, os.ErrProcessDone) || errors.Is(err, syscall.ESRCH) {
		return nil
	}
	return err
}

func (pi *ProcessInstance) Detail() models.ProcessDetail {
	pi.mutex.Lock()
	defer pi.mutex.Unlock()
	pid := 0
	if pi.cmd != nil && pi.cmd.Process != nil {
		pid = pi.cmd.Process.Pid
	}
	return models.ProcessDetail{
		Title:          pi.Title,
		Pattern:        pi.Pattern,
		Command:        pi.Command,
		Args:           pi.Args,
		WorkDir:        pi.WorkDir,
		Port:           pi.Port,
		Pid:            pid,
		Status:         pi.Status,
		StartTime:      pi.StartTime,
		LastExitTime:   pi.LastExitTime,
		LastExitReason: pi.LastExitReason,
	}
}

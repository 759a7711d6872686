package services

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"syscall"
	"testing"
	"time"

	"clawdeye-installer/internal/models"
)

func TestNewSupervisorRequiresEnvFile(t *testing.T) {
	_, err := NewSupervisor(t.TempDir())
	if err == nil {
		t.Fatal("expected an error when no environment file exists")
	}
	if !strings.Contains(err.Error(), "install") {
		t.Errorf("error should direct the user to install: %v", err)
	}
}

func TestNewSupervisorPortsFromEnvFile(t *testing.T) {
	dir := t.TempDir()
	cfg := testInstallConfig(dir)
	cfg.DashboardPort = 4000
	cfg.GatewayPort = 19000
	if _, err := WriteEnvFile(cfg); err != nil {
		t.Fatal(err)
	}

	sup, err := NewSupervisor(dir)
	if err != nil {
		t.Fatalf("NewSupervisor failed: %v", err)
	}

	details := sup.Processes()
	if len(details) != 2 {
		t.Fatalf("expected api-server and collector, got %d processes", len(details))
	}
	byTitle := map[string]models.ProcessDetail{}
	for _, d := range details {
		byTitle[d.Title] = d
	}
	if byTitle["api-server"].Port != 4000 {
		t.Errorf("api-server port: got %d", byTitle["api-server"].Port)
	}
	if byTitle["collector"].Port != 19000 {
		t.Errorf("collector port: got %d", byTitle["collector"].Port)
	}
	for _, d := range details {
		if d.WorkDir != dir {
			t.Errorf("%s workdir: got '%s'", d.Title, d.WorkDir)
		}
		if d.Status != models.StatusExited {
			t.Errorf("%s must not be running before Run: %s", d.Title, d.Status)
		}
	}
}

func TestPidFileRoundTrip(t *testing.T) {
	dir := t.TempDir()
	api := NewProcessInstance("api-server", "server.js", "node", []string{"server.js"})
	api.Port = 3000
	collector := NewProcessInstance("collector", "collector.js", "node", []string{"collector.js"})
	collector.Port = 18789

	sup := &Supervisor{installDir: dir, procs: []*ProcessInstance{api, collector}}
	if err := sup.writePidFile(); err != nil {
		t.Fatalf("writePidFile failed: %v", err)
	}

	data, err := readPidFile(dir)
	if err != nil {
		t.Fatalf("readPidFile failed: %v", err)
	}
	if data.Supervisor != os.Getpid() {
		t.Errorf("supervisor pid: expected %d, got %d", os.Getpid(), data.Supervisor)
	}
	if len(data.Processes) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(data.Processes))
	}
	if data.Processes[0].Name != "api-server" || data.Processes[0].Pattern != "server.js" {
		t.Errorf("first entry: %+v", data.Processes[0])
	}
	if data.Processes[1].Port != 18789 {
		t.Errorf("collector port not recorded: %+v", data.Processes[1])
	}

	if PidFilePath(dir) != filepath.Join(dir, "run", "clawdeye.pid") {
		t.Errorf("unexpected pid file path: %s", PidFilePath(dir))
	}
}

/**
 * Test the termination path of a supervised child
 * @description
 * - A signal-initiated exit records "stopped", not "error"
 */
func TestProcessInstanceTerminate(t *testing.T) {
	dir := t.TempDir()
	pi := NewProcessInstance("sleeper", "sleep", "sleep", []string{"30"})
	pi.WorkDir = dir

	if err := pi.Start(); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	if pi.Pid() <= 0 {
		t.Fatal("no pid after Start")
	}

	waitErr := make(chan error, 1)
	go func() { waitErr <- pi.Wait() }()

	time.Sleep(50 * time.Millisecond)
	if err := pi.Signal(syscall.SIGTERM); err != nil {
		t.Fatalf("Signal failed: %v", err)
	}

	select {
	case <-waitErr:
	case <-time.After(5 * time.Second):
		t.Fatal("child did not exit after SIGTERM")
	}

	detail := pi.Detail()
	if detail.Status != models.StatusStopped {
		t.Errorf("expected stopped status, got %s (%s)", detail.Status, detail.LastExitReason)
	}
}

/**
 * Test signal delivery to an already-exited child
 * @description
 * - The shutdown cascade signals both children without checking liveness
 *   first, so signalling one that already exited must be a non-error
 */
func TestProcessInstanceSignalAfterExit(t *testing.T) {
	dir := t.TempDir()
	pi := NewProcessInstance("oneshot", "true", "true", nil)
	pi.WorkDir = dir

	if err := pi.Start(); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	if err := pi.Wait(); err != nil {
		t.Fatalf("Wait failed: %v", err)
	}
	if pi.Detail().Status != models.StatusExited {
		t.Fatalf("expected clean exit, got %s", pi.Detail().Status)
	}

	if err := pi.Signal(syscall.SIGTERM); err != nil {
		t.Errorf("signalling an exited child must not error: %v", err)
	}
}

/**
 * Test the full supervisor lifecycle
 * @description
 * - Run spawns both children and records them in the pid file
 * - Cancelling the context cascades SIGTERM: both children record
 *   "stopped", the pid file is removed, and Run returns nil
 */
func TestSupervisorRunCascade(t *testing.T) {
	dir := t.TempDir()
	api := NewProcessInstance("api-server", "sleep", "sleep", []string{"30"})
	collector := NewProcessInstance("collector", "sleep", "sleep", []string{"31"})
	for _, pi := range []*ProcessInstance{api, collector} {
		pi.WorkDir = dir
	}
	sup := &Supervisor{installDir: dir, procs: []*ProcessInstance{api, collector}}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	runErr := make(chan error, 1)
	go func() { runErr <- sup.Run(ctx) }()

	deadline := time.Now().Add(5 * time.Second)
	for {
		if _, err := os.Stat(PidFilePath(dir)); err == nil {
			break
		}
		if time.Now().After(deadline) {
			t.Fatal("pid file never appeared after Run")
		}
		time.Sleep(10 * time.Millisecond)
	}

	data, err := readPidFile(dir)
	if err != nil {
		t.Fatalf("readPidFile failed: %v", err)
	}
	if len(data.Processes) != 2 {
		t.Fatalf("expected both children in the pid file, got %d", len(data.Processes))
	}
	for _, entry := range data.Processes {
		if entry.Pid <= 0 {
			t.Errorf("%s recorded without a pid", entry.Name)
		}
	}

	cancel()
	select {
	case err := <-runErr:
		if err != nil {
			t.Fatalf("Run returned an error after cancellation: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after cancellation")
	}

	for _, pi := range []*ProcessInstance{api, collector} {
		if status := pi.Detail().Status; status != models.StatusStopped {
			t.Errorf("%s: expected stopped after the cascade, got %s", pi.Title, status)
		}
	}
	if _, err := os.Stat(PidFilePath(dir)); !os.IsNotExist(err) {
		t.Error("pid file was not removed after shutdown")
	}
}

/**
 * Test graceful supervisor termination from `stop`
 * @description
 * - The supervisor gets SIGTERM and time for its own cascade; it is
 *   never escalated to SIGKILL
 */
func TestStopSupervisorGraceful(t *testing.T) {
	cmd := exec.Command("sleep", "30")
	if err := cmd.Start(); err != nil {
		t.Fatal(err)
	}
	done := make(chan error, 1)
	go func() { done <- cmd.Wait() }()

	stopSupervisor(cmd.Process.Pid)

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("process did not exit after stopSupervisor")
	}
	ws, ok := cmd.ProcessState.Sys().(syscall.WaitStatus)
	if !ok || !ws.Signaled() {
		t.Fatalf("expected a signal-terminated exit, got %v", cmd.ProcessState)
	}
	if ws.Signal() != syscall.SIGTERM {
		t.Errorf("expected SIGTERM, got %v", ws.Signal())
	}
}

func TestStatusInstalledWithStaleEntries(t *testing.T) {
	dir := t.TempDir()
	api := NewProcessInstance("api-server", "clawdeye-test-pattern-that-matches-nothing", "node", nil)
	collector := NewProcessInstance("collector", "clawdeye-other-unmatched-pattern", "node", nil)
	sup := &Supervisor{installDir: dir, procs: []*ProcessInstance{api, collector}}
	if err := sup.writePidFile(); err != nil {
		t.Fatal(err)
	}

	details := StatusInstalled(dir)
	if len(details) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(details))
	}
	for _, d := range details {
		if d.Status != models.StatusExited {
			t.Errorf("%s: stale entry must report exited, got %s", d.Title, d.Status)
		}
		if d.Pid != 0 {
			t.Errorf("%s: stale entry must not surface a pid", d.Title)
		}
	}
}

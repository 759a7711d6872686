package utils

import (
	"os"
	"os/exec"
	"strings"
)

// CommandExists reports whether a binary is discoverable on PATH.
func CommandExists(name string) bool {
	_, err := exec.LookPath(name)
	return err == nil
}

// CommandOutput runs a command and returns its trimmed stdout.
func CommandOutput(name string, args ...string) (string, error) {
	out, err := exec.Command(name, args...).Output()
	return strings.TrimSpace(string(out)), err
}

// RunCommand runs a command with inherited stdio (used for docker
// pull/up where the engine's own progress output should be visible).
func RunCommand(dir string, name string, args ...string) error {
	cmd := exec.Command(name, args...)
	cmd.Dir = dir
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}

/**
 * Run a command capturing its combined output
 * @returns {string} Combined stdout+stderr, trimmed
 * @description
 * - Diagnostics stay off the terminal on success; callers fold the
 *   captured text into their error on failure
 */
func RunCommandQuiet(dir string, extraEnv []string, name string, args ...string) (string, error) {
	cmd := exec.Command(name, args...)
	cmd.Dir = dir
	if len(extraEnv) > 0 {
		cmd.Env = append(os.Environ(), extraEnv...)
	}
	out, err := cmd.CombinedOutput()
	return strings.TrimSpace(string(out)), err
}

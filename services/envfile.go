package services

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"clawdeye-installer/internal/models"
)

const EnvFileName = ".env"

// Fixed internal listening configuration for the API process; the
// dashboard proxies to it over loopback.
const (
	apiHost = "127.0.0.1"
	apiPort = 3001
)

// EnvFilePath returns the environment file location for an install directory.
func EnvFilePath(installDir string) string {
	return filepath.Join(installDir, EnvFileName)
}

type envPair struct {
	Key   string
	Value string
}

/**
 * Build the ordered key/value set serialized into the environment file
 * @param {InstallConfig} cfg - Collected configuration
 * @returns {[]envPair} Pairs in their on-disk order
 * @description
 * - Superset of the prompted values plus derived storage/API settings
 * - Always carries host paths; the container variant's manifest overrides
 *   the path keys with its fixed internal mount points, while compose
 *   reads the host paths from here for ${VAR} bind-mount substitution
 */
func buildEnvironment(cfg *models.InstallConfig) []envPair {
	dataDir := filepath.Join(cfg.InstallDir, "data")
	root := cfg.InstallDir

	return []envPair{
		{"CLAWDEYE_LICENSE", cfg.License},
		{"DASHBOARD_TOKEN", cfg.DashboardToken},
		{"CLAWD_HOME", cfg.ClawdHome},
		{"CLAWDBOT_HOME", cfg.ClawdbotHome},
		{"OPENCLAW_HOME", cfg.OpenclawHome},
		{"GATEWAY_HOST", cfg.GatewayHost},
		{"GATEWAY_PORT", fmt.Sprintf("%d", cfg.GatewayPort)},
		{"DASHBOARD_PORT", fmt.Sprintf("%d", cfg.DashboardPort)},
		{"API_HOST", apiHost},
		{"API_PORT", fmt.Sprintf("%d", apiPort)},
		{"API_INTERNAL_URL", fmt.Sprintf("http://%s:%d", apiHost, apiPort)},
		{"DATABASE_URL", fmt.Sprintf("file:%s", filepath.Join(dataDir, "clawdeye.db"))},
		{"CLAWDEYE_ROOT", root},
		{"CLAWDEYE_DATA_DIR", dataDir},
	}
}

/**
 * Write the environment file for an install run
 * @param {InstallConfig} cfg - Collected configuration
 * @returns {string} Path of the written file
 * @description
 * - Written to a temp file and renamed so a started process can never
 *   observe a partially written environment
 * - Overwrites any previous file: re-running the installer updates in place
 */
func WriteEnvFile(cfg *models.InstallConfig) (string, error) {
	if err := os.MkdirAll(cfg.InstallDir, 0755); err != nil {
		return "", fmt.Errorf("create install directory '%s': %w", cfg.InstallDir, err)
	}

	path := EnvFilePath(cfg.InstallDir)
	tmp, err := os.CreateTemp(cfg.InstallDir, ".env-*")
	if err != nil {
		return "", fmt.Errorf("create environment file: %w", err)
	}
	defer os.Remove(tmp.Name())

	for _, pair := range buildEnvironment(cfg) {
		if _, err := fmt.Fprintf(tmp, "%s=%s\n", pair.Key, pair.Value); err != nil {
			tmp.Close()
			return "", fmt.Errorf("write environment file: %w", err)
		}
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("write environment file: %w", err)
	}
	if err := os.Chmod(tmp.Name(), 0600); err != nil {
		return "", fmt.Errorf("write environment file: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return "", fmt.Errorf("write environment file: %w", err)
	}
	return path, nil
}

/**
 * Parse an environment file into a map
 * @param {string} path - File of key=value lines
 * @description
 * - Blank lines and #-comments are skipped; values are taken literally
 */
func LoadEnvFile(path string) (map[string]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	envs := make(map[string]string)
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		key, value, found := strings.Cut(line, "=")
		if !found {
			continue
		}
		envs[strings.TrimSpace(key)] = strings.TrimSpace(value)
	}
	return envs, scanner.Err()
}

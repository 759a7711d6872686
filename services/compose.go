package services

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"clawdeye-installer/internal/config"
	"clawdeye-installer/internal/logger"
	"clawdeye-installer/internal/models"
	"clawdeye-installer/internal/terminal"
	"clawdeye-installer/internal/utils"

	"gopkg.in/yaml.v3"
)

const ComposeFileName = "docker-compose.yml"

// Fixed internal port the dashboard listens on inside the container.
const containerDashboardPort = 3000

/**
 * ComposeService models one service entry of the compose manifest.
 * Values like ${DASHBOARD_PORT} are written literally; the container
 * engine substitutes them from the adjacent .env file at start time,
 * the installer never templates the manifest itself.
 */
type ComposeService struct {
	Image       string   `yaml:"image"`
	Restart     string   `yaml:"restart,omitempty"`
	Ports       []string `yaml:"ports,omitempty"`
	EnvFile     []string `yaml:"env_file,omitempty"`
	Environment []string `yaml:"environment,omitempty"`
	Volumes     []string `yaml:"volumes,omitempty"`
	ExtraHosts  []string `yaml:"extra_hosts,omitempty"`
}

type ComposeManifest struct {
	Services map[string]ComposeService `yaml:"services"`
	Volumes  map[string]*struct{}      `yaml:"volumes,omitempty"`
}

/**
 * Build the compose manifest for the container variant
 * @description
 * - One service, host ${DASHBOARD_PORT} published to the fixed internal port
 * - Three read-only bind mounts to fixed in-container mount points
 * - Named volume for persistent data, unless-stopped restart policy
 * - host-gateway alias so the container reaches the host gateway on
 *   loopback via a stable hostname
 */
func BuildComposeManifest(cfg *models.InstallConfig) *ComposeManifest {
	return &ComposeManifest{
		Services: map[string]ComposeService{
			"clawdeye": {
				Image:   config.Config.Docker.Image,
				Restart: "unless-stopped",
				Ports: []string{
					fmt.Sprintf("${DASHBOARD_PORT}:%d", containerDashboardPort),
				},
				EnvFile: []string{EnvFileName},
				// Inside the container the path keys point at the fixed
				// mount points, overriding the host paths from .env.
				Environment: []string{
					"CLAWD_HOME=/clawd",
					"CLAWDBOT_HOME=/clawdbot",
					"OPENCLAW_HOME=/openclaw",
					"CLAWDEYE_ROOT=/app",
					"CLAWDEYE_DATA_DIR=/app/data",
					"DATABASE_URL=file:/app/data/clawdeye.db",
				},
				Volumes: []string{
					"clawdeye-data:/app/data",
					"${CLAWD_HOME}:/clawd:ro",
					"${CLAWDBOT_HOME}:/clawdbot:ro",
					"${OPENCLAW_HOME}:/openclaw:ro",
				},
				ExtraHosts: []string{
					"host.docker.internal:host-gateway",
				},
			},
		},
		Volumes: map[string]*struct{}{
			"clawdeye-data": nil,
		},
	}
}

// WriteComposeManifest writes docker-compose.yml into the install directory.
func WriteComposeManifest(cfg *models.InstallConfig) (string, error) {
	data, err := yaml.Marshal(BuildComposeManifest(cfg))
	if err != nil {
		return "", fmt.Errorf("marshal compose manifest: %w", err)
	}
	path := filepath.Join(cfg.InstallDir, ComposeFileName)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("write compose manifest: %w", err)
	}
	return path, nil
}

/**
 * Provision the container distribution form
 * @description
 * - No archive download; the image is the artifact
 * - Env file and manifest are fully written before the engine starts anything
 * - Compose substitutes ${VAR} references from .env in the same directory,
 *   so the prompted host paths land in the bind mounts; the manifest's
 *   environment overrides give the container its fixed internal mount points
 */
func ProvisionDocker(ctx context.Context, cfg *models.InstallConfig, compose ComposeCommand) error {
	if err := os.MkdirAll(cfg.InstallDir, 0755); err != nil {
		return fmt.Errorf("create install directory '%s': %w", cfg.InstallDir, err)
	}

	// Compose reads .env from the project directory for ${VAR}
	// substitution; the same file is handed to the container via env_file.
	if _, err := WriteEnvFile(cfg); err != nil {
		return err
	}

	manifestPath, err := WriteComposeManifest(cfg)
	if err != nil {
		return err
	}
	logger.Infof("Compose manifest written to %s", manifestPath)

	if err := ComposePull(cfg.InstallDir, compose); err != nil {
		return err
	}
	terminal.Successf("Pulled %s", config.Config.Docker.Image)

	if err := ComposeUp(cfg.InstallDir, compose); err != nil {
		return err
	}
	terminal.Successf("Dashboard is starting on port %d", cfg.DashboardPort)
	return nil
}

func ComposePull(dir string, compose ComposeCommand) error {
	name, args := compose.Args("pull")
	if err := utils.RunCommand(dir, name, args...); err != nil {
		return &models.ProvisionError{Step: "image pull", Err: err}
	}
	return nil
}

func ComposeUp(dir string, compose ComposeCommand) error {
	name, args := compose.Args("up", "-d")
	if err := utils.RunCommand(dir, name, args...); err != nil {
		return &models.ProvisionError{Step: "compose up", Err: err}
	}
	return nil
}

func ComposeDown(dir string, compose ComposeCommand) error {
	name, args := compose.Args("down")
	if err := utils.RunCommand(dir, name, args...); err != nil {
		return &models.ProvisionError{Step: "compose down", Err: err}
	}
	return nil
}

func ComposePs(dir string, compose ComposeCommand) error {
	name, args := compose.Args("ps")
	return utils.RunCommand(dir, name, args...)
}

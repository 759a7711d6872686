package services

import (
	"os"
	"strings"
	"testing"

	"clawdeye-installer/internal/models"

	"gopkg.in/yaml.v3"
)

/**
 * Test the generated compose manifest contract
 * @description
 * - ${VAR} references must be written literally for engine-side substitution
 * - The data volume is named, the workspace mounts are read-only binds
 */
func TestBuildComposeManifest(t *testing.T) {
	cfg := testInstallConfig(t.TempDir())
	cfg.Variant = models.VariantDocker

	manifest := BuildComposeManifest(cfg)
	svc, ok := manifest.Services["clawdeye"]
	if !ok {
		t.Fatal("manifest has no clawdeye service")
	}

	if svc.Image != "metamize/clawdeye:latest" {
		t.Errorf("image: got '%s'", svc.Image)
	}
	if svc.Restart != "unless-stopped" {
		t.Errorf("restart: got '%s'", svc.Restart)
	}
	if len(svc.Ports) != 1 || svc.Ports[0] != "${DASHBOARD_PORT}:3000" {
		t.Errorf("ports: got %v", svc.Ports)
	}
	if len(svc.EnvFile) != 1 || svc.EnvFile[0] != ".env" {
		t.Errorf("env_file: got %v", svc.EnvFile)
	}
	if len(svc.ExtraHosts) != 1 || svc.ExtraHosts[0] != "host.docker.internal:host-gateway" {
		t.Errorf("extra_hosts: got %v", svc.ExtraHosts)
	}

	wantVolumes := []string{
		"clawdeye-data:/app/data",
		"${CLAWD_HOME}:/clawd:ro",
		"${CLAWDBOT_HOME}:/clawdbot:ro",
		"${OPENCLAW_HOME}:/openclaw:ro",
	}
	if len(svc.Volumes) != len(wantVolumes) {
		t.Fatalf("volumes: got %v", svc.Volumes)
	}
	for i, want := range wantVolumes {
		if svc.Volumes[i] != want {
			t.Errorf("volume %d: expected '%s', got '%s'", i, want, svc.Volumes[i])
		}
	}

	if _, ok := manifest.Volumes["clawdeye-data"]; !ok {
		t.Error("named volume clawdeye-data is not declared")
	}

	// in-container overrides for the path keys carried as host paths in .env
	overrides := strings.Join(svc.Environment, "\n")
	for _, want := range []string{
		"CLAWD_HOME=/clawd",
		"CLAWDBOT_HOME=/clawdbot",
		"OPENCLAW_HOME=/openclaw",
		"CLAWDEYE_DATA_DIR=/app/data",
		"DATABASE_URL=file:/app/data/clawdeye.db",
	} {
		if !strings.Contains(overrides, want) {
			t.Errorf("environment override missing: %s", want)
		}
	}
}

func TestWriteComposeManifest(t *testing.T) {
	dir := t.TempDir()
	cfg := testInstallConfig(dir)
	cfg.Variant = models.VariantDocker

	path, err := WriteComposeManifest(cfg)
	if err != nil {
		t.Fatalf("WriteComposeManifest failed: %v", err)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read manifest: %v", err)
	}

	// the manifest must round-trip as valid yaml with substitutions intact
	var parsed ComposeManifest
	if err := yaml.Unmarshal(raw, &parsed); err != nil {
		t.Fatalf("manifest is not valid yaml: %v", err)
	}
	svc := parsed.Services["clawdeye"]
	if len(svc.Ports) != 1 || svc.Ports[0] != "${DASHBOARD_PORT}:3000" {
		t.Errorf("substitution reference was not written literally: %v", svc.Ports)
	}
}

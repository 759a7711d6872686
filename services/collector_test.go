package services

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"clawdeye-installer/internal/models"
	"clawdeye-installer/internal/terminal"
)

func collectFrom(t *testing.T, input string, variant models.Variant) (*models.InstallConfig, error) {
	t.Helper()
	var out bytes.Buffer
	p := terminal.New(strings.NewReader(input), &out)
	return CollectConfig(p, variant)
}

/**
 * Test the full prompt flow with defaults accepted
 * @description
 * - Secrets answered, every optional prompt left empty, confirmation empty
 * - Empty optional answers must substitute the documented defaults verbatim
 */
func TestCollectConfigDefaults(t *testing.T) {
	input := "my-license\nmy-password\n\n\n\n\n\n\n\n"
	cfg, err := collectFrom(t, input, models.VariantNode)
	if err != nil {
		t.Fatalf("CollectConfig failed: %v", err)
	}

	if cfg.License != "my-license" {
		t.Errorf("license: got '%s'", cfg.License)
	}
	if cfg.DashboardToken != "my-password" {
		t.Errorf("dashboard token: got '%s'", cfg.DashboardToken)
	}
	if !strings.HasSuffix(cfg.ClawdHome, ".clawd") {
		t.Errorf("clawd home default not applied: '%s'", cfg.ClawdHome)
	}
	if cfg.GatewayHost != "127.0.0.1" {
		t.Errorf("gateway host default not applied: '%s'", cfg.GatewayHost)
	}
	if cfg.GatewayPort != 18789 {
		t.Errorf("gateway port default not applied: %d", cfg.GatewayPort)
	}
	if cfg.DashboardPort != 3000 {
		t.Errorf("dashboard port default not applied: %d", cfg.DashboardPort)
	}
}

/**
 * Test that an empty required secret aborts collection
 */
func TestCollectConfigEmptyLicense(t *testing.T) {
	_, err := collectFrom(t, "\n", models.VariantNode)
	if err == nil {
		t.Fatal("expected a validation error for an empty license")
	}
	var valErr *models.ValidationError
	if !errors.As(err, &valErr) {
		t.Fatalf("expected ValidationError, got %T: %v", err, err)
	}
}

/**
 * Test confirmation semantics
 * @description
 * - Any answer not starting with y/Y cancels with ErrCancelled (exit 0 path)
 * - Explicit "y" and the empty default both proceed
 */
func TestCollectConfigConfirmation(t *testing.T) {
	base := "lic\npw\n\n\n\n\n\n\n"

	if _, err := collectFrom(t, base+"n\n", models.VariantNode); !errors.Is(err, models.ErrCancelled) {
		t.Errorf("expected ErrCancelled for 'n', got %v", err)
	}
	if _, err := collectFrom(t, base+"no way\n", models.VariantNode); !errors.Is(err, models.ErrCancelled) {
		t.Errorf("expected ErrCancelled for 'no way', got %v", err)
	}
	if _, err := collectFrom(t, base+"yes\n", models.VariantNode); err != nil {
		t.Errorf("expected 'yes' to proceed, got %v", err)
	}
	if _, err := collectFrom(t, base+"Y\n", models.VariantNode); err != nil {
		t.Errorf("expected 'Y' to proceed, got %v", err)
	}
}

/**
 * Test docker-variant path advisories
 * @description
 * - Missing workspace paths print warnings but never abort the run
 */
func TestCollectConfigDockerAdvisories(t *testing.T) {
	var out bytes.Buffer
	input := "lic\npw\n/nonexistent/clawd\n/nonexistent/clawdbot\n/nonexistent/openclaw\n\n\n\n\n"
	p := terminal.New(strings.NewReader(input), &out)

	cfg, err := CollectConfig(p, models.VariantDocker)
	if err != nil {
		t.Fatalf("advisory warnings must not abort the run: %v", err)
	}
	if cfg.ClawdHome != "/nonexistent/clawd" {
		t.Errorf("clawd home: got '%s'", cfg.ClawdHome)
	}
	if !strings.Contains(out.String(), "warning") {
		t.Errorf("expected advisory warnings in prompt output:\n%s", out.String())
	}
}

package services

import (
	"os"

	"clawdeye-installer/internal/config"
	"clawdeye-installer/internal/models"
	"clawdeye-installer/internal/terminal"
)

/**
 * Collect the install configuration interactively
 * @param {*terminal.Prompter} p - Prompt source (tty in production, buffer in tests)
 * @param {Variant} variant - Distribution form being installed
 * @returns {*models.InstallConfig} Fully populated configuration
 * @description
 * - Prompt order: required secrets, then paths with defaults, then network
 *   settings with defaults
 * - Container variant checks each supplied path and prints advisory warnings
 *   only; a missing path never aborts the run
 * - Ends with a summary and a yes/no confirmation defaulting to yes
 * @throws
 * - ValidationError when a required prompt is left empty
 * - ErrCancelled when the confirmation is declined (exit 0, nothing written)
 */
func CollectConfig(p *terminal.Prompter, variant models.Variant) (*models.InstallConfig, error) {
	defaults := config.Config.Defaults
	cfg := &models.InstallConfig{Variant: variant, InstallDir: defaults.InstallDir}

	var err error
	if cfg.License, err = p.AskSecret("Clawdeye license key"); err != nil {
		return nil, err
	}
	if cfg.DashboardToken, err = p.AskSecret("Dashboard password"); err != nil {
		return nil, err
	}

	if cfg.ClawdHome, err = p.Ask("Clawd home", defaults.ClawdHome); err != nil {
		return nil, err
	}
	if cfg.ClawdbotHome, err = p.Ask("Clawdbot home", defaults.ClawdbotHome); err != nil {
		return nil, err
	}
	if cfg.OpenclawHome, err = p.Ask("OpenClaw home", defaults.OpenclawHome); err != nil {
		return nil, err
	}

	if cfg.GatewayHost, err = p.Ask("Gateway host", defaults.GatewayHost); err != nil {
		return nil, err
	}
	if cfg.GatewayPort, err = p.AskPort("Gateway port", defaults.GatewayPort); err != nil {
		return nil, err
	}
	if cfg.DashboardPort, err = p.AskPort("Dashboard port", defaults.DashboardPort); err != nil {
		return nil, err
	}

	if variant == models.VariantDocker {
		warnMissingPaths(p, cfg)
	}

	printSummary(p, cfg)
	ok, err := p.Confirm("Proceed with installation?", true)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, models.ErrCancelled
	}
	return cfg, nil
}

// warnMissingPaths is advisory only: the bind mounts will simply be
// empty when a path does not exist yet.
func warnMissingPaths(p *terminal.Prompter, cfg *models.InstallConfig) {
	for _, path := range []string{cfg.ClawdHome, cfg.ClawdbotHome, cfg.OpenclawHome} {
		if _, err := os.Stat(path); err != nil {
			p.Printf("warning: %s does not exist, the container will see an empty mount\n", path)
		}
	}
}

func printSummary(p *terminal.Prompter, cfg *models.InstallConfig) {
	p.Printf("\n=== Install summary ===\n")
	p.Printf("Variant:         %s\n", cfg.Variant)
	p.Printf("Install dir:     %s\n", cfg.InstallDir)
	p.Printf("Clawd home:      %s\n", cfg.ClawdHome)
	p.Printf("Clawdbot home:   %s\n", cfg.ClawdbotHome)
	p.Printf("OpenClaw home:   %s\n", cfg.OpenclawHome)
	p.Printf("Gateway:         %s:%d\n", cfg.GatewayHost, cfg.GatewayPort)
	p.Printf("Dashboard port:  %d\n", cfg.DashboardPort)
	p.Printf("License key:     (hidden)\n")
	p.Printf("Dashboard token: (hidden)\n\n")
}

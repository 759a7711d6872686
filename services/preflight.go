package services

import (
	"fmt"

	"clawdeye-installer/internal/logger"
	"clawdeye-installer/internal/models"
	"clawdeye-installer/internal/utils"
)

// Minimum major version of the node runtime the dashboard and
// collector are built against.
const MinNodeMajor = 20

/**
 * ComposeCommand is the resolved compose invocation form.
 * The integrated subcommand (`docker compose`) is preferred; the
 * standalone binary (`docker-compose`) is the fallback.
 */
type ComposeCommand []string

func (c ComposeCommand) Args(extra ...string) (string, []string) {
	return c[0], append(append([]string{}, c[1:]...), extra...)
}

func (c ComposeCommand) String() string {
	name, args := c.Args()
	if len(args) == 0 {
		return name
	}
	return name + " " + args[0]
}

/**
 * PreflightResult records what the checks found for later steps.
 * @property {*utils.VersionNumber} NodeVersion - Runtime version (archive variant)
 * @property {ComposeCommand} Compose - Resolved compose form (container variant)
 */
type PreflightResult struct {
	NodeVersion *utils.VersionNumber
	Compose     ComposeCommand
}

/**
 * Verify required external tools before any prompt is shown
 * @param {Variant} variant - Distribution form being installed
 * @returns {*PreflightResult} Tool versions and resolved compose form
 * @description
 * - Archive variant: node discoverable on PATH with major version >= 20
 * - Container variant: docker installed, daemon reachable, compose resolvable
 * - First failure aborts; there is no partial continuation
 * @throws
 * - PreflightError naming the tool and, for version checks, found vs required
 */
func CheckPrerequisites(variant models.Variant) (*PreflightResult, error) {
	result := &PreflightResult{}

	if variant == models.VariantDocker {
		if !utils.CommandExists("docker") {
			return nil, &models.PreflightError{Tool: "docker"}
		}
		if _, err := utils.CommandOutput("docker", "info"); err != nil {
			return nil, &models.PreflightError{Tool: "docker daemon", Required: "running"}
		}
		compose, err := resolveCompose()
		if err != nil {
			return nil, err
		}
		result.Compose = compose
		logger.Infof("Preflight passed: docker daemon running, compose via '%s'", compose.String())
		return result, nil
	}

	if !utils.CommandExists("node") {
		return nil, &models.PreflightError{Tool: "node", Required: fmt.Sprintf(">= %d", MinNodeMajor)}
	}
	verstr, err := utils.CommandOutput("node", "--version")
	if err != nil {
		return nil, &models.PreflightError{Tool: "node", Required: fmt.Sprintf(">= %d", MinNodeMajor)}
	}
	ver, err := checkNodeVersion(verstr)
	if err != nil {
		return nil, err
	}
	result.NodeVersion = ver
	logger.Infof("Preflight passed: node %s", utils.PrintVersion(*ver))
	return result, nil
}

// checkNodeVersion validates `node --version` output (e.g. "v22.1.0")
// against the minimum major version.
func checkNodeVersion(verstr string) (*utils.VersionNumber, error) {
	ver := utils.ParseVersionNumber(verstr)
	if ver == nil {
		return nil, &models.PreflightError{
			Tool:     "node",
			Found:    verstr,
			Required: fmt.Sprintf(">= %d", MinNodeMajor),
		}
	}
	if ver.Major < MinNodeMajor {
		return nil, &models.PreflightError{
			Tool:     "node",
			Found:    utils.PrintVersion(*ver),
			Required: fmt.Sprintf(">= %d", MinNodeMajor),
		}
	}
	return ver, nil
}

func resolveCompose() (ComposeCommand, error) {
	if _, err := utils.CommandOutput("docker", "compose", "version"); err == nil {
		return ComposeCommand{"docker", "compose"}, nil
	}
	if utils.CommandExists("docker-compose") {
		if _, err := utils.CommandOutput("docker-compose", "version"); err == nil {
			return ComposeCommand{"docker-compose"}, nil
		}
	}
	return nil, &models.PreflightError{Tool: "compose", Required: "docker compose plugin or docker-compose"}
}

package services

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"clawdeye-installer/internal/config"
	"clawdeye-installer/internal/logger"
	"clawdeye-installer/internal/models"
	"clawdeye-installer/internal/terminal"
	"clawdeye-installer/internal/utils"
)

/**
 * Resolve the latest release tag from the releases API
 * @param {string} apiBase - Releases API base address
 * @param {string} repo - Repository in "owner/name" form
 * @returns {string} The tag_name of the latest release (e.g. "v1.2.3")
 * @throws
 * - ReleaseResolutionError when the response carries no tag_name
 */
func ResolveLatestTag(apiBase, repo string) (string, error) {
	urlStr := fmt.Sprintf("%s/repos/%s/releases/latest", apiBase, repo)
	data, err := utils.GetBytes(urlStr)
	if err != nil {
		return "", &models.ReleaseResolutionError{Repository: repo, Err: err}
	}

	var release struct {
		TagName string `json:"tag_name"`
	}
	if err := json.Unmarshal(data, &release); err != nil {
		return "", &models.ReleaseResolutionError{Repository: repo, Err: err}
	}
	if release.TagName == "" {
		return "", &models.ReleaseResolutionError{Repository: repo}
	}
	return release.TagName, nil
}

// AssetName derives the deterministic release asset name for a tag.
func AssetName(tag string) string {
	return fmt.Sprintf("clawdeye-%s.tgz", tag)
}

// DownloadURL derives the release asset URL for a repository and tag.
func DownloadURL(repo, tag string) string {
	return fmt.Sprintf("https://github.com/%s/releases/download/%s/%s", repo, tag, AssetName(tag))
}

/**
 * Provision the archive (node runtime) distribution form
 * @param {context.Context} ctx - Run context
 * @param {*models.InstallConfig} cfg - Collected configuration
 * @description
 * Ordered pipeline, any failure aborts the remainder:
 * - Create the install directory (idempotent, precedes every file write)
 * - Resolve the latest tag, download the tarball to a temp path
 * - Extract over the install directory (re-running acts as an update),
 *   removing the temp archive unconditionally afterwards
 * - Write the environment file
 * - Push the store schema via prisma, diagnostics captured
 * No rollback on failure: the directory is left partially provisioned and
 * a re-run overwrites it.
 */
func ProvisionArchive(ctx context.Context, cfg *models.InstallConfig) error {
	rel := config.Config.Release

	if err := os.MkdirAll(filepath.Join(cfg.InstallDir, "data"), 0755); err != nil {
		return fmt.Errorf("create install directory '%s': %w", cfg.InstallDir, err)
	}

	tag, err := ResolveLatestTag(rel.ApiBase, rel.Repository)
	if err != nil {
		return err
	}
	terminal.Successf("Resolved latest release: %s", tag)

	tmp, err := os.CreateTemp("", "clawdeye-*.tgz")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmp.Close()
	defer os.Remove(tmp.Name())

	url := DownloadURL(rel.Repository, tag)
	logger.Infof("Downloading %s", url)
	if err := utils.GetFile(url, tmp.Name()); err != nil {
		return err
	}
	terminal.Successf("Downloaded %s", AssetName(tag))

	if err := utils.ExtractTarGz(tmp.Name(), cfg.InstallDir); err != nil {
		return err
	}
	terminal.Successf("Extracted release into %s", cfg.InstallDir)

	envPath, err := WriteEnvFile(cfg)
	if err != nil {
		return err
	}
	logger.Infof("Environment file written to %s", envPath)

	if err := migrateStore(cfg, envPath); err != nil {
		return err
	}
	terminal.Successf("Database schema is up to date")
	return nil
}

/**
 * Push the store schema for the extracted distribution
 * @description
 * - Runs `npx prisma db push` scoped to the shipped schema file, with the
 *   environment file's values in the child environment
 * - Output is captured, not streamed; on failure its tail is folded into
 *   the ProvisionError so the cause is visible
 */
func migrateStore(cfg *models.InstallConfig, envPath string) error {
	schema := filepath.Join(cfg.InstallDir, "prisma", "schema.prisma")
	if _, err := os.Stat(schema); err != nil {
		// Release without a schema-backed store; nothing to migrate.
		logger.Infof("No prisma schema in release, skipping store migration")
		return nil
	}

	envs, err := LoadEnvFile(envPath)
	if err != nil {
		return &models.ProvisionError{Step: "store migration", Err: err}
	}
	extraEnv := make([]string, 0, len(envs))
	for key, value := range envs {
		extraEnv = append(extraEnv, key+"="+value)
	}

	out, err := utils.RunCommandQuiet(cfg.InstallDir, extraEnv,
		"npx", "prisma", "db", "push", "--schema="+schema, "--skip-generate")
	if err != nil {
		return &models.ProvisionError{Step: "store migration", Output: tail(out, 2000), Err: err}
	}
	return nil
}

func tail(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[len(s)-n:]
}

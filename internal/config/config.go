package config

import (
	"path/filepath"

	"clawdeye-installer/internal/env"

	"github.com/spf13/viper"
)

/**
 * Server configuration parameters
 * @property {string} address - Status API listening address (e.g. "127.0.0.1:3002")
 * @property {string} mode - Application mode (debug/release/test)
 */
type ServerConfig struct {
	Address string `mapstructure:"address"`
	Mode    string `mapstructure:"mode"`
}

/**
 * Logging configuration
 * @property {string} level - Log level (debug/info/warn/error)
 * @property {string} path - Log file path ("console" writes to stdout)
 */
type LogConfig struct {
	Level string `mapstructure:"level"`
	Path  string `mapstructure:"path"`
}

/**
 * Release artifact location
 * @property {string} repository - GitHub "owner/name" the tarball is published under
 * @property {string} api_base - Releases API base address
 */
type ReleaseConfig struct {
	Repository string `mapstructure:"repository"`
	ApiBase    string `mapstructure:"api_base"`
}

/**
 * Container variant configuration
 * @property {string} image - Image reference pulled and started by compose
 */
type DockerConfig struct {
	Image string `mapstructure:"image"`
}

/**
 * Prompt defaults shown by the configuration collector
 * The user can accept each with an empty answer.
 */
type DefaultsConfig struct {
	InstallDir    string `mapstructure:"install_dir"`
	ClawdHome     string `mapstructure:"clawd_home"`
	ClawdbotHome  string `mapstructure:"clawdbot_home"`
	OpenclawHome  string `mapstructure:"openclaw_home"`
	GatewayHost   string `mapstructure:"gateway_host"`
	GatewayPort   int    `mapstructure:"gateway_port"`
	DashboardPort int    `mapstructure:"dashboard_port"`
}

type AppConfig struct {
	Server   ServerConfig   `mapstructure:"server"`
	Log      LogConfig      `mapstructure:"log"`
	Release  ReleaseConfig  `mapstructure:"release"`
	Docker   DockerConfig   `mapstructure:"docker"`
	Defaults DefaultsConfig `mapstructure:"defaults"`
}

/**
 * Load application configuration from YAML file
 * @description
 * - Reads optional config.yaml from the clawdeye base directory or cwd
 * - Missing file is not an error; defaults are filled by collectConfig
 */
func LoadConfig() (*AppConfig, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(env.ClawdeyeDir)
	viper.AddConfigPath(".")

	if err := viper.ReadInConfig(); err != nil {
		return nil, err
	}

	var cfg AppConfig
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

var Config AppConfig

func collectConfig(cfg *AppConfig) *AppConfig {
	home := filepath.Dir(env.ClawdeyeDir)
	if cfg.Server.Address == "" {
		cfg.Server.Address = "127.0.0.1:3002"
	}
	if cfg.Server.Mode == "" {
		cfg.Server.Mode = "release"
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Release.Repository == "" {
		cfg.Release.Repository = "metamize/clawdeye"
	}
	if cfg.Release.ApiBase == "" {
		cfg.Release.ApiBase = "https://api.github.com"
	}
	if cfg.Docker.Image == "" {
		cfg.Docker.Image = "metamize/clawdeye:latest"
	}
	if cfg.Defaults.InstallDir == "" {
		cfg.Defaults.InstallDir = env.ClawdeyeDir
	}
	if cfg.Defaults.ClawdHome == "" {
		cfg.Defaults.ClawdHome = filepath.Join(home, ".clawd")
	}
	if cfg.Defaults.ClawdbotHome == "" {
		cfg.Defaults.ClawdbotHome = filepath.Join(home, ".clawdbot")
	}
	if cfg.Defaults.OpenclawHome == "" {
		cfg.Defaults.OpenclawHome = filepath.Join(home, ".openclaw")
	}
	if cfg.Defaults.GatewayHost == "" {
		cfg.Defaults.GatewayHost = "127.0.0.1"
	}
	if cfg.Defaults.GatewayPort == 0 {
		cfg.Defaults.GatewayPort = 18789
	}
	if cfg.Defaults.DashboardPort == 0 {
		cfg.Defaults.DashboardPort = 3000
	}
	return cfg
}

func init() {
	cfg, err := LoadConfig()
	if err == nil {
		Config = *cfg
	}
	collectConfig(&Config)
}

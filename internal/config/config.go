// Package config handles configuration for smbstats.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// DefaultPath is where packaged installs place the config file.
const DefaultPath = "/etc/smbstats/config.yaml"

// Config holds all smbstats configuration.
type Config struct {
	ShareDirs          []string `yaml:"share_dirs"`
	SmbstatusPath      string   `yaml:"smbstatus_path"`
	FixtureDir         string   `yaml:"fixture_dir"`
	ExecTimeoutSeconds int      `yaml:"exec_timeout_seconds"`
	LogLevel           string   `yaml:"log_level"`
}

func defaults() *Config {
	return &Config{
		ShareDirs:          []string{"/mnt/samba"},
		SmbstatusPath:      "/usr/bin/smbstatus",
		ExecTimeoutSeconds: 30,
		LogLevel:           "info",
	}
}

// Load reads configuration from path. A missing file is not an error; the
// defaults apply. An unparseable file is.
func Load(path string) (*Config, error) {
	cfg := defaults()

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return nil, err
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	if len(cfg.ShareDirs) == 0 {
		cfg.ShareDirs = []string{"/mnt/samba"}
	}
	if cfg.SmbstatusPath == "" {
		cfg.SmbstatusPath = "/usr/bin/smbstatus"
	}
	if cfg.ExecTimeoutSeconds <= 0 {
		cfg.ExecTimeoutSeconds = 30
	}

	return cfg, nil
}

package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/majerti/smbstats/internal/config"
)

var (
	// Flags
	flagConfig   string
	flagLogLevel string
)

var rootCmd = &cobra.Command{
	Use:   "smbstats",
	Short: "Samba share usage collector",
	Long: `smbstats collects operational state from a Samba file server: clients
connected to each share, files locked under each share, and disk usage for
the mount points backing the configured share directories. Everything is
reported as one JSON document.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Config file path (default: /etc/smbstats/config.yaml, env: SMBSTATS_CONFIG)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Log level: debug, info, warn, error")
}

// Execute runs the root command.
func Execute(version string) {
	rootCmd.Version = version
	rootCmd.SetVersionTemplate(fmt.Sprintf("smbstats %s\n", version))
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// resolveConfigPath returns the config path from flag, environment, or the
// packaged default.
func resolveConfigPath() string {
	if flagConfig != "" {
		return flagConfig
	}
	if v := os.Getenv("SMBSTATS_CONFIG"); v != "" {
		return v
	}
	return config.DefaultPath
}

// resolveLogLevel returns the log level from flag or config.
func resolveLogLevel(cfg *config.Config) string {
	if flagLogLevel != "" {
		return flagLogLevel
	}
	return cfg.LogLevel
}

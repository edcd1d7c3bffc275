package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/majerti/smbstats/internal/config"
	"github.com/majerti/smbstats/internal/diskusage"
	"github.com/majerti/smbstats/internal/host"
	"github.com/majerti/smbstats/internal/logging"
	"github.com/majerti/smbstats/internal/report"
	"github.com/majerti/smbstats/internal/smbstatus"
)

var flagTest bool

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Collect and print a share usage report",
	Long: `Run smbstatus --shares and --locks, group the parsed records by share,
attach disk usage for the configured share directories, and print the
report as JSON. With --test, fixture files named sample.smbstatus.<shares|locks>
are read instead of invoking smbstatus.`,
	RunE: runStats,
}

func init() {
	statsCmd.Flags().BoolVar(&flagTest, "test", false, "Read sample.smbstatus.* fixtures instead of running smbstatus")
	rootCmd.AddCommand(statsCmd)
}

func runStats(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(resolveConfigPath())
	if err != nil {
		return err
	}
	logging.Setup(resolveLogLevel(cfg))

	shell := host.Shell{Timeout: time.Duration(cfg.ExecTimeoutSeconds) * time.Second}

	client := smbstatus.NewClient(shell, cfg.SmbstatusPath)
	if flagTest {
		client.UseFixtures(fixtureDir(cfg))
	}
	collector := diskusage.NewCollector(shell, diskusage.GopsutilProvider{})
	builder := report.NewBuilder(client, collector, cfg.ShareDirs)

	rep := builder.Build(cmd.Context())

	out, err := json.MarshalIndent(rep, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(out))

	// Exit code 1 on a failed collection (useful for scripts)
	if rep.InError {
		os.Exit(1)
	}
	return nil
}

// fixtureDir returns the configured fixture directory, defaulting to the
// directory of the running binary.
func fixtureDir(cfg *config.Config) string {
	if cfg.FixtureDir != "" {
		return cfg.FixtureDir
	}
	exe, err := os.Executable()
	if err != nil {
		return "."
	}
	return filepath.Dir(exe)
}

package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(cfg.ShareDirs) != 1 || cfg.ShareDirs[0] != "/mnt/samba" {
		t.Errorf("share dirs = %v, want [/mnt/samba]", cfg.ShareDirs)
	}
	if cfg.SmbstatusPath != "/usr/bin/smbstatus" {
		t.Errorf("smbstatus path = %q", cfg.SmbstatusPath)
	}
	if cfg.ExecTimeoutSeconds != 30 {
		t.Errorf("exec timeout = %d, want 30", cfg.ExecTimeoutSeconds)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("log level = %q, want info", cfg.LogLevel)
	}
}

func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := `share_dirs:
  - /mnt/samba/public
  - /srv/media
smbstatus_path: /opt/samba/bin/smbstatus
exec_timeout_seconds: 5
log_level: debug
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(cfg.ShareDirs) != 2 || cfg.ShareDirs[0] != "/mnt/samba/public" || cfg.ShareDirs[1] != "/srv/media" {
		t.Errorf("share dirs = %v", cfg.ShareDirs)
	}
	if cfg.SmbstatusPath != "/opt/samba/bin/smbstatus" {
		t.Errorf("smbstatus path = %q", cfg.SmbstatusPath)
	}
	if cfg.ExecTimeoutSeconds != 5 {
		t.Errorf("exec timeout = %d, want 5", cfg.ExecTimeoutSeconds)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("log level = %q, want debug", cfg.LogLevel)
	}
}

func TestLoad_PartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("log_level: warn\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.LogLevel != "warn" {
		t.Errorf("log level = %q, want warn", cfg.LogLevel)
	}
	if len(cfg.ShareDirs) != 1 || cfg.ShareDirs[0] != "/mnt/samba" {
		t.Errorf("share dirs = %v, want default", cfg.ShareDirs)
	}
}

func TestLoad_BadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("share_dirs: [unclosed"), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := Load(path); err == nil {
		t.Error("expected error for unparseable YAML")
	}
}

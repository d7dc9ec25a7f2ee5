package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadOverridesOnlyDefinedKeys(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "aperctl.toml")
	content := `
log_level = "debug"
strict_extensions = true
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("LogLevel = %q, want debug", cfg.LogLevel)
	}
	if !cfg.StrictExtensions {
		t.Error("StrictExtensions should be true")
	}
	if cfg.DefaultSchema != "" {
		t.Errorf("DefaultSchema = %q, want empty (untouched default)", cfg.DefaultSchema)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.toml")); err == nil {
		t.Fatal("expected an error for a missing config file")
	}
}

func TestDefault(t *testing.T) {
	cfg := Default()
	if cfg.LogLevel != "info" {
		t.Errorf("default LogLevel = %q, want info", cfg.LogLevel)
	}
	if cfg.StrictExtensions {
		t.Error("default StrictExtensions should be false")
	}
}

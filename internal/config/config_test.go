package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

// isolate points HOME and the XDG dirs at a temp dir so a real user config
// never leaks into the test.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "config"))
	t.Setenv("XDG_DATA_HOME", filepath.Join(dir, "data"))
	t.Setenv("REMINDR_STORE", "")
	t.Setenv("REMINDR_BACKEND", "")
	t.Setenv("REMINDR_EXTEND", "")
	t.Setenv("REMINDR_SOUND", "")
	return dir
}

func writeConfig(t *testing.T, dir, body string) string {
	t.Helper()
	path := filepath.Join(dir, "config", "remindr", "config.yaml")
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad_Default(t *testing.T) {
	dir := isolate(t)

	cfg, err := Load(CLIFlags{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Backend != BackendFile {
		t.Errorf("expected backend %q, got %q", BackendFile, cfg.Backend)
	}
	if cfg.ExtendOffset != 5*time.Minute {
		t.Errorf("expected 5m extend offset, got %s", cfg.ExtendOffset)
	}
	if cfg.TickInterval != time.Second {
		t.Errorf("expected 1s tick, got %s", cfg.TickInterval)
	}
	expected := filepath.Join(dir, "data", "remindr", "store.json")
	if cfg.StorePath != expected {
		t.Errorf("expected store %q, got %q", expected, cfg.StorePath)
	}
	if !cfg.Bell {
		t.Error("expected bell enabled by default")
	}
}

func TestLoad_ConfigFile(t *testing.T) {
	dir := isolate(t)
	writeConfig(t, dir, "backend: badger\nextend_offset: 1m\ntick_interval: 500ms\nbell: false\ndefault_sort: title\n")

	cfg, err := Load(CLIFlags{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Backend != BackendBadger {
		t.Errorf("expected badger, got %q", cfg.Backend)
	}
	if cfg.ExtendOffset != time.Minute {
		t.Errorf("expected 1m, got %s", cfg.ExtendOffset)
	}
	if cfg.TickInterval != 500*time.Millisecond {
		t.Errorf("expected 500ms, got %s", cfg.TickInterval)
	}
	if cfg.Bell {
		t.Error("expected bell disabled")
	}
	if cfg.DefaultSort != "title" {
		t.Errorf("expected default sort title, got %q", cfg.DefaultSort)
	}
}

func TestLoad_EnvVar(t *testing.T) {
	dir := isolate(t)
	writeConfig(t, dir, "extend_offset: 1m\n")
	t.Setenv("REMINDR_EXTEND", "10m")
	t.Setenv("REMINDR_STORE", "/tmp/remindr-env.json")

	cfg, err := Load(CLIFlags{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.ExtendOffset != 10*time.Minute {
		t.Errorf("env should override file, got %s", cfg.ExtendOffset)
	}
	if cfg.StorePath != "/tmp/remindr-env.json" {
		t.Errorf("expected env store path, got %q", cfg.StorePath)
	}
}

func TestLoad_CLIFlags(t *testing.T) {
	isolate(t)
	t.Setenv("REMINDR_STORE", "/tmp/env-store.json")
	t.Setenv("REMINDR_EXTEND", "10m")

	cfg, err := Load(CLIFlags{
		StorePath:    "/tmp/cli-store.json",
		ExtendOffset: 2 * time.Minute,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// CLI flags should override env vars
	if cfg.StorePath != "/tmp/cli-store.json" {
		t.Errorf("expected /tmp/cli-store.json, got %q", cfg.StorePath)
	}
	if cfg.ExtendOffset != 2*time.Minute {
		t.Errorf("expected 2m, got %s", cfg.ExtendOffset)
	}
}

func TestLoad_PathExpansion(t *testing.T) {
	dir := isolate(t)

	cfg, err := Load(CLIFlags{StorePath: "~/reminders.json"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	expected := filepath.Join(dir, "reminders.json")
	if cfg.StorePath != expected {
		t.Errorf("expected %q, got %q", expected, cfg.StorePath)
	}
}

func TestLoad_InvalidValues(t *testing.T) {
	tests := []struct {
		name string
		file string
		env  map[string]string
	}{
		{name: "unknown backend", file: "backend: sqlite\n"},
		{name: "bad duration in file", file: "extend_offset: soon\n"},
		{name: "bad duration in env", env: map[string]string{"REMINDR_EXTEND": "later"}},
		{name: "negative tick", file: "tick_interval: -1s\n"},
		{name: "unknown sort", file: "default_sort: priority\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := isolate(t)
			if tt.file != "" {
				writeConfig(t, dir, tt.file)
			}
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			if _, err := Load(CLIFlags{}); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestLoad_ExplicitConfigMissing(t *testing.T) {
	dir := isolate(t)
	_, err := Load(CLIFlags{ConfigPath: filepath.Join(dir, "nope.yaml")})
	if err == nil {
		t.Error("expected error for missing explicit config file")
	}
}

func TestEnsureConfigFile(t *testing.T) {
	dir := isolate(t)

	if err := EnsureConfigFile(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	path := filepath.Join(dir, "config", "remindr", "config.yaml")
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("expected config file: %v", err)
	}

	// The written defaults must load back cleanly.
	cfg, err := Load(CLIFlags{})
	if err != nil {
		t.Fatalf("reload error: %v", err)
	}
	if cfg.ExtendOffset != DefaultExtendOffset {
		t.Errorf("expected %s, got %s", DefaultExtendOffset, cfg.ExtendOffset)
	}
}

func TestDataDir(t *testing.T) {
	cfg := &Config{StorePath: "/var/lib/remindr/store.json"}
	if cfg.DataDir() != "/var/lib/remindr" {
		t.Errorf("expected /var/lib/remindr, got %q", cfg.DataDir())
	}

	badger := &Config{StorePath: "/var/lib/remindr/db/", Backend: BackendBadger}
	if badger.DataDir() != "/var/lib/remindr" {
		t.Errorf("expected /var/lib/remindr, got %q", badger.DataDir())
	}
}

package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadConfigMissingFile(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatalf("expected no error for missing file, got %v", err)
	}
	if cfg.Game.Intro != nil || cfg.Game.RecordFile != nil || cfg.Stats.Window != nil {
		t.Fatalf("expected empty config, got %+v", cfg)
	}
}

func TestLoadConfigEmptyPath(t *testing.T) {
	if _, err := LoadConfig(""); err == nil {
		t.Fatalf("expected error for empty path")
	}
}

func TestLoadConfigValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	data := `
[game]
intro = false
color = true
record-file = "/tmp/best.txt"

[stats]
window = 5
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.Game.Intro == nil || *cfg.Game.Intro {
		t.Fatalf("expected intro=false, got %v", cfg.Game.Intro)
	}
	if cfg.Game.Color == nil || !*cfg.Game.Color {
		t.Fatalf("expected color=true")
	}
	if cfg.Game.TUI != nil || cfg.Game.History != nil {
		t.Fatalf("unset keys must stay nil")
	}
	if cfg.Game.RecordFile == nil || *cfg.Game.RecordFile != "/tmp/best.txt" {
		t.Fatalf("unexpected record file: %v", cfg.Game.RecordFile)
	}
	if cfg.Stats.Window == nil || *cfg.Stats.Window != 5 {
		t.Fatalf("unexpected stats window: %v", cfg.Stats.Window)
	}
}

func TestLoadConfigRejectsUnknownKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("[game]\nspeed = 3\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	_, err := LoadConfig(path)
	if err == nil || !strings.Contains(err.Error(), "game.speed") {
		t.Fatalf("expected unknown key error, got %v", err)
	}
}

func TestLoadConfigMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("[game\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := LoadConfig(path); err == nil {
		t.Fatalf("expected decode error")
	}
}

func TestDefaultPathsFollowXDG(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/cfg")
	t.Setenv("XDG_DATA_HOME", "/data")
	if got := DefaultConfigPath(); got != filepath.Join("/cfg", "guessnum", "config.toml") {
		t.Fatalf("unexpected config path %q", got)
	}
	if got := DefaultDBPath(); got != filepath.Join("/data", "guessnum", "history.db") {
		t.Fatalf("unexpected db path %q", got)
	}
	if got := DefaultRecordPath(); got != filepath.Join("/data", "guessnum", "record.txt") {
		t.Fatalf("unexpected record path %q", got)
	}
}

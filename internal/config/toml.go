// Package config provides configuration helpers and TOML parsing.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// FileConfig represents the TOML configuration file.
type FileConfig struct {
	Game  GameConfig  `toml:"game"`
	Stats StatsConfig `toml:"stats"`
}

// GameConfig maps settings of the interactive game.
type GameConfig struct {
	Intro      *bool   `toml:"intro"`
	Color      *bool   `toml:"color"`
	TUI        *bool   `toml:"tui"`
	History    *bool   `toml:"history"`
	RecordFile *string `toml:"record-file"`
}

// StatsConfig maps settings of the stats command.
type StatsConfig struct {
	Window *int  `toml:"window"`
	Plain  *bool `toml:"plain"`
}

// LoadConfig reads a TOML config from the given path. Missing file is not an error.
func LoadConfig(path string) (FileConfig, error) {
	if path == "" {
		return FileConfig{}, fmt.Errorf("config path is empty")
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return FileConfig{}, nil
		}
		return FileConfig{}, fmt.Errorf("failed to stat config: %w", err)
	}
	var cfg FileConfig
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return FileConfig{}, fmt.Errorf("failed to decode config: %w", err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return FileConfig{}, fmt.Errorf("unknown config key %q", undecoded[0].String())
	}
	return cfg, nil
}

package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// FileConfig represents the config file. Every field is optional; a nil
// pointer means "not set" so flags and defaults stay in charge.
type FileConfig struct {
	Game      GameConfig      `toml:"game" yaml:"game"`
	HighScore HighScoreConfig `toml:"highscore" yaml:"highscore"`
	Server    ServerConfig    `toml:"server" yaml:"server"`
}

// GameConfig maps round settings.
type GameConfig struct {
	Level *string `toml:"level" yaml:"level"`
	Sound *bool   `toml:"sound" yaml:"sound"`
	Music *bool   `toml:"music" yaml:"music"`
	Pool  *string `toml:"pool" yaml:"pool"`
}

// HighScoreConfig maps the persistence backend settings.
type HighScoreConfig struct {
	Backend       *string `toml:"backend" yaml:"backend"`
	Path          *string `toml:"path" yaml:"path"`
	RedisAddr     *string `toml:"redis-addr" yaml:"redis-addr"`
	RedisPassword *string `toml:"redis-password" yaml:"redis-password"`
	RedisDB       *int    `toml:"redis-db" yaml:"redis-db"`
}

// ServerConfig maps web server settings.
type ServerConfig struct {
	Addr *string `toml:"addr" yaml:"addr"`
}

// LoadConfig reads a config file from the given path. Missing file is not an
// error. Files ending in .yaml or .yml are decoded as YAML, everything else as TOML.
func LoadConfig(path string) (FileConfig, error) {
	if path == "" {
		return FileConfig{}, fmt.Errorf("config path is empty")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return FileConfig{}, nil
		}
		return FileConfig{}, fmt.Errorf("failed to read config: %w", err)
	}
	var cfg FileConfig
	if isYAML(path) {
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return FileConfig{}, fmt.Errorf("failed to decode config: %w", err)
		}
		return cfg, nil
	}
	if _, err := toml.Decode(string(data), &cfg); err != nil {
		return FileConfig{}, fmt.Errorf("failed to decode config: %w", err)
	}
	return cfg, nil
}

func isYAML(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return true
	default:
		return false
	}
}

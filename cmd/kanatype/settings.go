package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/verte-zerg/kanatype/internal/config"
	"github.com/verte-zerg/kanatype/internal/generator"
	"github.com/verte-zerg/kanatype/internal/model"
)

const (
	defaultLevel     = string(generator.LevelNormal)
	defaultBackend   = model.BackendSQLite
	defaultAddr      = "127.0.0.1:8080"
	defaultRedisAddr = "localhost:6379"
)

var (
	configPath string

	gameLevel string
	gameSound bool
	gameMusic bool
	gamePool  string

	hsBackend       string
	hsPath          string
	hsRedisAddr     string
	hsRedisPassword string
	hsRedisDB       int

	serverAddr string

	bestReset bool
)

type settings struct {
	game      model.Config
	highScore model.HighScoreConfig
	server    model.ServerConfig
}

func resolveConfigPath() string {
	if configPath != "" {
		return configPath
	}
	return config.DefaultConfigPath()
}

// loadSettings overlays the config file on flag defaults. Flags set on the
// command line always win.
func loadSettings(cmd *cobra.Command) (settings, error) {
	fileCfg, err := config.LoadConfig(resolveConfigPath())
	if err != nil {
		return settings{}, fmt.Errorf("failed to load config: %w", err)
	}

	applyStringConfig(cmd, "level", &gameLevel, fileCfg.Game.Level)
	applyBoolConfig(cmd, "sound", &gameSound, fileCfg.Game.Sound)
	applyBoolConfig(cmd, "music", &gameMusic, fileCfg.Game.Music)
	applyStringConfig(cmd, "pool", &gamePool, fileCfg.Game.Pool)
	applyStringConfig(cmd, "backend", &hsBackend, fileCfg.HighScore.Backend)
	applyStringConfig(cmd, "highscore-path", &hsPath, fileCfg.HighScore.Path)
	applyStringConfig(cmd, "redis-addr", &hsRedisAddr, fileCfg.HighScore.RedisAddr)
	applyStringConfig(cmd, "redis-password", &hsRedisPassword, fileCfg.HighScore.RedisPassword)
	applyIntConfig(cmd, "redis-db", &hsRedisDB, fileCfg.HighScore.RedisDB)
	applyStringConfig(cmd, "addr", &serverAddr, fileCfg.Server.Addr)

	s := settings{
		game: model.Config{
			Level:    gameLevel,
			Sound:    gameSound,
			Music:    gameMusic,
			PoolPath: gamePool,
		},
		highScore: model.HighScoreConfig{
			Backend:       hsBackend,
			Path:          resolveHighScorePath(hsBackend, hsPath),
			RedisAddr:     hsRedisAddr,
			RedisPassword: hsRedisPassword,
			RedisDB:       hsRedisDB,
		},
		server: model.ServerConfig{Addr: serverAddr},
	}
	if err := validateConfig(s); err != nil {
		return settings{}, err
	}
	return s, nil
}

func resolveHighScorePath(backend, path string) string {
	if path != "" {
		return path
	}
	switch backend {
	case model.BackendJSON:
		return config.DefaultJSONPath()
	case model.BackendSQLite, "":
		return config.DefaultDBPath()
	default:
		return ""
	}
}

func applyStringConfig(cmd *cobra.Command, name string, target, value *string) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyIntConfig(cmd *cobra.Command, name string, target, value *int) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyBoolConfig(cmd *cobra.Command, name string, target, value *bool) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func defaultConfigTemplate() string {
	return fmt.Sprintf(`# kanatype configuration
# Uncomment a value to enable it. CLI flags override config values.

[game]
# level = %q         # easy (2-3 kana), normal (3-4) or hard (4-6)
# sound = true            # Sound effects
# music = true            # Background drone while playing
# pool = ""               # File with one kana per line to draw from

[highscore]
# backend = %q       # sqlite, redis or json
# path = ""               # Database or JSON file (sqlite/json)
# redis-addr = %q
# redis-password = ""
# redis-db = 0

[server]
# addr = %q
`,
		defaultLevel,
		defaultBackend,
		defaultRedisAddr,
		defaultAddr,
	)
}

func validateConfig(s settings) error {
	if _, err := generator.ParseLevel(s.game.Level); err != nil {
		return fmt.Errorf("--level: %w", err)
	}
	switch s.highScore.Backend {
	case model.BackendSQLite, model.BackendRedis, model.BackendJSON:
	default:
		return fmt.Errorf("--backend must be one of sqlite, redis, json (got %q)", s.highScore.Backend)
	}
	if s.highScore.Backend == model.BackendRedis && s.highScore.RedisAddr == "" {
		return fmt.Errorf("redis-addr must not be empty")
	}
	if s.highScore.RedisDB < 0 {
		return fmt.Errorf("redis-db must be >= 0")
	}
	if s.server.Addr == "" {
		return fmt.Errorf("--addr must not be empty")
	}
	return nil
}

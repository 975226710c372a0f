package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/verte-zerg/kanatype/internal/config"
	"github.com/verte-zerg/kanatype/internal/model"
	"github.com/verte-zerg/kanatype/internal/store"
)

func setXDG(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "config"))
	t.Setenv("XDG_DATA_HOME", filepath.Join(dir, "data"))
	t.Setenv("XDG_STATE_HOME", filepath.Join(dir, "state"))
	t.Setenv("NO_COLOR", "1")
	return dir
}

func TestDefaultConfigTemplateDecodes(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(defaultConfigTemplate()), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	cfg, err := config.LoadConfig(path)
	if err != nil {
		t.Fatalf("template should decode: %v", err)
	}
	if cfg.Game.Level != nil || cfg.HighScore.Backend != nil || cfg.Server.Addr != nil {
		t.Fatalf("template values should all be commented out: %+v", cfg)
	}
}

func TestLoadSettingsFlagsWinOverFile(t *testing.T) {
	dir := setXDG(t)
	cfgPath := filepath.Join(dir, "kanatype.yaml")
	content := "game:\n  level: hard\n  sound: false\nhighscore:\n  backend: json\n"
	if err := os.WriteFile(cfgPath, []byte(content), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	root := newRootCmd()
	if err := root.ParseFlags([]string{"--config", cfgPath, "--level", "easy"}); err != nil {
		t.Fatalf("parse flags: %v", err)
	}
	s, err := loadSettings(root)
	if err != nil {
		t.Fatalf("load settings: %v", err)
	}
	if s.game.Level != "easy" {
		t.Fatalf("expected flag level easy, got %q", s.game.Level)
	}
	if s.game.Sound {
		t.Fatalf("expected sound disabled from file")
	}
	if !s.game.Music {
		t.Fatalf("expected music default on")
	}
	if s.highScore.Backend != model.BackendJSON {
		t.Fatalf("expected json backend, got %q", s.highScore.Backend)
	}
	if s.highScore.Path != config.DefaultJSONPath() {
		t.Fatalf("expected default json path, got %q", s.highScore.Path)
	}
	if s.server.Addr != defaultAddr {
		t.Fatalf("expected default addr, got %q", s.server.Addr)
	}
}

func TestLoadSettingsRejectsBadFileValues(t *testing.T) {
	dir := setXDG(t)
	cfgPath := filepath.Join(dir, "config.toml")
	if err := os.WriteFile(cfgPath, []byte("[game]\nlevel = \"extreme\"\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	root := newRootCmd()
	if err := root.ParseFlags([]string{"--config", cfgPath}); err != nil {
		t.Fatalf("parse flags: %v", err)
	}
	if _, err := loadSettings(root); err == nil {
		t.Fatalf("expected invalid level error")
	}
}

func TestValidateConfig(t *testing.T) {
	valid := settings{
		game:      model.Config{Level: "normal"},
		highScore: model.HighScoreConfig{Backend: model.BackendSQLite},
		server:    model.ServerConfig{Addr: defaultAddr},
	}
	if err := validateConfig(valid); err != nil {
		t.Fatalf("expected valid config: %v", err)
	}

	cases := map[string]func(s *settings){
		"level":    func(s *settings) { s.game.Level = "extreme" },
		"backend":  func(s *settings) { s.highScore.Backend = "etcd" },
		"redis-db": func(s *settings) { s.highScore.RedisDB = -1 },
		"redis":    func(s *settings) { s.highScore.Backend = model.BackendRedis },
		"addr":     func(s *settings) { s.server.Addr = "" },
	}
	for name, mutate := range cases {
		s := valid
		mutate(&s)
		if err := validateConfig(s); err == nil {
			t.Fatalf("%s: expected error", name)
		}
	}
}

func TestBestCommand(t *testing.T) {
	setXDG(t)
	ctx := context.Background()
	js := store.NewJSONStore(config.DefaultJSONPath())
	if _, err := js.SaveHighScore(ctx, 800); err != nil {
		t.Fatalf("seed: %v", err)
	}

	var out bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetArgs([]string{"best", "--backend", "json"})
	if err := root.Execute(); err != nil {
		t.Fatalf("best: %v", err)
	}
	if !strings.Contains(out.String(), "typingGame.highScore") || !strings.Contains(out.String(), "800") {
		t.Fatalf("unexpected output: %q", out.String())
	}

	out.Reset()
	root = newRootCmd()
	root.SetOut(&out)
	root.SetArgs([]string{"best", "--backend", "json", "--reset"})
	if err := root.Execute(); err != nil {
		t.Fatalf("best --reset: %v", err)
	}
	score, err := js.LoadHighScore(ctx)
	if err != nil || score != 0 {
		t.Fatalf("expected reset score 0, got %d (%v)", score, err)
	}
}

func TestLoadPool(t *testing.T) {
	pool, err := loadPool("")
	if err != nil || pool != nil {
		t.Fatalf("expected nil pool without a path")
	}
	path := filepath.Join(t.TempDir(), "pool.txt")
	if err := os.WriteFile(path, []byte("# vowels\nあ\nイ\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	pool, err = loadPool(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if string(pool) != "あい" {
		t.Fatalf("expected あい, got %q", string(pool))
	}
	if _, err := loadPool(filepath.Join(t.TempDir(), "missing.txt")); err == nil {
		t.Fatalf("expected error for missing pool")
	}
}

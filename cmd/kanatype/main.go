// Package main provides the CLI entrypoint for kanatype.
package main

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"os"
	"os/exec"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/verte-zerg/kanatype/internal/config"
	"github.com/verte-zerg/kanatype/internal/game"
	"github.com/verte-zerg/kanatype/internal/generator"
	"github.com/verte-zerg/kanatype/internal/sound"
	"github.com/verte-zerg/kanatype/internal/stats"
	"github.com/verte-zerg/kanatype/internal/store"
	"github.com/verte-zerg/kanatype/internal/tui"
	"github.com/verte-zerg/kanatype/internal/web"
	"github.com/verte-zerg/kanatype/internal/wordlist"
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "kanatype",
		Short:         "Timed kana typing game",
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE:          runPlayCmd,
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&configPath, "config", "", "config file (.toml, .yaml or .yml)")
	pf.StringVar(&gameLevel, "level", defaultLevel, "difficulty: easy, normal or hard")
	pf.StringVar(&gamePool, "pool", "", "file with one kana per line to draw words from")
	pf.StringVar(&hsBackend, "backend", defaultBackend, "high score backend: sqlite, redis or json")
	pf.StringVar(&hsPath, "highscore-path", "", "high score file for the sqlite and json backends")
	pf.StringVar(&hsRedisAddr, "redis-addr", defaultRedisAddr, "redis address for the redis backend")
	pf.IntVar(&hsRedisDB, "redis-db", 0, "redis database for the redis backend")

	rootCmd.Flags().BoolVar(&gameSound, "sound", true, "play sound effects")
	rootCmd.Flags().BoolVar(&gameMusic, "music", true, "play background music")

	rootCmd.AddCommand(newServeCmd())
	rootCmd.AddCommand(newBestCmd())
	rootCmd.AddCommand(newConfigCmd())

	return rootCmd
}

func runPlayCmd(cmd *cobra.Command, _ []string) error {
	s, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	level, err := generator.ParseLevel(s.game.Level)
	if err != nil {
		return err
	}
	pool, err := loadPool(s.game.PoolPath)
	if err != nil {
		return err
	}

	logFile, err := openLogFile()
	if err != nil {
		logErrf("failed to open log file: %v\n", err)
	} else {
		defer func() {
			if cerr := logFile.Close(); cerr != nil {
				logErrf("failed to close log file: %v\n", cerr)
			}
		}()
	}

	ctx := context.Background()
	st := openStoreBestEffort(ctx, s)
	defer closeStore(st)

	player := sound.NewPlayer(s.game.Sound, s.game.Music)
	if err := player.Init(); err != nil {
		log.Printf("audio disabled: %v", err)
	}
	defer player.Close()

	engine := game.NewEngine(newGenerator(pool))
	model := tui.NewModel(engine, st, player, level)
	program := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	return nil
}

func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the game in a browser",
		Args:  cobra.NoArgs,
		RunE:  runServeCmd,
	}
	cmd.Flags().StringVar(&serverAddr, "addr", defaultAddr, "listen address")
	return cmd
}

func runServeCmd(cmd *cobra.Command, _ []string) error {
	s, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	level, err := generator.ParseLevel(s.game.Level)
	if err != nil {
		return err
	}
	pool, err := loadPool(s.game.PoolPath)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	st := openStoreBestEffort(ctx, s)
	defer closeStore(st)

	srv := web.NewServer(s.server.Addr, func() *game.Engine {
		return game.NewEngine(newGenerator(pool))
	}, st, level)
	if err := srv.Run(ctx); err != nil {
		return fmt.Errorf("failed to serve: %w", err)
	}
	return nil
}

func newBestCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "best",
		Short: "Show the stored high score",
		Args:  cobra.NoArgs,
		RunE:  runBestCmd,
	}
	cmd.Flags().BoolVar(&bestReset, "reset", false, "reset the high score to 0")
	return cmd
}

func runBestCmd(cmd *cobra.Command, _ []string) error {
	s, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	ctx := context.Background()
	st, err := store.Open(ctx, s.highScore)
	if err != nil {
		return fmt.Errorf("failed to open high score store: %w", err)
	}
	defer closeStore(st)

	if bestReset {
		if err := st.ResetHighScore(ctx); err != nil {
			return fmt.Errorf("failed to reset high score: %w", err)
		}
	}
	score, err := st.LoadHighScore(ctx)
	if err != nil {
		return fmt.Errorf("failed to load high score: %w", err)
	}
	out := cmd.OutOrStdout()
	return stats.RenderHighScore(out, score, stats.ShouldUseColor(out))
}

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Create/open config file",
		Args:  cobra.NoArgs,
		RunE:  runConfigCmd,
	}
}

func runConfigCmd(_ *cobra.Command, _ []string) error {
	path := resolveConfigPath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if _, err := os.Stat(path); err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("failed to stat config: %w", err)
		}
		if err := os.WriteFile(path, []byte(defaultConfigTemplate()), 0o644); err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}
	}

	editor := strings.TrimSpace(os.Getenv("EDITOR"))
	if editor == "" {
		editor = "vi"
	}
	parts := strings.Fields(editor)
	if len(parts) == 0 {
		return fmt.Errorf("editor command is empty")
	}
	cmd := exec.Command(parts[0], append(parts[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}
	return nil
}

func loadPool(path string) ([]rune, error) {
	if path == "" {
		return nil, nil
	}
	pool, err := wordlist.LoadPool(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load kana pool: %w", err)
	}
	return pool, nil
}

func newGenerator(pool []rune) *generator.Generator {
	return generator.NewWithSource(rand.NewSource(time.Now().UnixNano()), pool)
}

// openLogFile routes the standard logger to a file so it never draws over
// the alternate screen.
func openLogFile() (*os.File, error) {
	path := config.DefaultLogPath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	return tea.LogToFile(path, "kanatype")
}

// openStoreBestEffort opens the configured backend. A failure is logged and
// the game runs without persistence.
func openStoreBestEffort(ctx context.Context, s settings) store.HighScoreStore {
	st, err := store.Open(ctx, s.highScore)
	if err != nil {
		log.Printf("high score disabled: %v", err)
		return nil
	}
	return st
}

func closeStore(st store.HighScoreStore) {
	if st == nil {
		return
	}
	if err := st.Close(); err != nil {
		log.Printf("failed to close high score store: %v", err)
	}
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}

package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-mines/internal/achievements"
	"github.com/vovakirdan/tui-mines/internal/config"
	"github.com/vovakirdan/tui-mines/internal/core"
	"github.com/vovakirdan/tui-mines/internal/games/minesweeper"
	"github.com/vovakirdan/tui-mines/internal/platform/tui"
	"github.com/vovakirdan/tui-mines/internal/progress"
	"github.com/vovakirdan/tui-mines/internal/storage"
)

// settings are the environment values with command-line flags applied.
type settings struct {
	DBPath     string
	ConfigPath string
	Player     string
	LogPath    string
	TickRate   int
	Seed       int64
}

// resolveSettings overlays the flags that were set on the environment.
func resolveSettings(env config.Env) settings {
	s := settings{
		DBPath:     env.DBPath,
		ConfigPath: env.ConfigPath,
		Player:     env.Player,
		LogPath:    env.LogPath,
		TickRate:   env.TickRate,
		Seed:       flagSeed,
	}
	if flagDBPath != "" {
		s.DBPath = flagDBPath
	}
	if flagConfigPath != "" {
		s.ConfigPath = flagConfigPath
	}
	if name := strings.TrimSpace(flagPlayer); name != "" {
		s.Player = name
	}
	if flagLogPath != "" {
		s.LogPath = flagLogPath
	}
	if flagFPS > 0 {
		s.TickRate = flagFPS
	}
	return s
}

// app holds everything a command needs once flags are parsed.
type app struct {
	settings settings
	boards   config.MinesweeperConfig
	logger   *log.Logger // file logger; the TUI owns the terminal
	warn     *log.Logger // stderr logger for CLI warnings
	closers  []io.Closer
}

// newApp reads the environment, flags and board config, and opens the
// log file.
func newApp() (*app, error) {
	env, err := config.LoadEnv()
	if err != nil {
		return nil, err
	}
	s := resolveSettings(env)

	boards, err := config.LoadMinesweeper(s.ConfigPath)
	if err != nil {
		return nil, err
	}
	minesweeper.SetConfigPath(s.ConfigPath)

	a := &app{
		settings: s,
		boards:   boards,
		warn: log.NewWithOptions(os.Stderr, log.Options{
			Prefix: "mines",
		}),
	}

	f, err := openLog(s.LogPath)
	if err != nil {
		a.warn.Warn("logging disabled", "err", err)
		a.logger = log.New(io.Discard)
	} else {
		a.closers = append(a.closers, f)
		a.logger = log.NewWithOptions(f, log.Options{
			ReportTimestamp: true,
			TimeFormat:      time.DateTime,
			Prefix:          "mines",
		})
	}
	return a, nil
}

func openLog(path string) (*os.File, error) {
	path, err := config.ExpandHome(path)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("cannot create log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		return nil, fmt.Errorf("cannot open log file: %w", err)
	}
	return f, nil
}

// openStore opens the stats database.
func (a *app) openStore() (*storage.Store, error) {
	store, err := storage.Open(a.settings.DBPath)
	if err != nil {
		return nil, err
	}
	a.closers = append(a.closers, store)
	return store, nil
}

// openProgress opens the database and wraps it in a progress tracker.
// Games still run without one, so a failure is only a warning and both
// results are nil.
func (a *app) openProgress() (*storage.Store, *progress.Tracker) {
	store, err := a.openStore()
	if err != nil {
		a.warn.Warn("progress will not be saved", "err", err)
		a.logger.Error("cannot open database", "path", a.settings.DBPath, "err", err)
		return nil, nil
	}
	rules := achievements.Rules{
		SpeedDemon: time.Duration(a.boards.Achievements.SpeedDemonSeconds) * time.Second,
	}
	return store, progress.New(store, a.settings.Player,
		progress.WithLogger(a.logger),
		progress.WithRules(rules),
	)
}

// runtimeConfig sizes the game to the terminal.
func (a *app) runtimeConfig() core.RuntimeConfig {
	width, height := 80, 24
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width, height = w, h
	}
	return core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: a.settings.TickRate,
		Seed:     a.settings.Seed,
	}
}

// sessionOptions configures a game session.
func (a *app) sessionOptions(tracker *progress.Tracker) tui.Options {
	return tui.Options{
		Tracker: tracker,
		Logger:  a.logger,
	}
}

// Close releases the database and log file in reverse order.
func (a *app) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i].Close(); err != nil {
			a.warn.Warn("close failed", "err", err)
		}
	}
	a.closers = nil
}

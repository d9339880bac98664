package config

import (
	"fmt"
	"os"
	"os/user"
	"strings"

	"github.com/caarlos0/env/v11"
)

// Env holds settings read from MINES_* environment variables.
// Command-line flags take precedence over these values.
type Env struct {
	DBPath     string `env:"MINES_DB"     envDefault:"~/.mines/mines.db"`
	ConfigPath string `env:"MINES_CONFIG"`
	Player     string `env:"MINES_PLAYER"`
	LogPath    string `env:"MINES_LOG"    envDefault:"~/.mines/mines.log"`
	TickRate   int    `env:"MINES_FPS"    envDefault:"30"`
}

// ParseEnv parses environment variables into target.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// LoadEnv reads the MINES_* variables and fills in a player name when none is set.
func LoadEnv() (Env, error) {
	var e Env
	if err := ParseEnv(&e); err != nil {
		return Env{}, err
	}
	e.Player = strings.TrimSpace(e.Player)
	if e.Player == "" {
		e.Player = defaultPlayer()
	}
	if e.TickRate <= 0 {
		return Env{}, fmt.Errorf("parse env: MINES_FPS must be positive, got %d", e.TickRate)
	}
	return e, nil
}

func defaultPlayer() string {
	if name := os.Getenv("USER"); name != "" {
		return name
	}
	if u, err := user.Current(); err == nil && u.Username != "" {
		return u.Username
	}
	return "player"
}

package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestEmbeddedDefaultsMatchHardcoded(t *testing.T) {
	cfg, err := parseMinesweeper(defaultMinesweeperYAML)
	if err != nil {
		t.Fatalf("embedded defaults failed to parse: %v", err)
	}
	want := DefaultMinesweeperConfig()

	if len(cfg.Presets) != len(want.Presets) {
		t.Fatalf("len(Presets) = %d, expected %d", len(cfg.Presets), len(want.Presets))
	}
	for i := range want.Presets {
		if cfg.Presets[i] != want.Presets[i] {
			t.Errorf("Presets[%d] = %+v, expected %+v", i, cfg.Presets[i], want.Presets[i])
		}
	}
	if cfg.Daily != want.Daily {
		t.Errorf("Daily = %+v, expected %+v", cfg.Daily, want.Daily)
	}
	if cfg.Achievements != want.Achievements {
		t.Errorf("Achievements = %+v, expected %+v", cfg.Achievements, want.Achievements)
	}
}

func TestPresetLookup(t *testing.T) {
	cfg := DefaultMinesweeperConfig()

	tests := []struct {
		name  DifficultyPreset
		rows  int
		cols  int
		mines int
	}{
		{DifficultyBeginner, 9, 9, 10},
		{DifficultyIntermediate, 16, 16, 40},
		{DifficultyExpert, 16, 30, 99},
	}

	for _, tt := range tests {
		t.Run(string(tt.name), func(t *testing.T) {
			p, err := cfg.Preset(tt.name)
			if err != nil {
				t.Fatalf("Preset(%q) error: %v", tt.name, err)
			}
			if p.Rows != tt.rows || p.Cols != tt.cols || p.Mines != tt.mines {
				t.Errorf("Preset(%q) = %dx%d/%d, expected %dx%d/%d",
					tt.name, p.Rows, p.Cols, p.Mines, tt.rows, tt.cols, tt.mines)
			}
		})
	}

	if _, err := cfg.Preset("nightmare"); err == nil {
		t.Error("Preset(nightmare) should fail")
	}

	daily, err := cfg.DailyPreset()
	if err != nil {
		t.Fatalf("DailyPreset error: %v", err)
	}
	if daily.Name != string(DifficultyIntermediate) {
		t.Errorf("DailyPreset = %q, expected %q", daily.Name, DifficultyIntermediate)
	}
}

func TestCustomPreset(t *testing.T) {
	tests := []struct {
		name    string
		rows    int
		cols    int
		mines   int
		wantErr bool
	}{
		{"valid", 10, 12, 20, false},
		{"single row", 1, 20, 5, false},
		{"zero rows", 0, 10, 1, true},
		{"no mines", 5, 5, 0, false},
		{"board full of mines", 3, 3, 9, true},
		{"most mines that fit", 9, 9, 72, false},
		{"no room for first click", 9, 9, 73, true},
		{"corner click only", 9, 9, 78, true},
		{"narrow board", 2, 10, 14, false},
		{"narrow board overfull", 2, 10, 15, true},
		{"single cell", 1, 1, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := CustomPreset(tt.rows, tt.cols, tt.mines)
			if (err != nil) != tt.wantErr {
				t.Fatalf("CustomPreset(%d, %d, %d) error = %v, wantErr %v",
					tt.rows, tt.cols, tt.mines, err, tt.wantErr)
			}
			if err == nil && p.Name != string(DifficultyCustom) {
				t.Errorf("Name = %q, expected %q", p.Name, DifficultyCustom)
			}
		})
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*MinesweeperConfig)
	}{
		{"no presets", func(c *MinesweeperConfig) { c.Presets = nil }},
		{"duplicate preset", func(c *MinesweeperConfig) { c.Presets = append(c.Presets, c.Presets[0]) }},
		{"too many mines", func(c *MinesweeperConfig) { c.Presets[0].Mines = 81 }},
		{"no safe first click", func(c *MinesweeperConfig) { c.Presets[0].Mines = 73 }},
		{"unknown daily preset", func(c *MinesweeperConfig) { c.Daily.Preset = "huge" }},
		{"negative attempts", func(c *MinesweeperConfig) { c.Placement.MaxAttempts = -1 }},
		{"zero speed threshold", func(c *MinesweeperConfig) { c.Achievements.SpeedDemonSeconds = 0 }},
	}

	if err := DefaultMinesweeperConfig().Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultMinesweeperConfig()
			tt.mutate(&cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("Validate() = nil, expected error")
			}
		})
	}
}

func TestLoadMinesweeperCustomPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "mines.yaml")
	data := "daily:\n  preset: expert\nachievements:\n  speed_demon_seconds: 45\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadMinesweeper(path)
	if err != nil {
		t.Fatalf("LoadMinesweeper error: %v", err)
	}
	if cfg.Daily.Preset != "expert" {
		t.Errorf("Daily.Preset = %q, expected %q", cfg.Daily.Preset, "expert")
	}
	if cfg.Achievements.SpeedDemonSeconds != 45 {
		t.Errorf("SpeedDemonSeconds = %d, expected 45", cfg.Achievements.SpeedDemonSeconds)
	}
	// Keys missing from the file keep their defaults
	if len(cfg.Presets) != 3 {
		t.Errorf("len(Presets) = %d, expected 3", len(cfg.Presets))
	}
}

func TestLoadMinesweeperCustomPathErrors(t *testing.T) {
	dir := t.TempDir()

	if _, err := LoadMinesweeper(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("missing custom config should fail")
	}

	bad := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(bad, []byte("daily:\n  preset: nowhere\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadMinesweeper(bad); err == nil {
		t.Error("invalid custom config should fail")
	}
}

func TestLoadMinesweeperSearchOrder(t *testing.T) {
	home := t.TempDir()
	work := t.TempDir()
	t.Setenv("HOME", home)
	t.Chdir(work)

	// Nothing on disk: embedded defaults
	cfg, err := LoadMinesweeper("")
	if err != nil {
		t.Fatalf("LoadMinesweeper error: %v", err)
	}
	if cfg.Achievements.SpeedDemonSeconds != 60 {
		t.Errorf("SpeedDemonSeconds = %d, expected 60", cfg.Achievements.SpeedDemonSeconds)
	}

	// Local configs directory
	if err := os.MkdirAll(filepath.Join(work, "configs"), 0o755); err != nil {
		t.Fatal(err)
	}
	local := "achievements:\n  speed_demon_seconds: 30\n"
	if err := os.WriteFile(filepath.Join(work, "configs", minesweeperFile), []byte(local), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, _ = LoadMinesweeper("")
	if cfg.Achievements.SpeedDemonSeconds != 30 {
		t.Errorf("local SpeedDemonSeconds = %d, expected 30", cfg.Achievements.SpeedDemonSeconds)
	}

	// User config wins over local
	userDir := filepath.Join(home, ".mines", "configs")
	if err := os.MkdirAll(userDir, 0o755); err != nil {
		t.Fatal(err)
	}
	user := "achievements:\n  speed_demon_seconds: 20\n"
	if err := os.WriteFile(filepath.Join(userDir, minesweeperFile), []byte(user), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, _ = LoadMinesweeper("")
	if cfg.Achievements.SpeedDemonSeconds != 20 {
		t.Errorf("user SpeedDemonSeconds = %d, expected 20", cfg.Achievements.SpeedDemonSeconds)
	}

	// A broken user file is skipped
	if err := os.WriteFile(filepath.Join(userDir, minesweeperFile), []byte("presets: [\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, _ = LoadMinesweeper("")
	if cfg.Achievements.SpeedDemonSeconds != 30 {
		t.Errorf("fallback SpeedDemonSeconds = %d, expected 30", cfg.Achievements.SpeedDemonSeconds)
	}
}

func TestExpandHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	got, err := ExpandHome("~/.mines/mines.db")
	if err != nil {
		t.Fatalf("ExpandHome error: %v", err)
	}
	if want := filepath.Join(home, ".mines", "mines.db"); got != want {
		t.Errorf("ExpandHome = %q, expected %q", got, want)
	}

	if got, _ := ExpandHome("/tmp/x.db"); got != "/tmp/x.db" {
		t.Errorf("ExpandHome(abs) = %q, expected unchanged", got)
	}
}

func TestLoadEnv(t *testing.T) {
	t.Setenv("MINES_DB", "/tmp/test.db")
	t.Setenv("MINES_CONFIG", "")
	t.Setenv("MINES_PLAYER", "  ada ")
	t.Setenv("MINES_LOG", "")
	t.Setenv("MINES_FPS", "60")

	e, err := LoadEnv()
	if err != nil {
		t.Fatalf("LoadEnv error: %v", err)
	}
	if e.DBPath != "/tmp/test.db" {
		t.Errorf("DBPath = %q, expected %q", e.DBPath, "/tmp/test.db")
	}
	if e.Player != "ada" {
		t.Errorf("Player = %q, expected %q", e.Player, "ada")
	}
	if e.TickRate != 60 {
		t.Errorf("TickRate = %d, expected 60", e.TickRate)
	}
}

func TestLoadEnvDefaults(t *testing.T) {
	for _, key := range []string{"MINES_DB", "MINES_CONFIG", "MINES_PLAYER", "MINES_LOG", "MINES_FPS"} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
	t.Setenv("USER", "grace")

	e, err := LoadEnv()
	if err != nil {
		t.Fatalf("LoadEnv error: %v", err)
	}
	if e.DBPath != "~/.mines/mines.db" {
		t.Errorf("DBPath = %q, expected default", e.DBPath)
	}
	if !strings.HasSuffix(e.LogPath, "mines.log") {
		t.Errorf("LogPath = %q, expected default log path", e.LogPath)
	}
	if e.Player != "grace" {
		t.Errorf("Player = %q, expected %q", e.Player, "grace")
	}
	if e.TickRate != 30 {
		t.Errorf("TickRate = %d, expected 30", e.TickRate)
	}
}

func TestLoadEnvRejectsBadFPS(t *testing.T) {
	t.Setenv("MINES_FPS", "fast")
	if _, err := LoadEnv(); err == nil {
		t.Error("non-numeric MINES_FPS should fail")
	}

	t.Setenv("MINES_FPS", "0")
	if _, err := LoadEnv(); err == nil {
		t.Error("zero MINES_FPS should fail")
	}
}

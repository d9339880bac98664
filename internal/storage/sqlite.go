// Package storage provides SQLite-based persistence for game history,
// fastest times, daily challenges and achievement progress.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/vovakirdan/tui-mines/internal/achievements"
)

// Game modes as stored in the games table.
const (
	ModeClassic = "classic"
	ModeDaily   = "daily"
)

const timestampLayout = "2006-01-02 15:04:05.000"

// Store manages the SQLite database connection.
type Store struct {
	db *sql.DB
}

// GameRecord is one finished game.
type GameRecord struct {
	ID         int64
	Mode       string
	Difficulty string
	Rows       int
	Cols       int
	Mines      int
	Won        bool
	Duration   time.Duration
	FlagsUsed  int
	Perfect    bool
	Player     string
	DailyDate  string // empty for classic games
	CreatedAt  time.Time
}

// DailyRecord is the stored state of one day's challenge.
type DailyRecord struct {
	Date        string
	Completed   bool
	Duration    time.Duration
	CompletedAt time.Time
}

// Stats contains aggregated statistics for one mode.
type Stats struct {
	Mode          string
	Total         int
	Won           int
	Lost          int
	BestTimes     map[string]time.Duration // by difficulty, wins only
	CurrentStreak int
	LongestStreak int
	LastPlayed    time.Time
}

// WinRate returns the percentage of games won, rounded to the nearest integer.
func (s *Stats) WinRate() int {
	if s.Total == 0 {
		return 0
	}
	return int(math.Round(float64(s.Won) / float64(s.Total) * 100))
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	// Create parent directories
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	// Open database
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	// Test connection
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}

	// Run migrations
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS games (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			mode TEXT NOT NULL,
			difficulty TEXT NOT NULL,
			"rows" INTEGER NOT NULL,
			cols INTEGER NOT NULL,
			mines INTEGER NOT NULL,
			won INTEGER NOT NULL,
			duration_ms INTEGER NOT NULL,
			flags_used INTEGER NOT NULL DEFAULT 0,
			perfect INTEGER NOT NULL DEFAULT 0,
			player TEXT NOT NULL DEFAULT '',
			daily_date TEXT NOT NULL DEFAULT '',
			created_at TEXT NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_games_mode ON games(mode);
		CREATE INDEX IF NOT EXISTS idx_games_fastest ON games(mode, difficulty, won, duration_ms);

		CREATE TABLE IF NOT EXISTS daily_challenges (
			date TEXT PRIMARY KEY,
			completed INTEGER NOT NULL DEFAULT 0,
			duration_ms INTEGER NOT NULL DEFAULT 0,
			completed_at TEXT
		);

		CREATE TABLE IF NOT EXISTS achievements (
			id TEXT PRIMARY KEY,
			progress INTEGER NOT NULL DEFAULT 0,
			unlocked INTEGER NOT NULL DEFAULT 0,
			unlocked_at TEXT
		);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SaveGame records a finished game.
// A zero CreatedAt is replaced with the current time.
// Returns the ID of the inserted record.
func (s *Store) SaveGame(g GameRecord) (int64, error) {
	if g.CreatedAt.IsZero() {
		g.CreatedAt = time.Now()
	}

	result, err := s.db.Exec(
		`INSERT INTO games
		 (mode, difficulty, "rows", cols, mines, won, duration_ms, flags_used, perfect, player, daily_date, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		g.Mode,
		g.Difficulty,
		g.Rows,
		g.Cols,
		g.Mines,
		g.Won,
		g.Duration.Milliseconds(),
		g.FlagsUsed,
		g.Perfect,
		g.Player,
		g.DailyDate,
		formatTimestamp(g.CreatedAt),
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save game: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

const gameColumns = `id, mode, difficulty, "rows", cols, mines, won, duration_ms,
	flags_used, perfect, player, daily_date, created_at`

// TopTimes retrieves the fastest classic wins for the given difficulty.
// Results are ordered by time ascending; ties keep insertion order.
func (s *Store) TopTimes(difficulty string, limit int) ([]GameRecord, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT `+gameColumns+`
		 FROM games
		 WHERE mode = ? AND difficulty = ? AND won = 1
		 ORDER BY duration_ms ASC, id ASC
		 LIMIT ?`,
		ModeClassic, difficulty, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query times: %w", err)
	}
	return scanGames(rows)
}

// BestTime returns the fastest classic win for the given difficulty.
// The boolean is false if there are no wins yet.
func (s *Store) BestTime(difficulty string) (time.Duration, bool, error) {
	var ms sql.NullInt64
	err := s.db.QueryRow(
		"SELECT MIN(duration_ms) FROM games WHERE mode = ? AND difficulty = ? AND won = 1",
		ModeClassic, difficulty,
	).Scan(&ms)
	if err != nil {
		return 0, false, fmt.Errorf("storage: cannot query best time: %w", err)
	}

	if !ms.Valid {
		return 0, false, nil
	}

	return time.Duration(ms.Int64) * time.Millisecond, true, nil
}

// CountGames returns the number of games recorded across all modes.
func (s *Store) CountGames() (int, error) {
	var n int
	if err := s.db.QueryRow("SELECT COUNT(*) FROM games").Scan(&n); err != nil {
		return 0, fmt.Errorf("storage: cannot count games: %w", err)
	}
	return n, nil
}

// RecentGames retrieves the most recent games of any mode, newest first.
func (s *Store) RecentGames(limit int) ([]GameRecord, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT `+gameColumns+`
		 FROM games
		 ORDER BY id DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query recent games: %w", err)
	}
	return scanGames(rows)
}

func scanGames(rows *sql.Rows) ([]GameRecord, error) {
	defer rows.Close()

	var games []GameRecord
	for rows.Next() {
		var g GameRecord
		var durationMS int64
		var createdAt any
		if err := rows.Scan(
			&g.ID,
			&g.Mode,
			&g.Difficulty,
			&g.Rows,
			&g.Cols,
			&g.Mines,
			&g.Won,
			&durationMS,
			&g.FlagsUsed,
			&g.Perfect,
			&g.Player,
			&g.DailyDate,
			&createdAt,
		); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		g.Duration = time.Duration(durationMS) * time.Millisecond
		g.CreatedAt = parseTimestamp(createdAt)
		games = append(games, g)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return games, nil
}

// Stats aggregates every game of the given mode.
// Streaks follow the order games were recorded in.
func (s *Store) Stats(mode string) (*Stats, error) {
	stats := &Stats{Mode: mode, BestTimes: make(map[string]time.Duration)}

	rows, err := s.db.Query(
		`SELECT won, created_at FROM games WHERE mode = ? ORDER BY id ASC`,
		mode,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get stats: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var won bool
		var createdAt any
		if err := rows.Scan(&won, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan stats row: %w", err)
		}

		stats.Total++
		if won {
			stats.Won++
			stats.CurrentStreak++
			stats.LongestStreak = max(stats.LongestStreak, stats.CurrentStreak)
		} else {
			stats.Lost++
			stats.CurrentStreak = 0
		}
		stats.LastPlayed = parseTimestamp(createdAt)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	best, err := s.db.Query(
		`SELECT difficulty, MIN(duration_ms)
		 FROM games
		 WHERE mode = ? AND won = 1
		 GROUP BY difficulty`,
		mode,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get best times: %w", err)
	}
	defer best.Close()

	for best.Next() {
		var difficulty string
		var ms int64
		if err := best.Scan(&difficulty, &ms); err != nil {
			return nil, fmt.Errorf("storage: cannot scan best time: %w", err)
		}
		stats.BestTimes[difficulty] = time.Duration(ms) * time.Millisecond
	}
	if err := best.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return stats, nil
}

// DailyChallenge returns the record for the given date key.
// A day with no record comes back with Completed false.
func (s *Store) DailyChallenge(date string) (DailyRecord, error) {
	rec := DailyRecord{Date: date}
	var durationMS int64
	var completedAt any

	err := s.db.QueryRow(
		`SELECT completed, duration_ms, completed_at FROM daily_challenges WHERE date = ?`,
		date,
	).Scan(&rec.Completed, &durationMS, &completedAt)

	if errors.Is(err, sql.ErrNoRows) {
		return rec, nil
	}
	if err != nil {
		return DailyRecord{}, fmt.Errorf("storage: cannot query daily challenge: %w", err)
	}

	rec.Duration = time.Duration(durationMS) * time.Millisecond
	rec.CompletedAt = parseTimestamp(completedAt)
	return rec, nil
}

// CompleteDaily marks the challenge for date as completed.
// Only the first completion is kept; later calls report false.
func (s *Store) CompleteDaily(date string, d time.Duration, at time.Time) (bool, error) {
	res, err := s.db.Exec(
		`INSERT INTO daily_challenges (date, completed, duration_ms, completed_at)
		 VALUES (?, 1, ?, ?)
		 ON CONFLICT(date) DO UPDATE SET
			completed = 1,
			duration_ms = excluded.duration_ms,
			completed_at = excluded.completed_at
		 WHERE daily_challenges.completed = 0`,
		date, d.Milliseconds(), formatTimestamp(at),
	)
	if err != nil {
		return false, fmt.Errorf("storage: cannot complete daily challenge: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("storage: cannot get affected rows: %w", err)
	}
	return n > 0, nil
}

// DailyDates returns every completed date key in ascending order.
func (s *Store) DailyDates() ([]string, error) {
	rows, err := s.db.Query(`SELECT date FROM daily_challenges WHERE completed = 1 ORDER BY date ASC`)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query daily dates: %w", err)
	}
	defer rows.Close()

	var dates []string
	for rows.Next() {
		var d string
		if err := rows.Scan(&d); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		dates = append(dates, d)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return dates, nil
}

// DailyCompletions returns how many daily challenges have been completed.
func (s *Store) DailyCompletions() (int, error) {
	var n int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM daily_challenges WHERE completed = 1`).Scan(&n); err != nil {
		return 0, fmt.Errorf("storage: cannot count daily challenges: %w", err)
	}
	return n, nil
}

// Achievements returns the stored state of every achievement that has one.
func (s *Store) Achievements() (map[achievements.ID]achievements.State, error) {
	rows, err := s.db.Query(`SELECT id, progress, unlocked, unlocked_at FROM achievements`)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query achievements: %w", err)
	}
	defer rows.Close()

	states := make(map[achievements.ID]achievements.State)
	for rows.Next() {
		var id string
		var st achievements.State
		var unlockedAt any
		if err := rows.Scan(&id, &st.Progress, &st.Unlocked, &unlockedAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		st.UnlockedAt = parseTimestamp(unlockedAt)
		states[achievements.ID(id)] = st
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return states, nil
}

// SaveAchievement stores the state of one achievement, replacing any previous one.
func (s *Store) SaveAchievement(id achievements.ID, st achievements.State) error {
	var unlockedAt any
	if st.Unlocked && !st.UnlockedAt.IsZero() {
		unlockedAt = formatTimestamp(st.UnlockedAt)
	}

	_, err := s.db.Exec(
		`INSERT INTO achievements (id, progress, unlocked, unlocked_at)
		 VALUES (?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
			progress = excluded.progress,
			unlocked = excluded.unlocked,
			unlocked_at = excluded.unlocked_at`,
		string(id), st.Progress, st.Unlocked, unlockedAt,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot save achievement %s: %w", id, err)
	}
	return nil
}

// Reset deletes all games, daily challenges and achievements.
func (s *Store) Reset() error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("storage: cannot begin reset: %w", err)
	}
	defer tx.Rollback()

	for _, table := range []string{"games", "daily_challenges", "achievements"} {
		if _, err := tx.Exec("DELETE FROM " + table); err != nil {
			return fmt.Errorf("storage: cannot clear %s: %w", table, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("storage: cannot commit reset: %w", err)
	}
	return nil
}

func formatTimestamp(t time.Time) string {
	return t.UTC().Format(timestampLayout)
}

// parseTimestamp handles both time.Time and string column values.
// NULL and unparsable values give the zero time.
func parseTimestamp(v any) time.Time {
	switch v := v.(type) {
	case time.Time:
		return v
	case string:
		for _, layout := range []string{timestampLayout, "2006-01-02 15:04:05", time.RFC3339Nano} {
			if parsed, err := time.Parse(layout, v); err == nil {
				return parsed
			}
		}
	case []byte:
		return parseTimestamp(string(v))
	}
	return time.Time{}
}

// Package progress records finished games: history, fastest times, the
// daily challenge and achievements.
package progress

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-mines/internal/achievements"
	"github.com/vovakirdan/tui-mines/internal/config"
	"github.com/vovakirdan/tui-mines/internal/core"
	"github.com/vovakirdan/tui-mines/internal/daily"
	"github.com/vovakirdan/tui-mines/internal/storage"
)

// Tracker turns game results into stored progress.
type Tracker struct {
	store  *storage.Store
	player string
	rules  achievements.Rules
	logger *log.Logger
	now    func() time.Time
}

// Option configures a Tracker.
type Option func(*Tracker)

// WithLogger sets the logger. The default discards output.
func WithLogger(l *log.Logger) Option {
	return func(t *Tracker) {
		if l != nil {
			t.logger = l
		}
	}
}

// WithRules sets the achievement thresholds.
func WithRules(r achievements.Rules) Option {
	return func(t *Tracker) { t.rules = r }
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(t *Tracker) { t.now = now }
}

// New creates a Tracker that records games for player into store.
func New(store *storage.Store, player string, opts ...Option) *Tracker {
	t := &Tracker{
		store:  store,
		player: player,
		rules:  achievements.DefaultRules(),
		logger: log.New(io.Discard),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Outcome reports what recording a game changed.
type Outcome struct {
	GameID         int64
	NewBest        bool // fastest classic win for this difficulty
	DailyCompleted bool // first completion of the day's challenge
	Unlocked       []achievements.Definition
}

// Record stores a finished game and updates everything derived from it.
// Only classic games rank for fastest times; custom boards never do.
func (t *Tracker) Record(r core.GameResult) (Outcome, error) {
	var out Outcome
	now := t.now()

	mode := storage.ModeClassic
	if r.DailyDate != "" {
		mode = storage.ModeDaily
	}
	ranked := mode == storage.ModeClassic && r.Won && r.Difficulty != string(config.DifficultyCustom)

	if ranked {
		best, ok, err := t.store.BestTime(r.Difficulty)
		if err != nil {
			return out, fmt.Errorf("progress: %w", err)
		}
		out.NewBest = !ok || r.Duration < best
	}

	id, err := t.store.SaveGame(storage.GameRecord{
		Mode:       mode,
		Difficulty: r.Difficulty,
		Rows:       r.Rows,
		Cols:       r.Cols,
		Mines:      r.Mines,
		Won:        r.Won,
		Duration:   r.Duration,
		FlagsUsed:  r.FlagsUsed,
		Perfect:    r.Perfect,
		Player:     t.player,
		DailyDate:  r.DailyDate,
		CreatedAt:  now,
	})
	if err != nil {
		return out, fmt.Errorf("progress: %w", err)
	}
	out.GameID = id

	t.logger.Info("game recorded",
		"mode", mode,
		"difficulty", r.Difficulty,
		"won", r.Won,
		"time", daily.FormatClock(r.Duration),
	)
	if out.NewBest {
		t.logger.Info("new best time", "difficulty", r.Difficulty, "time", daily.FormatClock(r.Duration))
	}

	if mode == storage.ModeDaily && r.Won {
		first, err := t.store.CompleteDaily(r.DailyDate, r.Duration, now)
		if err != nil {
			return out, fmt.Errorf("progress: %w", err)
		}
		out.DailyCompleted = first
		if first {
			t.logger.Info("daily challenge completed", "date", r.DailyDate, "time", daily.FormatClock(r.Duration))
		}
	}

	unlocked, err := t.evaluate(r, out.DailyCompleted, now)
	if err != nil {
		return out, err
	}
	out.Unlocked = unlocked

	return out, nil
}

// evaluate runs the achievement rules against the stored state and persists
// every entry that changed.
func (t *Tracker) evaluate(r core.GameResult, dailyCompleted bool, now time.Time) ([]achievements.Definition, error) {
	stats, err := t.store.Stats(storage.ModeClassic)
	if err != nil {
		return nil, fmt.Errorf("progress: %w", err)
	}
	total, err := t.store.CountGames()
	if err != nil {
		return nil, fmt.Errorf("progress: %w", err)
	}
	current, err := t.store.Achievements()
	if err != nil {
		return nil, fmt.Errorf("progress: %w", err)
	}

	next, ids := t.rules.Evaluate(current, achievements.Event{
		Won:            r.Won,
		Difficulty:     r.Difficulty,
		Duration:       r.Duration,
		Perfect:        r.Perfect,
		FlagsExact:     r.FlagsExact,
		WinStreak:      stats.CurrentStreak,
		TotalGames:     total,
		DailyCompleted: dailyCompleted,
	}, now)

	for _, id := range achievements.Changed(current, next) {
		if err := t.store.SaveAchievement(id, next[id]); err != nil {
			return nil, fmt.Errorf("progress: %w", err)
		}
	}

	var unlocked []achievements.Definition
	for _, id := range ids {
		def, _ := achievements.Lookup(id)
		unlocked = append(unlocked, def)
		t.logger.Info("achievement unlocked", "id", id, "name", def.Name)
	}
	return unlocked, nil
}

// Summary is a read-only view of the player's progress.
type Summary struct {
	Classic      *storage.Stats
	Daily        storage.DailyRecord
	DailyStreak  int
	DailyTotal   int // days with a completed challenge
	UntilReset   time.Duration
	Achievements map[achievements.ID]achievements.State
}

// Summary loads stats, today's challenge and achievement progress.
func (t *Tracker) Summary() (Summary, error) {
	now := t.now()
	today := daily.Key(now)

	stats, err := t.store.Stats(storage.ModeClassic)
	if err != nil {
		return Summary{}, fmt.Errorf("progress: %w", err)
	}
	rec, err := t.store.DailyChallenge(today)
	if err != nil {
		return Summary{}, fmt.Errorf("progress: %w", err)
	}
	dates, err := t.store.DailyDates()
	if err != nil {
		return Summary{}, fmt.Errorf("progress: %w", err)
	}
	total, err := t.store.DailyCompletions()
	if err != nil {
		return Summary{}, fmt.Errorf("progress: %w", err)
	}
	states, err := t.store.Achievements()
	if err != nil {
		return Summary{}, fmt.Errorf("progress: %w", err)
	}

	return Summary{
		Classic:      stats,
		Daily:        rec,
		DailyStreak:  daily.Streak(dates, today),
		DailyTotal:   total,
		UntilReset:   daily.UntilReset(now),
		Achievements: states,
	}, nil
}

// Recent returns the latest games of any mode, newest first.
func (t *Tracker) Recent(limit int) ([]storage.GameRecord, error) {
	games, err := t.store.RecentGames(limit)
	if err != nil {
		return nil, fmt.Errorf("progress: %w", err)
	}
	return games, nil
}

package progress

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-mines/internal/achievements"
	"github.com/vovakirdan/tui-mines/internal/core"
	"github.com/vovakirdan/tui-mines/internal/storage"
)

var fixedNow = time.Date(2026, 10, 16, 12, 0, 0, 0, time.UTC)

func newTracker(t *testing.T, opts ...Option) (*Tracker, *storage.Store) {
	t.Helper()
	store, err := storage.Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	opts = append([]Option{WithClock(func() time.Time { return fixedNow })}, opts...)
	return New(store, "ada", opts...), store
}

func beginnerResult(won bool, secs int) core.GameResult {
	return core.GameResult{
		Mode:       "beginner",
		Difficulty: "beginner",
		Rows:       9,
		Cols:       9,
		Mines:      10,
		Won:        won,
		Duration:   time.Duration(secs) * time.Second,
		FlagsUsed:  3,
	}
}

func unlockedIDs(out Outcome) []achievements.ID {
	var ids []achievements.ID
	for _, d := range out.Unlocked {
		ids = append(ids, d.ID)
	}
	return ids
}

func TestRecordFirstWin(t *testing.T) {
	var buf bytes.Buffer
	tr, store := newTracker(t, WithLogger(log.New(&buf)))

	out, err := tr.Record(beginnerResult(true, 42))
	if err != nil {
		t.Fatalf("Record() failed: %v", err)
	}

	if !out.NewBest {
		t.Error("first win should be a new best")
	}
	if out.GameID == 0 {
		t.Error("GameID should be set")
	}
	if ids := unlockedIDs(out); len(ids) != 2 || ids[0] != achievements.FirstWin || ids[1] != achievements.SpeedDemon {
		t.Errorf("unlocked = %v, expected [first_win speed_demon]", ids)
	}

	games, _ := store.TopTimes("beginner", 10)
	if len(games) != 1 || games[0].Player != "ada" {
		t.Errorf("TopTimes = %+v, expected one game by ada", games)
	}

	states, _ := store.Achievements()
	if !states[achievements.FirstWin].Unlocked {
		t.Error("first_win should be stored as unlocked")
	}
	if states[achievements.BeginnerChampion].Progress != 1 {
		t.Errorf("beginner progress = %d, expected 1", states[achievements.BeginnerChampion].Progress)
	}

	logs := buf.String()
	for _, want := range []string{"game recorded", "new best time", "achievement unlocked"} {
		if !strings.Contains(logs, want) {
			t.Errorf("log missing %q:\n%s", want, logs)
		}
	}
}

func TestRecordNewBest(t *testing.T) {
	tr, _ := newTracker(t)

	tests := []struct {
		name string
		res  core.GameResult
		want bool
	}{
		{"first win", beginnerResult(true, 100), true},
		{"slower", beginnerResult(true, 120), false},
		{"equal", beginnerResult(true, 100), false},
		{"faster", beginnerResult(true, 80), true},
		{"loss", beginnerResult(false, 1), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := tr.Record(tt.res)
			if err != nil {
				t.Fatalf("Record() failed: %v", err)
			}
			if out.NewBest != tt.want {
				t.Errorf("NewBest = %v, expected %v", out.NewBest, tt.want)
			}
		})
	}
}

func TestRecordCustomNeverRanks(t *testing.T) {
	tr, store := newTracker(t)

	res := beginnerResult(true, 10)
	res.Mode, res.Difficulty = "custom", "custom"
	out, err := tr.Record(res)
	if err != nil {
		t.Fatalf("Record() failed: %v", err)
	}
	if out.NewBest {
		t.Error("custom boards should never set a best time")
	}

	stats, _ := store.Stats(storage.ModeClassic)
	if stats.Total != 1 {
		t.Errorf("classic Total = %d, expected 1", stats.Total)
	}
}

func TestRecordDaily(t *testing.T) {
	tr, store := newTracker(t)

	res := core.GameResult{
		Mode:       "daily",
		Difficulty: "intermediate",
		Rows:       16,
		Cols:       16,
		Mines:      40,
		Won:        false,
		Duration:   30 * time.Second,
		DailyDate:  "2026-10-16",
	}

	// A loss is history only
	out, err := tr.Record(res)
	if err != nil {
		t.Fatalf("Record() failed: %v", err)
	}
	if out.DailyCompleted || out.NewBest {
		t.Errorf("daily loss outcome = %+v, expected nothing", out)
	}
	rec, _ := store.DailyChallenge("2026-10-16")
	if rec.Completed {
		t.Error("daily loss should not complete the challenge")
	}

	res.Won = true
	res.Duration = 200 * time.Second
	out, err = tr.Record(res)
	if err != nil {
		t.Fatalf("Record() failed: %v", err)
	}
	if !out.DailyCompleted {
		t.Error("daily win should complete the challenge")
	}
	if out.NewBest {
		t.Error("daily games do not rank")
	}

	// Replaying after completion changes nothing
	out, err = tr.Record(res)
	if err != nil {
		t.Fatalf("Record() failed: %v", err)
	}
	if out.DailyCompleted {
		t.Error("second daily win should not complete again")
	}

	classic, _ := store.Stats(storage.ModeClassic)
	if classic.Total != 0 {
		t.Errorf("classic Total = %d, expected 0", classic.Total)
	}
	states, _ := store.Achievements()
	if states[achievements.DailyWarrior].Progress != 1 {
		t.Errorf("daily_warrior progress = %d, expected 1", states[achievements.DailyWarrior].Progress)
	}
	if states[achievements.Centurion].Progress != 3 {
		t.Errorf("centurion progress = %d, expected 3", states[achievements.Centurion].Progress)
	}
}

func TestRecordMarathon(t *testing.T) {
	tr, _ := newTracker(t)

	var out Outcome
	var err error
	for i := 0; i < 5; i++ {
		out, err = tr.Record(beginnerResult(true, 300))
		if err != nil {
			t.Fatalf("Record() failed: %v", err)
		}
	}

	found := false
	for _, id := range unlockedIDs(out) {
		if id == achievements.Marathon {
			found = true
		}
	}
	if !found {
		t.Errorf("5th straight win unlocked %v, expected marathon", unlockedIDs(out))
	}
}

func TestRecordRules(t *testing.T) {
	tr, _ := newTracker(t, WithRules(achievements.Rules{SpeedDemon: 10 * time.Second}))

	out, err := tr.Record(beginnerResult(true, 42))
	if err != nil {
		t.Fatalf("Record() failed: %v", err)
	}
	for _, id := range unlockedIDs(out) {
		if id == achievements.SpeedDemon {
			t.Error("42s should not beat a 10s threshold")
		}
	}
}

func TestSummary(t *testing.T) {
	tr, store := newTracker(t)

	store.CompleteDaily("2026-10-14", time.Minute, fixedNow)
	store.CompleteDaily("2026-10-15", time.Minute, fixedNow)
	tr.Record(beginnerResult(true, 50))
	tr.Record(beginnerResult(false, 50))

	sum, err := tr.Summary()
	if err != nil {
		t.Fatalf("Summary() failed: %v", err)
	}
	if sum.Classic.Total != 2 || sum.Classic.WinRate() != 50 {
		t.Errorf("Classic = %+v, expected 2 games at 50%%", sum.Classic)
	}
	if sum.Daily.Completed {
		t.Error("today's challenge should not be completed")
	}
	if sum.DailyStreak != 2 {
		t.Errorf("DailyStreak = %d, expected 2", sum.DailyStreak)
	}
	if sum.DailyTotal != 2 {
		t.Errorf("DailyTotal = %d, expected 2", sum.DailyTotal)
	}
	if sum.UntilReset != 12*time.Hour {
		t.Errorf("UntilReset = %v, expected 12h", sum.UntilReset)
	}
	if !sum.Achievements[achievements.FirstWin].Unlocked {
		t.Error("first_win should be unlocked")
	}
}

func TestRecent(t *testing.T) {
	tr, _ := newTracker(t)

	tr.Record(beginnerResult(true, 50))
	tr.Record(beginnerResult(false, 20))

	games, err := tr.Recent(5)
	if err != nil {
		t.Fatalf("Recent() failed: %v", err)
	}
	if len(games) != 2 {
		t.Fatalf("len(games) = %d, expected 2", len(games))
	}
	if games[0].Won {
		t.Error("newest game should be the loss")
	}
}

package achievements

import (
	"slices"
	"testing"
	"time"
)

var now = time.Date(2026, 10, 16, 12, 0, 0, 0, time.UTC)

func TestCatalogue(t *testing.T) {
	defs := Catalogue()
	if len(defs) != 10 {
		t.Fatalf("len(Catalogue) = %d, expected 10", len(defs))
	}

	seen := make(map[ID]bool)
	for _, d := range defs {
		if seen[d.ID] {
			t.Errorf("duplicate achievement %q", d.ID)
		}
		seen[d.ID] = true
		if d.Name == "" || d.Description == "" {
			t.Errorf("achievement %q missing name or description", d.ID)
		}
	}

	d, ok := Lookup(Centurion)
	if !ok || d.MaxProgress != 100 {
		t.Errorf("Lookup(centurion) = %+v, %v; expected max progress 100", d, ok)
	}
	if _, ok := Lookup("nope"); ok {
		t.Error("Lookup(nope) should fail")
	}
}

func TestEvaluateOneShots(t *testing.T) {
	tests := []struct {
		name string
		ev   Event
		want []ID
	}{
		{
			name: "slow sloppy win",
			ev:   Event{Won: true, Difficulty: "custom", Duration: 5 * time.Minute, TotalGames: 1, WinStreak: 1},
			want: []ID{FirstWin},
		},
		{
			name: "fast win",
			ev:   Event{Won: true, Difficulty: "custom", Duration: 59 * time.Second, TotalGames: 1, WinStreak: 1},
			want: []ID{FirstWin, SpeedDemon},
		},
		{
			name: "exactly sixty seconds is not fast",
			ev:   Event{Won: true, Difficulty: "custom", Duration: 60 * time.Second, TotalGames: 1, WinStreak: 1},
			want: []ID{FirstWin},
		},
		{
			name: "perfect and exact flags",
			ev:   Event{Won: true, Difficulty: "custom", Duration: time.Hour, Perfect: true, FlagsExact: true, TotalGames: 1, WinStreak: 1},
			want: []ID{FirstWin, PerfectGame, BombSquad},
		},
		{
			name: "loss unlocks nothing",
			ev:   Event{Won: false, Difficulty: "beginner", Duration: time.Second, Perfect: true, FlagsExact: true, TotalGames: 1},
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			next, unlocked := Evaluate(nil, tt.ev, now)
			if !slices.Equal(unlocked, tt.want) {
				t.Errorf("unlocked = %v, expected %v", unlocked, tt.want)
			}
			for _, id := range tt.want {
				if !next[id].Unlocked || !next[id].UnlockedAt.Equal(now) {
					t.Errorf("%s state = %+v, expected unlocked at %v", id, next[id], now)
				}
			}
			if len(next) != len(Catalogue()) {
				t.Errorf("len(next) = %d, expected %d", len(next), len(Catalogue()))
			}
		})
	}
}

func TestEvaluateCounters(t *testing.T) {
	states := map[ID]State{}
	win := Event{Won: true, Difficulty: "beginner", Duration: 2 * time.Minute}

	var unlocked []ID
	for i := 1; i <= 10; i++ {
		win.TotalGames = i
		win.WinStreak = i
		states, unlocked = Evaluate(states, win, now)
		if got := states[BeginnerChampion].Progress; got != i {
			t.Fatalf("after %d wins beginner progress = %d, expected %d", i, got, i)
		}
		if i == 5 && !slices.Contains(unlocked, Marathon) {
			t.Errorf("5th straight win should unlock marathon, got %v", unlocked)
		}
	}
	if !slices.Contains(unlocked, BeginnerChampion) {
		t.Errorf("10th beginner win should unlock beginner_champion, got %v", unlocked)
	}
	if states[Marathon].Progress != 5 {
		t.Errorf("marathon progress = %d, expected capped at 5", states[Marathon].Progress)
	}
	if states[IntermediateExpert].Progress != 0 {
		t.Errorf("intermediate progress = %d, expected 0", states[IntermediateExpert].Progress)
	}
	if states[Centurion].Progress != 10 {
		t.Errorf("centurion progress = %d, expected 10", states[Centurion].Progress)
	}
}

func TestEvaluateMarathonResetsOnLoss(t *testing.T) {
	states := map[ID]State{Marathon: {Progress: 3}}
	next, _ := Evaluate(states, Event{Won: false, TotalGames: 4}, now)
	if next[Marathon].Progress != 0 {
		t.Errorf("marathon progress after loss = %d, expected 0", next[Marathon].Progress)
	}
}

func TestEvaluateCenturionCountsLosses(t *testing.T) {
	states := map[ID]State{Centurion: {Progress: 99}}
	next, unlocked := Evaluate(states, Event{Won: false, TotalGames: 100}, now)
	if !slices.Equal(unlocked, []ID{Centurion}) {
		t.Errorf("unlocked = %v, expected [centurion]", unlocked)
	}
	if next[Centurion].Progress != 100 {
		t.Errorf("centurion progress = %d, expected 100", next[Centurion].Progress)
	}
}

func TestEvaluateDailyWarrior(t *testing.T) {
	states := map[ID]State{DailyWarrior: {Progress: 6}}

	next, unlocked := Evaluate(states, Event{Won: true, Difficulty: "intermediate", Duration: time.Hour, TotalGames: 7, WinStreak: 1}, now)
	if next[DailyWarrior].Progress != 6 || slices.Contains(unlocked, DailyWarrior) {
		t.Errorf("non-daily win changed daily_warrior: %+v", next[DailyWarrior])
	}

	next, unlocked = Evaluate(states, Event{Won: true, DailyCompleted: true, Difficulty: "intermediate", Duration: time.Hour, TotalGames: 7, WinStreak: 1}, now)
	if !slices.Contains(unlocked, DailyWarrior) {
		t.Errorf("7th daily should unlock daily_warrior, got %v", unlocked)
	}
	if next[DailyWarrior].Progress != 7 {
		t.Errorf("daily_warrior progress = %d, expected 7", next[DailyWarrior].Progress)
	}
}

func TestEvaluateUnlockedUntouched(t *testing.T) {
	earlier := now.Add(-24 * time.Hour)
	states := map[ID]State{
		FirstWin:         {Unlocked: true, UnlockedAt: earlier},
		BeginnerChampion: {Progress: 10, Unlocked: true, UnlockedAt: earlier},
	}

	next, unlocked := Evaluate(states, Event{Won: true, Difficulty: "beginner", Duration: time.Hour, TotalGames: 20, WinStreak: 1}, now)
	if slices.Contains(unlocked, FirstWin) || slices.Contains(unlocked, BeginnerChampion) {
		t.Errorf("already unlocked entries reported again: %v", unlocked)
	}
	if next[FirstWin] != states[FirstWin] {
		t.Errorf("first_win = %+v, expected unchanged %+v", next[FirstWin], states[FirstWin])
	}
	if next[BeginnerChampion].Progress != 10 {
		t.Errorf("beginner progress = %d, expected 10", next[BeginnerChampion].Progress)
	}
	if states[Centurion].Progress != 0 {
		t.Error("Evaluate modified its input")
	}
}

func TestRulesSpeedThreshold(t *testing.T) {
	r := Rules{SpeedDemon: 30 * time.Second}
	_, unlocked := r.Evaluate(nil, Event{Won: true, Duration: 45 * time.Second, TotalGames: 1, WinStreak: 1}, now)
	if slices.Contains(unlocked, SpeedDemon) {
		t.Error("45s win should not beat a 30s threshold")
	}
}

func TestChangedAndUnlocked(t *testing.T) {
	prev := map[ID]State{Centurion: {Progress: 4}}
	next, _ := Evaluate(prev, Event{Won: true, Duration: time.Hour, TotalGames: 5, WinStreak: 1}, now)

	changed := Changed(prev, next)
	for _, id := range []ID{FirstWin, Marathon, Centurion} {
		if !slices.Contains(changed, id) {
			t.Errorf("Changed missing %s: %v", id, changed)
		}
	}
	if slices.Contains(changed, EliteMiner) {
		t.Errorf("Changed reports untouched elite_miner: %v", changed)
	}
	if got := Unlocked(next); got != 1 {
		t.Errorf("Unlocked = %d, expected 1", got)
	}
}

// Package achievements defines the achievement catalogue and evaluates
// finished games into progress and unlocks.
//
// Evaluation is pure: callers load the stored states, pass in the facts
// about the game that just ended, and persist whatever changed.
package achievements

import (
	"time"
)

// ID identifies an achievement.
type ID string

const (
	FirstWin           ID = "first_win"
	SpeedDemon         ID = "speed_demon"
	PerfectGame        ID = "perfect_game"
	Marathon           ID = "marathon"
	BombSquad          ID = "bomb_squad"
	BeginnerChampion   ID = "beginner_champion"
	IntermediateExpert ID = "intermediate_expert"
	EliteMiner         ID = "elite_miner"
	DailyWarrior       ID = "daily_warrior"
	Centurion          ID = "centurion"
)

// Rarity ranks how hard an achievement is to get.
type Rarity string

const (
	Common    Rarity = "common"
	Rare      Rarity = "rare"
	Epic      Rarity = "epic"
	Legendary Rarity = "legendary"
)

// Definition describes one achievement.
// MaxProgress is zero for one-shot achievements.
type Definition struct {
	ID          ID
	Name        string
	Description string
	Rarity      Rarity
	MaxProgress int
}

var catalogue = []Definition{
	{FirstWin, "First Victory", "Win your first game", Common, 0},
	{SpeedDemon, "Speed Demon", "Win a game in under 60 seconds", Rare, 0},
	{PerfectGame, "Perfect Game", "Win using exactly as many flags as there are mines", Epic, 0},
	{Marathon, "Marathon", "Win 5 games in a row", Rare, 5},
	{BombSquad, "Bomb Squad", "Flag every mine and nothing else in one game", Epic, 0},
	{BeginnerChampion, "Beginner Champion", "Win 10 games on beginner difficulty", Common, 10},
	{IntermediateExpert, "Intermediate Expert", "Win 10 games on intermediate difficulty", Rare, 10},
	{EliteMiner, "Elite Miner", "Win 5 games on expert difficulty", Epic, 5},
	{DailyWarrior, "Daily Warrior", "Complete 7 daily challenges", Legendary, 7},
	{Centurion, "Centurion", "Play 100 total games", Legendary, 100},
}

// Catalogue returns every achievement in display order.
func Catalogue() []Definition {
	out := make([]Definition, len(catalogue))
	copy(out, catalogue)
	return out
}

// Lookup returns the definition for id.
func Lookup(id ID) (Definition, bool) {
	for _, d := range catalogue {
		if d.ID == id {
			return d, true
		}
	}
	return Definition{}, false
}

// State is the stored progress of one achievement.
type State struct {
	Progress   int
	Unlocked   bool
	UnlockedAt time.Time
}

// Event carries the facts about a finished game.
type Event struct {
	Won            bool
	Difficulty     string
	Duration       time.Duration
	Perfect        bool // flags used equals total mines
	FlagsExact     bool // every mine flagged and no safe cell flagged
	WinStreak      int  // current classic win streak after this game
	TotalGames     int  // games played including this one
	DailyCompleted bool // this game completed today's daily challenge
}

// Rules holds the tunable thresholds.
type Rules struct {
	SpeedDemon time.Duration
}

// DefaultRules returns the standard thresholds.
func DefaultRules() Rules {
	return Rules{SpeedDemon: 60 * time.Second}
}

// Evaluate applies ev with the default rules.
func Evaluate(current map[ID]State, ev Event, now time.Time) (map[ID]State, []ID) {
	return DefaultRules().Evaluate(current, ev, now)
}

// Evaluate returns the next state of every catalogue entry and the IDs
// unlocked by ev, in catalogue order. Unlocked entries are never changed.
// current is not modified.
func (r Rules) Evaluate(current map[ID]State, ev Event, now time.Time) (map[ID]State, []ID) {
	next := make(map[ID]State, len(catalogue))
	var unlocked []ID

	for _, def := range catalogue {
		st := current[def.ID]
		if st.Unlocked {
			next[def.ID] = st
			continue
		}

		progress, done := r.check(def, st.Progress, ev)
		if def.MaxProgress > 0 {
			st.Progress = min(progress, def.MaxProgress)
		}
		if done {
			st.Unlocked = true
			st.UnlockedAt = now
			unlocked = append(unlocked, def.ID)
		}
		next[def.ID] = st
	}

	return next, unlocked
}

// check returns the new progress for def and whether it is now earned.
func (r Rules) check(def Definition, progress int, ev Event) (int, bool) {
	switch def.ID {
	case FirstWin:
		return progress, ev.Won
	case SpeedDemon:
		return progress, ev.Won && ev.Duration < r.SpeedDemon
	case PerfectGame:
		return progress, ev.Won && ev.Perfect
	case BombSquad:
		return progress, ev.Won && ev.FlagsExact
	case Marathon:
		return ev.WinStreak, ev.WinStreak >= def.MaxProgress
	case BeginnerChampion:
		return countWin(def, progress, ev, "beginner")
	case IntermediateExpert:
		return countWin(def, progress, ev, "intermediate")
	case EliteMiner:
		return countWin(def, progress, ev, "expert")
	case DailyWarrior:
		if ev.DailyCompleted {
			progress++
		}
		return progress, progress >= def.MaxProgress
	case Centurion:
		return ev.TotalGames, ev.TotalGames >= def.MaxProgress
	}
	return progress, false
}

func countWin(def Definition, progress int, ev Event, difficulty string) (int, bool) {
	if ev.Won && ev.Difficulty == difficulty {
		progress++
	}
	return progress, progress >= def.MaxProgress
}

// Changed lists the IDs whose state differs between prev and next.
func Changed(prev, next map[ID]State) []ID {
	var ids []ID
	for _, def := range catalogue {
		a, b := prev[def.ID], next[def.ID]
		if a.Progress != b.Progress || a.Unlocked != b.Unlocked || !a.UnlockedAt.Equal(b.UnlockedAt) {
			ids = append(ids, def.ID)
		}
	}
	return ids
}

// Unlocked counts unlocked entries in states.
func Unlocked(states map[ID]State) int {
	n := 0
	for _, def := range catalogue {
		if states[def.ID].Unlocked {
			n++
		}
	}
	return n
}

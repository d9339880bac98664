// Package daily derives the daily challenge board and tracks completion streaks.
// Every player gets the same seed for a given UTC date.
package daily

import (
	"fmt"
	"time"
)

// KeyLayout is the date layout used for challenge keys.
const KeyLayout = "2006-01-02"

// Key returns the challenge key (YYYY-MM-DD) for t in UTC.
func Key(t time.Time) string {
	return t.UTC().Format(KeyLayout)
}

// Seed hashes a challenge key into a non-negative seed.
// The hash is the 31-multiplier string hash truncated to 32 bits.
func Seed(key string) int64 {
	var h int32
	for _, r := range key {
		h = h*31 + int32(r)
	}
	s := int64(h)
	if s < 0 {
		s = -s
	}
	return s
}

// UntilReset returns the time left until the next UTC midnight.
func UntilReset(now time.Time) time.Duration {
	now = now.UTC()
	next := time.Date(now.Year(), now.Month(), now.Day()+1, 0, 0, 0, 0, time.UTC)
	return next.Sub(now)
}

// Streak counts consecutive completed days ending today or yesterday.
// Keys that do not parse are ignored.
func Streak(completed []string, today string) int {
	done := make(map[string]bool, len(completed))
	for _, k := range completed {
		done[k] = true
	}

	day, err := time.Parse(KeyLayout, today)
	if err != nil {
		return 0
	}
	if !done[today] {
		// Today's challenge may still be ahead; the streak survives until midnight.
		day = day.AddDate(0, 0, -1)
	}

	streak := 0
	for done[day.Format(KeyLayout)] {
		streak++
		day = day.AddDate(0, 0, -1)
	}
	return streak
}

// FormatClock formats a duration as mm:ss, truncated to whole seconds.
// Minutes keep growing past 59.
func FormatClock(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	secs := int(d / time.Second)
	return fmt.Sprintf("%02d:%02d", secs/60, secs%60)
}

// FormatCountdown formats a duration as hh:mm:ss.
func FormatCountdown(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	secs := int(d / time.Second)
	return fmt.Sprintf("%02d:%02d:%02d", secs/3600, secs/60%60, secs%60)
}

package daily

import (
	"testing"
	"time"
)

func TestKey(t *testing.T) {
	tests := []struct {
		name string
		t    time.Time
		want string
	}{
		{"utc", time.Date(2026, 10, 16, 12, 0, 0, 0, time.UTC), "2026-10-16"},
		{"ahead of utc", time.Date(2026, 10, 17, 1, 0, 0, 0, time.FixedZone("UTC+3", 3*3600)), "2026-10-16"},
		{"behind utc", time.Date(2026, 10, 16, 22, 0, 0, 0, time.FixedZone("UTC-5", -5*3600)), "2026-10-17"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Key(tt.t); got != tt.want {
				t.Errorf("Key = %q, expected %q", got, tt.want)
			}
		})
	}
}

func TestSeed(t *testing.T) {
	tests := []struct {
		key  string
		want int64
	}{
		{"", 0},
		{"2024-01-15", 613341597},
		{"2025-12-31", 275115454},
		{"2026-10-16", 1162559496},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			if got := Seed(tt.key); got != tt.want {
				t.Errorf("Seed(%q) = %d, expected %d", tt.key, got, tt.want)
			}
		})
	}

	if Seed("2026-10-16") == Seed("2026-10-17") {
		t.Error("adjacent days should not share a seed")
	}
}

func TestUntilReset(t *testing.T) {
	now := time.Date(2026, 10, 16, 22, 30, 15, 0, time.UTC)
	want := time.Hour + 29*time.Minute + 45*time.Second
	if got := UntilReset(now); got != want {
		t.Errorf("UntilReset = %v, expected %v", got, want)
	}

	midnight := time.Date(2026, 10, 16, 0, 0, 0, 0, time.UTC)
	if got := UntilReset(midnight); got != 24*time.Hour {
		t.Errorf("UntilReset(midnight) = %v, expected 24h", got)
	}

	// Month rollover
	last := time.Date(2026, 12, 31, 23, 59, 59, 0, time.UTC)
	if got := UntilReset(last); got != time.Second {
		t.Errorf("UntilReset(new year's eve) = %v, expected 1s", got)
	}
}

func TestStreak(t *testing.T) {
	tests := []struct {
		name  string
		dates []string
		today string
		want  int
	}{
		{"none", nil, "2026-10-16", 0},
		{"today only", []string{"2026-10-16"}, "2026-10-16", 1},
		{"ends yesterday", []string{"2026-10-14", "2026-10-15"}, "2026-10-16", 2},
		{"ends today", []string{"2026-10-14", "2026-10-15", "2026-10-16"}, "2026-10-16", 3},
		{"gap breaks streak", []string{"2026-10-12", "2026-10-13", "2026-10-15", "2026-10-16"}, "2026-10-16", 2},
		{"stale", []string{"2026-10-10", "2026-10-11"}, "2026-10-16", 0},
		{"month boundary", []string{"2026-09-30", "2026-10-01"}, "2026-10-01", 2},
		{"unordered with duplicates", []string{"2026-10-16", "2026-10-14", "2026-10-15", "2026-10-15"}, "2026-10-16", 3},
		{"bad today", []string{"2026-10-16"}, "yesterday", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Streak(tt.dates, tt.today); got != tt.want {
				t.Errorf("Streak = %d, expected %d", got, tt.want)
			}
		})
	}
}

func TestFormatClock(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{0, "00:00"},
		{-time.Second, "00:00"},
		{1500 * time.Millisecond, "00:01"},
		{59 * time.Second, "00:59"},
		{61 * time.Second, "01:01"},
		{100 * time.Minute, "100:00"},
	}

	for _, tt := range tests {
		if got := FormatClock(tt.d); got != tt.want {
			t.Errorf("FormatClock(%v) = %q, expected %q", tt.d, got, tt.want)
		}
	}
}

func TestFormatCountdown(t *testing.T) {
	d := 5*time.Hour + 4*time.Minute + 3*time.Second
	if got := FormatCountdown(d); got != "05:04:03" {
		t.Errorf("FormatCountdown = %q, expected %q", got, "05:04:03")
	}
}

package timefmt

import (
	"testing"
	"time"
)

func TestRelative(t *testing.T) {
	loc := time.FixedZone("Test", -8*3600)
	ref := time.Date(2026, time.August, 20, 15, 0, 0, 0, loc)

	cases := []struct {
		name string
		ts   time.Time
		want string
	}{
		{"justNow", ref.Add(-2 * time.Second), "just now"},
		{"seconds", ref.Add(-30 * time.Second), "30s ago"},
		{"minutes", ref.Add(-2 * time.Minute), "2 min ago"},
		{"hours", ref.Add(-3 * time.Hour), "3 hr ago"},
		{"yesterday", ref.Add(-30 * time.Hour), "yesterday"},
		{"days", ref.Add(-4 * 24 * time.Hour), "4 days ago"},
		{"sameYear", ref.AddDate(0, -2, 0), "Jun 20"},
		{"differentYear", time.Date(2024, time.January, 2, 15, 0, 0, 0, loc), "Jan 2 2024"},
		{"future", ref.Add(10 * time.Second), "just now"},
		{"unknown", time.Time{}, "unknown"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Relative(tc.ts, ref); got != tc.want {
				t.Fatalf("Relative(%s) = %q, want %q", tc.name, got, tc.want)
			}
		})
	}
}

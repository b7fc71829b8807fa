package calendar

import (
	"testing"
	"time"
)

func mustLoad(t *testing.T, name string) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation(name)
	if err != nil {
		t.Fatalf("LoadLocation(%q): %v", name, err)
	}
	return loc
}

func TestNormalizeToDay(t *testing.T) {
	loc := mustLoad(t, DefaultTimezone)
	p := NewPolicy(loc)

	cases := []struct {
		name string
		in   time.Time
		want time.Time
	}{
		{
			name: "local afternoon",
			in:   time.Date(2025, time.March, 10, 14, 30, 12, 0, loc),
			want: time.Date(2025, time.March, 10, 0, 0, 0, 0, loc),
		},
		{
			name: "already midnight",
			in:   time.Date(2025, time.March, 10, 0, 0, 0, 0, loc),
			want: time.Date(2025, time.March, 10, 0, 0, 0, 0, loc),
		},
		{
			// 23:00 UTC is already the next civil day in GMT+7.
			name: "utc evening crosses day boundary",
			in:   time.Date(2025, time.March, 10, 23, 0, 0, 0, time.UTC),
			want: time.Date(2025, time.March, 11, 0, 0, 0, 0, loc),
		},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := p.NormalizeToDay(c.in)
			if !got.Equal(c.want) {
				t.Errorf("NormalizeToDay(%v) = %v, want %v", c.in, got, c.want)
			}
		})
	}
}

func TestNormalizeToDayCollapsesSameCivilDay(t *testing.T) {
	loc := mustLoad(t, DefaultTimezone)
	p := NewPolicy(loc)

	morning := time.Date(2025, time.June, 2, 8, 0, 0, 0, loc)
	evening := time.Date(2025, time.June, 2, 21, 45, 0, 0, loc)
	if !p.NormalizeToDay(morning).Equal(p.NormalizeToDay(evening)) {
		t.Error("timestamps on the same civil day should normalize to one key")
	}
}

func TestIsBusinessDay(t *testing.T) {
	loc := mustLoad(t, DefaultTimezone)
	p := NewPolicy(loc)

	cases := []struct {
		date time.Time
		want bool
	}{
		{time.Date(2025, time.January, 6, 0, 0, 0, 0, loc), true},   // Monday
		{time.Date(2025, time.January, 10, 0, 0, 0, 0, loc), true},  // Friday
		{time.Date(2025, time.January, 11, 0, 0, 0, 0, loc), false}, // Saturday
		{time.Date(2025, time.January, 12, 0, 0, 0, 0, loc), false}, // Sunday
		{time.Date(2025, time.January, 1, 0, 0, 0, 0, loc), true},   // New Year, still a business day
	}
	for _, c := range cases {
		if got := p.IsBusinessDay(c.date); got != c.want {
			t.Errorf("IsBusinessDay(%v) = %v, want %v", c.date, got, c.want)
		}
	}
}

func TestAt(t *testing.T) {
	loc := mustLoad(t, DefaultTimezone)
	p := NewPolicy(loc)

	day := time.Date(2025, time.May, 20, 0, 0, 0, 0, loc)
	got := p.At(day, 18, 0)
	want := time.Date(2025, time.May, 20, 18, 0, 0, 0, loc)
	if !got.Equal(want) {
		t.Errorf("At(%v, 18, 0) = %v, want %v", day, got, want)
	}
}

func TestInclusiveDays(t *testing.T) {
	loc := mustLoad(t, DefaultTimezone)
	day := func(y int, m time.Month, d int) time.Time {
		return time.Date(y, m, d, 0, 0, 0, 0, loc)
	}

	cases := []struct {
		name  string
		start time.Time
		end   time.Time
		want  int
	}{
		{"single day", day(2025, time.March, 10), day(2025, time.March, 10), 1},
		{"three days", day(2025, time.January, 10), day(2025, time.January, 12), 3},
		{"across month", day(2025, time.January, 30), day(2025, time.February, 2), 4},
		{"end before start", day(2025, time.March, 5), day(2025, time.March, 1), 0},
		{"zero start", time.Time{}, day(2025, time.March, 1), 0},
		{"zero end", day(2025, time.March, 1), time.Time{}, 0},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := InclusiveDays(c.start, c.end); got != c.want {
				t.Errorf("InclusiveDays(%v, %v) = %d, want %d", c.start, c.end, got, c.want)
			}
		})
	}
}

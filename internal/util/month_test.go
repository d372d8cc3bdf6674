package util

import (
	"testing"
	"time"
)

func TestMonthsInclusive(t *testing.T) {
	d := func(y int, m time.Month, day int) time.Time {
		return time.Date(y, m, day, 0, 0, 0, 0, time.UTC)
	}

	tests := []struct {
		name  string
		start time.Time
		end   time.Time
		want  int
	}{
		{"same day", d(2024, 3, 10), d(2024, 3, 10), 1},
		{"same month", d(2024, 3, 1), d(2024, 3, 31), 1},
		{"five months", d(2024, 1, 1), d(2024, 5, 31), 5},
		{"partial edge months", d(2024, 1, 15), d(2024, 3, 1), 3},
		{"across year", d(2023, 11, 1), d(2024, 2, 1), 4},
		{"end before start", d(2024, 5, 1), d(2024, 1, 1), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := MonthsInclusive(tt.start, tt.end); got != tt.want {
				t.Errorf("MonthsInclusive() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestSameMonth(t *testing.T) {
	a := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)
	b := time.Date(2024, 2, 29, 23, 0, 0, 0, time.UTC)
	c := time.Date(2023, 2, 1, 0, 0, 0, 0, time.UTC)

	if !SameMonth(a, b) {
		t.Error("expected Feb 1 and Feb 29 2024 to share a month")
	}
	if SameMonth(a, c) {
		t.Error("expected different years not to share a month")
	}
}

func TestDateOnly(t *testing.T) {
	in := time.Date(2024, 6, 15, 13, 45, 10, 0, time.UTC)
	want := time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC)
	if got := DateOnly(in); !got.Equal(want) {
		t.Errorf("DateOnly() = %v, want %v", got, want)
	}
}

func TestMonthBounds(t *testing.T) {
	tests := []struct {
		name      string
		year      int
		month     time.Month
		wantStart time.Time
		wantEnd   time.Time
	}{
		{"january", 2026, time.January, time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), time.Date(2026, 1, 31, 0, 0, 0, 0, time.UTC)},
		{"leap february", 2024, time.February, time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC), time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC)},
		{"february", 2026, time.February, time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC), time.Date(2026, 2, 28, 0, 0, 0, 0, time.UTC)},
		{"december", 2026, time.December, time.Date(2026, 12, 1, 0, 0, 0, 0, time.UTC), time.Date(2026, 12, 31, 0, 0, 0, 0, time.UTC)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := MonthStart(tt.year, tt.month); !got.Equal(tt.wantStart) {
				t.Errorf("MonthStart() = %v, want %v", got, tt.wantStart)
			}
			if got := MonthEnd(tt.year, tt.month); !got.Equal(tt.wantEnd) {
				t.Errorf("MonthEnd() = %v, want %v", got, tt.wantEnd)
			}
		})
	}
}

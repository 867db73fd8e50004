package util

import (
	"testing"
	"time"
)

func TestClampedDate(t *testing.T) {
	tests := []struct {
		name    string
		year    int
		month   time.Month
		day     int
		wantDay int
	}{
		{"day exists", 2024, time.March, 15, 15},
		{"day 31 in April", 2024, time.April, 31, 30},
		{"day 31 in leap February", 2024, time.February, 31, 29},
		{"day 31 in plain February", 2025, time.February, 31, 28},
		{"day 30 in February", 2025, time.February, 30, 28},
		{"last day exactly", 2024, time.January, 31, 31},
	}

	for _, tt := range tests {
		got := ClampedDate(tt.year, tt.month, tt.day, time.UTC)
		if got.Day() != tt.wantDay || got.Month() != tt.month || got.Year() != tt.year {
			t.Errorf("%s: ClampedDate(%d, %v, %d) = %v, want day %d",
				tt.name, tt.year, tt.month, tt.day, got, tt.wantDay)
		}
	}
}

func TestNextMonthlyDate(t *testing.T) {
	tests := []struct {
		name string
		from time.Time
		day  int
		want time.Time
	}{
		{
			name: "plain advance",
			from: time.Date(2024, time.March, 10, 0, 0, 0, 0, time.UTC),
			day:  10,
			want: time.Date(2024, time.April, 10, 0, 0, 0, 0, time.UTC),
		},
		{
			name: "clamped to short month",
			from: time.Date(2024, time.January, 31, 0, 0, 0, 0, time.UTC),
			day:  31,
			want: time.Date(2024, time.February, 29, 0, 0, 0, 0, time.UTC),
		},
		{
			name: "recovers after short month",
			from: time.Date(2024, time.February, 29, 0, 0, 0, 0, time.UTC),
			day:  31,
			want: time.Date(2024, time.March, 31, 0, 0, 0, 0, time.UTC),
		},
		{
			name: "year boundary",
			from: time.Date(2024, time.December, 5, 0, 0, 0, 0, time.UTC),
			day:  5,
			want: time.Date(2025, time.January, 5, 0, 0, 0, 0, time.UTC),
		},
	}

	for _, tt := range tests {
		got := NextMonthlyDate(tt.from, tt.day)
		if !got.Equal(tt.want) {
			t.Errorf("%s: NextMonthlyDate(%v, %d) = %v, want %v", tt.name, tt.from, tt.day, got, tt.want)
		}
	}
}

func TestSameDay(t *testing.T) {
	a := time.Date(2024, time.June, 1, 8, 30, 0, 0, time.UTC)
	b := time.Date(2024, time.June, 1, 23, 59, 0, 0, time.UTC)
	c := time.Date(2024, time.June, 2, 0, 0, 0, 0, time.UTC)

	if !SameDay(a, b) {
		t.Error("expected same day for different times on one date")
	}
	if SameDay(b, c) {
		t.Error("expected different days across midnight")
	}
}

package util

import "time"

// LastDayOfMonth returns the number of days in the given month.
func LastDayOfMonth(year int, month time.Month) int {
	// Day 0 of the next month is the last day of this one.
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// ClampedDate returns the date for targetDay in the given month, falling
// back to the month's last day when it is shorter (day 31 in February
// yields Feb 28/29).
func ClampedDate(year int, month time.Month, targetDay int, loc *time.Location) time.Time {
	last := LastDayOfMonth(year, month)
	day := targetDay
	if day > last {
		day = last
	}
	return time.Date(year, month, day, 0, 0, 0, 0, loc)
}

// NextMonthlyDate advances from a date to the following month's occurrence
// of dayOfMonth, clamped to that month's length. The input date's own day
// is ignored; only its year/month position the series.
func NextMonthlyDate(from time.Time, dayOfMonth int) time.Time {
	year, month := from.Year(), from.Month()
	month++
	if month > time.December {
		month = time.January
		year++
	}
	return ClampedDate(year, month, dayOfMonth, from.Location())
}

// SameDay reports whether two times fall on the same calendar date.
func SameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

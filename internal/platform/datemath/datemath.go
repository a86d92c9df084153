// Package datemath holds the calendar-day arithmetic shared by the plan and
// check-in modules. Every function reads the calendar components of the value
// in its own location, so callers decide which zone a "day" belongs to.
package datemath

import (
	"fmt"
	"time"
)

const (
	KeyLayout = "2006-01-02"
	secPerDay = 24 * 60 * 60
)

// FormatDateKey renders the canonical YYYY-MM-DD key of t's calendar day.
func FormatDateKey(t time.Time) string {
	y, m, d := t.Date()
	return fmt.Sprintf("%04d-%02d-%02d", y, int(m), d)
}

// ParseDateKey returns midnight of the keyed day in loc.
func ParseDateKey(key string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.Local
	}
	t, err := time.ParseInLocation(KeyLayout, key, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse date key %q: %w", key, err)
	}
	return t, nil
}

// DaysBetween counts calendar days from -> to. Both values are reduced to
// midnight UTC of their own calendar date before subtracting, so the result
// ignores time of day and zone offsets.
func DaysBetween(from, to time.Time) int {
	a := utcMidnight(from).Unix()
	b := utcMidnight(to).Unix()
	diff := b - a
	days := diff / secPerDay
	if diff%secPerDay != 0 && diff < 0 {
		days--
	}
	return int(days)
}

// IsSameCalendarDay compares year, month and day only.
func IsSameCalendarDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// DateValue encodes t's calendar day as the integer YYYYMMDD.
func DateValue(t time.Time) int {
	y, m, d := t.Date()
	return y*10000 + int(m)*100 + d
}

// Date builds midnight of the given day in loc (time.Local when nil).
func Date(year int, month time.Month, day int, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.Local
	}
	return time.Date(year, month, day, 0, 0, 0, 0, loc)
}

// StartOfDay truncates t to midnight of its calendar day in t's location.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// AddDays steps n calendar days. Unlike t.Add(n*24h) it stays on midnight
// across DST transitions.
func AddDays(t time.Time, n int) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d+n, 0, 0, 0, 0, t.Location())
}

func utcMidnight(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

package datemath_test

import (
	"testing"
	"time"

	"examprep/internal/platform/datemath"
)

func TestFormatDateKeyUsesLocalCalendarDay(t *testing.T) {
	t.Parallel()
	shanghai := time.FixedZone("UTC+8", 8*60*60)
	morning := time.Date(2026, 4, 9, 0, 30, 0, 0, shanghai)
	night := time.Date(2026, 4, 9, 23, 59, 59, 0, shanghai)
	if datemath.FormatDateKey(morning) != "2026-04-09" || datemath.FormatDateKey(night) != "2026-04-09" {
		t.Fatalf("expected both instants on 2026-04-09, got %s and %s", datemath.FormatDateKey(morning), datemath.FormatDateKey(night))
	}
	// the same instant viewed in UTC is still the previous day
	if got := datemath.FormatDateKey(morning.UTC()); got != "2026-04-08" {
		t.Fatalf("expected UTC view on 2026-04-08, got %s", got)
	}
	if got := datemath.FormatDateKey(time.Date(987, 1, 2, 0, 0, 0, 0, time.UTC)); got != "0987-01-02" {
		t.Fatalf("expected zero padded key, got %s", got)
	}
}

func TestParseDateKeyRoundTrip(t *testing.T) {
	t.Parallel()
	day, err := datemath.ParseDateKey("2026-02-01", time.UTC)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if datemath.FormatDateKey(day) != "2026-02-01" || day.Hour() != 0 {
		t.Fatalf("unexpected parse result %v", day)
	}
	if _, err := datemath.ParseDateKey("2026-2-1", time.UTC); err == nil {
		t.Fatalf("non canonical key must fail")
	}
	if _, err := datemath.ParseDateKey("", nil); err == nil {
		t.Fatalf("empty key must fail")
	}
}

func TestDaysBetween(t *testing.T) {
	t.Parallel()
	exam := time.Date(2026, 4, 11, 0, 0, 0, 0, time.Local)
	if got := datemath.DaysBetween(exam, exam); got != 0 {
		t.Fatalf("same day should be 0, got %d", got)
	}
	dayBefore := time.Date(2026, 4, 10, 23, 59, 0, 0, time.Local)
	if got := datemath.DaysBetween(dayBefore, exam); got != 1 {
		t.Fatalf("day before exam should be 1, got %d", got)
	}
	start := time.Date(2026, 1, 12, 18, 0, 0, 0, time.Local)
	if got := datemath.DaysBetween(start, exam); got != 89 {
		t.Fatalf("expected 89 days from start to exam, got %d", got)
	}
	cases := [][2]time.Time{
		{start, exam},
		{exam, time.Date(2027, 3, 1, 7, 0, 0, 0, time.Local)},
		{time.Date(2024, 2, 28, 0, 0, 0, 0, time.UTC), time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)},
	}
	for _, c := range cases {
		if datemath.DaysBetween(c[0], c[1]) != -datemath.DaysBetween(c[1], c[0]) {
			t.Fatalf("days between must be antisymmetric for %v %v", c[0], c[1])
		}
	}
}

func TestDaysBetweenIgnoresZoneOffsets(t *testing.T) {
	t.Parallel()
	east := time.FixedZone("UTC+14", 14*60*60)
	west := time.FixedZone("UTC-12", -12*60*60)
	a := time.Date(2026, 4, 10, 23, 0, 0, 0, east)
	b := time.Date(2026, 4, 11, 1, 0, 0, 0, west)
	if got := datemath.DaysBetween(a, b); got != 1 {
		t.Fatalf("expected calendar difference of 1, got %d", got)
	}
}

func TestIsSameCalendarDay(t *testing.T) {
	t.Parallel()
	a := time.Date(2026, 3, 15, 1, 0, 0, 0, time.UTC)
	b := time.Date(2026, 3, 15, 22, 0, 0, 0, time.UTC)
	c := time.Date(2026, 3, 16, 0, 0, 0, 0, time.UTC)
	if !datemath.IsSameCalendarDay(a, b) {
		t.Fatalf("expected same day")
	}
	if datemath.IsSameCalendarDay(b, c) {
		t.Fatalf("expected different days")
	}
}

func TestAddDaysAndDateValue(t *testing.T) {
	t.Parallel()
	day := datemath.Date(2026, 3, 1, time.UTC)
	prev := datemath.AddDays(day, -1)
	if datemath.FormatDateKey(prev) != "2026-02-28" {
		t.Fatalf("expected 2026-02-28, got %s", datemath.FormatDateKey(prev))
	}
	if datemath.DateValue(prev) != 20260228 {
		t.Fatalf("unexpected date value %d", datemath.DateValue(prev))
	}
	noon := time.Date(2026, 3, 1, 12, 34, 0, 0, time.UTC)
	if !datemath.StartOfDay(noon).Equal(day) {
		t.Fatalf("start of day mismatch")
	}
}

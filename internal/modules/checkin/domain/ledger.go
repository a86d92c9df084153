package domain

import (
	"sort"
	"time"

	"examprep/internal/platform/datemath"
)

// MaxStreakWalk bounds CurrentStreak so it terminates on any data.
const MaxStreakWalk = 3660

// SnapshotKey names the single persisted value holding the whole ledger.
const SnapshotKey = "examprep_checkins_v3"

type Record struct {
	Date  string  `json:"date"`
	Hours float64 `json:"hours"`
	Quote string  `json:"quote"`
}

// Ledger maps date keys to check-in records. Records are written once and
// never replaced.
type Ledger struct {
	records map[string]Record
}

// NewLedger copies records; the map key is authoritative for Record.Date.
func NewLedger(records map[string]Record) *Ledger {
	l := &Ledger{records: make(map[string]Record, len(records))}
	for key, rec := range records {
		rec.Date = key
		l.records[key] = rec
	}
	return l
}

func (l *Ledger) IsCheckedIn(dateKey string) bool {
	_, ok := l.records[dateKey]
	return ok
}

func (l *Ledger) Get(dateKey string) (Record, bool) {
	rec, ok := l.records[dateKey]
	return rec, ok
}

// Insert stores rec unless its date already has a record. It reports whether
// the ledger changed.
func (l *Ledger) Insert(rec Record) bool {
	if _, ok := l.records[rec.Date]; ok {
		return false
	}
	l.records[rec.Date] = rec
	return true
}

func (l *Ledger) Total() int {
	return len(l.records)
}

func (l *Ledger) TotalHours() float64 {
	total := 0.0
	for _, rec := range l.records {
		total += rec.Hours
	}
	return total
}

// CurrentStreak counts consecutive checked-in days walking back from
// reference, reference included.
func (l *Ledger) CurrentStreak(reference time.Time) int {
	streak := 0
	day := datemath.StartOfDay(reference)
	for streak < MaxStreakWalk {
		if !l.IsCheckedIn(datemath.FormatDateKey(day)) {
			break
		}
		streak++
		day = datemath.AddDays(day, -1)
	}
	return streak
}

// Snapshot returns a copy suitable for persisting.
func (l *Ledger) Snapshot() map[string]Record {
	out := make(map[string]Record, len(l.records))
	for key, rec := range l.records {
		out[key] = rec
	}
	return out
}

// Sorted lists records by ascending date key.
func (l *Ledger) Sorted() []Record {
	out := make([]Record, 0, len(l.records))
	for _, rec := range l.records {
		out = append(out, rec)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out
}

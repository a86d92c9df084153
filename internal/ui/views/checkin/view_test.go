package checkin

import (
	"context"
	"strings"
	"testing"
	"time"

	checkindto "examprep/internal/modules/checkin/dto"
	"examprep/internal/platform/datemath"
	apperrors "examprep/internal/platform/errors"
	"examprep/internal/ui/components"
)

type fakePort struct {
	today   time.Time
	records map[string]checkindto.RecordOutput
	submits []string
}

func (f *fakePort) Submit(_ context.Context, dateKey, hours string) (checkindto.SubmitOutput, error) {
	f.submits = append(f.submits, dateKey+"="+hours)
	if hours == "1" {
		return checkindto.SubmitOutput{}, apperrors.ErrBelowMinimumHours
	}
	rec := checkindto.RecordOutput{Date: dateKey, Hours: 3.5, Quote: "加油"}
	f.records[dateKey] = rec
	return checkindto.SubmitOutput{Record: rec, Created: true, Persisted: true}, nil
}

func (f *fakePort) Status(_ context.Context, selected time.Time) (checkindto.StatusOutput, error) {
	key := datemath.FormatDateKey(selected)
	rec, ok := f.records[key]
	return checkindto.StatusOutput{
		TodayKey:          datemath.FormatDateKey(f.today),
		SelectedKey:       key,
		TotalCheckIns:     len(f.records),
		SelectedCheckedIn: ok,
		SelectedRecord:    rec,
		SelectedIsFuture:  datemath.DateValue(selected) > datemath.DateValue(f.today),
	}, nil
}

func newCard(t *testing.T, port *fakePort, date time.Time) Model {
	t.Helper()
	m := New(port, 3, time.Millisecond, date)
	m, _ = m.Update(m.Init()())
	return m
}

func TestCardShowsFutureNotice(t *testing.T) {
	t.Parallel()
	port := &fakePort{today: time.Date(2026, 2, 1, 9, 0, 0, 0, time.Local), records: map[string]checkindto.RecordOutput{}}
	m := newCard(t, port, time.Date(2026, 2, 2, 0, 0, 0, 0, time.Local))
	if m.StartEntry() != nil || m.Editing() {
		t.Fatalf("future dates must not accept entry")
	}
	if !strings.Contains(m.View(), "未来日期") {
		t.Fatalf("expected future badge:\n%s", m.View())
	}
}

func TestCardSubmitsAfterDelay(t *testing.T) {
	t.Parallel()
	today := time.Date(2026, 2, 1, 21, 0, 0, 0, time.Local)
	port := &fakePort{today: today, records: map[string]checkindto.RecordOutput{}}
	m := newCard(t, port, today)

	if cmd := m.StartEntry(); cmd == nil || !m.Editing() {
		t.Fatalf("expected hours entry to open")
	}
	m, _ = m.Update(components.HoursSubmitMsg{Input: "3.5"})
	if !m.Busy() || !strings.Contains(m.View(), "生成鼓励中") {
		t.Fatalf("expected submitting state:\n%s", m.View())
	}
	if len(port.submits) != 0 {
		t.Fatalf("submission must wait for the delay")
	}

	m, cmd := m.Update(delayElapsedMsg{dateKey: "2026-02-01", hours: "3.5"})
	m, cmd = m.Update(cmd())
	if len(port.submits) != 1 || port.submits[0] != "2026-02-01=3.5" {
		t.Fatalf("unexpected submissions: %v", port.submits)
	}
	m, _ = m.Update(cmd())
	view := m.View()
	if !strings.Contains(view, "已完成打卡") || !strings.Contains(view, "3.5 小时") {
		t.Fatalf("expected checked-in card:\n%s", view)
	}
}

func TestCardExplainsMinimumHours(t *testing.T) {
	t.Parallel()
	today := time.Date(2026, 2, 1, 21, 0, 0, 0, time.Local)
	port := &fakePort{today: today, records: map[string]checkindto.RecordOutput{}}
	m := newCard(t, port, today)

	m, _ = m.Update(SubmittedMsg{Err: apperrors.ErrBelowMinimumHours})
	if !strings.Contains(m.View(), "至少要学习3小时") {
		t.Fatalf("expected minimum-hours notice:\n%s", m.View())
	}
}

func TestCardIgnoresStaleStatus(t *testing.T) {
	t.Parallel()
	today := time.Date(2026, 2, 1, 21, 0, 0, 0, time.Local)
	port := &fakePort{today: today, records: map[string]checkindto.RecordOutput{}}
	m := newCard(t, port, today)
	_ = m.Select(time.Date(2026, 2, 5, 0, 0, 0, 0, time.Local))

	stale := StatusLoadedMsg{Status: checkindto.StatusOutput{SelectedKey: "2026-02-01", SelectedCheckedIn: true}}
	m, _ = m.Update(stale)
	if strings.Contains(m.View(), "已完成打卡") {
		t.Fatalf("stale status must be ignored")
	}
}

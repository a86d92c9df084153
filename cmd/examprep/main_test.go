package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"examprep/internal/platform/clock"
	apperrors "examprep/internal/platform/errors"
)

func run(t *testing.T, home string, now time.Time, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	root := newRootCmd(clock.Fixed(now), &stderr)
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	root.SetArgs(append([]string{"--home", home}, args...))
	err := root.Execute()
	return stdout.String(), stderr.String(), err
}

func TestCheckInFlowPersistsAcrossInvocations(t *testing.T) {
	t.Parallel()
	home := t.TempDir()
	now := time.Date(2026, 2, 10, 21, 0, 0, 0, time.Local)

	if _, _, err := run(t, home, now, "checkin", "--hours", "2.5"); !errors.Is(err, apperrors.ErrBelowMinimumHours) {
		t.Fatalf("expected minimum-hours error, got %v", err)
	}
	out, _, err := run(t, home, now, "checkin", "--hours", "3")
	if err != nil {
		t.Fatalf("checkin: %v", err)
	}
	if !strings.Contains(out, "checked in 2026-02-10: 3 h") {
		t.Fatalf("unexpected checkin output: %s", out)
	}
	out, _, err = run(t, home, now, "checkin", "--hours", "5")
	if err != nil {
		t.Fatalf("repeat checkin: %v", err)
	}
	if !strings.Contains(out, "already checked in (3 h)") {
		t.Fatalf("repeat must keep the first record: %s", out)
	}
	if _, _, err := run(t, home, now, "checkin", "--hours", "4", "--date", "2026-02-09"); err != nil {
		t.Fatalf("backfill: %v", err)
	}

	out, _, err = run(t, home, now, "status")
	if err != nil {
		t.Fatalf("status: %v", err)
	}
	for _, want := range []string{"check-ins: 2", "streak: 2", "hours: 7"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in status:\n%s", want, out)
		}
	}

	out, _, err = run(t, home, now, "list")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 2 || !strings.HasPrefix(lines[0], "2026-02-09") {
		t.Fatalf("unexpected list output:\n%s", out)
	}
}

func TestCheckInRejectsFutureDate(t *testing.T) {
	t.Parallel()
	now := time.Date(2026, 2, 10, 21, 0, 0, 0, time.Local)
	_, _, err := run(t, t.TempDir(), now, "checkin", "--hours", "4", "--date", "2026-02-11")
	if !errors.Is(err, apperrors.ErrFutureDate) {
		t.Fatalf("expected future date error, got %v", err)
	}
}

func TestPlanCommandClassifiesDate(t *testing.T) {
	t.Parallel()
	now := time.Date(2026, 2, 10, 21, 0, 0, 0, time.Local)
	out, _, err := run(t, t.TempDir(), now, "plan", "--date", "2026-04-11")
	if err != nil {
		t.Fatalf("plan: %v", err)
	}
	if !strings.Contains(out, "[exam_day]") || !strings.Contains(out, "就在今天") {
		t.Fatalf("unexpected plan output:\n%s", out)
	}
	if _, _, err := run(t, t.TempDir(), now, "plan", "--date", "04/11/2026"); !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("expected invalid input, got %v", err)
	}
}

func TestScheduleWriteRoundTrips(t *testing.T) {
	t.Parallel()
	home := t.TempDir()
	now := time.Date(2026, 2, 10, 21, 0, 0, 0, time.Local)
	if _, _, err := run(t, home, now, "plan", "schedule", "--write"); err != nil {
		t.Fatalf("write schedule: %v", err)
	}
	if _, err := os.Stat(filepath.Join(home, "schedule.yaml")); err != nil {
		t.Fatalf("schedule.yaml missing: %v", err)
	}
	out, _, err := run(t, home, now, "plan", "schedule")
	if err != nil {
		t.Fatalf("list schedule from override: %v", err)
	}
	if len(strings.Split(strings.TrimSpace(out), "\n")) != 6 {
		t.Fatalf("expected 6 phases:\n%s", out)
	}
}

func TestCalendarMarksCheckIns(t *testing.T) {
	t.Parallel()
	home := t.TempDir()
	now := time.Date(2026, 4, 3, 21, 0, 0, 0, time.Local)
	if _, _, err := run(t, home, now, "checkin", "--hours", "3", "--date", "2026-04-01"); err != nil {
		t.Fatalf("checkin: %v", err)
	}
	out, _, err := run(t, home, now, "calendar", "--month", "2026-04")
	if err != nil {
		t.Fatalf("calendar: %v", err)
	}
	if !strings.Contains(out, "1♥") || !strings.Contains(out, "11!") {
		t.Fatalf("unexpected calendar:\n%s", out)
	}
}

func TestTodayReportsState(t *testing.T) {
	t.Parallel()
	now := time.Date(2026, 1, 20, 8, 0, 0, 0, time.Local)
	out, _, err := run(t, t.TempDir(), now, "today")
	if err != nil {
		t.Fatalf("today: %v", err)
	}
	if !strings.Contains(out, "2026-01-20") || !strings.Contains(out, "not checked in today") || !strings.Contains(out, "核心重点") {
		t.Fatalf("unexpected today output:\n%s", out)
	}
}

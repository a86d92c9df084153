package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"examprep/internal/modules/plan/domain"
	"examprep/internal/modules/plan/dto"
	planin "examprep/internal/modules/plan/port/in"
	"examprep/internal/modules/plan/service"
	"examprep/internal/modules/plan/usecase"
	apperrors "examprep/internal/platform/errors"
)

type captureSink struct {
	saved []domain.Schedule
}

func (c *captureSink) Save(_ context.Context, schedule domain.Schedule) error {
	c.saved = append(c.saved, schedule)
	return nil
}

func newInteractor() (*service.PlanService, planin.Usecase) {
	svc := service.NewPlanService(domain.DefaultSchedule(), time.Date(2026, 4, 11, 0, 0, 0, 0, time.Local))
	return svc, usecase.NewInteractor(svc, &captureSink{})
}

func TestPlanForExamDayAndAfter(t *testing.T) {
	t.Parallel()
	_, uc := newInteractor()
	exam, err := uc.PlanFor(context.Background(), dto.PlanInput{Date: time.Date(2026, 4, 11, 21, 0, 0, 0, time.Local)})
	if err != nil {
		t.Fatalf("plan for exam day: %v", err)
	}
	if exam.Kind != string(domain.KindExamDay) || exam.DaysUntilExam != 0 || exam.DateKey != "2026-04-11" {
		t.Fatalf("unexpected exam day output: %+v", exam)
	}
	after, err := uc.PlanFor(context.Background(), dto.PlanInput{Date: time.Date(2026, 4, 12, 8, 0, 0, 0, time.Local)})
	if err != nil {
		t.Fatalf("plan after exam: %v", err)
	}
	if after.Kind != string(domain.KindPostExam) || after.DaysUntilExam != -1 {
		t.Fatalf("unexpected post exam output: %+v", after)
	}
	before, err := uc.PlanFor(context.Background(), dto.PlanInput{Date: time.Date(2026, 4, 10, 8, 0, 0, 0, time.Local)})
	if err != nil {
		t.Fatalf("plan before exam: %v", err)
	}
	if before.DaysUntilExam != 1 || len(before.Tasks) != 3 {
		t.Fatalf("unexpected day-before output: %+v", before)
	}
}

func TestScheduleListsRangesInOrder(t *testing.T) {
	t.Parallel()
	svc, uc := newInteractor()
	ranges, err := uc.Schedule(context.Background())
	if err != nil {
		t.Fatalf("schedule: %v", err)
	}
	if len(ranges) != 6 {
		t.Fatalf("expected 6 ranges, got %d", len(ranges))
	}
	if ranges[0].Start != "2026-01-12" || ranges[5].End != "2026-04-11" || ranges[5].Kind != "exam_day" {
		t.Fatalf("unexpected ranges: %+v", ranges)
	}
	ranges[0].Tasks[0] = "changed"
	if svc.Ranges()[0].Plan.Tasks[0] == "changed" {
		t.Fatalf("schedule output must not alias the service schedule")
	}
	if !svc.ExamDateMatches() {
		t.Fatalf("default schedule should agree with 2026-04-11")
	}
	other := service.NewPlanService(domain.DefaultSchedule(), time.Date(2027, 4, 11, 0, 0, 0, 0, time.Local))
	if other.ExamDateMatches() {
		t.Fatalf("mismatched exam date must be reported")
	}
}

func TestExportScheduleWritesActiveSchedule(t *testing.T) {
	t.Parallel()
	svc := service.NewPlanService(domain.DefaultSchedule(), time.Date(2026, 4, 11, 0, 0, 0, 0, time.Local))
	sink := &captureSink{}
	uc := usecase.NewInteractor(svc, sink)
	if err := uc.ExportSchedule(context.Background()); err != nil {
		t.Fatalf("export: %v", err)
	}
	if len(sink.saved) != 1 {
		t.Fatalf("expected one export, got %d", len(sink.saved))
	}
	if err := sink.saved[0].Validate(); err != nil {
		t.Fatalf("exported schedule invalid: %v", err)
	}

	noSink := usecase.NewInteractor(svc, nil)
	if err := noSink.ExportSchedule(context.Background()); !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("expected invalid input without sink, got %v", err)
	}
}

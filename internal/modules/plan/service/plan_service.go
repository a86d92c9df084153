package service

import (
	"context"
	"errors"
	"time"

	"examprep/internal/modules/plan/domain"
	planout "examprep/internal/modules/plan/port/out"
	"examprep/internal/platform/datemath"
	apperrors "examprep/internal/platform/errors"

	hclog "github.com/hashicorp/go-hclog"
)

type PlanService struct {
	schedule domain.Schedule
	examDate time.Time
}

func NewPlanService(schedule domain.Schedule, examDate time.Time) *PlanService {
	return &PlanService{schedule: schedule, examDate: examDate}
}

// ResolveSchedule prefers an override from source and falls back to the
// built-in schedule. A present but invalid override is an error.
func ResolveSchedule(ctx context.Context, source planout.ScheduleSource, logger hclog.Logger) (domain.Schedule, error) {
	if source == nil {
		return domain.DefaultSchedule(), nil
	}
	schedule, err := source.Load(ctx)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return domain.DefaultSchedule(), nil
		}
		return domain.Schedule{}, err
	}
	if err := schedule.Validate(); err != nil {
		return domain.Schedule{}, err
	}
	if logger != nil {
		logger.Info("loaded schedule override", "ranges", len(schedule.Ranges))
	}
	return schedule, nil
}

func (s *PlanService) Classify(date time.Time) (domain.StudyPlan, domain.Kind) {
	return s.schedule.Classify(date), s.schedule.Kind(date)
}

func (s *PlanService) Schedule() domain.Schedule {
	return domain.Schedule{Ranges: s.Ranges(), PreStart: s.schedule.PreStart, PostExam: s.schedule.PostExam}
}

func (s *PlanService) Ranges() []domain.Range {
	out := make([]domain.Range, len(s.schedule.Ranges))
	copy(out, s.schedule.Ranges)
	return out
}

func (s *PlanService) DaysUntilExam(date time.Time) int {
	return datemath.DaysBetween(date, s.examDate)
}

// ExamDateMatches reports whether the schedule's exam-day range agrees with
// the configured exam date.
func (s *PlanService) ExamDateMatches() bool {
	exam, ok := s.schedule.ExamDay()
	if !ok {
		return false
	}
	return exam.Start == datemath.DateValue(s.examDate)
}

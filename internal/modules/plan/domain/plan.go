package domain

import (
	"fmt"
	"strings"
	"time"

	"examprep/internal/platform/datemath"
	apperrors "examprep/internal/platform/errors"
)

type Kind string

const (
	KindPreStart Kind = "pre_start"
	KindPhase    Kind = "phase"
	KindExamDay  Kind = "exam_day"
	KindPostExam Kind = "post_exam"
)

type StudyPlan struct {
	Phase string
	Focus string
	Tasks []string
}

func (p StudyPlan) clone() StudyPlan {
	tasks := make([]string, len(p.Tasks))
	copy(tasks, p.Tasks)
	return StudyPlan{Phase: p.Phase, Focus: p.Focus, Tasks: tasks}
}

// Range is an inclusive span of calendar days encoded as YYYYMMDD.
type Range struct {
	Start int
	End   int
	Kind  Kind
	Plan  StudyPlan
}

func (r Range) Contains(value int) bool {
	return r.Start <= value && value <= r.End
}

// Schedule is an ordered interval table. Ranges are tested top-down and the
// first match wins; values before the first range map to PreStart and values
// after the last to PostExam.
type Schedule struct {
	Ranges   []Range
	PreStart StudyPlan
	PostExam StudyPlan
}

// Classify is total: every date maps to exactly one plan.
func (s Schedule) Classify(date time.Time) StudyPlan {
	_, plan := s.lookup(datemath.DateValue(date))
	return plan.clone()
}

// Kind reports which bucket Classify would pick for date.
func (s Schedule) Kind(date time.Time) Kind {
	kind, _ := s.lookup(datemath.DateValue(date))
	return kind
}

func (s Schedule) lookup(value int) (Kind, StudyPlan) {
	if len(s.Ranges) == 0 || value < s.Ranges[0].Start {
		return KindPreStart, s.PreStart
	}
	for _, r := range s.Ranges {
		if r.Contains(value) {
			return r.Kind, r.Plan
		}
	}
	return KindPostExam, s.PostExam
}

// ExamDay returns the terminal single-day range.
func (s Schedule) ExamDay() (Range, bool) {
	if len(s.Ranges) == 0 {
		return Range{}, false
	}
	last := s.Ranges[len(s.Ranges)-1]
	if last.Kind != KindExamDay {
		return Range{}, false
	}
	return last, true
}

// Validate checks that the ranges tile the study window without gaps or
// overlaps and end in a single exam day.
func (s Schedule) Validate() error {
	if len(s.Ranges) == 0 {
		return fmt.Errorf("%w: no ranges", apperrors.ErrInvalidSchedule)
	}
	if err := validatePlan("pre-start", s.PreStart); err != nil {
		return err
	}
	if err := validatePlan("post-exam", s.PostExam); err != nil {
		return err
	}
	var prevEnd time.Time
	for i, r := range s.Ranges {
		label := fmt.Sprintf("range %d", i+1)
		start, err := valueToDate(r.Start)
		if err != nil {
			return fmt.Errorf("%w: %s start: %v", apperrors.ErrInvalidSchedule, label, err)
		}
		end, err := valueToDate(r.End)
		if err != nil {
			return fmt.Errorf("%w: %s end: %v", apperrors.ErrInvalidSchedule, label, err)
		}
		if r.Start > r.End {
			return fmt.Errorf("%w: %s starts after it ends", apperrors.ErrInvalidSchedule, label)
		}
		if i > 0 {
			want := datemath.AddDays(prevEnd, 1)
			if !datemath.IsSameCalendarDay(start, want) {
				return fmt.Errorf("%w: %s starts %s, expected %s", apperrors.ErrInvalidSchedule, label, datemath.FormatDateKey(start), datemath.FormatDateKey(want))
			}
		}
		last := i == len(s.Ranges)-1
		switch {
		case last && r.Kind != KindExamDay:
			return fmt.Errorf("%w: last range must be the exam day", apperrors.ErrInvalidSchedule)
		case last && r.Start != r.End:
			return fmt.Errorf("%w: exam day must be a single day", apperrors.ErrInvalidSchedule)
		case !last && r.Kind != KindPhase:
			return fmt.Errorf("%w: %s must be a phase", apperrors.ErrInvalidSchedule, label)
		}
		if err := validatePlan(label, r.Plan); err != nil {
			return err
		}
		prevEnd = end
	}
	return nil
}

func validatePlan(label string, plan StudyPlan) error {
	if strings.TrimSpace(plan.Phase) == "" {
		return fmt.Errorf("%w: %s has no phase name", apperrors.ErrInvalidSchedule, label)
	}
	if len(plan.Tasks) == 0 {
		return fmt.Errorf("%w: %s has no tasks", apperrors.ErrInvalidSchedule, label)
	}
	return nil
}

func valueToDate(value int) (time.Time, error) {
	return datemath.ParseDateKey(FormatValue(value), time.UTC)
}

// FormatValue renders a YYYYMMDD integer as a date key.
func FormatValue(value int) string {
	return fmt.Sprintf("%04d-%02d-%02d", value/10000, value/100%100, value%100)
}

// ParseValue converts a date key into its YYYYMMDD integer.
func ParseValue(key string) (int, error) {
	t, err := datemath.ParseDateKey(key, time.UTC)
	if err != nil {
		return 0, err
	}
	return datemath.DateValue(t), nil
}

package in

import (
	"context"
	"time"

	"examprep/internal/modules/plan/dto"
)

type Usecase interface {
	PlanFor(ctx context.Context, input dto.PlanInput) (dto.PlanOutput, error)
	Schedule(ctx context.Context) ([]dto.RangeOutput, error)
	DaysUntilExam(date time.Time) int
	// ExportSchedule writes the active schedule so it can be edited as an
	// override.
	ExportSchedule(ctx context.Context) error
}

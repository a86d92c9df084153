package in

import (
	"context"
	"time"

	plandto "examprep/internal/modules/plan/dto"
	planin "examprep/internal/modules/plan/port/in"
)

type CLIHandler struct {
	usecase planin.Usecase
}

func NewCLIHandler(usecase planin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) PlanFor(ctx context.Context, date time.Time) (plandto.PlanOutput, error) {
	return h.usecase.PlanFor(ctx, plandto.PlanInput{Date: date})
}

func (h CLIHandler) Schedule(ctx context.Context) ([]plandto.RangeOutput, error) {
	return h.usecase.Schedule(ctx)
}

func (h CLIHandler) ExportSchedule(ctx context.Context) error {
	return h.usecase.ExportSchedule(ctx)
}

func (h CLIHandler) DaysUntilExam(date time.Time) int {
	return h.usecase.DaysUntilExam(date)
}

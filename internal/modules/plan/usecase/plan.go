package usecase

import (
	"context"
	"fmt"
	"time"

	"examprep/internal/modules/plan/domain"
	"examprep/internal/modules/plan/dto"
	planin "examprep/internal/modules/plan/port/in"
	planout "examprep/internal/modules/plan/port/out"
	"examprep/internal/modules/plan/service"
	"examprep/internal/platform/datemath"
	apperrors "examprep/internal/platform/errors"
)

type Interactor struct {
	svc  *service.PlanService
	sink planout.ScheduleSink
}

func NewInteractor(svc *service.PlanService, sink planout.ScheduleSink) planin.Usecase {
	return &Interactor{svc: svc, sink: sink}
}

func (i *Interactor) PlanFor(_ context.Context, input dto.PlanInput) (dto.PlanOutput, error) {
	plan, kind := i.svc.Classify(input.Date)
	return dto.PlanOutput{
		DateKey:       datemath.FormatDateKey(input.Date),
		Kind:          string(kind),
		Phase:         plan.Phase,
		Focus:         plan.Focus,
		Tasks:         plan.Tasks,
		DaysUntilExam: i.svc.DaysUntilExam(input.Date),
	}, nil
}

func (i *Interactor) Schedule(_ context.Context) ([]dto.RangeOutput, error) {
	ranges := i.svc.Ranges()
	out := make([]dto.RangeOutput, 0, len(ranges))
	for _, r := range ranges {
		out = append(out, dto.RangeOutput{
			Start: domain.FormatValue(r.Start),
			End:   domain.FormatValue(r.End),
			Kind:  string(r.Kind),
			Phase: r.Plan.Phase,
			Focus: r.Plan.Focus,
			Tasks: append([]string(nil), r.Plan.Tasks...),
		})
	}
	return out, nil
}

func (i *Interactor) DaysUntilExam(date time.Time) int {
	return i.svc.DaysUntilExam(date)
}

func (i *Interactor) ExportSchedule(ctx context.Context) error {
	if i.sink == nil {
		return fmt.Errorf("%w: no schedule destination configured", apperrors.ErrInvalidInput)
	}
	return i.sink.Save(ctx, i.svc.Schedule())
}

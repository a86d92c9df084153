package out

import (
	"context"

	"examprep/internal/modules/plan/domain"
)

// ScheduleSource supplies an authored schedule override. Implementations
// return apperrors.ErrNotFound when no override exists.
type ScheduleSource interface {
	Load(ctx context.Context) (domain.Schedule, error)
}

type ScheduleSink interface {
	Save(ctx context.Context, schedule domain.Schedule) error
}

package in

import (
	"context"

	"examprep/internal/modules/checkin/dto"
)

type Usecase interface {
	Submit(ctx context.Context, input dto.SubmitInput) (dto.SubmitOutput, error)
	Status(ctx context.Context, input dto.StatusInput) (dto.StatusOutput, error)
	Get(ctx context.Context, dateKey string) (dto.RecordOutput, error)
	List(ctx context.Context) ([]dto.RecordOutput, error)
}

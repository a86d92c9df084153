package in

import (
	"context"
	"time"

	checkindto "examprep/internal/modules/checkin/dto"
	checkinin "examprep/internal/modules/checkin/port/in"
)

type CLIHandler struct {
	usecase checkinin.Usecase
}

func NewCLIHandler(usecase checkinin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Submit(ctx context.Context, dateKey, hours string) (checkindto.SubmitOutput, error) {
	return h.usecase.Submit(ctx, checkindto.SubmitInput{DateKey: dateKey, Hours: hours})
}

func (h CLIHandler) Status(ctx context.Context, selected time.Time) (checkindto.StatusOutput, error) {
	return h.usecase.Status(ctx, checkindto.StatusInput{Selected: selected})
}

func (h CLIHandler) Get(ctx context.Context, dateKey string) (checkindto.RecordOutput, error) {
	return h.usecase.Get(ctx, dateKey)
}

func (h CLIHandler) List(ctx context.Context) ([]checkindto.RecordOutput, error) {
	return h.usecase.List(ctx)
}

package usecase

import (
	"context"
	"errors"

	"examprep/internal/modules/checkin/domain"
	checkindto "examprep/internal/modules/checkin/dto"
	checkinin "examprep/internal/modules/checkin/port/in"
	"examprep/internal/modules/checkin/service"
	"examprep/internal/platform/datemath"
	apperrors "examprep/internal/platform/errors"
)

type Interactor struct {
	svc *service.CheckInService
}

func NewInteractor(svc *service.CheckInService) checkinin.Usecase {
	return &Interactor{svc: svc}
}

func (i *Interactor) Submit(ctx context.Context, input checkindto.SubmitInput) (checkindto.SubmitOutput, error) {
	hours, err := domain.ParseHours(input.Hours)
	if err != nil {
		return checkindto.SubmitOutput{}, err
	}
	dateKey := input.DateKey
	if dateKey == "" {
		dateKey = datemath.FormatDateKey(i.svc.Now())
	}
	rec, created, err := i.svc.Submit(ctx, dateKey, hours)
	if err != nil {
		if !errors.Is(err, apperrors.ErrPersistenceUnavailable) {
			return checkindto.SubmitOutput{}, err
		}
		return checkindto.SubmitOutput{
			Record:    toOutput(rec),
			Created:   created,
			Persisted: false,
			Warning:   "check-in saved for this session only: " + err.Error(),
		}, nil
	}
	return checkindto.SubmitOutput{Record: toOutput(rec), Created: created, Persisted: true}, nil
}

func (i *Interactor) Status(_ context.Context, input checkindto.StatusInput) (checkindto.StatusOutput, error) {
	now := i.svc.Now()
	selected := input.Selected
	if selected.IsZero() {
		selected = now
	}
	selectedKey := datemath.FormatDateKey(selected)
	out := checkindto.StatusOutput{
		TodayKey:         datemath.FormatDateKey(now),
		SelectedKey:      selectedKey,
		TotalCheckIns:    i.svc.TotalCheckIns(),
		TotalHours:       i.svc.TotalHours(),
		Streak:           i.svc.CurrentStreak(now),
		SelectedIsFuture: datemath.DateValue(selected) > datemath.DateValue(now),
	}
	if rec, ok := i.svc.Get(selectedKey); ok {
		out.SelectedCheckedIn = true
		out.SelectedRecord = toOutput(rec)
	}
	return out, nil
}

func (i *Interactor) Get(_ context.Context, dateKey string) (checkindto.RecordOutput, error) {
	rec, ok := i.svc.Get(dateKey)
	if !ok {
		return checkindto.RecordOutput{}, apperrors.ErrNotFound
	}
	return toOutput(rec), nil
}

func (i *Interactor) List(_ context.Context) ([]checkindto.RecordOutput, error) {
	records := i.svc.Records()
	out := make([]checkindto.RecordOutput, 0, len(records))
	for _, rec := range records {
		out = append(out, toOutput(rec))
	}
	return out, nil
}

func toOutput(rec domain.Record) checkindto.RecordOutput {
	return checkindto.RecordOutput{Date: rec.Date, Hours: rec.Hours, Quote: rec.Quote}
}

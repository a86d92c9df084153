package service_test

import (
	"context"
	"errors"
	"testing"

	"examprep/internal/modules/plan/domain"
	"examprep/internal/modules/plan/service"
	apperrors "examprep/internal/platform/errors"
	"examprep/internal/platform/logging"
)

type fakeSource struct {
	schedule domain.Schedule
	err      error
}

func (f fakeSource) Load(context.Context) (domain.Schedule, error) {
	return f.schedule, f.err
}

func TestResolveScheduleFallbacks(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	got, err := service.ResolveSchedule(ctx, nil, nil)
	if err != nil || len(got.Ranges) != 6 {
		t.Fatalf("nil source should give default schedule: %v", err)
	}
	got, err = service.ResolveSchedule(ctx, fakeSource{err: apperrors.ErrNotFound}, logging.Discard())
	if err != nil || len(got.Ranges) != 6 {
		t.Fatalf("missing override should give default schedule: %v", err)
	}
	if _, err := service.ResolveSchedule(ctx, fakeSource{err: errors.New("disk")}, logging.Discard()); err == nil {
		t.Fatalf("read failure must propagate")
	}
}

func TestResolveScheduleValidatesOverride(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	custom := domain.DefaultSchedule()
	custom.Ranges = custom.Ranges[4:]
	got, err := service.ResolveSchedule(ctx, fakeSource{schedule: custom}, logging.Discard())
	if err != nil {
		t.Fatalf("valid override rejected: %v", err)
	}
	if len(got.Ranges) != 2 {
		t.Fatalf("expected override ranges, got %d", len(got.Ranges))
	}
	broken := domain.DefaultSchedule()
	broken.Ranges[2].Start++
	if _, err := service.ResolveSchedule(ctx, fakeSource{schedule: broken}, logging.Discard()); !errors.Is(err, apperrors.ErrInvalidSchedule) {
		t.Fatalf("expected invalid schedule, got %v", err)
	}
}

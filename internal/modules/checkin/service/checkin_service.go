package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"examprep/internal/modules/checkin/domain"
	checkinout "examprep/internal/modules/checkin/port/out"
	"examprep/internal/platform/clock"
	"examprep/internal/platform/datemath"
	apperrors "examprep/internal/platform/errors"
	"examprep/internal/platform/logging"

	hclog "github.com/hashicorp/go-hclog"
)

// CheckInService owns the session's ledger. The mutex only serialises the
// UI's background commands; there is a single writer.
type CheckInService struct {
	mu     sync.Mutex
	clock  clock.Clock
	policy domain.Policy
	store  checkinout.SnapshotStore
	quotes checkinout.QuoteSource
	logger hclog.Logger
	ledger *domain.Ledger
}

func NewCheckInService(clock clock.Clock, policy domain.Policy, store checkinout.SnapshotStore, quotes checkinout.QuoteSource, logger hclog.Logger) *CheckInService {
	if logger == nil {
		logger = logging.Discard()
	}
	return &CheckInService{
		clock:  clock,
		policy: policy,
		store:  store,
		quotes: quotes,
		logger: logger,
		ledger: domain.NewLedger(nil),
	}
}

// Load replaces the in-memory ledger with the stored snapshot. Missing or
// corrupt snapshots leave an empty ledger; only an unreadable store fails.
func (s *CheckInService) Load(ctx context.Context) error {
	records, err := s.store.Load(ctx)
	s.mu.Lock()
	defer s.mu.Unlock()
	switch {
	case err == nil:
		s.ledger = domain.NewLedger(records)
		s.logger.Debug("ledger loaded", "records", len(records))
		return nil
	case errors.Is(err, apperrors.ErrNotFound):
		s.ledger = domain.NewLedger(nil)
		return nil
	case errors.Is(err, apperrors.ErrPersistenceCorrupt):
		s.logger.Warn("discarding corrupt check-in snapshot", "error", err)
		s.ledger = domain.NewLedger(nil)
		return nil
	default:
		return fmt.Errorf("%w: load ledger: %v", apperrors.ErrPersistenceUnavailable, err)
	}
}

// Submit records a check-in. The bool reports whether a new record was
// created. When the store write fails the record is kept in memory and the
// error wraps apperrors.ErrPersistenceUnavailable.
func (s *CheckInService) Submit(ctx context.Context, dateKey string, hours float64) (domain.Record, bool, error) {
	if err := s.policy.CheckHours(hours); err != nil {
		return domain.Record{}, false, err
	}
	date, err := datemath.ParseDateKey(dateKey, time.Local)
	if err != nil {
		return domain.Record{}, false, fmt.Errorf("%w: %v", apperrors.ErrInvalidInput, err)
	}
	if err := s.policy.CheckDate(date, s.clock.Now()); err != nil {
		return domain.Record{}, false, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if existing, ok := s.ledger.Get(dateKey); ok {
		return existing, false, nil
	}
	rec := domain.Record{Date: dateKey, Hours: hours, Quote: s.quotes.Next(ctx)}
	s.ledger.Insert(rec)
	if err := s.store.Save(ctx, s.ledger.Snapshot()); err != nil {
		s.logger.Error("check-in not persisted", "date", dateKey, "error", err)
		return rec, true, fmt.Errorf("%w: %v", apperrors.ErrPersistenceUnavailable, err)
	}
	s.logger.Info("checked in", "date", dateKey, "hours", hours)
	return rec, true, nil
}

func (s *CheckInService) Get(dateKey string) (domain.Record, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ledger.Get(dateKey)
}

func (s *CheckInService) IsCheckedIn(dateKey string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ledger.IsCheckedIn(dateKey)
}

func (s *CheckInService) TotalCheckIns() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ledger.Total()
}

func (s *CheckInService) TotalHours() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ledger.TotalHours()
}

// CurrentStreak counts back from reference, which is "now" for the session
// rather than whatever date the user is looking at.
func (s *CheckInService) CurrentStreak(reference time.Time) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ledger.CurrentStreak(reference)
}

func (s *CheckInService) Records() []domain.Record {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ledger.Sorted()
}

func (s *CheckInService) Now() time.Time {
	return s.clock.Now()
}

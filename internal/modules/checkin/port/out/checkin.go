package out

import (
	"context"

	"examprep/internal/modules/checkin/domain"
)

// SnapshotStore persists the whole ledger under a single key. Load returns
// apperrors.ErrNotFound when nothing was saved yet and
// apperrors.ErrPersistenceCorrupt when the stored value cannot be decoded.
type SnapshotStore interface {
	Load(ctx context.Context) (map[string]domain.Record, error)
	Save(ctx context.Context, records map[string]domain.Record) error
}

type QuoteSource interface {
	Next(ctx context.Context) string
}

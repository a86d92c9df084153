package out

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"examprep/internal/modules/checkin/domain"
	checkinout "examprep/internal/modules/checkin/port/out"
	"examprep/internal/platform/clock"
	apperrors "examprep/internal/platform/errors"

	_ "modernc.org/sqlite"
)

// SQLiteSnapshotStore keeps the ledger snapshot as one row of a key-value
// table.
type SQLiteSnapshotStore struct {
	db    *sql.DB
	key   string
	clock clock.Clock
}

func NewSQLiteSnapshotStore(dbPath string, clk clock.Clock) (*SQLiteSnapshotStore, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	store := &SQLiteSnapshotStore{db: db, key: domain.SnapshotKey, clock: clk}
	if err := store.ensureSchema(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

var _ checkinout.SnapshotStore = (*SQLiteSnapshotStore)(nil)

func (s *SQLiteSnapshotStore) ensureSchema(ctx context.Context) error {
	const ddl = `
CREATE TABLE IF NOT EXISTS kv (
  key TEXT PRIMARY KEY,
  value TEXT NOT NULL,
  updated_at TEXT NOT NULL
);
`
	if _, err := s.db.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("create kv table: %w", err)
	}
	return nil
}

func (s *SQLiteSnapshotStore) Load(ctx context.Context) (map[string]domain.Record, error) {
	var value string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM kv WHERE key = ?`, s.key).Scan(&value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("read snapshot: %w", err)
	}
	return domain.DecodeSnapshot([]byte(value))
}

func (s *SQLiteSnapshotStore) Save(ctx context.Context, records map[string]domain.Record) error {
	payload, err := domain.EncodeSnapshot(records)
	if err != nil {
		return err
	}
	const stmt = `
INSERT INTO kv (key, value, updated_at)
VALUES (?, ?, ?)
ON CONFLICT(key) DO UPDATE SET
  value=excluded.value,
  updated_at=excluded.updated_at;
`
	if _, err := s.db.ExecContext(ctx, stmt, s.key, string(payload), s.clock.Now().Format(time.RFC3339)); err != nil {
		return fmt.Errorf("write snapshot: %w", err)
	}
	return nil
}

func (s *SQLiteSnapshotStore) Close() error {
	return s.db.Close()
}

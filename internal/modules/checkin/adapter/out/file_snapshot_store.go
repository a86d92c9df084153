package out

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"examprep/internal/modules/checkin/domain"
	checkinout "examprep/internal/modules/checkin/port/out"
	apperrors "examprep/internal/platform/errors"
)

// FileSnapshotStore keeps the ledger snapshot in a single JSON file.
type FileSnapshotStore struct {
	path string
}

func NewFileSnapshotStore(path string) checkinout.SnapshotStore {
	return &FileSnapshotStore{path: path}
}

func (s *FileSnapshotStore) Load(_ context.Context) (map[string]domain.Record, error) {
	payload, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("read snapshot: %w", err)
	}
	return domain.DecodeSnapshot(payload)
}

// Save writes through a temp file and rename so a crash never leaves a
// half-written snapshot.
func (s *FileSnapshotStore) Save(_ context.Context, records map[string]domain.Record) error {
	payload, err := domain.EncodeSnapshot(records)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create snapshot dir: %w", err)
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, payload, 0o644); err != nil {
		return fmt.Errorf("write snapshot: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("replace snapshot: %w", err)
	}
	return nil
}

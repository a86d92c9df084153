package domain

import (
	"encoding/json"
	"fmt"

	apperrors "examprep/internal/platform/errors"
)

// EncodeSnapshot renders the persisted form: a JSON object keyed by date.
func EncodeSnapshot(records map[string]Record) ([]byte, error) {
	if records == nil {
		records = map[string]Record{}
	}
	payload, err := json.Marshal(records)
	if err != nil {
		return nil, fmt.Errorf("encode snapshot: %w", err)
	}
	return payload, nil
}

func DecodeSnapshot(payload []byte) (map[string]Record, error) {
	records := map[string]Record{}
	if err := json.Unmarshal(payload, &records); err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrPersistenceCorrupt, err)
	}
	if records == nil {
		records = map[string]Record{}
	}
	return records, nil
}

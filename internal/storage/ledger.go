package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Veraticus/pocket/internal/common"
	"github.com/Veraticus/pocket/internal/model"
)

// LoadRecords returns the stored records. A ledger that was never saved has
// no records; a value that does not decode is reported as corrupted.
func (s *SQLiteStorage) LoadRecords(ctx context.Context) ([]model.Record, error) {
	raw, err := s.Get(ctx, KeyRecords)
	if errors.Is(err, common.ErrNotFound) {
		return []model.Record{}, nil
	}
	if err != nil {
		return nil, err
	}

	var records []model.Record
	if err := json.Unmarshal([]byte(raw), &records); err != nil {
		return nil, fmt.Errorf("%w: records: %w", common.ErrDatabaseCorrupted, err)
	}
	if records == nil {
		records = []model.Record{}
	}
	return records, nil
}

// SaveRecords replaces the stored record list.
func (s *SQLiteStorage) SaveRecords(ctx context.Context, records []model.Record) error {
	raw, err := encodeRecords(records)
	if err != nil {
		return err
	}
	return s.Put(ctx, KeyRecords, raw)
}

// LoadSettings returns the stored settings, normalized. It returns
// common.ErrNotFound when none were saved.
func (s *SQLiteStorage) LoadSettings(ctx context.Context) (model.Settings, error) {
	raw, err := s.Get(ctx, KeySettings)
	if err != nil {
		return model.Settings{}, err
	}

	var settings model.Settings
	if err := json.Unmarshal([]byte(raw), &settings); err != nil {
		return model.Settings{}, fmt.Errorf("%w: settings: %w", common.ErrDatabaseCorrupted, err)
	}
	settings.Normalize()
	return settings, nil
}

// SaveSettings replaces the stored settings.
func (s *SQLiteStorage) SaveSettings(ctx context.Context, settings model.Settings) error {
	raw, err := json.Marshal(settings)
	if err != nil {
		return fmt.Errorf("%w: encode settings: %w", common.ErrPersistFailed, err)
	}
	return s.Put(ctx, KeySettings, string(raw))
}

// SaveSnapshot writes records and settings in one transaction.
func (s *SQLiteStorage) SaveSnapshot(ctx context.Context, records []model.Record, settings model.Settings) error {
	if err := validateContext(ctx); err != nil {
		return err
	}

	rawRecords, err := encodeRecords(records)
	if err != nil {
		return err
	}
	rawSettings, err := json.Marshal(settings)
	if err != nil {
		return fmt.Errorf("%w: encode settings: %w", common.ErrPersistFailed, err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%w: begin transaction: %w", common.ErrPersistFailed, err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if err := putValue(ctx, tx, KeyRecords, rawRecords); err != nil {
		return err
	}
	if err := putValue(ctx, tx, KeySettings, string(rawSettings)); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: commit snapshot: %w", common.ErrPersistFailed, err)
	}
	return nil
}

func encodeRecords(records []model.Record) (string, error) {
	if records == nil {
		records = []model.Record{}
	}
	raw, err := json.Marshal(records)
	if err != nil {
		return "", fmt.Errorf("%w: encode records: %w", common.ErrPersistFailed, err)
	}
	return string(raw), nil
}

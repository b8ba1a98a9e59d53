package testutil

import (
	"context"
	"fmt"
	"sync"

	"github.com/Veraticus/pocket/internal/common"
	"github.com/Veraticus/pocket/internal/model"
)

// MemoryStore is an in-memory service.LedgerStore whose writes can be made
// to fail a given number of times.
type MemoryStore struct {
	records     []model.Record
	settings    *model.Settings
	mu          sync.Mutex
	FailWrites  int // remaining writes that fail, -1 fails forever
	WriteCalls  int
	SnapshotsOK int
}

// NewMemoryStore creates a store holding records and no settings.
func NewMemoryStore(records ...model.Record) *MemoryStore {
	return &MemoryStore{records: model.CloneRecords(records)}
}

// NewFailingStore creates a store whose first n writes fail. Pass -1 to fail every write.
func NewFailingStore(n int, records ...model.Record) *MemoryStore {
	s := NewMemoryStore(records...)
	s.FailWrites = n
	return s
}

func (s *MemoryStore) fail() error {
	s.WriteCalls++
	if s.FailWrites == 0 {
		return nil
	}
	if s.FailWrites > 0 {
		s.FailWrites--
	}
	return fmt.Errorf("%w: disk is full", common.ErrPersistFailed)
}

// LoadRecords returns the stored records.
func (s *MemoryStore) LoadRecords(_ context.Context) ([]model.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.records == nil {
		return []model.Record{}, nil
	}
	return model.CloneRecords(s.records), nil
}

// SaveRecords replaces the stored records.
func (s *MemoryStore) SaveRecords(_ context.Context, records []model.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.fail(); err != nil {
		return err
	}
	s.records = model.CloneRecords(records)
	return nil
}

// LoadSettings returns the stored settings or common.ErrNotFound.
func (s *MemoryStore) LoadSettings(_ context.Context) (model.Settings, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.settings == nil {
		return model.Settings{}, fmt.Errorf("settings: %w", common.ErrNotFound)
	}
	return s.settings.Clone(), nil
}

// SaveSettings replaces the stored settings.
func (s *MemoryStore) SaveSettings(_ context.Context, settings model.Settings) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.fail(); err != nil {
		return err
	}
	clone := settings.Clone()
	s.settings = &clone
	return nil
}

// SaveSnapshot replaces records and settings together.
func (s *MemoryStore) SaveSnapshot(_ context.Context, records []model.Record, settings model.Settings) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.fail(); err != nil {
		return err
	}
	clone := settings.Clone()
	s.records = model.CloneRecords(records)
	s.settings = &clone
	s.SnapshotsOK++
	return nil
}

// Close does nothing.
func (s *MemoryStore) Close() error {
	return nil
}

// Stored returns what the store currently holds. Settings is nil when none were saved.
func (s *MemoryStore) Stored() ([]model.Record, *model.Settings) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var settings *model.Settings
	if s.settings != nil {
		clone := s.settings.Clone()
		settings = &clone
	}
	return model.CloneRecords(s.records), settings
}

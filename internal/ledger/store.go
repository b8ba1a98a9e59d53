// Package ledger holds the in-memory, ordered sequence of spending records.
package ledger

import (
	"fmt"
	"strings"
	"time"

	"github.com/Veraticus/pocket/internal/common"
	"github.com/Veraticus/pocket/internal/model"
	"github.com/shopspring/decimal"
)

// Store owns the ordered record sequence. It does not validate input; callers
// run the validation rules first. Store is not safe for concurrent use.
type Store struct {
	now      func() time.Time
	newID    func() string
	collator *Collator
	records  []model.Record
}

// Option configures a Store.
type Option func(*Store)

// WithClock sets the time source used for timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithIDGenerator replaces the id generator.
func WithIDGenerator(gen func() string) Option {
	return func(s *Store) { s.newID = gen }
}

// WithCollator sets the collation used when sorting by description.
func WithCollator(c *Collator) Option {
	return func(s *Store) { s.collator = c }
}

// NewStore creates a store holding a copy of records.
func NewStore(records []model.Record, opts ...Option) *Store {
	s := &Store{
		records: model.CloneRecords(records),
		now:     time.Now,
		newID:   NewID,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.collator == nil {
		s.collator = NewCollator("")
	}
	if s.records == nil {
		s.records = []model.Record{}
	}
	return s
}

// Len returns the number of records.
func (s *Store) Len() int {
	return len(s.records)
}

// Records returns a copy of the sequence in its current order.
func (s *Store) Records() []model.Record {
	return model.CloneRecords(s.records)
}

// Replace swaps the whole sequence, as after an import.
func (s *Store) Replace(records []model.Record) {
	s.records = model.CloneRecords(records)
	if s.records == nil {
		s.records = []model.Record{}
	}
}

// Create appends a new record.
func (s *Store) Create(description, amount, category, date string) (model.Record, error) {
	value, err := parseAmount(amount)
	if err != nil {
		return model.Record{}, err
	}

	now := s.now()
	record := model.Record{
		ID:          s.newID(),
		Description: strings.TrimSpace(description),
		Amount:      value,
		Category:    strings.TrimSpace(category),
		Date:        strings.TrimSpace(date),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	s.records = append(s.records, record)

	return record, nil
}

// Update replaces every field but the id and creation time of the record with
// the given id, keeping its position.
func (s *Store) Update(id, description, amount, category, date string) (model.Record, error) {
	idx := s.indexOf(id)
	if idx < 0 {
		return model.Record{}, fmt.Errorf("record %s: %w", id, common.ErrNotFound)
	}

	value, err := parseAmount(amount)
	if err != nil {
		return model.Record{}, err
	}

	record := s.records[idx]
	record.Description = strings.TrimSpace(description)
	record.Amount = value
	record.Category = strings.TrimSpace(category)
	record.Date = strings.TrimSpace(date)
	record.UpdatedAt = s.now()
	s.records[idx] = record

	return record, nil
}

// Recategorize moves every record in category from to category to and returns
// how many changed.
func (s *Store) Recategorize(from, to string) int {
	now := s.now()
	changed := 0
	for i := range s.records {
		if strings.EqualFold(s.records[i].Category, from) {
			s.records[i].Category = to
			s.records[i].UpdatedAt = now
			changed++
		}
	}
	return changed
}

// Delete removes the record with the given id. The remaining order is kept.
func (s *Store) Delete(id string) error {
	idx := s.indexOf(id)
	if idx < 0 {
		return fmt.Errorf("record %s: %w", id, common.ErrNotFound)
	}
	s.records = append(s.records[:idx:idx], s.records[idx+1:]...)
	return nil
}

// Find returns the record with the given id.
func (s *Store) Find(id string) (model.Record, bool) {
	idx := s.indexOf(id)
	if idx < 0 {
		return model.Record{}, false
	}
	return s.records[idx], true
}

func (s *Store) indexOf(id string) int {
	for i, r := range s.records {
		if r.ID == id {
			return i
		}
	}
	return -1
}

func parseAmount(raw string) (decimal.Decimal, error) {
	value, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("invalid amount %q: %w", raw, err)
	}
	return value, nil
}

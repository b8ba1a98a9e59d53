// Package app holds the ledger's application state: the record store, the
// settings and the persistence handle, owned by a single Controller.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/Veraticus/pocket/internal/common"
	"github.com/Veraticus/pocket/internal/ledger"
	"github.com/Veraticus/pocket/internal/model"
	"github.com/Veraticus/pocket/internal/search"
	"github.com/Veraticus/pocket/internal/service"
	"github.com/Veraticus/pocket/internal/stats"
	"github.com/Veraticus/pocket/internal/transfer"
	"github.com/Veraticus/pocket/internal/validation"
)

// Controller owns the ledger state. Every mutation is validated, applied in
// memory, written through to the LedgerStore and then announced to observers.
// It is not safe for concurrent use.
type Controller struct {
	persist    service.LedgerStore
	records    *ledger.Store
	now        func() time.Time
	observers  map[int]func(Event)
	settings   model.Settings
	retry      service.RetryOptions
	storeOpts  []ledger.Option
	validator  validation.Validator
	searchMode search.Mode
	nextID     int
}

// Option configures a Controller.
type Option func(*Controller)

// WithClock sets the clock used for timestamps and the dashboard trend.
func WithClock(now func() time.Time) Option {
	return func(c *Controller) {
		c.now = now
		c.storeOpts = append(c.storeOpts, ledger.WithClock(now))
	}
}

// WithValidator sets the field validator.
func WithValidator(v validation.Validator) Option {
	return func(c *Controller) {
		c.validator = v
	}
}

// WithSearchMode sets how search terms are interpreted.
func WithSearchMode(mode search.Mode) Option {
	return func(c *Controller) {
		c.searchMode = mode
	}
}

// WithLocale sets the collation language for description sorting.
func WithLocale(lang string) Option {
	return func(c *Controller) {
		c.storeOpts = append(c.storeOpts, ledger.WithCollator(ledger.NewCollator(lang)))
	}
}

// WithIDGenerator replaces the record id generator.
func WithIDGenerator(gen func() string) Option {
	return func(c *Controller) {
		c.storeOpts = append(c.storeOpts, ledger.WithIDGenerator(gen))
	}
}

// WithRetryOptions sets the retry policy for persistence writes.
func WithRetryOptions(opts service.RetryOptions) Option {
	return func(c *Controller) {
		c.retry = opts
	}
}

// DefaultRetryOptions retries a failed write once.
func DefaultRetryOptions() service.RetryOptions {
	return service.RetryOptions{
		MaxAttempts:  2,
		InitialDelay: 50 * time.Millisecond,
		MaxDelay:     time.Second,
		Multiplier:   2,
	}
}

// New loads the ledger from persist. Missing or unreadable settings fall back
// to the defaults; unreadable records are an error.
func New(ctx context.Context, persist service.LedgerStore, opts ...Option) (*Controller, error) {
	c := &Controller{
		persist:   persist,
		now:       time.Now,
		observers: make(map[int]func(Event)),
		retry:     DefaultRetryOptions(),
	}
	for _, opt := range opts {
		opt(c)
	}

	records, err := persist.LoadRecords(ctx)
	if err != nil {
		if errors.Is(err, common.ErrDatabaseCorrupted) {
			return nil, common.NewUserError("stored records could not be read; restore them from an export", err)
		}
		return nil, fmt.Errorf("failed to load records: %w", err)
	}

	settings, err := persist.LoadSettings(ctx)
	switch {
	case err == nil:
	case errors.Is(err, common.ErrNotFound):
		settings = model.DefaultSettings()
	case errors.Is(err, common.ErrDatabaseCorrupted):
		slog.Warn("Stored settings are unreadable, using defaults", "error", err)
		settings = model.DefaultSettings()
	default:
		return nil, fmt.Errorf("failed to load settings: %w", err)
	}

	c.records = ledger.NewStore(records, c.storeOpts...)
	c.settings = settings
	return c, nil
}

// AddRecord validates form and appends a new record.
func (c *Controller) AddRecord(ctx context.Context, form validation.Form) (model.Record, error) {
	if err := c.validator.ValidateRecord(form).Err(); err != nil {
		return model.Record{}, err
	}

	record, err := c.records.Create(form.Description, form.Amount, form.Category, form.Date)
	if err != nil {
		return model.Record{}, err
	}

	slog.Debug("Added record", "id", record.ID, "category", record.Category)
	c.notify(EventRecords)
	return record, c.saveRecords(ctx)
}

// UpdateRecord replaces the editable fields of an existing record.
func (c *Controller) UpdateRecord(ctx context.Context, id string, form validation.Form) (model.Record, error) {
	if _, ok := c.records.Find(id); !ok {
		return model.Record{}, fmt.Errorf("record %s: %w", id, common.ErrNotFound)
	}
	if err := c.validator.ValidateRecord(form).Err(); err != nil {
		return model.Record{}, err
	}

	record, err := c.records.Update(id, form.Description, form.Amount, form.Category, form.Date)
	if err != nil {
		return model.Record{}, err
	}

	c.notify(EventRecords)
	return record, c.saveRecords(ctx)
}

// DeleteRecord removes a record. An unknown id returns common.ErrNotFound and
// changes nothing.
func (c *Controller) DeleteRecord(ctx context.Context, id string) error {
	if err := c.records.Delete(id); err != nil {
		return err
	}

	slog.Debug("Deleted record", "id", id)
	c.notify(EventRecords)
	return c.saveRecords(ctx)
}

// Record returns the record with the given id.
func (c *Controller) Record(id string) (model.Record, bool) {
	return c.records.Find(id)
}

// Records returns a copy of every record in store order.
func (c *Controller) Records() []model.Record {
	return c.records.Records()
}

// Len returns the number of records.
func (c *Controller) Len() int {
	return c.records.Len()
}

// Sort reorders the store and persists the new order.
func (c *Controller) Sort(ctx context.Context, key ledger.SortKey) error {
	if err := c.records.SortBy(key); err != nil {
		return err
	}
	c.notify(EventRecords)
	return c.saveRecords(ctx)
}

// Search filters the records with the configured search mode.
func (c *Controller) Search(term string, caseSensitive bool) []search.Match {
	return search.Filter(c.records.Records(), search.Query{
		Term:          term,
		Mode:          c.searchMode,
		CaseSensitive: caseSensitive,
	})
}

// SearchMode reports how search terms are interpreted.
func (c *Controller) SearchMode() search.Mode {
	return c.searchMode
}

// Summary computes the dashboard over every record.
func (c *Controller) Summary() stats.Summary {
	return stats.Compute(c.records.Records(), c.settings, c.now())
}

// Settings returns a copy of the current settings.
func (c *Controller) Settings() model.Settings {
	return c.settings.Clone()
}

// UpdateSettings applies fn to a copy of the settings and keeps the result
// only when fn succeeds.
func (c *Controller) UpdateSettings(ctx context.Context, fn func(*model.Settings) error) error {
	next := c.settings.Clone()
	if err := fn(&next); err != nil {
		return err
	}
	c.settings = next

	c.notify(EventSettings)
	return c.saveSettings(ctx)
}

// AddCategory adds a category to the active set.
func (c *Controller) AddCategory(ctx context.Context, name string) error {
	if err := c.checkCategory(name); err != nil {
		return err
	}
	return c.UpdateSettings(ctx, func(s *model.Settings) error {
		return s.AddCategory(name)
	})
}

// RemoveCategory removes a category from the active set. Records keep their
// category string.
func (c *Controller) RemoveCategory(ctx context.Context, name string) error {
	return c.UpdateSettings(ctx, func(s *model.Settings) error {
		return s.RemoveCategory(name)
	})
}

// RenameCategory renames a category. With rewrite set, records filed under the
// old name move to the new one; the count of moved records is returned.
func (c *Controller) RenameCategory(ctx context.Context, oldName, newName string, rewrite bool) (int, error) {
	if err := c.checkCategory(newName); err != nil {
		return 0, err
	}

	next := c.settings.Clone()
	if err := next.RenameCategory(oldName, newName); err != nil {
		return 0, err
	}
	c.settings = next

	if !rewrite {
		c.notify(EventSettings)
		return 0, c.saveSettings(ctx)
	}

	moved := c.records.Recategorize(oldName, newName)
	c.notify(EventSettings | EventRecords)
	return moved, c.saveSnapshot(ctx)
}

func (c *Controller) checkCategory(name string) error {
	msg := validation.MsgRequired
	if name != "" {
		outcome := c.validator.Validate(validation.FieldCategory, name)
		if outcome.Valid {
			return nil
		}
		msg = outcome.Message
	}
	return &validation.FormError{Fields: map[validation.Field]string{validation.FieldCategory: msg}}
}

// Export writes the whole ledger as a transfer document.
func (c *Controller) Export(w io.Writer) error {
	return transfer.Export(w, c.records.Records(), c.settings)
}

// Import replaces the ledger with the contents of a transfer document. A
// rejected document leaves the current state untouched. Bare record arrays
// keep the current settings. It returns the number of imported records.
func (c *Controller) Import(ctx context.Context, r io.Reader) (int, error) {
	doc, err := transfer.Import(r)
	if err != nil {
		return 0, err
	}

	c.records.Replace(doc.Records)
	kind := EventRecords
	if doc.HasSettings {
		c.settings = doc.Settings
		kind |= EventSettings
	}

	slog.Info("Imported ledger", "records", len(doc.Records), "settings", doc.HasSettings)
	c.notify(kind)
	return len(doc.Records), c.saveSnapshot(ctx)
}

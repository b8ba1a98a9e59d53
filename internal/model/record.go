// Package model defines the core domain models used throughout the application.
package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// DateLayout is the calendar date form used for record dates and trend days.
const DateLayout = "2006-01-02"

func init() {
	// Amounts are exported as JSON numbers, matching the documents users import.
	decimal.MarshalJSONWithoutQuotes = true
}

// Record represents a single spending transaction.
type Record struct {
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
	Amount      decimal.Decimal `json:"amount"`
	ID          string          `json:"id"`
	Description string          `json:"description"`
	Category    string          `json:"category"`
	Date        string          `json:"date"` // YYYY-MM-DD
}

// Equal reports whether two records carry the same data.
func (r Record) Equal(other Record) bool {
	return r.ID == other.ID &&
		r.Description == other.Description &&
		r.Amount.Equal(other.Amount) &&
		r.Category == other.Category &&
		r.Date == other.Date &&
		r.CreatedAt.Equal(other.CreatedAt) &&
		r.UpdatedAt.Equal(other.UpdatedAt)
}

// CloneRecords returns a copy of the slice that shares no backing array.
func CloneRecords(records []Record) []Record {
	if records == nil {
		return nil
	}
	out := make([]Record, len(records))
	copy(out, records)
	return out
}

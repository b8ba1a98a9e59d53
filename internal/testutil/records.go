package testutil

import (
	"fmt"
	"time"

	"github.com/Veraticus/pocket/internal/model"
	"github.com/shopspring/decimal"
)

// FixedTime is the timestamp given to fixture records.
var FixedTime = time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)

// RecordBuilder builds record fixtures with sequential ids.
type RecordBuilder struct {
	records []model.Record
}

// NewRecordBuilder creates an empty builder.
func NewRecordBuilder() *RecordBuilder {
	return &RecordBuilder{}
}

// WithRecord appends a record. amount must be a valid decimal.
func (b *RecordBuilder) WithRecord(description, amount, category, date string) *RecordBuilder {
	b.records = append(b.records, model.Record{
		ID:          fmt.Sprintf("rec_%03d", len(b.records)+1),
		Description: description,
		Amount:      decimal.RequireFromString(amount),
		Category:    category,
		Date:        date,
		CreatedAt:   FixedTime,
		UpdatedAt:   FixedTime,
	})
	return b
}

// WithStudentMonth appends a small, varied set of records in March 2024.
func (b *RecordBuilder) WithStudentMonth() *RecordBuilder {
	return b.
		WithRecord("Campus cafe lunch", "8.50", "Food", "2024-03-01").
		WithRecord("Used calculus textbook", "45", "Books", "2024-03-02").
		WithRecord("Monthly bus pass", "30", "Transport", "2024-03-03").
		WithRecord("Movie night", "12.75", "Entertainment", "2024-03-05").
		WithRecord("Groceries for the week", "41.20", "Food", "2024-03-06")
}

// Build returns a copy of the collected records.
func (b *RecordBuilder) Build() []model.Record {
	return model.CloneRecords(b.records)
}

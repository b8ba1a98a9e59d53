// Package service defines the interfaces between the ledger controller and its collaborators.
package service

import (
	"context"
	"time"

	"github.com/Veraticus/pocket/internal/model"
)

// LedgerStore defines the contract for our persistence layer.
// Every write reports its outcome; callers decide the retry policy.
type LedgerStore interface {
	// Record operations
	LoadRecords(ctx context.Context) ([]model.Record, error)
	SaveRecords(ctx context.Context, records []model.Record) error

	// Settings operations
	LoadSettings(ctx context.Context) (model.Settings, error)
	SaveSettings(ctx context.Context, settings model.Settings) error

	// SaveSnapshot writes records and settings together, or neither.
	SaveSnapshot(ctx context.Context, records []model.Record, settings model.Settings) error

	Close() error
}

// RetryOptions configures retry behavior for operations.
type RetryOptions struct {
	MaxAttempts  int
	InitialDelay time.Duration
	MaxDelay     time.Duration
	Multiplier   float64
}

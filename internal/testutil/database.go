// Package testutil provides test helpers shared by the ledger's packages:
// an in-memory database, record fixtures and persistence doubles.
package testutil

import (
	"context"
	"testing"

	"github.com/Veraticus/pocket/internal/model"
	"github.com/Veraticus/pocket/internal/storage"
)

// TestDB represents a test database with associated test utilities.
type TestDB struct {
	Storage *storage.SQLiteStorage
	t       *testing.T
}

// SetupTestDB creates a new in-memory test database holding records.
// It automatically handles migrations and cleanup.
//
// Example:
//
//	db := testutil.SetupTestDB(t, testutil.NewRecordBuilder().
//		WithRecord("Lunch", "12.50", "Food", "2024-03-01").
//		Build()...)
func SetupTestDB(t *testing.T, records ...model.Record) *TestDB {
	t.Helper()

	store, err := storage.NewSQLiteStorage(":memory:")
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}

	ctx := context.Background()
	if err := store.Migrate(ctx); err != nil {
		t.Fatalf("failed to run migrations: %v", err)
	}

	if len(records) > 0 {
		if err := store.SaveRecords(ctx, records); err != nil {
			t.Fatalf("failed to seed records: %v", err)
		}
	}

	t.Cleanup(func() {
		_ = store.Close()
	})

	return &TestDB{
		Storage: store,
		t:       t,
	}
}

// WithSettings stores settings in the test database.
func (db *TestDB) WithSettings(settings model.Settings) *TestDB {
	db.t.Helper()
	if err := db.Storage.SaveSettings(context.Background(), settings); err != nil {
		db.t.Fatalf("failed to seed settings: %v", err)
	}
	return db
}

// MustRecords returns the records currently stored.
func (db *TestDB) MustRecords() []model.Record {
	db.t.Helper()
	records, err := db.Storage.LoadRecords(context.Background())
	if err != nil {
		db.t.Fatalf("failed to load records: %v", err)
	}
	return records
}

// MustSettings returns the settings currently stored.
func (db *TestDB) MustSettings() model.Settings {
	db.t.Helper()
	settings, err := db.Storage.LoadSettings(context.Background())
	if err != nil {
		db.t.Fatalf("failed to load settings: %v", err)
	}
	return settings
}

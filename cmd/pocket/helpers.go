package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/Veraticus/pocket/internal/app"
	"github.com/Veraticus/pocket/internal/cli"
	"github.com/Veraticus/pocket/internal/common"
	"github.com/Veraticus/pocket/internal/config"
	"github.com/Veraticus/pocket/internal/search"
	"github.com/Veraticus/pocket/internal/storage"
	"github.com/Veraticus/pocket/internal/validation"
)

// initStorage opens the database and brings its schema up to date.
func initStorage(ctx context.Context, cfg *config.Config) (*storage.SQLiteStorage, error) {
	store, err := storage.NewSQLiteStorage(cfg.DatabasePath)
	if err != nil {
		return nil, err
	}

	if err := store.Migrate(ctx); err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return store, nil
}

// openLedger loads the configuration and the ledger behind it. The returned
// function closes the database.
func openLedger(ctx context.Context, opts ...app.Option) (*app.Controller, func(), error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}

	mode, err := search.ParseMode(cfg.SearchMode)
	if err != nil {
		return nil, nil, err
	}

	store, err := initStorage(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}
	closeStore := func() {
		if err := store.Close(); err != nil {
			slog.Warn("Failed to close database", "error", err)
		}
	}

	base := []app.Option{
		app.WithSearchMode(mode),
		app.WithLocale(cfg.Locale),
		app.WithValidator(validation.Validator{StrictDates: cfg.StrictDates}),
	}
	ctrl, err := app.New(ctx, store, append(base, opts...)...)
	if err != nil {
		closeStore()
		return nil, nil, err
	}

	common.LogDebug("Opened ledger", common.Fields{
		"path":        store.Path(),
		"records":     ctrl.Len(),
		"search_mode": mode.String(),
	})
	return ctrl, closeStore, nil
}

// warnIfUnsaved turns a persistence failure into a warning: the change was
// applied but may not survive a restart. Other errors are returned.
func warnIfUnsaved(w io.Writer, err error) error {
	if err == nil {
		return nil
	}
	var persistErr *app.PersistError
	if errors.As(err, &persistErr) {
		fmt.Fprintln(w, cli.FormatWarning("Change applied but not saved: "+persistErr.Err.Error()))
		return nil
	}
	return err
}

// formErrorDetails prints one line per invalid field.
func formErrorDetails(w io.Writer, err error) error {
	var formErr *validation.FormError
	if !errors.As(err, &formErr) {
		return err
	}
	for _, field := range validation.Fields {
		if msg := formErr.Message(field); msg != "" {
			fmt.Fprintf(w, "  %s: %s\n", field, msg)
		}
	}
	return fmt.Errorf("record rejected: %w", err)
}

// suggestCategory prints a hint when category looks like a typo of an
// active category.
func suggestCategory(w io.Writer, category string, categories []string) {
	if suggestion, ok := validation.SuggestCategory(category, categories); ok {
		fmt.Fprintln(w, cli.FormatInfo(fmt.Sprintf("%q is not an active category. Did you mean %q?", category, suggestion)))
	}
}

package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"text/tabwriter"

	"github.com/Veraticus/pocket/internal/app"
	"github.com/Veraticus/pocket/internal/cli"
	"github.com/Veraticus/pocket/internal/common"
	"github.com/Veraticus/pocket/internal/ofx"
	"github.com/Veraticus/pocket/internal/validation"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

func importOFXCmd() *cobra.Command {
	var (
		category string
		dryRun   bool
	)

	cmd := &cobra.Command{
		Use:   "import-ofx [files...]",
		Short: "Import expenses from OFX/QFX bank statements",
		Long: `Import the debits of OFX or QFX statements exported from your bank as expenses.
Credits are skipped, as are debits already in the ledger with the same date,
description and amount.

Examples:
  # Import a single statement
  pocket import-ofx ~/Downloads/checking_march.qfx

  # Preview every statement in a directory
  pocket import-ofx --dry-run ~/Downloads/*.qfx`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			files, err := expandFiles(args)
			if err != nil {
				return err
			}

			drafts, accounts, err := parseStatements(cmd.Context(), files)
			if err != nil {
				return err
			}
			if len(drafts) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), cli.FormatInfo("No debits found in the given statements"))
				return nil
			}

			if dryRun {
				return previewDrafts(cmd.OutOrStdout(), drafts, accounts, category)
			}
			return importDrafts(cmd, drafts, category)
		},
	}

	cmd.Flags().StringVarP(&category, "category", "c", "Other", "category for debits without a suggested one")
	cmd.Flags().BoolVarP(&dryRun, "dry-run", "d", false, "preview the import without saving")

	return cmd
}

// expandFiles resolves glob patterns, keeping plain paths that exist.
func expandFiles(patterns []string) ([]string, error) {
	var files []string
	for _, pattern := range patterns {
		matches, err := filepath.Glob(pattern)
		if err != nil {
			return nil, fmt.Errorf("invalid pattern %s: %w", pattern, err)
		}
		if len(matches) == 0 {
			if _, err := os.Stat(pattern); err == nil {
				files = append(files, pattern)
			} else {
				slog.Warn("No files found matching pattern", "pattern", pattern)
			}
			continue
		}
		files = append(files, matches...)
	}

	if len(files) == 0 {
		return nil, errors.New("no files found to import")
	}
	return files, nil
}

// parseStatements reads every file, skipping unreadable ones, and drops
// transactions that appear in more than one statement. It also returns the
// distinct account ids found across the statements.
func parseStatements(ctx context.Context, files []string) ([]ofx.Draft, []string, error) {
	parser := ofx.NewParser()
	seen := make(map[string]bool)
	seenAccounts := make(map[string]bool)
	var (
		drafts   []ofx.Draft
		accounts []string
	)

	for _, path := range files {
		if err := ctx.Err(); err != nil {
			return nil, nil, err
		}

		data, err := os.ReadFile(path)
		if err != nil {
			slog.Error("Failed to open file", "file", path, "error", err)
			continue
		}
		parsed, err := parser.ParseFile(ctx, bytes.NewReader(data))
		if err != nil {
			slog.Error("Failed to parse OFX file", "file", path, "error", err)
			continue
		}

		ids, err := parser.GetAccounts(ctx, bytes.NewReader(data))
		if err != nil {
			slog.Warn("Failed to read statement accounts", "file", path, "error", err)
		}
		for _, id := range ids {
			if !seenAccounts[id] {
				seenAccounts[id] = true
				accounts = append(accounts, id)
			}
		}

		added := 0
		for _, d := range parsed {
			key := d.Account + "/" + d.FITID
			if d.FITID != "" && seen[key] {
				continue
			}
			seen[key] = true
			drafts = append(drafts, d)
			added++
		}
		common.LogInfo("Processed file", common.Fields{
			"file":       filepath.Base(path),
			"debits":     len(parsed),
			"added":      added,
			"duplicates": len(parsed) - added,
		})
	}

	return drafts, accounts, nil
}

func draftForm(d ofx.Draft, fallbackCategory string) validation.Form {
	category := d.Category
	if category == "" {
		category = fallbackCategory
	}
	return validation.Form{
		Description: d.Description,
		Amount:      d.Amount.StringFixed(2),
		Category:    category,
		Date:        d.Date,
	}
}

func previewDrafts(w io.Writer, drafts []ofx.Draft, accounts []string, fallbackCategory string) error {
	if len(accounts) > 0 {
		fmt.Fprintf(w, "Accounts: %s\n", strings.Join(accounts, ", "))
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "DATE\tDESCRIPTION\tCATEGORY\tAMOUNT\tACCOUNT")

	total := decimal.Zero
	for _, d := range drafts {
		form := draftForm(d, fallbackCategory)
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", form.Date, form.Description, form.Category, form.Amount, d.Account)
		total = total.Add(d.Amount)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	fmt.Fprintln(w, cli.FormatInfo(fmt.Sprintf("Dry run: %d debits totalling %s, nothing saved", len(drafts), total.StringFixed(2))))
	return nil
}

func importDrafts(cmd *cobra.Command, drafts []ofx.Draft, fallbackCategory string) error {
	out := cmd.OutOrStdout()

	ctrl, closeStore, err := openLedger(cmd.Context())
	if err != nil {
		return err
	}
	defer closeStore()

	suggestCategory(out, fallbackCategory, ctrl.Settings().Categories)

	var added atomic.Int64
	handler := cli.NewInterruptHandler(cmd.ErrOrStderr(), "Import")
	ctx := handler.HandleInterrupts(cmd.Context(), func() string {
		return fmt.Sprintf("%d expenses were added before stopping", added.Load())
	})

	existing := make(map[string]bool, ctrl.Len())
	for _, r := range ctrl.Records() {
		existing[recordKey(r.Date, r.Description, r.Amount)] = true
	}

	bar := cli.NewProgressBar(cmd.ErrOrStderr(), len(drafts), "Importing")
	var skipped, known, unsaved int
	for _, d := range drafts {
		if ctx.Err() != nil {
			break
		}
		_ = bar.Add(1)

		if existing[recordKey(d.Date, d.Description, d.Amount)] {
			known++
			continue
		}

		rec, err := ctrl.AddRecord(ctx, draftForm(d, fallbackCategory))
		var formErr *validation.FormError
		var persistErr *app.PersistError
		switch {
		case errors.As(err, &formErr):
			skipped++
			slog.Warn("Skipping debit", "description", d.Description, "date", d.Date, "error", formErr)
			continue
		case errors.As(err, &persistErr):
			unsaved++
		case err != nil:
			return err
		}

		existing[recordKey(rec.Date, rec.Description, rec.Amount)] = true
		added.Add(1)
	}

	if handler.WasInterrupted() {
		return nil
	}

	fmt.Fprintln(out, cli.FormatSuccess(fmt.Sprintf("Imported %d expenses", added.Load())))
	if known > 0 {
		fmt.Fprintln(out, cli.FormatInfo(fmt.Sprintf("%d already in the ledger", known)))
	}
	if skipped > 0 {
		fmt.Fprintln(out, cli.FormatWarning(fmt.Sprintf("%d debits could not be used as expenses (see log)", skipped)))
	}
	if unsaved > 0 {
		fmt.Fprintln(out, cli.FormatWarning(fmt.Sprintf("%d expenses were added but not saved", unsaved)))
	}
	return nil
}

func recordKey(date, description string, amount decimal.Decimal) string {
	return date + "|" + description + "|" + amount.StringFixed(2)
}

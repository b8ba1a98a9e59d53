package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/Veraticus/pocket/internal/cli"
	"github.com/Veraticus/pocket/internal/common"
	"github.com/Veraticus/pocket/internal/transfer"
	"github.com/spf13/cobra"
)

func exportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "export [file]",
		Short: "Export the ledger as JSON",
		Long: `Write every expense and the settings as one JSON document, to a file or to
standard output. The document can be read back with 'pocket import'.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctrl, closeStore, err := openLedger(cmd.Context())
			if err != nil {
				return err
			}
			defer closeStore()

			if len(args) == 0 {
				return ctrl.Export(cmd.OutOrStdout())
			}

			f, err := os.Create(args[0])
			if err != nil {
				return fmt.Errorf("failed to create export file: %w", err)
			}
			if err := ctrl.Export(f); err != nil {
				_ = f.Close()
				return err
			}
			if err := f.Close(); err != nil {
				return fmt.Errorf("failed to write export file: %w", err)
			}

			fmt.Fprintln(cmd.ErrOrStderr(), cli.FormatSuccess(fmt.Sprintf("Exported %d expenses to %s", ctrl.Len(), args[0])))
			return nil
		},
	}
}

func importCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Replace the ledger with an exported JSON document",
		Long: `Replace every expense with the contents of a document written by 'pocket export'.
A plain JSON array of expenses is also accepted and keeps the current settings.
Nothing changes when the document is rejected.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out := cmd.OutOrStdout()

			f, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("failed to open import file: %w", err)
			}
			defer f.Close()

			ctrl, closeStore, err := openLedger(ctx)
			if err != nil {
				return err
			}
			defer closeStore()

			if !force && ctrl.Len() > 0 {
				question := fmt.Sprintf("Replace all %d expenses with the contents of %s?", ctrl.Len(), args[0])
				confirmed, err := cli.Confirm(ctx, cli.NewNonBlockingReader(cmd.InOrStdin()), out, question)
				if err != nil {
					return err
				}
				if !confirmed {
					fmt.Fprintln(out, cli.FormatInfo("Nothing imported"))
					return nil
				}
			}

			n, err := ctrl.Import(ctx, f)
			if errors.Is(err, transfer.ErrInvalidDocument) {
				return common.NewUserError("import rejected, the ledger is unchanged", err)
			}
			if err := warnIfUnsaved(out, err); err != nil {
				return err
			}

			fmt.Fprintln(out, cli.FormatSuccess(fmt.Sprintf("Imported %d expenses", n)))
			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "replace without asking")

	return cmd
}

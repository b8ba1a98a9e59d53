package main

import (
	"fmt"
	"time"

	"github.com/Veraticus/pocket/internal/cli"
	"github.com/Veraticus/pocket/internal/common"
	"github.com/Veraticus/pocket/internal/model"
	"github.com/Veraticus/pocket/internal/validation"
	"github.com/spf13/cobra"
)

func addCmd() *cobra.Command {
	var form validation.Form

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Record a new expense",
		Long: `Record a new expense. Every field is required; the date defaults to today.

Examples:
  pocket add -d "Campus cafe lunch" -a 8.50 -c Food
  pocket add -d "Used textbook" -a 45 -c Books --date 2024-03-02`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			out := cmd.OutOrStdout()

			ctrl, closeStore, err := openLedger(ctx)
			if err != nil {
				return err
			}
			defer closeStore()

			if form.Date == "" {
				form.Date = time.Now().Format(model.DateLayout)
			}

			rec, err := ctrl.AddRecord(ctx, form)
			if err = warnIfUnsaved(out, err); err != nil {
				return formErrorDetails(out, err)
			}

			fmt.Fprintln(out, cli.FormatSuccess(fmt.Sprintf("Added %s (%s)", rec.ID, cli.FormatAmount(rec.Amount, ctrl.Settings()))))
			suggestCategory(out, rec.Category, ctrl.Settings().Categories)
			return nil
		},
	}

	cmd.Flags().StringVarP(&form.Description, "description", "d", "", "what the money was spent on")
	cmd.Flags().StringVarP(&form.Amount, "amount", "a", "", "amount in the base currency, e.g. 12.50")
	cmd.Flags().StringVarP(&form.Category, "category", "c", "", "spending category")
	cmd.Flags().StringVar(&form.Date, "date", "", "date as YYYY-MM-DD (default: today)")

	return cmd
}

func editCmd() *cobra.Command {
	var form validation.Form

	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Change an existing expense",
		Long:  `Change fields of an existing expense. Fields that are not given keep their current value.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out := cmd.OutOrStdout()

			ctrl, closeStore, err := openLedger(ctx)
			if err != nil {
				return err
			}
			defer closeStore()

			current, ok := ctrl.Record(args[0])
			if !ok {
				return common.NewUserError(fmt.Sprintf("no record with id %q", args[0]), common.ErrNotFound)
			}

			flags := cmd.Flags()
			if !flags.Changed("description") {
				form.Description = current.Description
			}
			if !flags.Changed("amount") {
				form.Amount = current.Amount.String()
			}
			if !flags.Changed("category") {
				form.Category = current.Category
			}
			if !flags.Changed("date") {
				form.Date = current.Date
			}

			rec, err := ctrl.UpdateRecord(ctx, current.ID, form)
			if err = warnIfUnsaved(out, err); err != nil {
				return formErrorDetails(out, err)
			}

			fmt.Fprintln(out, cli.FormatSuccess("Updated "+rec.ID))
			suggestCategory(out, rec.Category, ctrl.Settings().Categories)
			return nil
		},
	}

	cmd.Flags().StringVarP(&form.Description, "description", "d", "", "new description")
	cmd.Flags().StringVarP(&form.Amount, "amount", "a", "", "new amount")
	cmd.Flags().StringVarP(&form.Category, "category", "c", "", "new category")
	cmd.Flags().StringVar(&form.Date, "date", "", "new date as YYYY-MM-DD")

	return cmd
}

func deleteCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete an expense",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out := cmd.OutOrStdout()

			ctrl, closeStore, err := openLedger(ctx)
			if err != nil {
				return err
			}
			defer closeStore()

			rec, ok := ctrl.Record(args[0])
			if !ok {
				return common.NewUserError(fmt.Sprintf("no record with id %q", args[0]), common.ErrNotFound)
			}

			if !force {
				question := fmt.Sprintf("Delete %q (%s)?", rec.Description, cli.FormatMoney(rec.Amount, ctrl.Settings().BaseCurrency))
				confirmed, err := cli.Confirm(ctx, cli.NewNonBlockingReader(cmd.InOrStdin()), out, question)
				if err != nil {
					return err
				}
				if !confirmed {
					fmt.Fprintln(out, cli.FormatInfo("Nothing deleted"))
					return nil
				}
			}

			if err := warnIfUnsaved(out, ctrl.DeleteRecord(ctx, rec.ID)); err != nil {
				return err
			}
			fmt.Fprintln(out, cli.FormatSuccess("Deleted "+rec.ID))
			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "delete without asking")

	return cmd
}

func showCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show one expense",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctrl, closeStore, err := openLedger(cmd.Context())
			if err != nil {
				return err
			}
			defer closeStore()

			rec, ok := ctrl.Record(args[0])
			if !ok {
				return common.NewUserError(fmt.Sprintf("no record with id %q", args[0]), common.ErrNotFound)
			}
			return cli.WriteRecord(cmd.OutOrStdout(), rec, ctrl.Settings())
		},
	}
}

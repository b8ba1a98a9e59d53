package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/Veraticus/pocket/internal/cli"
	"github.com/Veraticus/pocket/internal/stats"
	"github.com/Veraticus/pocket/internal/tui/themes"
	"github.com/spf13/cobra"
)

func categoriesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "categories",
		Short: "Manage spending categories",
		Long:  `List, add, remove, and rename the categories offered when recording expenses.`,
	}

	cmd.AddCommand(listCategoriesCmd())
	cmd.AddCommand(addCategoryCmd())
	cmd.AddCommand(removeCategoryCmd())
	cmd.AddCommand(renameCategoryCmd())

	return cmd
}

func listCategoriesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all categories",
		Long:  `Display the active categories with how much has been spent in each.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctrl, closeStore, err := openLedger(cmd.Context())
			if err != nil {
				return err
			}
			defer closeStore()

			settings := ctrl.Settings()
			totals := make(map[string]stats.CategoryTotal)
			for _, t := range stats.CategoryTotals(ctrl.Records()) {
				totals[t.Category] = t
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)

			fmt.Fprintf(w, "%s\t%s\t%s\n",
				cli.BoldStyle.Render("Category"),
				cli.BoldStyle.Render("Records"),
				cli.BoldStyle.Render("Spent"))
			for _, name := range settings.Categories {
				t := totals[name]
				fmt.Fprintf(w, "%s %s\t%d\t%s\n", themes.GetCategoryIcon(name), name, t.Count, cli.FormatMoney(t.Total, settings.BaseCurrency))
			}
			return w.Flush()
		},
	}
}

func addCategoryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "add <name>",
		Short: "Add a new category",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctrl, closeStore, err := openLedger(cmd.Context())
			if err != nil {
				return err
			}
			defer closeStore()

			out := cmd.OutOrStdout()
			if err := warnIfUnsaved(out, ctrl.AddCategory(cmd.Context(), args[0])); err != nil {
				return formErrorDetails(out, err)
			}
			fmt.Fprintln(out, cli.FormatSuccess(fmt.Sprintf("Added category %q", args[0])))
			return nil
		},
	}
}

func removeCategoryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remove <name>",
		Short: "Remove a category",
		Long:  `Remove a category from the active list. Expenses filed under it keep their category.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctrl, closeStore, err := openLedger(cmd.Context())
			if err != nil {
				return err
			}
			defer closeStore()

			out := cmd.OutOrStdout()
			if err := warnIfUnsaved(out, ctrl.RemoveCategory(cmd.Context(), args[0])); err != nil {
				return err
			}
			fmt.Fprintln(out, cli.FormatSuccess(fmt.Sprintf("Removed category %q", args[0])))
			return nil
		},
	}
}

func renameCategoryCmd() *cobra.Command {
	var rewrite bool

	cmd := &cobra.Command{
		Use:   "rename <old> <new>",
		Short: "Rename a category",
		Long:  `Rename a category. With --rewrite, expenses filed under the old name move to the new one.`,
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctrl, closeStore, err := openLedger(cmd.Context())
			if err != nil {
				return err
			}
			defer closeStore()

			out := cmd.OutOrStdout()
			moved, err := ctrl.RenameCategory(cmd.Context(), args[0], args[1], rewrite)
			if err := warnIfUnsaved(out, err); err != nil {
				return formErrorDetails(out, err)
			}

			fmt.Fprintln(out, cli.FormatSuccess(fmt.Sprintf("Renamed %q to %q", args[0], args[1])))
			if rewrite {
				fmt.Fprintf(out, "  %d expenses moved\n", moved)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&rewrite, "rewrite", false, "move existing expenses to the new name")

	return cmd
}

package main

import (
	"fmt"

	"github.com/Veraticus/pocket/internal/app"
	"github.com/Veraticus/pocket/internal/cli"
	"github.com/Veraticus/pocket/internal/ledger"
	"github.com/Veraticus/pocket/internal/search"
	"github.com/spf13/cobra"
)

func listCmd() *cobra.Command {
	var (
		term          string
		sortKey       string
		caseSensitive bool
		pattern       bool
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List expenses",
		Long: `List expenses in their stored order. --search keeps records whose description,
category, amount or date contains the term and highlights matches in the
description and category. --sort reorders the
ledger and keeps the new order.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			out := cmd.OutOrStdout()

			var opts []app.Option
			if pattern {
				opts = append(opts, app.WithSearchMode(search.ModePattern))
			}
			ctrl, closeStore, err := openLedger(ctx, opts...)
			if err != nil {
				return err
			}
			defer closeStore()

			if sortKey != "" {
				key, err := ledger.ParseSortKey(sortKey)
				if err != nil {
					return err
				}
				if err := warnIfUnsaved(out, ctrl.Sort(ctx, key)); err != nil {
					return err
				}
			}

			if ctrl.Len() == 0 {
				fmt.Fprintln(out, cli.InfoStyle.Render("No expenses yet. Use 'pocket add' to record one."))
				return nil
			}

			matches := ctrl.Search(term, caseSensitive)
			if len(matches) == 0 {
				fmt.Fprintln(out, cli.InfoStyle.Render(fmt.Sprintf("No expenses match %q.", term)))
				return nil
			}

			var mark func(string) string
			if term != "" {
				mark = cli.MarkMatch
			}
			if err := cli.WriteRecords(out, matches, ctrl.Settings(), mark); err != nil {
				return err
			}
			if term != "" {
				fmt.Fprintln(out, cli.SubtleStyle.Render(fmt.Sprintf("%d of %d expenses", len(matches), ctrl.Len())))
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&term, "search", "s", "", "only show expenses matching this term")
	cmd.Flags().BoolVar(&caseSensitive, "case-sensitive", false, "match the search term case-sensitively")
	cmd.Flags().BoolVar(&pattern, "pattern", false, "treat the search term as a regular expression")
	cmd.Flags().StringVar(&sortKey, "sort", "", "reorder by date, description, or amount")

	return cmd
}

func statsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show totals, budget status and the last seven days",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctrl, closeStore, err := openLedger(cmd.Context())
			if err != nil {
				return err
			}
			defer closeStore()

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, cli.FormatTitle("Spending summary"))
			return cli.WriteSummary(out, ctrl.Summary(), ctrl.Settings())
		},
	}
}

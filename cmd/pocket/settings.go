package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/Veraticus/pocket/internal/cli"
	"github.com/Veraticus/pocket/internal/model"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

func settingsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "View and change ledger settings",
		Long:  `View and change the spending cap, the base currency and the auxiliary display currencies.`,
	}

	cmd.AddCommand(showSettingsCmd())
	cmd.AddCommand(setCapCmd())
	cmd.AddCommand(setCurrencyCmd())
	cmd.AddCommand(rateCmd())

	return cmd
}

func showSettingsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the current settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctrl, closeStore, err := openLedger(cmd.Context())
			if err != nil {
				return err
			}
			defer closeStore()

			s := ctrl.Settings()
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)

			spendingCap := cli.SubtleStyle.Render("none")
			if s.HasCap() {
				spendingCap = cli.FormatMoney(s.SpendingCap, s.BaseCurrency)
			}
			fmt.Fprintf(w, "Spending cap:\t%s\n", spendingCap)
			fmt.Fprintf(w, "Base currency:\t%s\n", s.BaseCurrency)
			if len(s.ExchangeRates) == 0 {
				fmt.Fprintf(w, "Exchange rates:\t%s\n", cli.SubtleStyle.Render("none"))
			}
			for i, r := range s.ExchangeRates {
				label := ""
				if i == 0 {
					label = "Exchange rates:"
				}
				fmt.Fprintf(w, "%s\t1 %s = %s %s\n", label, s.BaseCurrency, r.Rate, r.Currency)
			}
			fmt.Fprintf(w, "Categories:\t%s\n", strings.Join(s.Categories, ", "))
			return w.Flush()
		},
	}
}

func setCapCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "cap <amount>",
		Short: "Set the spending cap (0 removes it)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			limit, err := decimal.NewFromString(args[0])
			if err != nil {
				return fmt.Errorf("invalid amount %q: %w", args[0], err)
			}

			ctrl, closeStore, err := openLedger(cmd.Context())
			if err != nil {
				return err
			}
			defer closeStore()

			out := cmd.OutOrStdout()
			err = ctrl.UpdateSettings(cmd.Context(), func(s *model.Settings) error {
				return s.SetSpendingCap(limit)
			})
			if err := warnIfUnsaved(out, err); err != nil {
				return err
			}

			if limit.IsZero() {
				fmt.Fprintln(out, cli.FormatSuccess("Spending cap removed"))
				return nil
			}
			fmt.Fprintln(out, cli.FormatSuccess("Spending cap set to "+cli.FormatMoney(limit, ctrl.Settings().BaseCurrency)))
			return nil
		},
	}
}

func setCurrencyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "currency <code>",
		Short: "Set the base currency (ISO 4217 code)",
		Long:  `Set the currency amounts are entered in. Stored amounts are not converted.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctrl, closeStore, err := openLedger(cmd.Context())
			if err != nil {
				return err
			}
			defer closeStore()

			out := cmd.OutOrStdout()
			err = ctrl.UpdateSettings(cmd.Context(), func(s *model.Settings) error {
				return s.SetBaseCurrency(args[0])
			})
			if err := warnIfUnsaved(out, err); err != nil {
				return err
			}
			fmt.Fprintln(out, cli.FormatSuccess("Base currency set to "+ctrl.Settings().BaseCurrency))
			return nil
		},
	}
}

func rateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rate",
		Short: "Manage auxiliary display currencies",
		Long: fmt.Sprintf(`Amounts can also be shown in up to %d other currencies, converted with a
fixed rate per unit of the base currency.`, model.MaxExchangeRates),
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "set <code> <rate>",
		Short: "Add or change a display currency",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			rate, err := decimal.NewFromString(args[1])
			if err != nil {
				return fmt.Errorf("invalid rate %q: %w", args[1], err)
			}

			ctrl, closeStore, err := openLedger(cmd.Context())
			if err != nil {
				return err
			}
			defer closeStore()

			out := cmd.OutOrStdout()
			err = ctrl.UpdateSettings(cmd.Context(), func(s *model.Settings) error {
				return s.SetExchangeRate(args[0], rate)
			})
			if err := warnIfUnsaved(out, err); err != nil {
				return err
			}
			fmt.Fprintln(out, cli.FormatSuccess(fmt.Sprintf("1 %s = %s %s", ctrl.Settings().BaseCurrency, rate, strings.ToUpper(args[0]))))
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "remove <code>",
		Short: "Stop showing a display currency",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctrl, closeStore, err := openLedger(cmd.Context())
			if err != nil {
				return err
			}
			defer closeStore()

			out := cmd.OutOrStdout()
			err = ctrl.UpdateSettings(cmd.Context(), func(s *model.Settings) error {
				return s.RemoveExchangeRate(args[0])
			})
			if err := warnIfUnsaved(out, err); err != nil {
				return err
			}
			fmt.Fprintln(out, cli.FormatSuccess("Removed "+strings.ToUpper(args[0])))
			return nil
		},
	})

	return cmd
}

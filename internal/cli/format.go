package cli

import (
	"fmt"
	"io"
	"math"
	"strings"
	"text/tabwriter"

	"github.com/Rhymond/go-money"
	"github.com/Veraticus/pocket/internal/model"
	"github.com/Veraticus/pocket/internal/search"
	"github.com/Veraticus/pocket/internal/stats"
	"github.com/shopspring/decimal"
)

// FormatMoney renders amount in currency using the currency's symbol,
// separators and minor units. Unknown codes still render with the code.
func FormatMoney(amount decimal.Decimal, currency string) string {
	// money.New never returns a nil currency, unlike money.GetCurrency.
	cur := *money.New(0, strings.ToUpper(currency)).Currency()
	minor := amount.Round(int32(cur.Fraction)).Shift(int32(cur.Fraction))
	return cur.Formatter().Format(minor.IntPart())
}

// FormatAmount renders amount in the base currency followed by each
// auxiliary currency, e.g. "$12.50 (€11.50)".
func FormatAmount(amount decimal.Decimal, settings model.Settings) string {
	out := FormatMoney(amount, settings.BaseCurrency)
	if len(settings.ExchangeRates) == 0 {
		return out
	}
	converted := make([]string, len(settings.ExchangeRates))
	for i, rate := range settings.ExchangeRates {
		converted[i] = FormatMoney(amount.Mul(rate.Rate), rate.Currency)
	}
	return out + " (" + strings.Join(converted, ", ") + ")"
}

// Bar draws a horizontal bar of up to width cells for a ratio in [0, 1].
// Any positive ratio gets at least one cell.
func Bar(ratio float64, width int) string {
	if width <= 0 || ratio <= 0 {
		return ""
	}
	cells := int(math.Round(math.Min(ratio, 1) * float64(width)))
	if cells == 0 {
		cells = 1
	}
	return strings.Repeat("█", cells)
}

// WriteRecords prints matches as an aligned table. mark highlights matched
// spans; pass nil to print plain text.
func WriteRecords(w io.Writer, matches []search.Match, settings model.Settings, mark func(string) string) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	if _, err := fmt.Fprintln(tw, "ID\tDATE\tDESCRIPTION\tCATEGORY\tAMOUNT"); err != nil {
		return err
	}
	for _, m := range matches {
		description, category := m.Record.Description, m.Record.Category
		if mark != nil {
			description = search.Highlight(description, m.Description, mark)
			category = search.Highlight(category, m.Category, mark)
		}
		if _, err := fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
			m.Record.ID, m.Record.Date, description, category,
			FormatAmount(m.Record.Amount, settings)); err != nil {
			return err
		}
	}
	return tw.Flush()
}

// WriteRecord prints one record as labelled lines.
func WriteRecord(w io.Writer, r model.Record, settings model.Settings) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "ID:\t%s\n", r.ID)
	fmt.Fprintf(tw, "Description:\t%s\n", r.Description)
	fmt.Fprintf(tw, "Amount:\t%s\n", FormatAmount(r.Amount, settings))
	fmt.Fprintf(tw, "Category:\t%s\n", r.Category)
	fmt.Fprintf(tw, "Date:\t%s\n", r.Date)
	fmt.Fprintf(tw, "Created:\t%s\n", r.CreatedAt.Local().Format("2006-01-02 15:04:05"))
	fmt.Fprintf(tw, "Updated:\t%s\n", r.UpdatedAt.Local().Format("2006-01-02 15:04:05"))
	return tw.Flush()
}

// BudgetLine describes the budget position in words.
func BudgetLine(b stats.Budget, settings model.Settings) string {
	switch b.State {
	case stats.BudgetRemaining:
		return fmt.Sprintf("%s remaining of %s", FormatAmount(b.Amount, settings), FormatMoney(b.Cap, settings.BaseCurrency))
	case stats.BudgetOver:
		return fmt.Sprintf("%s over budget (cap %s)", FormatAmount(b.Amount, settings), FormatMoney(b.Cap, settings.BaseCurrency))
	default:
		return b.State.String()
	}
}

// WriteSummary prints the dashboard figures and the seven-day trend.
func WriteSummary(w io.Writer, s stats.Summary, settings model.Settings) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Records:\t%d\n", s.TotalCount)
	fmt.Fprintf(tw, "Total spent:\t%s\n", FormatAmount(s.TotalSpent, settings))
	if s.HasTopCategory {
		fmt.Fprintf(tw, "Top category:\t%s (%s)\n", s.TopCategory, FormatMoney(s.TopCategoryAmount, settings.BaseCurrency))
	} else {
		fmt.Fprintf(tw, "Top category:\t-\n")
	}
	budget := BudgetLine(s.Budget, settings)
	if s.Budget.State == stats.BudgetOver {
		budget = ErrorStyle.Render(budget)
	}
	fmt.Fprintf(tw, "Budget:\t%s\n", budget)
	if err := tw.Flush(); err != nil {
		return err
	}

	if len(s.ByCategory) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, BoldStyle.Render("By category"))
		tw = tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
		for _, c := range s.ByCategory {
			fmt.Fprintf(tw, "  %s\t%d\t%s\n", c.Category, c.Count, FormatMoney(c.Total, settings.BaseCurrency))
		}
		if err := tw.Flush(); err != nil {
			return err
		}
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, BoldStyle.Render("Last 7 days"))
	tw = tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	for _, d := range s.Trend {
		fmt.Fprintf(tw, "  %s\t%s\t%s\t%s\n", d.Label, d.Date, FormatMoney(d.Total, settings.BaseCurrency), BarStyle.Render(Bar(d.Ratio, 20)))
	}
	return tw.Flush()
}

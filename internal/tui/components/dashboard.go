package components

import (
	"fmt"
	"strings"

	"github.com/Veraticus/pocket/internal/cli"
	"github.com/Veraticus/pocket/internal/model"
	"github.com/Veraticus/pocket/internal/stats"
	"github.com/Veraticus/pocket/internal/tui/themes"
)

const barWidth = 16

// DashboardModel renders the aggregate panel next to the record list.
type DashboardModel struct {
	theme    themes.Theme
	summary  stats.Summary
	settings model.Settings
	width    int
}

// NewDashboard creates a dashboard panel.
func NewDashboard(theme themes.Theme, width int) DashboardModel {
	return DashboardModel{theme: theme, width: width, settings: model.DefaultSettings()}
}

// SetSummary replaces the figures shown.
func (d *DashboardModel) SetSummary(summary stats.Summary, settings model.Settings) {
	d.summary = summary
	d.settings = settings
}

// SetWidth updates the panel width.
func (d *DashboardModel) SetWidth(width int) {
	d.width = width
}

// View renders the panel.
func (d DashboardModel) View() string {
	s := d.summary
	currency := d.settings.BaseCurrency

	var b strings.Builder
	b.WriteString(d.theme.Title.Render(cli.ChartIcon+" Dashboard") + "\n\n")
	fmt.Fprintf(&b, "Records      %d\n", s.TotalCount)
	fmt.Fprintf(&b, "Total spent  %s\n", cli.FormatMoney(s.TotalSpent, currency))
	for _, rate := range d.settings.ExchangeRates {
		fmt.Fprintf(&b, "             %s\n", cli.FormatMoney(s.TotalSpent.Mul(rate.Rate), rate.Currency))
	}
	if s.HasTopCategory {
		fmt.Fprintf(&b, "Top          %s %s\n", s.TopCategory, cli.FormatMoney(s.TopCategoryAmount, currency))
	} else {
		b.WriteString("Top          -\n")
	}

	budget := cli.BudgetLine(s.Budget, d.settings)
	switch s.Budget.State {
	case stats.BudgetOver:
		budget = d.theme.StatusError.Render(budget)
	case stats.BudgetRemaining:
		budget = d.theme.StatusSuccess.Render(budget)
	default:
		budget = d.theme.Subtitle.Render(budget)
	}
	b.WriteString("Budget       " + budget + "\n\n")

	b.WriteString(d.theme.Bold.Render("Last 7 days") + "\n")
	for i, day := range s.Trend {
		fmt.Fprintf(&b, "%s %s %s", day.Label, d.theme.Bar.Render(pad(cli.Bar(day.Ratio, barWidth), barWidth)), cli.FormatMoney(day.Total, currency))
		if i < len(s.Trend)-1 {
			b.WriteString("\n")
		}
	}

	style := d.theme.BorderedBox
	if d.width > 0 {
		style = style.Width(d.width)
	}
	return style.Render(b.String())
}

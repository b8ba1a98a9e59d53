// Package stats computes dashboard aggregates over the whole ledger.
package stats

import (
	"time"

	"github.com/Veraticus/pocket/internal/model"
	"github.com/shopspring/decimal"
)

// TrendDays is the length of the rolling trend window, today included.
const TrendDays = 7

// BudgetState describes spending relative to the cap.
type BudgetState int

// Budget states.
const (
	BudgetNoCap BudgetState = iota
	BudgetRemaining
	BudgetOver
)

func (s BudgetState) String() string {
	switch s {
	case BudgetRemaining:
		return "remaining"
	case BudgetOver:
		return "over budget"
	default:
		return "no cap configured"
	}
}

// Budget is the spending position against the cap. Amount is what is left in
// the remaining state and the overage in the over-budget state.
type Budget struct {
	Amount decimal.Decimal
	Cap    decimal.Decimal
	State  BudgetState
}

// CategoryTotal is the summed amount of one category.
type CategoryTotal struct {
	Total    decimal.Decimal
	Category string
	Count    int
}

// Day is one bar of the trend chart.
type Day struct {
	Total decimal.Decimal
	Date  string // YYYY-MM-DD
	Label string // short weekday
	Ratio float64
}

// Summary holds every dashboard figure.
type Summary struct {
	TotalSpent        decimal.Decimal
	TopCategoryAmount decimal.Decimal
	Budget            Budget
	TopCategory       string
	ByCategory        []CategoryTotal
	Trend             []Day
	TotalCount        int
	HasTopCategory    bool
}

// Compute derives a fresh Summary from the full record list. It keeps no state
// between calls.
func Compute(records []model.Record, settings model.Settings, today time.Time) Summary {
	total := decimal.Zero
	for _, r := range records {
		total = total.Add(r.Amount)
	}

	byCategory := CategoryTotals(records)

	s := Summary{
		TotalCount: len(records),
		TotalSpent: total,
		ByCategory: byCategory,
		Budget:     BudgetStatus(settings.SpendingCap, total),
		Trend:      Trend(records, today),
	}
	if name, amount, ok := topCategory(byCategory); ok {
		s.TopCategory = name
		s.TopCategoryAmount = amount
		s.HasTopCategory = true
	}
	return s
}

// CategoryTotals sums amounts per category in order of first appearance.
func CategoryTotals(records []model.Record) []CategoryTotal {
	index := make(map[string]int)
	var totals []CategoryTotal
	for _, r := range records {
		i, ok := index[r.Category]
		if !ok {
			i = len(totals)
			index[r.Category] = i
			totals = append(totals, CategoryTotal{Category: r.Category, Total: decimal.Zero})
		}
		totals[i].Total = totals[i].Total.Add(r.Amount)
		totals[i].Count++
	}
	return totals
}

// topCategory picks the first category, in first-appearance order, that
// reaches the highest total.
func topCategory(totals []CategoryTotal) (string, decimal.Decimal, bool) {
	if len(totals) == 0 {
		return "", decimal.Zero, false
	}
	best := totals[0]
	for _, t := range totals[1:] {
		if t.Total.GreaterThan(best.Total) {
			best = t
		}
	}
	return best.Category, best.Total, true
}

// BudgetStatus compares spending with the cap. A zero cap means none is set.
func BudgetStatus(limit, spent decimal.Decimal) Budget {
	if !limit.IsPositive() {
		return Budget{State: BudgetNoCap, Cap: decimal.Zero, Amount: decimal.Zero}
	}
	remaining := limit.Sub(spent)
	if remaining.IsNegative() {
		return Budget{State: BudgetOver, Cap: limit, Amount: remaining.Abs()}
	}
	return Budget{State: BudgetRemaining, Cap: limit, Amount: remaining}
}

// Trend sums amounts for each of the seven calendar days ending today,
// oldest first. A record counts toward a day only when its date string equals
// that day exactly.
func Trend(records []model.Record, today time.Time) []Day {
	days := make([]Day, TrendDays)
	index := make(map[string]int, TrendDays)
	y, m, d := today.Date()
	for i := range TrendDays {
		day := time.Date(y, m, d-(TrendDays-1-i), 12, 0, 0, 0, today.Location())
		date := day.Format(model.DateLayout)
		days[i] = Day{Date: date, Label: day.Format("Mon"), Total: decimal.Zero}
		index[date] = i
	}

	for _, r := range records {
		if i, ok := index[r.Date]; ok {
			days[i].Total = days[i].Total.Add(r.Amount)
		}
	}

	peak := decimal.Zero
	for _, day := range days {
		if day.Total.GreaterThan(peak) {
			peak = day.Total
		}
	}
	if peak.IsPositive() {
		for i := range days {
			days[i].Ratio = days[i].Total.Div(peak).InexactFloat64()
		}
	}
	return days
}

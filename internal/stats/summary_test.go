package stats

import (
	"testing"
	"time"

	"github.com/Veraticus/pocket/internal/model"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func r(category, amount, date string) model.Record {
	return model.Record{Category: category, Amount: decimal.RequireFromString(amount), Date: date}
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestCompute_Totals(t *testing.T) {
	records := []model.Record{
		r("Food", "10", "2024-03-01"),
		r("Books", "15", "2024-03-02"),
	}

	s := Compute(records, model.DefaultSettings(), time.Date(2024, 3, 2, 18, 0, 0, 0, time.UTC))

	assert.Equal(t, 2, s.TotalCount)
	assert.True(t, s.TotalSpent.Equal(dec("25")))
	require.True(t, s.HasTopCategory)
	assert.Equal(t, "Books", s.TopCategory)
	assert.True(t, s.TopCategoryAmount.Equal(dec("15")))
	require.Len(t, s.ByCategory, 2)
	assert.Equal(t, "Food", s.ByCategory[0].Category)
	assert.Equal(t, BudgetNoCap, s.Budget.State)
}

func TestCompute_Empty(t *testing.T) {
	s := Compute(nil, model.DefaultSettings(), time.Now())

	assert.Equal(t, 0, s.TotalCount)
	assert.True(t, s.TotalSpent.IsZero())
	assert.False(t, s.HasTopCategory)
	assert.Empty(t, s.TopCategory)
	assert.Len(t, s.Trend, TrendDays)
}

func TestTopCategory_TieGoesToFirstSeen(t *testing.T) {
	records := []model.Record{
		r("Transport", "5", "2024-03-01"),
		r("Food", "10", "2024-03-01"),
		r("Transport", "5", "2024-03-01"),
		r("Books", "10", "2024-03-01"),
	}

	s := Compute(records, model.DefaultSettings(), time.Now())
	assert.Equal(t, "Transport", s.TopCategory)
}

func TestBudgetStatus(t *testing.T) {
	tests := []struct {
		name       string
		limit      string
		spent      string
		wantAmount string
		wantState  BudgetState
	}{
		{name: "no cap", limit: "0", spent: "500", wantState: BudgetNoCap, wantAmount: "0"},
		{name: "under cap", limit: "100", spent: "40", wantState: BudgetRemaining, wantAmount: "60"},
		{name: "exactly at cap", limit: "100", spent: "100", wantState: BudgetRemaining, wantAmount: "0"},
		{name: "over cap", limit: "100", spent: "120", wantState: BudgetOver, wantAmount: "20"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := BudgetStatus(dec(tt.limit), dec(tt.spent))
			assert.Equal(t, tt.wantState, b.State)
			assert.True(t, b.Amount.Equal(dec(tt.wantAmount)), "amount = %s", b.Amount)
		})
	}
}

func TestCompute_OverBudget(t *testing.T) {
	settings := model.DefaultSettings()
	settings.SpendingCap = dec("100")

	s := Compute([]model.Record{r("Food", "70", "2024-01-01"), r("Fees", "50", "2024-01-02")}, settings, time.Now())

	assert.Equal(t, BudgetOver, s.Budget.State)
	assert.True(t, s.Budget.Amount.Equal(dec("20")))
	assert.Equal(t, "over budget", s.Budget.State.String())
}

func TestTrend(t *testing.T) {
	today := time.Date(2024, 3, 7, 23, 30, 0, 0, time.UTC)
	records := []model.Record{
		r("Food", "10", "2024-03-07"),
		r("Food", "5", "2024-03-07"),
		r("Food", "30", "2024-03-03"),
		r("Food", "7.5", "2024-03-01"),
		r("Food", "99", "2024-02-29"), // outside the window
		r("Food", "99", "2024-03-08"), // future
		r("Food", "99", "2024-3-7"),   // not an exact date match
	}

	days := Trend(records, today)
	require.Len(t, days, 7)

	assert.Equal(t, "2024-03-01", days[0].Date)
	assert.Equal(t, "Fri", days[0].Label)
	assert.Equal(t, "2024-03-07", days[6].Date)

	assert.True(t, days[0].Total.Equal(dec("7.5")))
	assert.True(t, days[2].Total.Equal(dec("30")))
	assert.True(t, days[6].Total.Equal(dec("15")))
	assert.True(t, days[1].Total.IsZero())

	assert.InDelta(t, 1.0, days[2].Ratio, 1e-9)
	assert.InDelta(t, 0.5, days[6].Ratio, 1e-9)
	assert.InDelta(t, 0.25, days[0].Ratio, 1e-9)
}

func TestTrend_AllZeroHasZeroRatios(t *testing.T) {
	days := Trend([]model.Record{r("Food", "0", "2024-03-07")}, time.Date(2024, 3, 7, 0, 0, 0, 0, time.UTC))
	for _, d := range days {
		assert.Zero(t, d.Ratio)
	}
}

func TestTrend_CrossesMonthBoundary(t *testing.T) {
	days := Trend(nil, time.Date(2024, 3, 2, 0, 0, 0, 0, time.UTC))
	assert.Equal(t, "2024-02-25", days[0].Date)
	assert.Equal(t, "2024-03-02", days[6].Date)
}

package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/Veraticus/pocket/internal/model"
	"github.com/Veraticus/pocket/internal/search"
	"github.com/Veraticus/pocket/internal/stats"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatMoney(t *testing.T) {
	tests := []struct {
		amount   string
		currency string
		expected string
	}{
		{amount: "12.5", currency: "USD", expected: "$12.50"},
		{amount: "1234.567", currency: "USD", expected: "$1,234.57"},
		{amount: "0", currency: "usd", expected: "$0.00"},
		{amount: "1500", currency: "JPY", expected: "¥1,500"},
	}

	for _, tt := range tests {
		t.Run(tt.amount+" "+tt.currency, func(t *testing.T) {
			assert.Equal(t, tt.expected, FormatMoney(decimal.RequireFromString(tt.amount), tt.currency))
		})
	}
}

func TestFormatAmount_WithExchangeRates(t *testing.T) {
	settings := model.DefaultSettings()
	settings.ExchangeRates = []model.ExchangeRate{
		{Currency: "JPY", Rate: decimal.RequireFromString("150")},
	}

	got := FormatAmount(decimal.RequireFromString("2"), settings)
	assert.Equal(t, "$2.00 (¥300)", got)
}

func TestBar(t *testing.T) {
	assert.Equal(t, "", Bar(0, 10))
	assert.Equal(t, "", Bar(0.5, 0))
	assert.Equal(t, strings.Repeat("█", 10), Bar(1, 10))
	assert.Equal(t, strings.Repeat("█", 5), Bar(0.5, 10))
	assert.Equal(t, "█", Bar(0.001, 10))
	assert.Equal(t, strings.Repeat("█", 10), Bar(3, 10))
}

func TestWriteRecords(t *testing.T) {
	records := []model.Record{
		{ID: "rec_1", Description: "Pizza night", Amount: decimal.RequireFromString("18"), Category: "Food", Date: "2024-03-01"},
	}
	matches := search.Filter(records, search.Query{Term: "pizza"})

	var buf bytes.Buffer
	require.NoError(t, WriteRecords(&buf, matches, model.DefaultSettings(), search.Bracket))

	out := buf.String()
	assert.Contains(t, out, "DESCRIPTION")
	assert.Contains(t, out, "[Pizza] night")
	assert.Contains(t, out, "$18.00")
}

func TestWriteSummary(t *testing.T) {
	records := []model.Record{
		{ID: "a", Description: "Lunch", Amount: decimal.RequireFromString("70"), Category: "Food", Date: "2024-03-07"},
		{ID: "b", Description: "Book", Amount: decimal.RequireFromString("50"), Category: "Books", Date: "2024-03-06"},
	}
	settings := model.DefaultSettings()
	settings.SpendingCap = decimal.NewFromInt(100)
	summary := stats.Compute(records, settings, time.Date(2024, 3, 7, 12, 0, 0, 0, time.UTC))

	var buf bytes.Buffer
	require.NoError(t, WriteSummary(&buf, summary, settings))

	out := buf.String()
	assert.Contains(t, out, "$120.00")
	assert.Contains(t, out, "Food ($70.00)")
	assert.Contains(t, out, "$20.00 over budget")
	assert.Contains(t, out, "2024-03-07")
}

func TestBudgetLine(t *testing.T) {
	settings := model.DefaultSettings()
	assert.Equal(t, "no cap configured", BudgetLine(stats.BudgetStatus(decimal.Zero, decimal.NewFromInt(5)), settings))
	assert.Equal(t, "$60.00 remaining of $100.00",
		BudgetLine(stats.BudgetStatus(decimal.NewFromInt(100), decimal.NewFromInt(40)), settings))
}

func TestConfirm(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{input: "y\n", want: true},
		{input: "YES\n", want: true},
		{input: "n\n", want: false},
		{input: "\n", want: false},
		{input: "", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			var out bytes.Buffer
			ok, err := Confirm(context.Background(), NewNonBlockingReader(strings.NewReader(tt.input)), &out, "Delete?")
			require.NoError(t, err)
			assert.Equal(t, tt.want, ok)
			assert.Contains(t, out.String(), "Delete? [y/N]")
		})
	}
}

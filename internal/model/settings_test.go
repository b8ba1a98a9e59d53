package model

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultSettings(t *testing.T) {
	s := DefaultSettings()

	assert.True(t, s.SpendingCap.IsZero())
	assert.False(t, s.HasCap())
	assert.Equal(t, "USD", s.BaseCurrency)
	assert.Equal(t, []string{"Food", "Books", "Transport", "Entertainment", "Fees", "Other"}, s.Categories)

	// Mutating a default copy must not leak into the package default.
	s.Categories[0] = "Groceries"
	assert.Equal(t, "Food", DefaultSettings().Categories[0])
}

func TestSettings_RemoveCategory(t *testing.T) {
	s := Settings{Categories: []string{"Food", "Books"}}

	require.NoError(t, s.RemoveCategory("food"))
	assert.Equal(t, []string{"Books"}, s.Categories)

	err := s.RemoveCategory("Books")
	assert.ErrorIs(t, err, ErrLastCategory)
	assert.Equal(t, []string{"Books"}, s.Categories)

	assert.ErrorIs(t, s.RemoveCategory("Rent"), ErrCategoryNotFound)
}

func TestSettings_AddAndRenameCategory(t *testing.T) {
	s := DefaultSettings()

	require.NoError(t, s.AddCategory(" Rent "))
	assert.Equal(t, "Rent", s.Categories[len(s.Categories)-1])
	assert.ErrorIs(t, s.AddCategory("rent"), ErrCategoryExists)
	assert.ErrorIs(t, s.AddCategory("  "), ErrEmptyCategory)

	require.NoError(t, s.RenameCategory("Books", "Textbooks"))
	assert.Equal(t, "Textbooks", s.Categories[1])
	assert.ErrorIs(t, s.RenameCategory("Textbooks", "Food"), ErrCategoryExists)
	assert.ErrorIs(t, s.RenameCategory("Nope", "Other Things"), ErrCategoryNotFound)

	// Case-only rename of the same category is allowed.
	require.NoError(t, s.RenameCategory("Textbooks", "TextBooks"))
}

func TestSettings_ExchangeRates(t *testing.T) {
	s := DefaultSettings()

	require.NoError(t, s.SetExchangeRate("eur", decimal.RequireFromString("0.92")))
	require.NoError(t, s.SetExchangeRate("GBP", decimal.RequireFromString("0.79")))
	require.NoError(t, s.SetExchangeRate("EUR", decimal.RequireFromString("0.95")))
	assert.Len(t, s.ExchangeRates, 2)
	assert.Equal(t, "0.95", s.ExchangeRates[0].Rate.String())

	assert.ErrorIs(t, s.SetExchangeRate("JPY", decimal.NewFromInt(150)), ErrTooManyCurrencies)
	assert.ErrorIs(t, s.SetExchangeRate("CAD", decimal.Zero), ErrInvalidRate)
	assert.ErrorIs(t, s.SetExchangeRate("ZZZ", decimal.NewFromInt(1)), ErrUnknownCurrency)

	require.NoError(t, s.RemoveExchangeRate("gbp"))
	assert.Len(t, s.ExchangeRates, 1)
	assert.ErrorIs(t, s.RemoveExchangeRate("GBP"), ErrRateNotFound)
}

func TestSettings_SetBaseCurrency(t *testing.T) {
	s := DefaultSettings()

	require.NoError(t, s.SetBaseCurrency(" eur "))
	assert.Equal(t, "EUR", s.BaseCurrency)

	assert.ErrorIs(t, s.SetBaseCurrency("euro"), ErrUnknownCurrency)
	assert.ErrorIs(t, s.SetBaseCurrency(""), ErrUnknownCurrency)
	assert.Equal(t, "EUR", s.BaseCurrency)
}

func TestSettings_Normalize(t *testing.T) {
	s := Settings{
		SpendingCap:  decimal.NewFromInt(-5),
		BaseCurrency: " eur ",
		Categories:   []string{"Food", "food", "", " Books "},
		ExchangeRates: []ExchangeRate{
			{Currency: "usd", Rate: decimal.NewFromInt(1)},
			{Currency: "bad", Rate: decimal.Zero},
			{Currency: "gbp", Rate: decimal.NewFromInt(2)},
			{Currency: "jpy", Rate: decimal.NewFromInt(3)},
		},
	}
	s.Normalize()

	assert.True(t, s.SpendingCap.IsZero())
	assert.Equal(t, "EUR", s.BaseCurrency)
	assert.Equal(t, []string{"Food", "Books"}, s.Categories)
	require.Len(t, s.ExchangeRates, 2)
	assert.Equal(t, "USD", s.ExchangeRates[0].Currency)
	assert.Equal(t, "GBP", s.ExchangeRates[1].Currency)

	empty := Settings{}
	empty.Normalize()
	assert.Equal(t, DefaultCategories, empty.Categories)
	assert.Equal(t, DefaultBaseCurrency, empty.BaseCurrency)
}

func TestSettings_SetSpendingCap(t *testing.T) {
	s := DefaultSettings()
	require.NoError(t, s.SetSpendingCap(decimal.NewFromInt(300)))
	assert.True(t, s.HasCap())
	assert.ErrorIs(t, s.SetSpendingCap(decimal.NewFromInt(-1)), ErrNegativeCap)
}

func TestSettings_CloneIsIndependent(t *testing.T) {
	s := DefaultSettings()
	c := s.Clone()
	c.Categories[0] = "Changed"
	assert.Equal(t, "Food", s.Categories[0])
	assert.True(t, s.Equal(DefaultSettings()))
	assert.False(t, s.Equal(c))
}

func TestRecord_JSONAmountIsNumber(t *testing.T) {
	now := time.Date(2024, 3, 1, 9, 30, 0, 0, time.UTC)
	r := Record{
		ID:          "rec_1",
		Description: "Lunch",
		Amount:      decimal.RequireFromString("12.50"),
		Category:    "Food",
		Date:        "2024-03-01",
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	data, err := json.Marshal(r)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"amount":12.5`)

	var back Record
	require.NoError(t, json.Unmarshal(data, &back))
	assert.True(t, r.Equal(back))
}

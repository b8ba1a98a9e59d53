package model

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// MaxExchangeRates is the number of auxiliary currencies a ledger may display.
const MaxExchangeRates = 2

// Settings errors.
var (
	ErrLastCategory      = errors.New("cannot remove the last category")
	ErrCategoryExists    = errors.New("category already exists")
	ErrCategoryNotFound  = errors.New("category not found")
	ErrEmptyCategory     = errors.New("category name cannot be empty")
	ErrInvalidRate       = errors.New("exchange rate must be positive")
	ErrTooManyCurrencies = errors.New("too many auxiliary currencies")
	ErrNegativeCap       = errors.New("spending cap cannot be negative")
	ErrRateNotFound      = errors.New("exchange rate not found")
	ErrUnknownCurrency   = errors.New("unknown currency code")
)

// DefaultCategories is the category list of a fresh ledger.
var DefaultCategories = []string{"Food", "Books", "Transport", "Entertainment", "Fees", "Other"}

// DefaultBaseCurrency is used when no base currency is configured.
const DefaultBaseCurrency = "USD"

// ExchangeRate converts base-currency amounts into an auxiliary currency for display.
type ExchangeRate struct {
	Rate     decimal.Decimal `json:"rate"`
	Currency string          `json:"currency"`
}

// Settings is the single configuration object of a ledger.
type Settings struct {
	SpendingCap   decimal.Decimal `json:"spendingCap"` // zero means no cap
	BaseCurrency  string          `json:"baseCurrency"`
	ExchangeRates []ExchangeRate  `json:"exchangeRates"`
	Categories    []string        `json:"categories"`
}

// DefaultSettings returns the settings of a fresh ledger.
func DefaultSettings() Settings {
	return Settings{
		SpendingCap:   decimal.Zero,
		BaseCurrency:  DefaultBaseCurrency,
		ExchangeRates: []ExchangeRate{},
		Categories:    append([]string(nil), DefaultCategories...),
	}
}

// Clone returns a deep copy of the settings.
func (s Settings) Clone() Settings {
	out := s
	out.ExchangeRates = append([]ExchangeRate{}, s.ExchangeRates...)
	out.Categories = append([]string{}, s.Categories...)
	return out
}

// HasCap reports whether a spending cap is configured.
func (s Settings) HasCap() bool {
	return s.SpendingCap.IsPositive()
}

// Normalize repairs settings loaded from storage or an import document so that
// the category list is non-empty and distinct.
func (s *Settings) Normalize() {
	s.BaseCurrency = strings.ToUpper(strings.TrimSpace(s.BaseCurrency))
	if s.BaseCurrency == "" {
		s.BaseCurrency = DefaultBaseCurrency
	}
	if s.SpendingCap.IsNegative() {
		s.SpendingCap = decimal.Zero
	}

	seen := make(map[string]bool, len(s.Categories))
	categories := make([]string, 0, len(s.Categories))
	for _, c := range s.Categories {
		c = strings.TrimSpace(c)
		key := strings.ToLower(c)
		if c == "" || seen[key] {
			continue
		}
		seen[key] = true
		categories = append(categories, c)
	}
	if len(categories) == 0 {
		categories = append(categories, DefaultCategories...)
	}
	s.Categories = categories

	rates := make([]ExchangeRate, 0, len(s.ExchangeRates))
	for _, r := range s.ExchangeRates {
		code := strings.ToUpper(strings.TrimSpace(r.Currency))
		if code == "" || !r.Rate.IsPositive() || len(rates) == MaxExchangeRates {
			continue
		}
		rates = append(rates, ExchangeRate{Currency: code, Rate: r.Rate})
	}
	s.ExchangeRates = rates
}

// SetSpendingCap sets the monthly cap. Zero clears it.
func (s *Settings) SetSpendingCap(limit decimal.Decimal) error {
	if limit.IsNegative() {
		return ErrNegativeCap
	}
	s.SpendingCap = limit
	return nil
}

// SetBaseCurrency sets the ISO 4217 currency amounts are entered in.
func (s *Settings) SetBaseCurrency(code string) error {
	code, err := currencyCode(code)
	if err != nil {
		return err
	}
	s.BaseCurrency = code
	return nil
}

func currencyCode(code string) (string, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if money.GetCurrency(code) == nil {
		return "", fmt.Errorf("%w: %q", ErrUnknownCurrency, code)
	}
	return code, nil
}

// HasCategory reports whether name is in the active set, ignoring case.
func (s Settings) HasCategory(name string) bool {
	return s.categoryIndex(name) >= 0
}

func (s Settings) categoryIndex(name string) int {
	for i, c := range s.Categories {
		if strings.EqualFold(c, name) {
			return i
		}
	}
	return -1
}

// AddCategory appends a category to the active set.
func (s *Settings) AddCategory(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrEmptyCategory
	}
	if s.HasCategory(name) {
		return fmt.Errorf("%w: %s", ErrCategoryExists, name)
	}
	s.Categories = append(s.Categories, name)
	return nil
}

// RemoveCategory deletes a category. The last remaining category cannot be removed.
func (s *Settings) RemoveCategory(name string) error {
	idx := s.categoryIndex(name)
	if idx < 0 {
		return fmt.Errorf("%w: %s", ErrCategoryNotFound, name)
	}
	if len(s.Categories) == 1 {
		return ErrLastCategory
	}
	s.Categories = append(s.Categories[:idx:idx], s.Categories[idx+1:]...)
	return nil
}

// RenameCategory renames a category in place, keeping its position.
func (s *Settings) RenameCategory(oldName, newName string) error {
	newName = strings.TrimSpace(newName)
	if newName == "" {
		return ErrEmptyCategory
	}
	idx := s.categoryIndex(oldName)
	if idx < 0 {
		return fmt.Errorf("%w: %s", ErrCategoryNotFound, oldName)
	}
	if other := s.categoryIndex(newName); other >= 0 && other != idx {
		return fmt.Errorf("%w: %s", ErrCategoryExists, newName)
	}
	s.Categories[idx] = newName
	return nil
}

// SetExchangeRate adds or replaces the rate for an auxiliary currency.
func (s *Settings) SetExchangeRate(currency string, rate decimal.Decimal) error {
	currency, err := currencyCode(currency)
	if err != nil {
		return err
	}
	if !rate.IsPositive() {
		return fmt.Errorf("%w: %s", ErrInvalidRate, rate)
	}
	for i, r := range s.ExchangeRates {
		if r.Currency == currency {
			s.ExchangeRates[i].Rate = rate
			return nil
		}
	}
	if len(s.ExchangeRates) >= MaxExchangeRates {
		return fmt.Errorf("%w: at most %d", ErrTooManyCurrencies, MaxExchangeRates)
	}
	s.ExchangeRates = append(s.ExchangeRates, ExchangeRate{Currency: currency, Rate: rate})
	return nil
}

// RemoveExchangeRate drops an auxiliary currency.
func (s *Settings) RemoveExchangeRate(currency string) error {
	currency = strings.ToUpper(strings.TrimSpace(currency))
	for i, r := range s.ExchangeRates {
		if r.Currency == currency {
			s.ExchangeRates = append(s.ExchangeRates[:i:i], s.ExchangeRates[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("%w: %s", ErrRateNotFound, currency)
}

// Equal reports whether two settings values carry the same data.
func (s Settings) Equal(other Settings) bool {
	if !s.SpendingCap.Equal(other.SpendingCap) || s.BaseCurrency != other.BaseCurrency {
		return false
	}
	if len(s.ExchangeRates) != len(other.ExchangeRates) || len(s.Categories) != len(other.Categories) {
		return false
	}
	for i := range s.ExchangeRates {
		if s.ExchangeRates[i].Currency != other.ExchangeRates[i].Currency ||
			!s.ExchangeRates[i].Rate.Equal(other.ExchangeRates[i].Rate) {
			return false
		}
	}
	for i := range s.Categories {
		if s.Categories[i] != other.Categories[i] {
			return false
		}
	}
	return true
}

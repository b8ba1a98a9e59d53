package transfer

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/Veraticus/pocket/internal/model"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleLedger() ([]model.Record, model.Settings) {
	at := time.Date(2024, 3, 1, 8, 30, 0, 0, time.UTC)
	records := []model.Record{
		{ID: "rec_1", Description: "Lunch", Amount: decimal.RequireFromString("12.50"), Category: "Food", Date: "2024-03-01", CreatedAt: at, UpdatedAt: at},
		{ID: "rec_2", Description: "Bus pass", Amount: decimal.RequireFromString("30"), Category: "Transport", Date: "2024-03-02", CreatedAt: at, UpdatedAt: at.Add(time.Hour)},
	}
	settings := model.DefaultSettings()
	settings.SpendingCap = decimal.RequireFromString("400")
	settings.ExchangeRates = []model.ExchangeRate{{Currency: "EUR", Rate: decimal.RequireFromString("0.92")}}
	return records, settings
}

func TestExportImport_RoundTrip(t *testing.T) {
	records, settings := sampleLedger()

	var buf bytes.Buffer
	require.NoError(t, Export(&buf, records, settings))
	assert.Contains(t, buf.String(), `"amount": 12.5`)

	got, err := Import(&buf)
	require.NoError(t, err)
	require.True(t, got.HasSettings)
	require.Len(t, got.Records, len(records))
	for i := range records {
		assert.True(t, records[i].Equal(got.Records[i]), "record %d differs: %+v", i, got.Records[i])
	}
	assert.True(t, settings.Equal(got.Settings), "settings differ: %+v", got.Settings)
}

func TestExport_NilRecords(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Export(&buf, nil, model.DefaultSettings()))
	assert.Contains(t, buf.String(), `"records": []`)
}

func TestImport_BareArray(t *testing.T) {
	doc := `[{"id":"a","description":"Tea","amount":3,"category":"Food","date":"2024-01-01"}]`

	got, err := Import(strings.NewReader(doc))
	require.NoError(t, err)
	assert.False(t, got.HasSettings)
	require.Len(t, got.Records, 1)
	assert.Equal(t, "Tea", got.Records[0].Description)
	assert.True(t, got.Records[0].Amount.Equal(decimal.NewFromInt(3)))
}

func TestImport_NormalizesSettings(t *testing.T) {
	doc := `{"records":[],"settings":{"baseCurrency":"eur","categories":[],"exchangeRate":1}}`

	got, err := Import(strings.NewReader(doc))
	require.NoError(t, err)
	assert.Equal(t, "EUR", got.Settings.BaseCurrency)
	assert.Equal(t, model.DefaultCategories, got.Settings.Categories)
	assert.Empty(t, got.Settings.ExchangeRates)
}

func TestImport_Rejects(t *testing.T) {
	tests := []struct {
		name   string
		doc    string
		reason string
	}{
		{name: "empty", doc: "  ", reason: "empty"},
		{name: "scalar", doc: `42`, reason: "expected a record array"},
		{name: "malformed json", doc: `[{"id":`, reason: "malformed JSON"},
		{name: "missing amount", doc: `[{"id":"a","description":"Tea","category":"Food","date":"2024-01-01"}]`, reason: "amount is missing"},
		{name: "string amount", doc: `[{"id":"a","description":"Tea","amount":"3","category":"Food","date":"2024-01-01"}]`, reason: "amount must be a number"},
		{name: "null amount", doc: `[{"id":"a","description":"Tea","amount":null,"category":"Food","date":"2024-01-01"}]`, reason: "amount must be a number"},
		{name: "empty id", doc: `[{"id":"","description":"Tea","amount":3,"category":"Food","date":"2024-01-01"}]`, reason: "id must be"},
		{name: "numeric date", doc: `[{"id":"a","description":"Tea","amount":3,"category":"Food","date":20240101}]`, reason: "date must be"},
		{name: "element not object", doc: `["a"]`, reason: "not an object"},
		{name: "duplicate ids", doc: `[{"id":"a","description":"Tea","amount":3,"category":"Food","date":"2024-01-01"},{"id":"a","description":"Pie","amount":4,"category":"Food","date":"2024-01-02"}]`, reason: "duplicate id"},
		{name: "object without settings", doc: `{"records":[]}`, reason: "settings must be an object"},
		{name: "object with records object", doc: `{"records":{},"settings":{}}`, reason: "records must be an array"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Import(strings.NewReader(tt.doc))
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidDocument), "error = %v", err)

			var importErr *ImportError
			require.ErrorAs(t, err, &importErr)
			assert.Contains(t, importErr.Reason, tt.reason)
		})
	}
}

func TestImportError_Index(t *testing.T) {
	doc := `[{"id":"a","description":"Tea","amount":3,"category":"Food","date":"2024-01-01"},{"id":"b"}]`

	_, err := Import(strings.NewReader(doc))

	var importErr *ImportError
	require.ErrorAs(t, err, &importErr)
	assert.Equal(t, 1, importErr.Index)
	assert.Contains(t, err.Error(), "record 1")
}

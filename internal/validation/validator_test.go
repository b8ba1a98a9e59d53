package validation

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		field   Field
		raw     string
		wantMsg string
		name    string
		valid   bool
	}{
		{name: "empty is valid", field: FieldDescription, raw: "", valid: true},
		{name: "plain description", field: FieldDescription, raw: "Coffee with Sam", valid: true},
		{name: "single character", field: FieldDescription, raw: "x", valid: true},
		{name: "leading space", field: FieldDescription, raw: " a", wantMsg: MsgSurroundingSpace},
		{name: "trailing space", field: FieldDescription, raw: "a ", wantMsg: MsgSurroundingSpace},
		{name: "only spaces", field: FieldDescription, raw: "   ", wantMsg: MsgSurroundingSpace},
		{name: "duplicate word", field: FieldDescription, raw: "go go", wantMsg: `Duplicate word detected: "go"`},
		{name: "duplicate word mixed case", field: FieldDescription, raw: "The the book", wantMsg: `Duplicate word detected: "the"`},
		{name: "prefix is not a duplicate", field: FieldDescription, raw: "the theory", valid: true},
		{name: "punctuation separates words", field: FieldDescription, raw: "go, go", valid: true},
		{name: "repeat later in text", field: FieldDescription, raw: "bus to to campus", wantMsg: `Duplicate word detected: "to"`},

		{name: "zero", field: FieldAmount, raw: "0", valid: true},
		{name: "integer", field: FieldAmount, raw: "12", valid: true},
		{name: "one decimal", field: FieldAmount, raw: "12.5", valid: true},
		{name: "two decimals", field: FieldAmount, raw: "12.50", valid: true},
		{name: "zero with decimals", field: FieldAmount, raw: "0.99", valid: true},
		{name: "three decimals", field: FieldAmount, raw: "12.505", wantMsg: MsgAmount},
		{name: "leading zero", field: FieldAmount, raw: "01", wantMsg: MsgAmount},
		{name: "negative", field: FieldAmount, raw: "-5", wantMsg: MsgAmount},
		{name: "trailing dot", field: FieldAmount, raw: "5.", wantMsg: MsgAmount},
		{name: "letters", field: FieldAmount, raw: "ten", wantMsg: MsgAmount},

		{name: "valid date", field: FieldDate, raw: "2024-03-01", valid: true},
		{name: "calendar-impossible date passes format", field: FieldDate, raw: "2023-02-31", valid: true},
		{name: "month 13", field: FieldDate, raw: "2024-13-01", wantMsg: MsgDate},
		{name: "day 32", field: FieldDate, raw: "2024-01-32", wantMsg: MsgDate},
		{name: "day 00", field: FieldDate, raw: "2024-01-00", wantMsg: MsgDate},
		{name: "slashes", field: FieldDate, raw: "2024/01/01", wantMsg: MsgDate},

		{name: "single word category", field: FieldCategory, raw: "Food", valid: true},
		{name: "spaced category", field: FieldCategory, raw: "Eating Out", valid: true},
		{name: "hyphenated category", field: FieldCategory, raw: "Self-Care", valid: true},
		{name: "double space", field: FieldCategory, raw: "Eating  Out", wantMsg: MsgCategory},
		{name: "trailing hyphen", field: FieldCategory, raw: "Food-", wantMsg: MsgCategory},
		{name: "digits", field: FieldCategory, raw: "Food2", wantMsg: MsgCategory},

		{name: "unknown field", field: Field("notes"), raw: "x", wantMsg: MsgUnknownField},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Validate(tt.field, tt.raw)
			assert.Equal(t, tt.valid, got.Valid)
			if !tt.valid {
				assert.Equal(t, tt.wantMsg, got.Message)
			}
		})
	}
}

func TestValidator_StrictDates(t *testing.T) {
	strict := Validator{StrictDates: true}

	assert.True(t, strict.Validate(FieldDate, "2024-02-29").Valid)

	got := strict.Validate(FieldDate, "2023-02-31")
	assert.False(t, got.Valid)
	assert.Equal(t, MsgCalendarDate, got.Message)

	got = strict.Validate(FieldDate, "2023-2-1")
	assert.Equal(t, MsgDate, got.Message)
}

func TestValidateForm(t *testing.T) {
	t.Run("valid form", func(t *testing.T) {
		result := ValidateForm(Form{Description: "Lunch", Amount: "8.25", Category: "Food", Date: "2024-03-01"})
		assert.True(t, result.OK())
		assert.NoError(t, result.Err())
	})

	t.Run("reports every failing field", func(t *testing.T) {
		result := ValidateForm(Form{Description: "a ", Amount: "01", Category: "F00d", Date: "yesterday"})
		require.False(t, result.OK())
		assert.Len(t, result.Errors, 4)

		err := result.Err()
		var formErr *FormError
		require.True(t, errors.As(err, &formErr))
		assert.Equal(t, MsgAmount, formErr.Message(FieldAmount))
		assert.Equal(t,
			"invalid record: description: "+MsgSurroundingSpace+"; amount: "+MsgAmount+
				"; date: "+MsgDate+"; category: "+MsgCategory,
			err.Error())
	})

	t.Run("one failure leaves the rest clean", func(t *testing.T) {
		result := ValidateForm(Form{Description: "Lunch", Amount: "-1", Category: "Food", Date: "2024-03-01"})
		assert.Equal(t, map[Field]string{FieldAmount: MsgAmount}, result.Errors)
	})
}

func TestValidateRecord_RequiresEveryField(t *testing.T) {
	v := Validator{}

	result := v.ValidateRecord(Form{Description: "Lunch", Amount: "", Category: "", Date: "2024-02-31"})
	assert.Equal(t, map[Field]string{FieldAmount: MsgRequired, FieldCategory: MsgRequired}, result.Errors)

	assert.True(t, v.ValidateRecord(Form{Description: "Lunch", Amount: "0", Category: "Food", Date: "2024-03-01"}).OK())
	// Plain form validation still accepts empty values.
	assert.True(t, v.ValidateForm(Form{}).OK())
}

func TestSuggestCategory(t *testing.T) {
	categories := []string{"Food", "Books", "Transport"}

	got, ok := SuggestCategory("Fod", categories)
	assert.True(t, ok)
	assert.Equal(t, "Food", got)

	got, ok = SuggestCategory("trasnport", categories)
	assert.True(t, ok)
	assert.Equal(t, "Transport", got)

	_, ok = SuggestCategory("food", categories)
	assert.False(t, ok, "exact match needs no suggestion")

	_, ok = SuggestCategory("Gym", categories)
	assert.False(t, ok, "nothing close enough")

	_, ok = SuggestCategory("", categories)
	assert.False(t, ok)
}

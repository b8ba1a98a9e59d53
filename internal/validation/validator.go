// Package validation checks user-entered record fields against the ledger's input rules.
package validation

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// Field names a validated record field.
type Field string

// Validated fields, in display order.
const (
	FieldDescription Field = "description"
	FieldAmount      Field = "amount"
	FieldDate        Field = "date"
	FieldCategory    Field = "category"
)

// Fields lists every validated field in display order.
var Fields = []Field{FieldDescription, FieldAmount, FieldDate, FieldCategory}

// Failure messages.
const (
	MsgSurroundingSpace = "Leading/trailing spaces are not allowed"
	MsgDuplicateWord    = "Duplicate word detected: %q"
	MsgAmount           = "Must be a valid non-negative amount (max 2 decimals)"
	MsgDate             = "Date must be in YYYY-MM-DD format"
	MsgCalendarDate     = "Date does not exist on the calendar"
	MsgCategory         = "Category may only contain letters, spaces, and hyphens"
	MsgUnknownField     = "Unknown field"
	MsgRequired         = "This field is required"
)

var (
	wordRegex     = regexp.MustCompile(`\w+`)
	amountRegex   = regexp.MustCompile(`^(0|[1-9]\d*)(\.\d{1,2})?$`)
	dateRegex     = regexp.MustCompile(`^\d{4}-(0[1-9]|1[0-2])-(0[1-9]|[12]\d|3[01])$`)
	categoryRegex = regexp.MustCompile(`^[A-Za-z]+(?:[ -][A-Za-z]+)*$`)
)

// Outcome is the result of validating one field value.
type Outcome struct {
	Message string
	Valid   bool
}

func valid() Outcome { return Outcome{Valid: true} }

func invalid(msg string) Outcome { return Outcome{Message: msg} }

// Validator applies the field rules. The zero value checks date format only.
type Validator struct {
	// StrictDates additionally rejects dates that do not exist, such as 2023-02-31.
	StrictDates bool
}

// Validate checks a raw value with the default rules.
func Validate(field Field, raw string) Outcome {
	return Validator{}.Validate(field, raw)
}

// Validate checks a raw value for the given field. Empty input is always valid;
// whether a field is required is up to the caller.
func (v Validator) Validate(field Field, raw string) Outcome {
	if raw == "" {
		return valid()
	}

	switch field {
	case FieldDescription:
		return validateDescription(raw)
	case FieldAmount:
		if !amountRegex.MatchString(raw) {
			return invalid(MsgAmount)
		}
	case FieldDate:
		if !dateRegex.MatchString(raw) {
			return invalid(MsgDate)
		}
		if v.StrictDates {
			if _, err := time.Parse("2006-01-02", raw); err != nil {
				return invalid(MsgCalendarDate)
			}
		}
	case FieldCategory:
		if !categoryRegex.MatchString(raw) {
			return invalid(MsgCategory)
		}
	default:
		return invalid(MsgUnknownField)
	}

	return valid()
}

func validateDescription(raw string) Outcome {
	if strings.TrimSpace(raw) != raw {
		return invalid(MsgSurroundingSpace)
	}
	if word, ok := duplicateWord(raw); ok {
		return invalid(fmt.Sprintf(MsgDuplicateWord, word))
	}
	return valid()
}

// duplicateWord finds the first word immediately repeated, ignoring case.
// Two words are adjacent when only whitespace separates them.
func duplicateWord(s string) (string, bool) {
	locs := wordRegex.FindAllStringIndex(s, -1)
	for i := 1; i < len(locs); i++ {
		prev, cur := locs[i-1], locs[i]
		gap := s[prev[1]:cur[0]]
		if gap == "" || strings.TrimSpace(gap) != "" {
			continue
		}
		if strings.EqualFold(s[prev[0]:prev[1]], s[cur[0]:cur[1]]) {
			return s[cur[0]:cur[1]], true
		}
	}
	return "", false
}

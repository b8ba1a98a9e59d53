package validation

import (
	"strings"
)

// Form holds the raw strings a user entered for one record.
type Form struct {
	Description string
	Amount      string
	Category    string
	Date        string
}

// Value returns the raw value of a field.
func (f Form) Value(field Field) string {
	switch field {
	case FieldDescription:
		return f.Description
	case FieldAmount:
		return f.Amount
	case FieldDate:
		return f.Date
	case FieldCategory:
		return f.Category
	default:
		return ""
	}
}

// FormResult collects the failure message of every invalid field.
type FormResult struct {
	Errors map[Field]string
}

// OK reports whether every field passed.
func (r FormResult) OK() bool {
	return len(r.Errors) == 0
}

// Err returns a *FormError when any field failed, or nil.
func (r FormResult) Err() error {
	if r.OK() {
		return nil
	}
	return &FormError{Fields: r.Errors}
}

// ValidateForm runs every field rule with the default validator.
func ValidateForm(f Form) FormResult {
	return Validator{}.ValidateForm(f)
}

// ValidateForm runs every field rule. All failures are reported together.
func (v Validator) ValidateForm(f Form) FormResult {
	result := FormResult{Errors: make(map[Field]string)}
	for _, field := range Fields {
		if outcome := v.Validate(field, f.Value(field)); !outcome.Valid {
			result.Errors[field] = outcome.Message
		}
	}
	return result
}

// ValidateRecord validates a form that must describe a complete record: every
// field is required in addition to its format rule.
func (v Validator) ValidateRecord(f Form) FormResult {
	result := v.ValidateForm(f)
	for _, field := range Fields {
		if f.Value(field) == "" {
			result.Errors[field] = MsgRequired
		}
	}
	return result
}

// FormError reports every invalid field of a submitted form.
type FormError struct {
	Fields map[Field]string
}

func (e *FormError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, field := range Fields {
		if msg, ok := e.Fields[field]; ok {
			parts = append(parts, string(field)+": "+msg)
		}
	}
	return "invalid record: " + strings.Join(parts, "; ")
}

// Message returns the failure message for a field, if any.
func (e *FormError) Message(field Field) string {
	return e.Fields[field]
}

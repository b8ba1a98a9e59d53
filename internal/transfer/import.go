package transfer

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/Veraticus/pocket/internal/model"
	"github.com/shopspring/decimal"
)

// ErrInvalidDocument marks any import failure caused by the document itself.
var ErrInvalidDocument = errors.New("invalid import document")

// ImportError describes why a document was rejected.
type ImportError struct {
	Err    error
	Reason string
	Index  int // offending record, -1 when the document as a whole is at fault
}

func (e *ImportError) Error() string {
	if e.Index >= 0 {
		return fmt.Sprintf("%s: record %d: %s", ErrInvalidDocument, e.Index, e.Reason)
	}
	return fmt.Sprintf("%s: %s", ErrInvalidDocument, e.Reason)
}

// Is lets errors.Is match ErrInvalidDocument.
func (e *ImportError) Is(target error) bool {
	return target == ErrInvalidDocument
}

func (e *ImportError) Unwrap() error {
	return e.Err
}

func docError(reason string, err error) *ImportError {
	return &ImportError{Index: -1, Reason: reason, Err: err}
}

// Imported is the result of a successful import.
type Imported struct {
	Settings    model.Settings
	Records     []model.Record
	HasSettings bool // false for bare record arrays
}

// requiredStrings are the record fields that must be non-empty JSON strings.
var requiredStrings = []string{"id", "description", "category", "date"}

// Import reads a whole document. Either every record is accepted or the
// document is rejected with an *ImportError.
func Import(r io.Reader) (Imported, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return Imported{}, fmt.Errorf("failed to read import document: %w", err)
	}

	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return Imported{}, docError("document is empty", nil)
	}

	switch trimmed[0] {
	case '[':
		records, err := decodeRecords(trimmed)
		if err != nil {
			return Imported{}, err
		}
		return Imported{Records: records}, nil
	case '{':
		return decodeObject(trimmed)
	default:
		return Imported{}, docError("expected a record array or an object with records and settings", nil)
	}
}

func decodeObject(data []byte) (Imported, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return Imported{}, docError("malformed JSON", err)
	}

	rawRecords, ok := fields["records"]
	if !ok || !startsWith(rawRecords, '[') {
		return Imported{}, docError("records must be an array", nil)
	}
	rawSettings, ok := fields["settings"]
	if !ok || !startsWith(rawSettings, '{') {
		return Imported{}, docError("settings must be an object", nil)
	}

	records, err := decodeRecords(rawRecords)
	if err != nil {
		return Imported{}, err
	}

	settings := model.DefaultSettings()
	settings.ExchangeRates = nil
	settings.Categories = nil
	if err := json.Unmarshal(rawSettings, &settings); err != nil {
		return Imported{}, docError("malformed settings", err)
	}
	settings.Normalize()

	return Imported{Records: records, Settings: settings, HasSettings: true}, nil
}

func decodeRecords(data []byte) ([]model.Record, error) {
	var elements []json.RawMessage
	if err := json.Unmarshal(data, &elements); err != nil {
		return nil, docError("malformed JSON", err)
	}

	records := make([]model.Record, 0, len(elements))
	seen := make(map[string]bool, len(elements))
	for i, raw := range elements {
		rec, err := decodeRecord(i, raw)
		if err != nil {
			return nil, err
		}
		if seen[rec.ID] {
			return nil, &ImportError{Index: i, Reason: fmt.Sprintf("duplicate id %q", rec.ID)}
		}
		seen[rec.ID] = true
		records = append(records, rec)
	}
	return records, nil
}

func decodeRecord(index int, raw json.RawMessage) (model.Record, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil || fields == nil {
		return model.Record{}, &ImportError{Index: index, Reason: "not an object", Err: err}
	}

	for _, name := range requiredStrings {
		var s string
		value, ok := fields[name]
		if !ok || json.Unmarshal(value, &s) != nil || s == "" {
			return model.Record{}, &ImportError{Index: index, Reason: name + " must be a non-empty string"}
		}
	}

	amount, ok := fields["amount"]
	if !ok {
		return model.Record{}, &ImportError{Index: index, Reason: "amount is missing"}
	}
	var number json.Number
	if err := json.Unmarshal(amount, &number); err != nil || startsWith(amount, '"') {
		return model.Record{}, &ImportError{Index: index, Reason: "amount must be a number", Err: err}
	}
	if _, err := decimal.NewFromString(number.String()); err != nil {
		return model.Record{}, &ImportError{Index: index, Reason: "amount must be a number", Err: err}
	}

	var rec model.Record
	if err := json.Unmarshal(raw, &rec); err != nil {
		return model.Record{}, &ImportError{Index: index, Reason: "malformed record", Err: err}
	}
	return rec, nil
}

func startsWith(raw json.RawMessage, c byte) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) > 0 && trimmed[0] == c
}

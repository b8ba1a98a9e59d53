// Package transfer reads and writes ledger documents for file import and export.
//
// The canonical document is a JSON object holding the record list and the
// settings. Import also accepts a bare record array, which leaves the current
// settings in place.
package transfer

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/Veraticus/pocket/internal/model"
)

// Document is a complete ledger as written to and read from files.
type Document struct {
	Records  []model.Record `json:"records"`
	Settings model.Settings `json:"settings"`
}

// Export writes the canonical indented document.
func Export(w io.Writer, records []model.Record, settings model.Settings) error {
	if records == nil {
		records = []model.Record{}
	}
	doc := Document{Records: records, Settings: settings.Clone()}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("failed to encode ledger: %w", err)
	}
	return nil
}

package ledger

import (
	"github.com/google/uuid"
)

// idPrefix marks record identifiers in exported documents.
const idPrefix = "rec_"

// NewID returns a fresh record identifier. UUIDv7 starts with a millisecond
// timestamp followed by random bits, so ids sort roughly by creation time.
func NewID() string {
	id, err := uuid.NewV7()
	if err != nil {
		// Fallback to a purely random UUID if the clock-based one fails
		return idPrefix + uuid.New().String()
	}
	return idPrefix + id.String()
}

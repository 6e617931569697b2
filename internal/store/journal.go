package store

import (
	"time"

	"github.com/google/uuid"
)

// stamp fills the identity fields of a new journal entry.
func stamp(e JournalEntry, seq int64) JournalEntry {
	if e.ID == "" {
		e.ID = uuid.New().String()
	}
	if e.Timestamp.IsZero() {
		e.Timestamp = time.Now().UTC()
	}
	e.Sequence = seq
	return e
}

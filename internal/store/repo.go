package store

import (
	"context"
	"time"
)

// Well-known record keys. Each record holds one whole JSON state blob.
const (
	KeyAssessmentAnswers = "assessment_answers"
	KeyLearningProgress  = "learning_path_progress"
	KeyLearningLevel     = "learning_path_level"
)

// KV is the persistence port the engines depend on. Each Save replaces the
// whole blob stored under key.
type KV interface {
	// Load returns the blob stored under key, or nil if the key is absent.
	Load(ctx context.Context, key string) ([]byte, error)

	// Save stores blob under key, replacing any previous value.
	Save(ctx context.Context, key string, blob []byte) error

	// Delete removes key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error
}

// Journal entry kinds.
const (
	KindCriterionSet  = "criterion-set"
	KindAssessReset   = "assessment-reset"
	KindTaskSet       = "task-set"
	KindLevelReset    = "level-reset"
	KindLevelSelected = "level-selected"
)

// JournalEntry records one accepted mutation.
type JournalEntry struct {
	ID        string
	Sequence  int64
	Timestamp time.Time
	Profile   string
	Kind      string
	Subject   string // e.g. "risk/always_stop_loss" or "beginner/overview/quiz"
	Value     string
}

// QueryOpts configures journal queries with filtering and pagination.
type QueryOpts struct {
	Limit   int    // max results (0 = unlimited)
	After   int64  // sequence > After
	Before  int64  // sequence < Before (0 = no bound)
	Profile string // exact profile match ("" = all)
	Kind    string // exact kind match ("" = all)
}

// JournalRepo provides append and query access to the progress journal.
type JournalRepo interface {
	// Append assigns ID, Sequence and Timestamp (when unset) and stores the entry.
	Append(ctx context.Context, entry JournalEntry) (JournalEntry, error)

	// Query returns matching entries, newest first.
	Query(ctx context.Context, opts QueryOpts) ([]JournalEntry, error)
}

// Backend bundles a KV store with its journal.
type Backend interface {
	KV() KV
	Journal() JournalRepo
	Close() error
}

// match reports whether e satisfies the non-limit filters of opts.
func (o QueryOpts) match(e JournalEntry) bool {
	if e.Sequence <= o.After {
		return false
	}
	if o.Before > 0 && e.Sequence >= o.Before {
		return false
	}
	if o.Profile != "" && e.Profile != o.Profile {
		return false
	}
	if o.Kind != "" && e.Kind != o.Kind {
		return false
	}
	return true
}

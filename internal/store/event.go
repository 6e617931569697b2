package store

import (
	"context"
	"database/sql"
	"fmt"
	"sync"

	entsql "entgo.io/ent/dialect/sql"
)

const sequenceTable = "journal_sequence"

// journalSequence numbers journal entries for the SQLite backend. Every
// accepted criterion toggle, task toggle, reset and level selection takes
// the next value, across all profiles, so `tradepath history` can page
// with QueryOpts.After/Before and list changes in acceptance order.
//
// The counter is a single row. It is seeded past the highest sequence
// already in journal_entries, so a database whose counter row was lost
// never reissues a number.
type journalSequence struct {
	mu  sync.Mutex
	drv *entsql.Driver
}

// newJournalSequence creates the counter table if needed and seeds it.
func newJournalSequence(ctx context.Context, drv *entsql.Driver) (*journalSequence, error) {
	var res sql.Result
	err := drv.Exec(ctx, `CREATE TABLE IF NOT EXISTS `+sequenceTable+` (
		id INTEGER PRIMARY KEY CHECK (id = 1),
		next_val INTEGER NOT NULL
	)`, []any{}, &res)
	if err != nil {
		return nil, fmt.Errorf("create sequence table: %w", err)
	}

	err = drv.Exec(ctx, `INSERT OR IGNORE INTO `+sequenceTable+` (id, next_val)
		SELECT 1, COALESCE(MAX(sequence), 0) + 1 FROM `+journalTable, []any{}, &res)
	if err != nil {
		return nil, fmt.Errorf("seed sequence: %w", err)
	}
	return &journalSequence{drv: drv}, nil
}

// Next returns the number for the entry being appended and advances the
// counter in one UPDATE ... RETURNING statement.
func (js *journalSequence) Next(ctx context.Context) (int64, error) {
	js.mu.Lock()
	defer js.mu.Unlock()

	rows := &entsql.Rows{}
	err := js.drv.Query(ctx,
		`UPDATE `+sequenceTable+` SET next_val = next_val + 1 WHERE id = 1 RETURNING next_val - 1`,
		[]any{}, rows)
	if err != nil {
		return 0, fmt.Errorf("next sequence: %w", err)
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return 0, fmt.Errorf("next sequence: %w", err)
		}
		return 0, fmt.Errorf("next sequence: counter row missing")
	}
	var seq int64
	if err := rows.Scan(&seq); err != nil {
		return 0, fmt.Errorf("scan sequence: %w", err)
	}
	return seq, nil
}

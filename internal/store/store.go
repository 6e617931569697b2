package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"

	// Pure Go SQLite driver (no CGO).
	_ "modernc.org/sqlite"
)

const (
	kvTable      = "kv_records"
	journalTable = "journal_entries"
)

// Store is the SQLite backend. Statements are built with the ent SQL
// builder and run through the ent driver.
type Store struct {
	db  *sql.DB
	drv *entsql.Driver
	seq *journalSequence
}

// Open creates a new Store connected to the SQLite database at dsn.
// It applies recommended pragmas and creates the tables it needs.
func Open(dsn string) (*Store, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if err := applyPragmas(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply pragmas: %w", err)
	}

	if err := migrate(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	drv := entsql.OpenDB(dialect.SQLite, db)
	seq, err := newJournalSequence(context.Background(), drv)
	if err != nil {
		db.Close()
		return nil, err
	}

	return &Store{
		db:  db,
		drv: drv,
		seq: seq,
	}, nil
}

// DB returns the underlying *sql.DB for raw queries.
func (s *Store) DB() *sql.DB {
	return s.db
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.drv.Close()
}

// KV returns the key-value port backed by this store.
func (s *Store) KV() KV {
	return &sqliteKV{drv: s.drv}
}

// Journal returns the progress journal backed by this store.
func (s *Store) Journal() JournalRepo {
	return &sqliteJournal{drv: s.drv, seq: s.seq}
}

// applyPragmas configures SQLite for optimal single-user performance.
func applyPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA foreign_keys = ON",
		"PRAGMA synchronous = NORMAL",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			return fmt.Errorf("%s: %w", p, err)
		}
	}
	return nil
}

func migrate(db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS ` + kvTable + ` (
			record_key TEXT PRIMARY KEY,
			value BLOB NOT NULL,
			updated_at INTEGER NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS ` + journalTable + ` (
			id TEXT PRIMARY KEY,
			sequence INTEGER NOT NULL UNIQUE,
			timestamp INTEGER NOT NULL,
			profile TEXT NOT NULL DEFAULT '',
			kind TEXT NOT NULL,
			subject TEXT NOT NULL,
			value TEXT NOT NULL DEFAULT ''
		)`,
		`CREATE INDEX IF NOT EXISTS journal_entries_profile ON ` + journalTable + ` (profile)`,
	}
	for _, stmt := range stmts {
		if _, err := db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// sqliteKV implements KV on the kv_records table.
type sqliteKV struct {
	drv *entsql.Driver
}

func (k *sqliteKV) Load(ctx context.Context, key string) ([]byte, error) {
	query, args := entsql.Dialect(dialect.SQLite).
		Select("value").
		From(entsql.Table(kvTable)).
		Where(entsql.EQ("record_key", key)).
		Query()

	rows := &entsql.Rows{}
	if err := k.drv.Query(ctx, query, args, rows); err != nil {
		return nil, fmt.Errorf("load %q: %w", key, err)
	}
	defer rows.Close()

	if !rows.Next() {
		return nil, rows.Err()
	}
	var blob []byte
	if err := rows.Scan(&blob); err != nil {
		return nil, fmt.Errorf("scan %q: %w", key, err)
	}
	return blob, nil
}

func (k *sqliteKV) Save(ctx context.Context, key string, blob []byte) error {
	if blob == nil {
		blob = []byte{}
	}
	query, args := entsql.Dialect(dialect.SQLite).
		Insert(kvTable).
		Columns("record_key", "value", "updated_at").
		Values(key, blob, time.Now().UTC().UnixNano()).
		OnConflict(
			entsql.ConflictColumns("record_key"),
			entsql.ResolveWithNewValues(),
		).
		Query()

	var res sql.Result
	if err := k.drv.Exec(ctx, query, args, &res); err != nil {
		return fmt.Errorf("save %q: %w", key, err)
	}
	return nil
}

func (k *sqliteKV) Delete(ctx context.Context, key string) error {
	query, args := entsql.Dialect(dialect.SQLite).
		Delete(kvTable).
		Where(entsql.EQ("record_key", key)).
		Query()

	var res sql.Result
	if err := k.drv.Exec(ctx, query, args, &res); err != nil {
		return fmt.Errorf("delete %q: %w", key, err)
	}
	return nil
}

// sqliteJournal implements JournalRepo on the journal_entries table.
type sqliteJournal struct {
	drv *entsql.Driver
	seq *journalSequence
}

func (j *sqliteJournal) Append(ctx context.Context, entry JournalEntry) (JournalEntry, error) {
	seqNum, err := j.seq.Next(ctx)
	if err != nil {
		return JournalEntry{}, fmt.Errorf("next sequence: %w", err)
	}
	entry = stamp(entry, seqNum)

	query, args := entsql.Dialect(dialect.SQLite).
		Insert(journalTable).
		Columns("id", "sequence", "timestamp", "profile", "kind", "subject", "value").
		Values(entry.ID, entry.Sequence, entry.Timestamp.UnixNano(), entry.Profile, entry.Kind, entry.Subject, entry.Value).
		Query()

	var res sql.Result
	if err := j.drv.Exec(ctx, query, args, &res); err != nil {
		return JournalEntry{}, fmt.Errorf("append journal entry: %w", err)
	}
	return entry, nil
}

func (j *sqliteJournal) Query(ctx context.Context, opts QueryOpts) ([]JournalEntry, error) {
	sel := entsql.Dialect(dialect.SQLite).
		Select("id", "sequence", "timestamp", "profile", "kind", "subject", "value").
		From(entsql.Table(journalTable)).
		Where(entsql.GT("sequence", opts.After)).
		OrderBy(entsql.Desc("sequence"))
	if opts.Before > 0 {
		sel.Where(entsql.LT("sequence", opts.Before))
	}
	if opts.Profile != "" {
		sel.Where(entsql.EQ("profile", opts.Profile))
	}
	if opts.Kind != "" {
		sel.Where(entsql.EQ("kind", opts.Kind))
	}
	if opts.Limit > 0 {
		sel.Limit(opts.Limit)
	}
	query, args := sel.Query()

	rows := &entsql.Rows{}
	if err := j.drv.Query(ctx, query, args, rows); err != nil {
		return nil, fmt.Errorf("query journal: %w", err)
	}
	defer rows.Close()

	var entries []JournalEntry
	for rows.Next() {
		var (
			e  JournalEntry
			ts int64
		)
		if err := rows.Scan(&e.ID, &e.Sequence, &ts, &e.Profile, &e.Kind, &e.Subject, &e.Value); err != nil {
			return nil, fmt.Errorf("scan journal entry: %w", err)
		}
		e.Timestamp = time.Unix(0, ts).UTC()
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// DefaultDBPath resolves the database file path in priority order:
// 1. TRADEPATH_DB environment variable
// 2. $XDG_DATA_HOME/tradepath/tradepath.db
// 3. ~/.local/share/tradepath/tradepath.db
func DefaultDBPath() (string, error) {
	if p := os.Getenv("TRADEPATH_DB"); p != "" {
		return p, EnsureDir(p)
	}

	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		dataHome = filepath.Join(home, ".local", "share")
	}

	p := filepath.Join(dataHome, "tradepath", "tradepath.db")
	return p, EnsureDir(p)
}

// EnsureDir creates the parent directory of path if it doesn't exist.
func EnsureDir(path string) error {
	if path == "" {
		return errors.New("empty database path")
	}
	dir := filepath.Dir(path)
	return os.MkdirAll(dir, 0o755)
}

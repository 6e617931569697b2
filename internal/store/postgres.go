package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Postgres is a backend on a shared Postgres database. Statements are
// built with the ent SQL builder in the Postgres dialect and executed on
// a pgx pool.
type Postgres struct {
	pool *pgxpool.Pool
}

// OpenPostgres connects to dsn, pings, and creates the tables it needs.
func OpenPostgres(ctx context.Context, dsn string) (*Postgres, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}

	stmts := []string{
		`CREATE TABLE IF NOT EXISTS ` + kvTable + ` (
			record_key TEXT PRIMARY KEY,
			value BYTEA NOT NULL,
			updated_at BIGINT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS ` + journalTable + ` (
			id TEXT PRIMARY KEY,
			sequence BIGSERIAL UNIQUE,
			timestamp BIGINT NOT NULL,
			profile TEXT NOT NULL DEFAULT '',
			kind TEXT NOT NULL,
			subject TEXT NOT NULL,
			value TEXT NOT NULL DEFAULT ''
		)`,
	}
	for _, stmt := range stmts {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			pool.Close()
			return nil, fmt.Errorf("migrate postgres: %w", err)
		}
	}
	return &Postgres{pool: pool}, nil
}

func (p *Postgres) KV() KV               { return &postgresKV{pool: p.pool} }
func (p *Postgres) Journal() JournalRepo { return &postgresJournal{pool: p.pool} }

func (p *Postgres) Close() error {
	p.pool.Close()
	return nil
}

type postgresKV struct {
	pool *pgxpool.Pool
}

func (k *postgresKV) Load(ctx context.Context, key string) ([]byte, error) {
	query, args := entsql.Dialect(dialect.Postgres).
		Select("value").
		From(entsql.Table(kvTable)).
		Where(entsql.EQ("record_key", key)).
		Query()

	var blob []byte
	err := k.pool.QueryRow(ctx, query, args...).Scan(&blob)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load %q: %w", key, err)
	}
	return blob, nil
}

func (k *postgresKV) Save(ctx context.Context, key string, blob []byte) error {
	if blob == nil {
		blob = []byte{}
	}
	query, args := entsql.Dialect(dialect.Postgres).
		Insert(kvTable).
		Columns("record_key", "value", "updated_at").
		Values(key, blob, time.Now().UTC().UnixNano()).
		OnConflict(
			entsql.ConflictColumns("record_key"),
			entsql.ResolveWithNewValues(),
		).
		Query()

	if _, err := k.pool.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("save %q: %w", key, err)
	}
	return nil
}

func (k *postgresKV) Delete(ctx context.Context, key string) error {
	query, args := entsql.Dialect(dialect.Postgres).
		Delete(kvTable).
		Where(entsql.EQ("record_key", key)).
		Query()

	if _, err := k.pool.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("delete %q: %w", key, err)
	}
	return nil
}

type postgresJournal struct {
	pool *pgxpool.Pool
}

func (j *postgresJournal) Append(ctx context.Context, entry JournalEntry) (JournalEntry, error) {
	// The BIGSERIAL column assigns the sequence; stamp only fills ID and time.
	entry = stamp(entry, 0)

	query, args := entsql.Dialect(dialect.Postgres).
		Insert(journalTable).
		Columns("id", "timestamp", "profile", "kind", "subject", "value").
		Values(entry.ID, entry.Timestamp.UnixNano(), entry.Profile, entry.Kind, entry.Subject, entry.Value).
		Returning("sequence").
		Query()

	if err := j.pool.QueryRow(ctx, query, args...).Scan(&entry.Sequence); err != nil {
		return JournalEntry{}, fmt.Errorf("append journal entry: %w", err)
	}
	return entry, nil
}

func (j *postgresJournal) Query(ctx context.Context, opts QueryOpts) ([]JournalEntry, error) {
	sel := entsql.Dialect(dialect.Postgres).
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

	rows, err := j.pool.Query(ctx, query, args...)
	if err != nil {
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

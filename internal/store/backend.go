package store

import (
	"context"
	"fmt"
	"strings"
)

// Backend kinds accepted by OpenBackend.
const (
	BackendSQLite   = "sqlite"
	BackendRedis    = "redis"
	BackendPostgres = "postgres"
	BackendMemory   = "memory"
)

// BackendOptions selects and configures a backend.
type BackendOptions struct {
	Kind        string
	SQLitePath  string
	Redis       RedisOptions
	PostgresDSN string
}

// OpenBackend opens the backend named by opts.Kind. An empty kind means SQLite.
func OpenBackend(ctx context.Context, opts BackendOptions) (Backend, error) {
	switch strings.ToLower(strings.TrimSpace(opts.Kind)) {
	case "", BackendSQLite:
		path := opts.SQLitePath
		if path == "" {
			p, err := DefaultDBPath()
			if err != nil {
				return nil, fmt.Errorf("resolve DB path: %w", err)
			}
			path = p
		} else if err := EnsureDir(path); err != nil {
			return nil, fmt.Errorf("create DB dir: %w", err)
		}
		return Open(path)
	case BackendRedis:
		if opts.Redis.Addr == "" {
			return nil, fmt.Errorf("redis backend requires an address")
		}
		return OpenRedis(ctx, opts.Redis)
	case BackendPostgres:
		if opts.PostgresDSN == "" {
			return nil, fmt.Errorf("postgres backend requires a DSN")
		}
		return OpenPostgres(ctx, opts.PostgresDSN)
	case BackendMemory:
		return NewMemory(), nil
	default:
		return nil, fmt.Errorf("unknown backend %q: must be sqlite, redis, postgres or memory", opts.Kind)
	}
}

// Package config resolves runtime settings from the environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"github.com/abhisek/tradepath/internal/store"
)

// Config holds everything a tradepath command needs to open its state.
type Config struct {
	// Backend selects the persistence backend.
	// Values: "sqlite", "redis", "postgres", "memory"
	Backend string

	SQLitePath  string // Empty means the XDG default.
	Redis       store.RedisOptions
	PostgresDSN string

	// Profile namespaces stored keys so several learners share one store.
	Profile string

	// LogMode is "dev" or "prod".
	LogMode string
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Backend: store.BackendSQLite,
		Redis: store.RedisOptions{
			Addr:   "localhost:6379",
			Prefix: "tradepath:",
		},
		LogMode: "prod",
	}
}

// FromEnv builds a Config from environment variables, falling back to
// defaults for unset values.
func FromEnv() (Config, error) {
	cfg := DefaultConfig()

	if b := os.Getenv("TRADEPATH_BACKEND"); b != "" {
		cfg.Backend = strings.ToLower(b)
	}
	if p := os.Getenv("TRADEPATH_DB"); p != "" {
		cfg.SQLitePath = p
	}

	if a := os.Getenv("TRADEPATH_REDIS_ADDR"); a != "" {
		cfg.Redis.Addr = a
	}
	if p := os.Getenv("TRADEPATH_REDIS_PASSWORD"); p != "" {
		cfg.Redis.Password = p
	}
	if d := os.Getenv("TRADEPATH_REDIS_DB"); d != "" {
		n, err := strconv.Atoi(d)
		if err != nil {
			return Config{}, fmt.Errorf("TRADEPATH_REDIS_DB: %w", err)
		}
		cfg.Redis.DB = n
	}
	if p := os.Getenv("TRADEPATH_REDIS_PREFIX"); p != "" {
		cfg.Redis.Prefix = p
	}

	if dsn := os.Getenv("TRADEPATH_POSTGRES_DSN"); dsn != "" {
		cfg.PostgresDSN = dsn
	}
	if p := os.Getenv("TRADEPATH_PROFILE"); p != "" {
		cfg.Profile = p
	}
	if m := os.Getenv("TRADEPATH_LOG"); m != "" {
		cfg.LogMode = m
	}

	return cfg, nil
}

// Load reads an optional .env file into the environment, then builds the
// Config from it. Variables already set in the environment win.
func Load(envFiles ...string) (Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, f := range envFiles {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("load %s: %w", f, err)
		}
	}
	return FromEnv()
}

// Validate checks that the selected backend has what it needs.
func (c Config) Validate() error {
	switch c.Backend {
	case store.BackendSQLite, store.BackendMemory:
	case store.BackendRedis:
		if c.Redis.Addr == "" {
			return fmt.Errorf("TRADEPATH_REDIS_ADDR is required for the redis backend")
		}
	case store.BackendPostgres:
		if c.PostgresDSN == "" {
			return fmt.Errorf("TRADEPATH_POSTGRES_DSN is required for the postgres backend")
		}
	default:
		return fmt.Errorf("unknown backend: %q", c.Backend)
	}
	return nil
}

// BackendOptions converts the config for store.OpenBackend.
func (c Config) BackendOptions() store.BackendOptions {
	return store.BackendOptions{
		Kind:        c.Backend,
		SQLitePath:  c.SQLitePath,
		Redis:       c.Redis,
		PostgresDSN: c.PostgresDSN,
	}
}

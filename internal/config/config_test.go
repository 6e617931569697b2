package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/abhisek/tradepath/internal/store"
)

var envKeys = []string{
	"TRADEPATH_BACKEND", "TRADEPATH_DB", "TRADEPATH_REDIS_ADDR", "TRADEPATH_REDIS_PASSWORD",
	"TRADEPATH_REDIS_DB", "TRADEPATH_REDIS_PREFIX", "TRADEPATH_POSTGRES_DSN",
	"TRADEPATH_PROFILE", "TRADEPATH_LOG",
}

// clearEnv blanks every TRADEPATH_ variable for the test.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range envKeys {
		t.Setenv(k, "")
	}
}

func TestFromEnvDefaults(t *testing.T) {
	clearEnv(t)
	cfg, err := FromEnv()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Backend != store.BackendSQLite {
		t.Errorf("Backend = %q, want sqlite", cfg.Backend)
	}
	if cfg.Redis.Prefix != "tradepath:" {
		t.Errorf("Redis.Prefix = %q", cfg.Redis.Prefix)
	}
	if cfg.LogMode != "prod" {
		t.Errorf("LogMode = %q, want prod", cfg.LogMode)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() = %v", err)
	}
}

func TestFromEnvOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("TRADEPATH_BACKEND", "Redis")
	t.Setenv("TRADEPATH_REDIS_ADDR", "cache:6380")
	t.Setenv("TRADEPATH_REDIS_DB", "3")
	t.Setenv("TRADEPATH_PROFILE", "lan")
	t.Setenv("TRADEPATH_LOG", "dev")

	cfg, err := FromEnv()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Backend != store.BackendRedis || cfg.Redis.Addr != "cache:6380" || cfg.Redis.DB != 3 {
		t.Errorf("redis config = %+v / %q", cfg.Redis, cfg.Backend)
	}
	if cfg.Profile != "lan" || cfg.LogMode != "dev" {
		t.Errorf("profile/log = %q/%q", cfg.Profile, cfg.LogMode)
	}
	opts := cfg.BackendOptions()
	if opts.Kind != store.BackendRedis || opts.Redis.Addr != "cache:6380" {
		t.Errorf("BackendOptions = %+v", opts)
	}
}

func TestFromEnvBadRedisDB(t *testing.T) {
	clearEnv(t)
	t.Setenv("TRADEPATH_REDIS_DB", "zero")
	if _, err := FromEnv(); err == nil {
		t.Error("expected error for non-numeric TRADEPATH_REDIS_DB")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"sqlite", Config{Backend: store.BackendSQLite}, false},
		{"memory", Config{Backend: store.BackendMemory}, false},
		{"redis no addr", Config{Backend: store.BackendRedis}, true},
		{"redis", Config{Backend: store.BackendRedis, Redis: store.RedisOptions{Addr: "x:1"}}, false},
		{"postgres no dsn", Config{Backend: store.BackendPostgres}, true},
		{"postgres", Config{Backend: store.BackendPostgres, PostgresDSN: "postgres://x"}, false},
		{"unknown", Config{Backend: "mongo"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.cfg.Validate(); (err != nil) != tt.wantErr {
				t.Errorf("Validate() = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestLoadDotEnv(t *testing.T) {
	clearEnv(t)
	// godotenv never overrides variables that are already set, even
	// empty ones, so unset the ones the file provides.
	os.Unsetenv("TRADEPATH_PROFILE")
	os.Unsetenv("TRADEPATH_BACKEND")

	path := filepath.Join(t.TempDir(), "test.env")
	if err := os.WriteFile(path, []byte("TRADEPATH_PROFILE=from-file\nTRADEPATH_BACKEND=memory\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		os.Unsetenv("TRADEPATH_PROFILE")
		os.Unsetenv("TRADEPATH_BACKEND")
	})

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Profile != "from-file" || cfg.Backend != store.BackendMemory {
		t.Errorf("cfg = %+v", cfg)
	}
}

func TestLoadMissingFileIsFine(t *testing.T) {
	clearEnv(t)
	if _, err := Load(filepath.Join(t.TempDir(), "absent.env")); err != nil {
		t.Errorf("Load() = %v, want nil for a missing file", err)
	}
}

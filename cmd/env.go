package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/tradepath/internal/assessment"
	"github.com/abhisek/tradepath/internal/config"
	"github.com/abhisek/tradepath/internal/learnpath"
	"github.com/abhisek/tradepath/internal/logger"
	"github.com/abhisek/tradepath/internal/store"
)

// env is everything a subcommand needs, opened from config and flags.
type env struct {
	cfg     config.Config
	log     *logger.Logger
	backend store.Backend
	assess  *assessment.Service
	path    *learnpath.Service
}

// resolveConfig loads env/.env configuration and applies root flag
// overrides, flags taking the highest priority.
func resolveConfig(cmd *cobra.Command) (config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return config.Config{}, err
	}
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		cfg.SQLitePath = p
	}
	if b, _ := cmd.Flags().GetString("backend"); b != "" {
		cfg.Backend = strings.ToLower(strings.TrimSpace(b))
	}
	if p, _ := cmd.Flags().GetString("profile"); p != "" {
		cfg.Profile = p
	}
	if m, _ := cmd.Flags().GetString("log"); m != "" {
		cfg.LogMode = m
	}
	return cfg, cfg.Validate()
}

// openEnv opens the backend and builds both services. Call close when done.
func openEnv(cmd *cobra.Command) (*env, error) {
	ctx := cmd.Context()
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	log, err := logger.New(cfg.LogMode)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	backend, err := store.OpenBackend(ctx, cfg.BackendOptions())
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	log.Debug("store opened", "backend", cfg.Backend, "profile", cfg.Profile)

	kv := store.Namespaced(backend.KV(), cfg.Profile)
	journal := backend.Journal()

	return &env{
		cfg:     cfg,
		log:     log,
		backend: backend,
		assess: assessment.NewService(ctx, assessment.Options{
			KV: kv, Journal: journal, Logger: log, Profile: cfg.Profile,
		}),
		path: learnpath.NewService(ctx, learnpath.Options{
			KV: kv, Journal: journal, Logger: log, Profile: cfg.Profile,
		}),
	}, nil
}

func (e *env) close() {
	if err := e.backend.Close(); err != nil {
		e.log.Error("close store failed", "error", err)
	}
	e.log.Sync()
}

// withEnv adapts a handler that needs an env into a cobra RunE.
func withEnv(fn func(cmd *cobra.Command, e *env, args []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		e, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer e.close()
		return fn(cmd, e, args)
	}
}

package cmd

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/tradepath/internal/store"
)

func TestDescribeVersion(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"(devel)", "(devel)"},
		{"", "(devel)"},
		{"v1.2.3", "v1.2.3"},
		{"1.2.3", "v1.2.3"},
		{"v1.3.0-rc.1", "v1.3.0-rc.1 (pre-release)"},
		{"nightly", "nightly (unrecognised version)"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, describeVersion(tt.in), tt.in)
	}
}

// run executes the root command against a throwaway SQLite file.
func run(t *testing.T, db string, args ...string) string {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(append([]string{"--db", db, "--backend", "sqlite"}, args...))
	t.Cleanup(func() { rootCmd.SetArgs(nil) })
	require.NoError(t, rootCmd.Execute(), "tradepath %s: %s", strings.Join(args, " "), out.String())
	return out.String()
}

func TestEndToEnd(t *testing.T) {
	t.Setenv("TRADEPATH_PROFILE", "")
	t.Setenv("TRADEPATH_LOG", "prod")
	db := filepath.Join(t.TempDir(), "state", "tradepath.db")

	out := run(t, db, "path", "auto")
	assert.Contains(t, out, "No assessment data")

	run(t, db, "assess", "mark", "knowledge", "trend_sideway")
	out = run(t, db, "assess", "mark", "system", "fixed_strategy")
	assert.Contains(t, out, "total 4 → 8")
	assert.Contains(t, out, "Mới (0–35)")

	out = run(t, db, "assess", "score")
	assert.Contains(t, out, "Total 8/100")

	run(t, db, "path", "done", "overview", "lesson")
	out = run(t, db, "path", "done", "overview", "quiz")
	assert.Contains(t, out, "Locked → In progress")

	out = run(t, db, "path", "done", "sr", "lesson")
	assert.Contains(t, out, "locked")

	out = run(t, db, "path", "summary")
	assert.Contains(t, out, "2/13 tasks")

	out = run(t, db, "path", "auto")
	assert.Contains(t, out, "level beginner")

	out = run(t, db, "history", "-n", "3")
	assert.Contains(t, out, "level-selected")
	assert.Contains(t, out, "beginner/overview/quiz")
}

func TestResolveConfigNormalizesBackendFlag(t *testing.T) {
	t.Setenv("TRADEPATH_BACKEND", "")
	for _, flag := range []string{"SQLITE", " Memory "} {
		c := &cobra.Command{}
		c.Flags().String("db", "", "")
		c.Flags().String("backend", "", "")
		c.Flags().String("profile", "", "")
		c.Flags().String("log", "", "")
		require.NoError(t, c.Flags().Set("backend", flag))

		cfg, err := resolveConfig(c)
		require.NoError(t, err, "--backend %q", flag)
		assert.Contains(t, []string{store.BackendSQLite, store.BackendMemory}, cfg.Backend)
	}
}

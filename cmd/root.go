package cmd

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "tradepath",
	Short: "Trader self-assessment and learning path tracker",
	Long: "tradepath scores your trading maturity against a five-category rubric and\n" +
		"walks you through a gated learning path for your level.",
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides TRADEPATH_DB env var)")
	rootCmd.PersistentFlags().String("backend", "", "Storage backend: sqlite, redis, postgres or memory (overrides TRADEPATH_BACKEND)")
	rootCmd.PersistentFlags().String("profile", "", "Learner profile to namespace state under (overrides TRADEPATH_PROFILE)")
	rootCmd.PersistentFlags().String("log", "", "Log mode: dev or prod (overrides TRADEPATH_LOG)")

	rootCmd.AddCommand(assessCmd)
	rootCmd.AddCommand(pathCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(versionCmd)
}

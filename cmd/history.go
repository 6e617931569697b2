package cmd

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/spf13/cobra"

	"github.com/abhisek/tradepath/internal/store"
	"github.com/abhisek/tradepath/internal/ui/theme"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recent progress changes",
	Args:  cobra.NoArgs,
	RunE: withEnv(func(cmd *cobra.Command, e *env, args []string) error {
		n, _ := cmd.Flags().GetInt("limit")
		kind, _ := cmd.Flags().GetString("kind")

		entries, err := e.backend.Journal().Query(cmd.Context(), store.QueryOpts{
			Limit:   n,
			Profile: e.cfg.Profile,
			Kind:    kind,
		})
		if err != nil {
			return fmt.Errorf("query journal: %w", err)
		}

		w := cmd.OutOrStdout()
		if len(entries) == 0 {
			lipgloss.Fprintln(w, theme.Hint.Render("No history yet."))
			return nil
		}

		lipgloss.Fprintf(w, "%6s  %-19s  %-16s  %-36s  %s\n", "SEQ", "TIME", "KIND", "SUBJECT", "VALUE")
		lipgloss.Fprintln(w, strings.Repeat("─", 90))
		for _, en := range entries {
			lipgloss.Fprintf(w, "%6d  %-19s  %-16s  %-36s  %s\n",
				en.Sequence, en.Timestamp.Local().Format("2006-01-02 15:04:05"), en.Kind, en.Subject, en.Value)
		}
		return nil
	}),
}

func init() {
	historyCmd.Flags().IntP("limit", "n", 20, "Maximum number of entries (0 = all)")
	historyCmd.Flags().String("kind", "", "Only show one kind, e.g. task-set")
}

package cmd

import (
	"fmt"
	"io"

	"charm.land/lipgloss/v2"
	"github.com/spf13/cobra"

	"github.com/abhisek/tradepath/internal/assessment"
	"github.com/abhisek/tradepath/internal/ui/components"
	"github.com/abhisek/tradepath/internal/ui/theme"
)

var assessCmd = &cobra.Command{
	Use:   "assess",
	Short: "Trading maturity self-assessment",
}

var assessShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the rubric with your current answers",
	Args:  cobra.NoArgs,
	RunE: withEnv(func(cmd *cobra.Command, e *env, args []string) error {
		w := cmd.OutOrStdout()
		answers := e.assess.Answers()
		for _, c := range e.assess.Rubric().Categories() {
			lipgloss.Fprintln(w, theme.Heading.Render(fmt.Sprintf("%s (%s)", c.Title, c.Key)))
			for _, cr := range c.Criteria {
				mark := theme.Unchecked.Render("[ ]")
				if answers.Get(c.Key, cr.Key) {
					mark = theme.Checked.Render("[x]")
				}
				lipgloss.Fprintf(w, "  %s %-22s %s %s\n", mark, cr.Key, cr.Label,
					theme.Hint.Render(fmt.Sprintf("+%d", cr.Points)))
			}
			lipgloss.Fprintln(w)
		}
		printScoreboard(w, e.assess.Scoreboard())
		return nil
	}),
}

func setCriterionCmd(use string, value bool, short string) *cobra.Command {
	return &cobra.Command{
		Use:   use + " <category> <criterion>",
		Short: short,
		Args:  cobra.ExactArgs(2),
		RunE: withEnv(func(cmd *cobra.Command, e *env, args []string) error {
			before := e.assess.Scoreboard().Total
			if _, err := e.assess.SetCriterion(cmd.Context(), assessment.CategoryKey(args[0]), args[1], value); err != nil {
				return err
			}
			sb := e.assess.Scoreboard()
			lipgloss.Fprintf(cmd.OutOrStdout(), "%s/%s = %v  (total %d → %d, %s)\n",
				args[0], args[1], value, before, sb.Total, sb.Band.Label())
			return nil
		}),
	}
}

var assessScoreCmd = &cobra.Command{
	Use:   "score",
	Short: "Show per-category scores, total, maturity level and guidance",
	Args:  cobra.NoArgs,
	RunE: withEnv(func(cmd *cobra.Command, e *env, args []string) error {
		if !e.assess.HasAnswers() {
			lipgloss.Fprintln(cmd.OutOrStdout(), theme.Hint.Render("No answers recorded yet. Start with: tradepath assess show"))
		}
		printScoreboard(cmd.OutOrStdout(), e.assess.Scoreboard())
		return nil
	}),
}

var assessResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Clear every answer",
	Args:  cobra.NoArgs,
	RunE: withEnv(func(cmd *cobra.Command, e *env, args []string) error {
		if _, err := e.assess.Reset(cmd.Context()); err != nil {
			return err
		}
		lipgloss.Fprintln(cmd.OutOrStdout(), "Assessment cleared.")
		return nil
	}),
}

func printScoreboard(w io.Writer, sb assessment.Scoreboard) {
	for _, c := range sb.Categories {
		pct := 0
		if c.Max > 0 {
			pct = c.Score * 100 / c.Max
		}
		bar := components.NewProgressBar(fmt.Sprintf("%-12s %2d/%d", c.Key, c.Score, c.Max), pct, false, 44)
		lipgloss.Fprintln(w, bar.View())
	}
	lipgloss.Fprintln(w)
	lipgloss.Fprintln(w, theme.Card.Render(
		theme.Title.Render(fmt.Sprintf("Total %d/%d  %s", sb.Total, sb.Max, sb.Band.Label()))+"\n"+
			theme.Body.Render(sb.Guidance)))
}

func init() {
	assessCmd.AddCommand(assessShowCmd)
	assessCmd.AddCommand(setCriterionCmd("mark", true, "Mark a criterion as true"))
	assessCmd.AddCommand(setCriterionCmd("unmark", false, "Mark a criterion as false"))
	assessCmd.AddCommand(assessScoreCmd)
	assessCmd.AddCommand(assessResetCmd)
}

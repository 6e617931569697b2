package cmd

import (
	"fmt"
	"io"

	"charm.land/lipgloss/v2"
	"github.com/spf13/cobra"

	"github.com/abhisek/tradepath/internal/learnpath"
	"github.com/abhisek/tradepath/internal/placement"
	"github.com/abhisek/tradepath/internal/ui/components"
	"github.com/abhisek/tradepath/internal/ui/theme"
)

var pathCmd = &cobra.Command{
	Use:   "path",
	Short: "Gated learning path for your level",
}

// levelArg returns the level named by args[0], or the active level.
func levelArg(e *env, args []string) (learnpath.Level, error) {
	if len(args) == 0 {
		return e.path.ActiveLevel(), nil
	}
	return learnpath.ParseLevel(args[0])
}

func stateStyle(s learnpath.ModuleState) lipgloss.Style {
	switch s {
	case learnpath.StateComplete:
		return theme.Complete
	case learnpath.StateInProgress:
		return theme.InProgress
	default:
		return theme.Locked
	}
}

var pathShowCmd = &cobra.Command{
	Use:   "show [level]",
	Short: "Show modules and tasks of a level (default: active level)",
	Args:  cobra.MaximumNArgs(1),
	RunE: withEnv(func(cmd *cobra.Command, e *env, args []string) error {
		level, err := levelArg(e, args)
		if err != nil {
			return err
		}
		p, err := e.path.LevelPath(level)
		if err != nil {
			return err
		}
		states, err := e.path.ModuleStates(level)
		if err != nil {
			return err
		}
		lp, err := e.path.Progress(level)
		if err != nil {
			return err
		}

		w := cmd.OutOrStdout()
		header := fmt.Sprintf("%s (%s)", p.Title, p.Level)
		if level == e.path.ActiveLevel() {
			header += "  ★ active"
		}
		lipgloss.Fprintln(w, theme.Title.Render(header))
		lipgloss.Fprintln(w, theme.Hint.Render(p.Goal))
		lipgloss.Fprintln(w)

		for i, m := range p.Modules {
			style := stateStyle(states[i])
			lipgloss.Fprintln(w, style.Render(fmt.Sprintf("%s %d. %s [%s]  %s", states[i].Icon(), i+1, m.Title, m.ID, states[i].Label())))
			for _, t := range m.Tasks {
				mark := theme.Unchecked.Render("[ ]")
				if lp.Done(m.ID, t.Key) {
					mark = theme.Checked.Render("[x]")
				}
				lipgloss.Fprintf(w, "     %s %-16s %s\n", mark, t.Key, t.Label)
			}
		}
		lipgloss.Fprintln(w)
		sum, err := e.path.Summary(level)
		if err != nil {
			return err
		}
		printSummary(w, sum)
		return nil
	}),
}

func setTaskCmd(use string, value bool, short string) *cobra.Command {
	c := &cobra.Command{
		Use:   use + " <module> <task>",
		Short: short,
		Args:  cobra.ExactArgs(2),
		RunE: withEnv(func(cmd *cobra.Command, e *env, args []string) error {
			level := e.path.ActiveLevel()
			if l, _ := cmd.Flags().GetString("level"); l != "" {
				parsed, err := learnpath.ParseLevel(l)
				if err != nil {
					return err
				}
				level = parsed
			}

			res, err := e.path.SetTask(cmd.Context(), level, args[0], args[1], value)
			if err != nil {
				return err
			}
			printTaskResult(cmd.OutOrStdout(), res)
			return nil
		}),
	}
	c.Flags().String("level", "", "Level to update (default: active level)")
	return c
}

func printTaskResult(w io.Writer, res learnpath.TaskResult) {
	if !res.Applied() {
		msg := fmt.Sprintf("Module %q is locked.", res.ModuleID)
		if res.BlockedBy != nil {
			msg += fmt.Sprintf(" Finish %q (%s) first.", res.BlockedBy.Title, res.BlockedBy.ID)
		}
		lipgloss.Fprintln(w, theme.Rejected.Render(msg))
		return
	}
	lipgloss.Fprintf(w, "%s/%s/%s = %v\n", res.Level, res.ModuleID, res.TaskKey, res.Value)
	for _, t := range res.Transitions {
		lipgloss.Fprintln(w, stateStyle(t.To).Render(
			fmt.Sprintf("  %s %s: %s → %s", t.To.Icon(), t.Title, t.From.Label(), t.To.Label())))
	}
}

var pathSelectCmd = &cobra.Command{
	Use:   "select <level>",
	Short: "Make a level the active one",
	Args:  cobra.ExactArgs(1),
	RunE: withEnv(func(cmd *cobra.Command, e *env, args []string) error {
		level, err := learnpath.ParseLevel(args[0])
		if err != nil {
			return err
		}
		if err := e.path.SelectLevel(cmd.Context(), level); err != nil {
			return err
		}
		lipgloss.Fprintf(cmd.OutOrStdout(), "Active level: %s\n", level)
		return nil
	}),
}

var pathSummaryCmd = &cobra.Command{
	Use:   "summary [level]",
	Short: "Show progress totals and the current module",
	Args:  cobra.MaximumNArgs(1),
	RunE: withEnv(func(cmd *cobra.Command, e *env, args []string) error {
		level, err := levelArg(e, args)
		if err != nil {
			return err
		}
		sum, err := e.path.Summary(level)
		if err != nil {
			return err
		}
		printSummary(cmd.OutOrStdout(), sum)
		return nil
	}),
}

func printSummary(w io.Writer, s learnpath.Summary) {
	bar := components.NewProgressBar(string(s.Level), s.Percent, true, 48)
	lipgloss.Fprintln(w, bar.View())
	lipgloss.Fprintf(w, "%d/%d tasks, %d/%d modules complete\n",
		s.DoneTasks, s.TotalTasks, s.CompletedModules, s.TotalModules)
	if title, ok := s.CurrentModuleTitle(); ok {
		lipgloss.Fprintln(w, theme.InProgress.Render("Current module: "+title))
	} else {
		lipgloss.Fprintln(w, theme.Complete.Render("All modules complete 🎉"))
	}
}

var pathAutoCmd = &cobra.Command{
	Use:   "auto",
	Short: "Select the level that matches your assessment score",
	Args:  cobra.NoArgs,
	RunE: withEnv(func(cmd *cobra.Command, e *env, args []string) error {
		sel, err := placement.AutoSelect(cmd.Context(), e.assess, e.path)
		if err != nil {
			return err
		}
		w := cmd.OutOrStdout()
		if sel.Status == placement.NoAssessmentData {
			lipgloss.Fprintln(w, theme.Notice.Render("No assessment data. Complete the assessment first: tradepath assess show"))
			return nil
		}
		lipgloss.Fprintf(w, "Score %d → %s → level %s\n", sel.Total, sel.Band.Label(), sel.Level)
		return nil
	}),
}

var pathResetCmd = &cobra.Command{
	Use:   "reset [level]",
	Short: "Clear all task progress of a level (default: active level)",
	Args:  cobra.MaximumNArgs(1),
	RunE: withEnv(func(cmd *cobra.Command, e *env, args []string) error {
		level, err := levelArg(e, args)
		if err != nil {
			return err
		}
		if err := e.path.ResetLevel(cmd.Context(), level); err != nil {
			return err
		}
		lipgloss.Fprintf(cmd.OutOrStdout(), "Progress for %s cleared.\n", level)
		return nil
	}),
}

func init() {
	pathCmd.AddCommand(pathShowCmd)
	pathCmd.AddCommand(setTaskCmd("done", true, "Mark a task done"))
	pathCmd.AddCommand(setTaskCmd("undo", false, "Mark a task not done"))
	pathCmd.AddCommand(pathSelectCmd)
	pathCmd.AddCommand(pathSummaryCmd)
	pathCmd.AddCommand(pathAutoCmd)
	pathCmd.AddCommand(pathResetCmd)
}

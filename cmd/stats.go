package cmd

import (
	"fmt"
	"io"

	"github.com/brk3/cadence/pkg/habit"
	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats <habit>",
	Short: "Show streaks and completion rate for a habit",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c := apiClient()
		h, err := resolveHabit(cmd.Context(), c, args[0])
		if err != nil {
			return err
		}
		st, err := c.GetHabitStats(cmd.Context(), h.ID)
		if err != nil {
			return err
		}
		printStats(cmd.OutOrStdout(), h, st)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(statsCmd)
}

func printStats(w io.Writer, h habit.Habit, st habit.Stats) {
	last := "never"
	if st.LastCompletedDate != nil {
		last = st.LastCompletedDate.String()
	}
	fmt.Fprintln(w, titleStyle.Render(h.Name))
	fmt.Fprintf(w, "Schedule:        %s\n", describeFrequency(h.Frequency))
	fmt.Fprintf(w, "Current streak:  %d\n", st.CurrentStreak)
	fmt.Fprintf(w, "Longest streak:  %d\n", st.LongestStreak)
	fmt.Fprintf(w, "Last 30 days:    %d/%d (%d%%)\n", st.TotalCompleted, st.TotalExpected, st.CompletionRate)
	fmt.Fprintf(w, "Last completed:  %s\n", last)
}

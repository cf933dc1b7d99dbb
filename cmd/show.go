package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var showPeriod string

var showCmd = &cobra.Command{
	Use:   "show <habit>",
	Short: "Show a habit's day grid",
	Long: `The "show" command draws the last week or month of a habit as a calendar grid.

  ●  done    ○  missed    ◌  due today    ·  not scheduled`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c := apiClient()
		h, err := resolveHabit(cmd.Context(), c, args[0])
		if err != nil {
			return err
		}
		days, err := c.GetHabitDays(cmd.Context(), h.ID, showPeriod)
		if err != nil {
			return err
		}
		st, err := c.GetHabitStats(cmd.Context(), h.ID)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), titleStyle.Render(h.Name))
		fmt.Fprintln(cmd.OutOrStdout(), renderGrid(days))
		fmt.Fprintf(cmd.OutOrStdout(), "streak %d, best %d, %d%% of the last 30 days\n", st.CurrentStreak, st.LongestStreak, st.CompletionRate)
		return nil
	},
}

func init() {
	showCmd.Flags().StringVar(&showPeriod, "period", "week", "week or month")
	rootCmd.AddCommand(showCmd)
}

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Show today's progress across all habits",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := apiClient().GetDashboard(cmd.Context())
		if err != nil {
			return err
		}
		w := cmd.OutOrStdout()
		s := d.Summary
		fmt.Fprintln(w, titleStyle.Render(d.Date.String()))
		fmt.Fprintf(w, "%d of %d habits done today, average completion %d%%\n", s.CompletedToday, s.TotalHabits, s.AvgCompletionRate)
		if s.Best != nil {
			fmt.Fprintf(w, "Best streak: %s (%d)\n", s.Best.Name, s.Best.Streak)
		}
		fmt.Fprintln(w)
		for _, p := range d.Completion {
			fmt.Fprintf(w, "%-20s %s %3d%%\n", truncate(p.HabitName, 20), renderBar(p.CompletionRate, 20), p.CompletionRate)
		}
		if len(d.Heatmap) > 0 {
			fmt.Fprintln(w)
			fmt.Fprintln(w, renderHeatmap(d.Heatmap))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(dashboardCmd)
}

package cmd

import (
	"fmt"

	"github.com/brk3/cadence/pkg/habit"
	"github.com/spf13/cobra"
)

var checkCmd = &cobra.Command{
	Use:   "check <habit> [YYYY-MM-DD]",
	Short: "Toggle a habit's completion for a day",
	Long: `The "check" command marks a habit done for a day, today by default. Checking a day
that is already done clears it again.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		day, err := today()
		if err != nil {
			return err
		}
		if len(args) == 2 {
			if day, err = habit.ParseDay(args[1]); err != nil {
				return err
			}
		}

		c := apiClient()
		h, err := resolveHabit(cmd.Context(), c, args[0])
		if err != nil {
			return err
		}
		done, err := c.Toggle(cmd.Context(), h.ID, day)
		if err != nil {
			return err
		}
		if done {
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s done for %s\n", doneStyle.Render("✓"), h.Name, day)
		} else {
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s cleared for %s\n", missedStyle.Render("✗"), h.Name, day)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(checkCmd)
}

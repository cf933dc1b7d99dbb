package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var deleteYes bool

var deleteCmd = &cobra.Command{
	Use:   "delete <habit>",
	Short: "Delete a habit and all of its history",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c := apiClient()
		h, err := resolveHabit(cmd.Context(), c, args[0])
		if err != nil {
			return err
		}
		if !deleteYes {
			return fmt.Errorf("deleting %s removes every log, rerun with --yes to confirm (or use archive)", h.Name)
		}
		if err := c.DeleteHabit(cmd.Context(), h.ID); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s\n", h.Name)
		return nil
	},
}

func init() {
	deleteCmd.Flags().BoolVarP(&deleteYes, "yes", "y", false, "confirm deletion")
	rootCmd.AddCommand(deleteCmd)
}

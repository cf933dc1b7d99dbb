package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var archiveCmd = &cobra.Command{
	Use:   "archive <habit>",
	Short: "Archive a habit, keeping its history",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c := apiClient()
		h, err := resolveHabit(cmd.Context(), c, args[0])
		if err != nil {
			return err
		}
		if _, err := c.ArchiveHabit(cmd.Context(), h.ID); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Archived %s\n", h.Name)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(archiveCmd)
}

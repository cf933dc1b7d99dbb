package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var listArchived bool

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List habits",
	Long:  `The "list" command lists your habits with their current streak and 30 day completion rate.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		c := apiClient()
		habits, err := c.ListHabits(cmd.Context(), listArchived)
		if err != nil {
			return err
		}
		if len(habits) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), `No habits yet, create one with "habits add <name>".`)
			return nil
		}
		all, err := c.GetAllStats(cmd.Context())
		if err != nil {
			return err
		}

		tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "NAME\tSCHEDULE\tSTREAK\t30D\tID")
		for _, h := range habits {
			name := h.Name
			if h.Archived {
				name += " (archived)"
			}
			st := all[h.ID]
			fmt.Fprintf(tw, "%s\t%s\t%d\t%d%%\t%s\n", name, describeFrequency(h.Frequency), st.CurrentStreak, st.CompletionRate, h.ID)
		}
		return tw.Flush()
	},
}

func init() {
	listCmd.Flags().BoolVar(&listArchived, "archived", false, "include archived habits")
	rootCmd.AddCommand(listCmd)
}

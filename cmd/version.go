package cmd

import (
	"fmt"

	"github.com/brk3/cadence/pkg/versioninfo"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Long: `The "version" command displays the current version info for both client
and server if available.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		w := cmd.OutOrStdout()
		fmt.Fprintf(w, "Client Version: %s\n", versioninfo.Version)

		v, err := apiClient().Version(cmd.Context())
		if err != nil {
			fmt.Fprintln(w, "Error fetching server version:", err)
			return
		}
		fmt.Fprintf(w, "Server Version: %s\n", v.Version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}

package cmd

import (
	"fmt"
	"time"

	"github.com/brk3/cadence/internal/nudge"
	"github.com/brk3/cadence/internal/nudge/resend"
	"github.com/spf13/cobra"
)

var nudgeCmd = &cobra.Command{
	Use:   "nudge",
	Short: "E-mail a reminder for streaks that end if today is missed",
	Long: `The "nudge" command looks for habits due today that are not done yet and have a live
streak, and e-mails a reminder through Resend. Run it from cron in the evening.`,
	Args: cobra.NoArgs,
	PreRunE: func(cmd *cobra.Command, args []string) error {
		if cfg.Nudge.ResendAPIKey == "" {
			return fmt.Errorf("nudge.resend_api_key (or HABITS_RESEND_API_KEY) is not set")
		}
		if cfg.Nudge.Email == "" {
			return fmt.Errorf("nudge.email (or HABITS_NOTIFY_EMAIL) is not set")
		}
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		loc, err := cfg.Location()
		if err != nil {
			return err
		}
		n := resend.NewResendNotifier(cfg.Nudge.ResendAPIKey, cfg.Nudge.From, cfg.Nudge.Email)
		count, err := nudge.Nudge(cmd.Context(), apiClient(), n, nudge.HoursLeft(time.Now(), loc))
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%d streaks at risk\n", count)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(nudgeCmd)
}

package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/brk3/cadence/internal/apiclient"
	"github.com/brk3/cadence/internal/config"
	"github.com/brk3/cadence/internal/logger"
	"github.com/brk3/cadence/pkg/habit"
	"github.com/spf13/cobra"
)

var (
	cfg        *config.Config
	configPath string
)

var rootCmd = &cobra.Command{
	Use:   "habits",
	Short: "Track habits and keep your streaks alive",
	Long: `
	Habits tracks recurring activities on a daily, weekly or weekday schedule. Check off a
	day with "habits check", and see streaks, completion rates and a day grid for each habit.
	All commands except "server" talk to a running habits server.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if configPath != "" {
			if err := os.Setenv("HABITS_CONFIG", configPath); err != nil {
				return err
			}
		}
		var err error
		cfg, err = config.Load()
		if err != nil {
			return fmt.Errorf("error loading config file: %w", err)
		}
		return logger.Setup(cmd.ErrOrStderr(), cfg.Log.Level, cfg.Log.Format)
	},
}

func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default $HABITS_CONFIG or ./config.yaml)")
}

func apiClient() *apiclient.Client {
	return apiclient.New(cfg.APIBaseURL)
}

// today is the current calendar day in the configured timezone.
func today() (habit.Day, error) {
	loc, err := cfg.Location()
	if err != nil {
		return habit.Day{}, err
	}
	return habit.LocalDay(time.Now(), loc), nil
}

package cmd

import (
	"fmt"
	"strings"

	"github.com/brk3/cadence/internal/server"
	"github.com/brk3/cadence/pkg/habit"
	"github.com/spf13/cobra"
)

var addOpts struct {
	description string
	color       string
	icon        string
	bad         bool
	times       int
	days        string
}

var addCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Create a habit",
	Long: `The "add" command creates a habit. Habits are daily unless --times or --days is given.

  habits add reading
  habits add gym --days 1,3,5       # Monday, Wednesday, Friday
  habits add running --times 3      # three times a week`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		req, err := addRequest(args[0])
		if err != nil {
			return err
		}
		h, err := apiClient().CreateHabit(cmd.Context(), req)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Created %s (%s, %s)\n", h.Name, h.ID, describeFrequency(h.Frequency))
		return nil
	},
}

func init() {
	f := addCmd.Flags()
	f.StringVar(&addOpts.description, "description", "", "longer description")
	f.StringVar(&addOpts.color, "color", "", "display color as #RRGGBB")
	f.StringVar(&addOpts.icon, "icon", "", "display icon")
	f.BoolVar(&addOpts.bad, "bad", false, "mark as a habit to avoid")
	f.IntVar(&addOpts.times, "times", 0, "target completions per week (1-7)")
	f.StringVar(&addOpts.days, "days", "", "comma separated weekdays, 0=Sunday")
	addCmd.MarkFlagsMutuallyExclusive("times", "days")
	rootCmd.AddCommand(addCmd)
}

func addRequest(name string) (server.HabitRequest, error) {
	req := server.HabitRequest{
		Name:          name,
		Description:   addOpts.description,
		Color:         addOpts.color,
		Icon:          addOpts.icon,
		HabitType:     string(habit.Good),
		FrequencyType: string(habit.FrequencyDaily),
	}
	if addOpts.bad {
		req.HabitType = string(habit.Bad)
	}
	switch {
	case addOpts.times > 0:
		req.FrequencyType = string(habit.FrequencyTimesPerWeek)
		req.FrequencyValue = addOpts.times
	case addOpts.days != "":
		set, err := habit.ParseWeekdays(addOpts.days)
		if err != nil {
			return server.HabitRequest{}, err
		}
		if set.Empty() {
			return server.HabitRequest{}, fmt.Errorf("--days needs at least one weekday")
		}
		req.FrequencyType = string(habit.FrequencySpecificDays)
		req.FrequencyDays = set.Ints()
	}
	return req, nil
}

func describeFrequency(f habit.Frequency) string {
	switch f := f.(type) {
	case habit.TimesPerWeek:
		return fmt.Sprintf("%d times a week", f.Count)
	case habit.SpecificDays:
		names := make([]string, 0, 7)
		for _, d := range f.Days.Weekdays() {
			names = append(names, d.String()[:3])
		}
		return strings.Join(names, " ")
	default:
		return "daily"
	}
}

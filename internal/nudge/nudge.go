package nudge

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/brk3/cadence/internal/logger"
	"github.com/brk3/cadence/pkg/habit"
)

// AtRisk is a habit with a live streak that is due today and not yet done.
type AtRisk struct {
	Habit  habit.Habit
	Streak int
}

// GetHabitsAtRisk returns the active habits whose current streak ends if today passes
// without a completion.
func GetHabitsAtRisk(ctx context.Context, q Querier) ([]AtRisk, error) {
	habits, err := q.ListHabits(ctx, false)
	if err != nil {
		return nil, err
	}

	var out []AtRisk
	for _, h := range habits {
		days, err := q.GetHabitDays(ctx, h.ID, "week")
		if err != nil {
			return nil, fmt.Errorf("days for %s: %w", h.Name, err)
		}
		today, ok := todayOf(days)
		if !ok || !today.IsExpected || today.Completed {
			continue
		}

		st, err := q.GetHabitStats(ctx, h.ID)
		if err != nil {
			return nil, fmt.Errorf("stats for %s: %w", h.Name, err)
		}
		if st.CurrentStreak > 0 {
			out = append(out, AtRisk{Habit: h, Streak: st.CurrentStreak})
		}
	}
	return out, nil
}

func todayOf(days []habit.DayStatus) (habit.DayStatus, bool) {
	for _, d := range days {
		if d.IsToday {
			return d, true
		}
	}
	return habit.DayStatus{}, false
}

// HoursLeft is the number of whole hours, rounded up, until midnight in loc.
func HoursLeft(now time.Time, loc *time.Location) int {
	local := now.In(loc)
	y, m, d := local.Date()
	midnight := time.Date(y, m, d+1, 0, 0, 0, 0, loc)
	return int(math.Ceil(midnight.Sub(local).Hours()))
}

// Nudge notifies about at-risk habits when there are any, and reports how many there were.
func Nudge(ctx context.Context, q Querier, n Notifier, hoursLeft int) (int, error) {
	atRisk, err := GetHabitsAtRisk(ctx, q)
	if err != nil {
		return 0, err
	}
	if len(atRisk) == 0 {
		logger.Info("No streaks at risk")
		return 0, nil
	}

	logger.Info("Sending nudge", "habits", len(atRisk), "hours_left", hoursLeft)
	if err := n.SendNudge(ctx, atRisk, hoursLeft); err != nil {
		return 0, fmt.Errorf("send nudge: %w", err)
	}
	return len(atRisk), nil
}

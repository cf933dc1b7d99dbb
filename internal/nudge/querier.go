package nudge

import (
	"context"

	"github.com/brk3/cadence/pkg/habit"
)

// Querier is the read side of the habits API that nudging needs.
type Querier interface {
	ListHabits(ctx context.Context, includeArchived bool) ([]habit.Habit, error)
	GetHabitStats(ctx context.Context, id string) (habit.Stats, error)
	GetHabitDays(ctx context.Context, id, period string) ([]habit.DayStatus, error)
}

type Notifier interface {
	SendNudge(ctx context.Context, habits []AtRisk, hoursLeft int) error
}

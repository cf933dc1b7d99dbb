package nudge

import (
	"context"

	"github.com/brk3/cadence/pkg/habit"
)

type mockQuerier struct {
	habits []habit.Habit
	stats  map[string]habit.Stats
	days   map[string][]habit.DayStatus
	err    error
}

func (m *mockQuerier) ListHabits(ctx context.Context, includeArchived bool) ([]habit.Habit, error) {
	return m.habits, m.err
}

func (m *mockQuerier) GetHabitStats(ctx context.Context, id string) (habit.Stats, error) {
	return m.stats[id], m.err
}

func (m *mockQuerier) GetHabitDays(ctx context.Context, id, period string) ([]habit.DayStatus, error) {
	return m.days[id], m.err
}

type mockNotifier struct {
	called    bool
	habits    []AtRisk
	hoursLeft int
	err       error
}

func (m *mockNotifier) SendNudge(ctx context.Context, habits []AtRisk, hoursLeft int) error {
	m.called = true
	m.habits = habits
	m.hoursLeft = hoursLeft
	return m.err
}

package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/brk3/cadence/internal/apiclient"
	"github.com/brk3/cadence/pkg/habit"
)

// resolveHabit finds a habit by exact id, falling back to a case-insensitive name match.
func resolveHabit(ctx context.Context, c *apiclient.Client, ref string) (habit.Habit, error) {
	habits, err := c.ListHabits(ctx, true)
	if err != nil {
		return habit.Habit{}, err
	}
	for _, h := range habits {
		if h.ID == ref {
			return h, nil
		}
	}

	var matches []habit.Habit
	for _, h := range habits {
		if strings.EqualFold(h.Name, ref) {
			matches = append(matches, h)
		}
	}
	switch len(matches) {
	case 0:
		return habit.Habit{}, fmt.Errorf("no habit named %q", ref)
	case 1:
		return matches[0], nil
	default:
		// Prefer the one still in use.
		var active []habit.Habit
		for _, h := range matches {
			if !h.Archived {
				active = append(active, h)
			}
		}
		if len(active) == 1 {
			return active[0], nil
		}
		return habit.Habit{}, fmt.Errorf("%d habits are named %q, use the id instead", len(matches), ref)
	}
}

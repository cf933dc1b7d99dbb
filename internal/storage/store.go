package storage

import (
	"errors"

	"github.com/brk3/cadence/pkg/habit"
)

var ErrNotFound = errors.New("not found")

// Store persists habits and their completion logs. Every call is scoped to a user.
type Store interface {
	CreateHabit(userID string, h habit.Habit) error
	UpdateHabit(userID string, h habit.Habit) error
	GetHabit(userID, habitID string) (habit.Habit, error)
	ListHabits(userID string, includeArchived bool) ([]habit.Habit, error)
	// DeleteHabit removes the habit and all of its logs.
	DeleteHabit(userID, habitID string) error

	// ListLogs returns the habit's logs with from <= day <= to, most recent first.
	// A zero bound is open.
	ListLogs(userID, habitID string, from, to habit.Day) ([]habit.Log, error)
	// ToggleLog deletes the log for day if one exists, otherwise creates it, and
	// reports whether the day is now completed.
	ToggleLog(userID, habitID string, day habit.Day) (bool, error)

	Close() error
}

// InRange reports whether d falls within [from, to], treating zero bounds as open.
func InRange(d, from, to habit.Day) bool {
	if !from.IsZero() && d.Before(from) {
		return false
	}
	if !to.IsZero() && d.After(to) {
		return false
	}
	return true
}

package stats

import (
	"math"

	"github.com/brk3/cadence/pkg/habit"
)

const (
	// StreakWindow bounds the backward walk used for streaks.
	StreakWindow = 365
	// RateWindow is the trailing window, today included, for the completion rate.
	RateWindow = 30
)

// Compute derives streaks and the trailing completion rate for one habit.
//
// The walk starts at today and goes back at most StreakWindow days. Days the frequency
// does not expect are skipped. The first expected day may be missing without ending
// the current streak (today is not over yet); any later miss ends the walk, so
// longest only considers runs up to and including the one broken by that miss.
func Compute(h habit.Habit, logs []habit.Log, today habit.Day) habit.Stats {
	idx := NewIndex(logs)

	var (
		current, longest, run int
		seenExpected          bool
	)
	for i := 0; i < StreakWindow; i++ {
		day := today.AddDays(-i)
		if !habit.IsExpected(h.Frequency, day) {
			continue
		}
		if idx.Has(day) {
			run++
			current = run
		} else {
			if !seenExpected {
				current = 0
			}
			longest = max(longest, run)
			run = 0
			if seenExpected {
				break
			}
		}
		seenExpected = true
	}
	longest = max(longest, run)

	completed, expected := completion(h.Frequency, idx, today, RateWindow)

	return habit.Stats{
		CurrentStreak:     current,
		LongestStreak:     longest,
		CompletionRate:    rate(completed, expected),
		TotalCompleted:    completed,
		TotalExpected:     expected,
		LastCompletedDate: idx.Last(),
	}
}

func completion(f habit.Frequency, idx Index, today habit.Day, window int) (completed, expected int) {
	for d := today.AddDays(-(window - 1)); !d.After(today); d = d.AddDays(1) {
		if !habit.IsExpected(f, d) {
			continue
		}
		expected++
		if idx.Has(d) {
			completed++
		}
	}
	return completed, expected
}

func rate(completed, expected int) int {
	if expected == 0 {
		return 0
	}
	return int(math.Round(float64(completed) * 100 / float64(expected)))
}

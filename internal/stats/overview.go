package stats

import (
	"math"

	"github.com/brk3/cadence/pkg/habit"
)

const (
	HeatmapWindow  = 90
	ActivityWindow = 30
)

// Tracked is a habit together with the logs fetched for it.
type Tracked struct {
	Habit habit.Habit
	Logs  []habit.Log
}

type HeatmapDay struct {
	Date      habit.Day `json:"date"`
	Count     int       `json:"count"`
	Total     int       `json:"total"`
	Intensity int       `json:"intensity"`
}

type ActivityPoint struct {
	Date      habit.Day `json:"date"`
	Completed int       `json:"completed"`
}

type CompletionPoint struct {
	HabitID        string `json:"habit_id"`
	HabitName      string `json:"habit_name"`
	Color          string `json:"color,omitempty"`
	CompletionRate int    `json:"completion_rate"`
	Completed      int    `json:"completed"`
	Expected       int    `json:"expected"`
}

type BestHabit struct {
	HabitID string `json:"habit_id"`
	Name    string `json:"name"`
	Streak  int    `json:"streak"`
}

type Summary struct {
	TotalHabits       int        `json:"total_habits"`
	CompletedToday    int        `json:"completed_today"`
	LongestStreak     int        `json:"longest_streak"`
	AvgCompletionRate int        `json:"avg_completion_rate"`
	Best              *BestHabit `json:"best_habit,omitempty"`
}

// Heatmap counts, for each of the last n days, how many habits were completed.
func Heatmap(tracked []Tracked, today habit.Day, n int) []HeatmapDay {
	counts := dailyCounts(tracked, today, n)
	out := make([]HeatmapDay, 0, n)
	for i, c := range counts {
		out = append(out, HeatmapDay{
			Date:      today.AddDays(i - (n - 1)),
			Count:     c,
			Total:     len(tracked),
			Intensity: intensity(c, len(tracked)),
		})
	}
	return out
}

func intensity(count, total int) int {
	if count == 0 || total == 0 {
		return 0
	}
	ratio := float64(count) / float64(total)
	switch {
	case ratio >= 0.9:
		return 4
	case ratio >= 0.7:
		return 3
	case ratio >= 0.4:
		return 2
	default:
		return 1
	}
}

func Activity(tracked []Tracked, today habit.Day, n int) []ActivityPoint {
	counts := dailyCounts(tracked, today, n)
	out := make([]ActivityPoint, 0, n)
	for i, c := range counts {
		out = append(out, ActivityPoint{Date: today.AddDays(i - (n - 1)), Completed: c})
	}
	return out
}

func dailyCounts(tracked []Tracked, today habit.Day, n int) []int {
	counts := make([]int, n)
	for _, t := range tracked {
		idx := NewIndex(t.Logs)
		for i := range counts {
			if idx.Has(today.AddDays(i - (n - 1))) {
				counts[i]++
			}
		}
	}
	return counts
}

// Completion lists each habit's completion rate in the order given.
func Completion(tracked []Tracked, all map[string]habit.Stats) []CompletionPoint {
	out := make([]CompletionPoint, 0, len(tracked))
	for _, t := range tracked {
		s := all[t.Habit.ID]
		out = append(out, CompletionPoint{
			HabitID:        t.Habit.ID,
			HabitName:      t.Habit.Name,
			Color:          t.Habit.Color,
			CompletionRate: s.CompletionRate,
			Completed:      s.TotalCompleted,
			Expected:       s.TotalExpected,
		})
	}
	return out
}

func Summarize(tracked []Tracked, all map[string]habit.Stats, today habit.Day) Summary {
	sum := Summary{TotalHabits: len(tracked)}
	totalRate := 0
	for _, t := range tracked {
		if NewIndex(t.Logs).Has(today) {
			sum.CompletedToday++
		}
		s, ok := all[t.Habit.ID]
		if !ok {
			continue
		}
		totalRate += s.CompletionRate
		if sum.Best == nil || s.LongestStreak > sum.Best.Streak {
			sum.Best = &BestHabit{HabitID: t.Habit.ID, Name: t.Habit.Name, Streak: s.LongestStreak}
		}
		sum.LongestStreak = max(sum.LongestStreak, s.LongestStreak)
	}
	if len(tracked) > 0 {
		sum.AvgCompletionRate = int(math.Round(float64(totalRate) / float64(len(tracked))))
	}
	return sum
}

// ComputeAll runs Compute for every tracked habit, keyed by habit id.
func ComputeAll(tracked []Tracked, today habit.Day) map[string]habit.Stats {
	out := make(map[string]habit.Stats, len(tracked))
	for _, t := range tracked {
		out[t.Habit.ID] = Compute(t.Habit, t.Logs, today)
	}
	return out
}

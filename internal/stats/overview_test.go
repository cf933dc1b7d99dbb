package stats

import (
	"testing"

	"github.com/brk3/cadence/pkg/habit"
)

func trackedSet() []Tracked {
	return []Tracked{
		{Habit: habit.Habit{ID: "a", Name: "read", Frequency: habit.Daily{}}, Logs: logsAgo(0, 1, 2)},
		{Habit: habit.Habit{ID: "b", Name: "walk", Frequency: habit.Daily{}}, Logs: logsAgo(0, 1)},
		{Habit: habit.Habit{ID: "c", Name: "code", Frequency: habit.Daily{}}, Logs: logsAgo(0)},
		{Habit: habit.Habit{ID: "d", Name: "sing", Frequency: habit.Daily{}}},
	}
}

func TestHeatmap(t *testing.T) {
	hm := Heatmap(trackedSet(), today, HeatmapWindow)
	if len(hm) != HeatmapWindow {
		t.Fatalf("len=%d want %d", len(hm), HeatmapWindow)
	}
	last := hm[len(hm)-1]
	if last.Date != today || last.Count != 3 || last.Total != 4 || last.Intensity != 3 {
		t.Fatalf("today = %+v, want 3/4 at intensity 3", last)
	}
	if hm[len(hm)-2].Intensity != 2 {
		t.Fatalf("yesterday intensity = %d, want 2", hm[len(hm)-2].Intensity)
	}
	if hm[len(hm)-3].Intensity != 1 {
		t.Fatalf("two days ago intensity = %d, want 1", hm[len(hm)-3].Intensity)
	}
	if hm[0].Intensity != 0 || hm[0].Date != today.AddDays(-(HeatmapWindow-1)) {
		t.Fatalf("first day = %+v", hm[0])
	}
}

func TestIntensity(t *testing.T) {
	cases := []struct{ count, total, want int }{
		{0, 5, 0},
		{1, 0, 0},
		{1, 10, 1},
		{4, 10, 2},
		{7, 10, 3},
		{9, 10, 4},
		{10, 10, 4},
	}
	for _, c := range cases {
		if got := intensity(c.count, c.total); got != c.want {
			t.Errorf("intensity(%d, %d)=%d want %d", c.count, c.total, got, c.want)
		}
	}
}

func TestActivity(t *testing.T) {
	act := Activity(trackedSet(), today, ActivityWindow)
	if len(act) != ActivityWindow {
		t.Fatalf("len=%d want %d", len(act), ActivityWindow)
	}
	if act[ActivityWindow-1].Completed != 3 || act[ActivityWindow-3].Completed != 1 {
		t.Fatalf("unexpected activity tail: %+v", act[ActivityWindow-3:])
	}
}

func TestSummarize(t *testing.T) {
	tracked := trackedSet()
	all := ComputeAll(tracked, today)
	sum := Summarize(tracked, all, today)

	if sum.TotalHabits != 4 || sum.CompletedToday != 3 {
		t.Fatalf("got %d/%d, want 3/4 completed today", sum.CompletedToday, sum.TotalHabits)
	}
	if sum.LongestStreak != 3 {
		t.Fatalf("longest=%d want 3", sum.LongestStreak)
	}
	if sum.Best == nil || sum.Best.HabitID != "a" {
		t.Fatalf("best = %+v, want habit a", sum.Best)
	}
	// Rates: 10, 7, 3, 0 -> mean 5.
	if sum.AvgCompletionRate != 5 {
		t.Fatalf("avg rate=%d want 5", sum.AvgCompletionRate)
	}

	points := Completion(tracked, all)
	if len(points) != 4 || points[0].CompletionRate != 10 || points[3].Completed != 0 {
		t.Fatalf("unexpected completion points: %+v", points)
	}
}

func TestSummarize_Empty(t *testing.T) {
	sum := Summarize(nil, nil, today)
	if sum.TotalHabits != 0 || sum.AvgCompletionRate != 0 || sum.Best != nil {
		t.Fatalf("got %+v, want zero summary", sum)
	}
}

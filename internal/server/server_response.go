package server

import (
	"github.com/brk3/cadence/internal/stats"
	"github.com/brk3/cadence/pkg/habit"
)

type ErrorResponse struct {
	Error string `json:"error"`
}

type HabitListResponse struct {
	Habits []habit.Habit `json:"habits"`
}

type LogListResponse struct {
	HabitID string      `json:"habit_id"`
	Logs    []habit.Log `json:"logs"`
}

type ToggleResponse struct {
	HabitID   string    `json:"habit_id"`
	Date      habit.Day `json:"date"`
	Completed bool      `json:"completed"`
}

type StatsResponse struct {
	HabitID string      `json:"habit_id"`
	Stats   habit.Stats `json:"stats"`
}

type AllStatsResponse struct {
	Stats map[string]habit.Stats `json:"stats"`
}

type DaysResponse struct {
	HabitID string            `json:"habit_id"`
	Period  string            `json:"period"`
	Days    []habit.DayStatus `json:"days"`
}

type DashboardResponse struct {
	Date       habit.Day               `json:"date"`
	Summary    stats.Summary           `json:"summary"`
	Completion []stats.CompletionPoint `json:"completion"`
	Activity   []stats.ActivityPoint   `json:"activity"`
	Heatmap    []stats.HeatmapDay      `json:"heatmap"`
}

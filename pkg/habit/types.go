package habit

import (
	"encoding/json"
	"time"
)

type HabitType string

const (
	// Good habits are things to do; Bad habits are things to avoid. The polarity only
	// changes how a completed day is presented, never how streaks are counted.
	Good HabitType = "GOOD"
	Bad  HabitType = "BAD"
)

type Habit struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Color       string    `json:"color,omitempty"`
	Icon        string    `json:"icon,omitempty"`
	Type        HabitType `json:"habit_type"`
	Frequency   Frequency `json:"-"`
	Archived    bool      `json:"is_archived"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (h Habit) MarshalJSON() ([]byte, error) {
	type alias Habit
	return json.Marshal(struct {
		alias
		FrequencySpec
	}{alias(h), SpecOf(h.Frequency)})
}

func (h *Habit) UnmarshalJSON(b []byte) error {
	type alias Habit
	aux := struct {
		*alias
		FrequencySpec
	}{alias: (*alias)(h)}
	if err := json.Unmarshal(b, &aux); err != nil {
		return err
	}
	f, err := aux.FrequencySpec.Parse()
	if err != nil {
		return err
	}
	h.Frequency = f
	return nil
}

// Log records that a habit was completed on a calendar day. Presence is completion.
type Log struct {
	ID        string    `json:"id"`
	HabitID   string    `json:"habit_id"`
	Day       Day       `json:"date"`
	Completed bool      `json:"completed"`
	CreatedAt time.Time `json:"created_at"`
}

type Stats struct {
	CurrentStreak     int  `json:"current_streak"`
	LongestStreak     int  `json:"longest_streak"`
	CompletionRate    int  `json:"completion_rate"`
	TotalCompleted    int  `json:"total_completed"`
	TotalExpected     int  `json:"total_expected"`
	LastCompletedDate *Day `json:"last_completed_date"`
}

// DayStatus is one cell of a habit's checkbox grid.
type DayStatus struct {
	Date       Day  `json:"date"`
	Completed  bool `json:"completed"`
	IsExpected bool `json:"is_expected"`
	IsToday    bool `json:"is_today"`
	IsFuture   bool `json:"is_future"`
}

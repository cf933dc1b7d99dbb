package server

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/brk3/cadence/pkg/habit"
	"github.com/go-playground/validator/v10"
)

var structValidator = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Report fields by their JSON names.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

type HabitRequest struct {
	Name           string `json:"name" validate:"required,max=100"`
	Description    string `json:"description" validate:"max=500"`
	Color          string `json:"color" validate:"omitempty,len=7,hexcolor"`
	Icon           string `json:"icon" validate:"max=50"`
	HabitType      string `json:"habit_type" validate:"omitempty,oneof=GOOD BAD"`
	FrequencyType  string `json:"frequency_type" validate:"required,oneof=DAILY TIMES_PER_WEEK SPECIFIC_DAYS"`
	FrequencyValue int    `json:"frequency_value" validate:"min=0,max=7"`
	FrequencyDays  []int  `json:"frequency_days" validate:"dive,min=0,max=6"`
}

// HabitPatch carries the fields of a partial update; nil means unchanged.
type HabitPatch struct {
	Name           *string `json:"name"`
	Description    *string `json:"description"`
	Color          *string `json:"color"`
	Icon           *string `json:"icon"`
	HabitType      *string `json:"habit_type"`
	FrequencyType  *string `json:"frequency_type"`
	FrequencyValue *int    `json:"frequency_value"`
	FrequencyDays  *[]int  `json:"frequency_days"`
}

type ToggleRequest struct {
	Date string `json:"date" validate:"required"`
}

func requestFromHabit(h habit.Habit) HabitRequest {
	req := HabitRequest{
		Name:          h.Name,
		Description:   h.Description,
		Color:         h.Color,
		Icon:          h.Icon,
		HabitType:     string(h.Type),
		FrequencyType: string(habit.SpecOf(h.Frequency).Type),
	}
	switch f := h.Frequency.(type) {
	case habit.TimesPerWeek:
		req.FrequencyValue = f.Count
	case habit.SpecificDays:
		req.FrequencyDays = f.Days.Ints()
	}
	return req
}

// apply overlays p onto req.
func (p HabitPatch) apply(req HabitRequest) HabitRequest {
	if p.Name != nil {
		req.Name = *p.Name
	}
	if p.Description != nil {
		req.Description = *p.Description
	}
	if p.Color != nil {
		req.Color = *p.Color
	}
	if p.Icon != nil {
		req.Icon = *p.Icon
	}
	if p.HabitType != nil {
		req.HabitType = *p.HabitType
	}
	if p.FrequencyType != nil {
		req.FrequencyType = *p.FrequencyType
	}
	if p.FrequencyValue != nil {
		req.FrequencyValue = *p.FrequencyValue
	}
	if p.FrequencyDays != nil {
		req.FrequencyDays = *p.FrequencyDays
	}
	return req
}

func (req *HabitRequest) normalize() {
	req.Name = strings.TrimSpace(req.Name)
	req.Description = strings.TrimSpace(req.Description)
	req.Icon = strings.TrimSpace(req.Icon)
	if req.HabitType == "" {
		req.HabitType = string(habit.Good)
	}
}

func (req HabitRequest) validate() error {
	if err := structValidator.Struct(req); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			fe := verrs[0]
			return fmt.Errorf("invalid %s: failed %s validation", fe.Field(), fe.Tag())
		}
		return err
	}

	switch habit.FrequencyType(req.FrequencyType) {
	case habit.FrequencyTimesPerWeek:
		if req.FrequencyValue < 1 {
			return fmt.Errorf("invalid frequency_value: %s needs a weekly target of 1-7", req.FrequencyType)
		}
	case habit.FrequencySpecificDays:
		if len(req.FrequencyDays) == 0 {
			return fmt.Errorf("invalid frequency_days: %s needs at least one weekday", req.FrequencyType)
		}
	}
	return nil
}

func (req HabitRequest) frequency() habit.Frequency {
	switch habit.FrequencyType(req.FrequencyType) {
	case habit.FrequencyTimesPerWeek:
		return habit.TimesPerWeek{Count: req.FrequencyValue}
	case habit.FrequencySpecificDays:
		days := make([]time.Weekday, 0, len(req.FrequencyDays))
		for _, d := range req.FrequencyDays {
			days = append(days, time.Weekday(d))
		}
		return habit.SpecificDays{Days: habit.NewWeekdaySet(days...)}
	default:
		return habit.Daily{}
	}
}

// applyTo writes the validated request onto h, leaving identity and timestamps alone.
func (req HabitRequest) applyTo(h *habit.Habit) {
	h.Name = req.Name
	h.Description = req.Description
	h.Color = req.Color
	h.Icon = req.Icon
	h.Type = habit.HabitType(req.HabitType)
	h.Frequency = req.frequency()
}

package stats

import (
	"fmt"

	"github.com/brk3/cadence/pkg/habit"
)

type Period string

const (
	PeriodWeek  Period = "week"
	PeriodMonth Period = "month"
)

func ParsePeriod(s string) (Period, error) {
	switch Period(s) {
	case PeriodWeek, "":
		return PeriodWeek, nil
	case PeriodMonth:
		return PeriodMonth, nil
	}
	return "", fmt.Errorf("invalid period %q: want week or month", s)
}

func (p Period) Days() int {
	if p == PeriodMonth {
		return 30
	}
	return 7
}

// Days projects the n days ending at today, oldest first.
func Days(h habit.Habit, logs []habit.Log, today habit.Day, n int) []habit.DayStatus {
	return DaysBetween(h, logs, today.AddDays(-(n - 1)), today, today)
}

// DaysBetween projects every day in [from, to]. Days after today are flagged as future.
func DaysBetween(h habit.Habit, logs []habit.Log, from, to, today habit.Day) []habit.DayStatus {
	idx := NewIndex(logs)
	var out []habit.DayStatus
	for d := from; !d.After(to); d = d.AddDays(1) {
		out = append(out, habit.DayStatus{
			Date:       d,
			Completed:  idx.Has(d),
			IsExpected: habit.IsExpected(h.Frequency, d),
			IsToday:    d == today,
			IsFuture:   d.After(today),
		})
	}
	return out
}

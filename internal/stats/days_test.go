package stats

import (
	"testing"
	"time"
)

func TestDays_Week(t *testing.T) {
	days := Days(mwf(), logsAgo(0, 1), today, PeriodWeek.Days())
	if len(days) != 7 {
		t.Fatalf("len=%d want 7", len(days))
	}
	if days[0].Date != today.AddDays(-6) {
		t.Fatalf("first day %s, want %s", days[0].Date, today.AddDays(-6))
	}
	last := days[len(days)-1]
	if !last.IsToday || !last.Completed || !last.IsExpected {
		t.Fatalf("today cell = %+v, want today, completed, expected", last)
	}
	// Thursday is not expected but its log still shows as completed.
	thu := days[5]
	if thu.Date.Weekday() != time.Thursday || thu.IsExpected || !thu.Completed {
		t.Fatalf("thursday cell = %+v", thu)
	}
	for _, d := range days {
		if d.IsFuture {
			t.Fatalf("%s flagged as future", d.Date)
		}
	}
}

func TestDays_MonthMatchesStats(t *testing.T) {
	logs := logsAgo(0, 2, 4, 9, 20)
	days := Days(mwf(), logs, today, PeriodMonth.Days())
	s := Compute(mwf(), logs, today)

	expected, completed := 0, 0
	for _, d := range days {
		if d.IsExpected {
			expected++
			if d.Completed {
				completed++
			}
		}
	}
	if expected != s.TotalExpected || completed != s.TotalCompleted {
		t.Fatalf("grid %d/%d, stats %d/%d", completed, expected, s.TotalCompleted, s.TotalExpected)
	}
}

func TestDaysBetween_Future(t *testing.T) {
	days := DaysBetween(daily(), nil, today.AddDays(-1), today.AddDays(2), today)
	if len(days) != 4 {
		t.Fatalf("len=%d want 4", len(days))
	}
	want := []bool{false, false, true, true}
	for i, d := range days {
		if d.IsFuture != want[i] {
			t.Errorf("%s future=%v want %v", d.Date, d.IsFuture, want[i])
		}
	}
}

func TestParsePeriod(t *testing.T) {
	if p, err := ParsePeriod(""); err != nil || p != PeriodWeek {
		t.Fatalf("empty period = %q, %v", p, err)
	}
	if p, err := ParsePeriod("month"); err != nil || p.Days() != 30 {
		t.Fatalf("month period = %q, %v", p, err)
	}
	if _, err := ParsePeriod("year"); err == nil {
		t.Fatal("expected error for unknown period")
	}
}

package habit

import (
	"encoding/json"
	"strings"
	"testing"
	"time"
)

func TestParseDay(t *testing.T) {
	d, err := ParseDay("2024-02-29")
	if err != nil {
		t.Fatalf("ParseDay failed: %v", err)
	}
	if d != (Day{2024, time.February, 29}) {
		t.Fatalf("got %+v", d)
	}
	for _, bad := range []string{"", "2024-2-29", "2023-02-29", "29/02/2024", "2024-02-29T12:00:00Z"} {
		if _, err := ParseDay(bad); err == nil {
			t.Errorf("ParseDay(%q) expected error", bad)
		}
	}
}

func TestDay_AddDaysRollsOver(t *testing.T) {
	d := Day{2023, time.December, 31}
	if got := d.AddDays(1).String(); got != "2024-01-01" {
		t.Fatalf("got %s want 2024-01-01", got)
	}
	if got := (Day{2024, time.March, 1}).AddDays(-1).String(); got != "2024-02-29" {
		t.Fatalf("got %s want 2024-02-29", got)
	}
}

func TestDay_Weekday(t *testing.T) {
	if wd := (Day{2024, time.March, 10}).Weekday(); wd != time.Sunday {
		t.Fatalf("got %s want Sunday", wd)
	}
}

func TestDayOf_UsesUTC(t *testing.T) {
	noon := time.Date(2024, time.March, 10, 12, 0, 0, 0, time.UTC)
	east := noon.In(time.FixedZone("UTC+14", 14*60*60))
	west := noon.In(time.FixedZone("UTC-11", -11*60*60))
	for _, ts := range []time.Time{noon, east, west} {
		if got := DayOf(ts).String(); got != "2024-03-10" {
			t.Errorf("DayOf(%s)=%s want 2024-03-10", ts, got)
		}
	}
	if got := (Day{2024, time.March, 10}).Noon(); !got.Equal(noon) {
		t.Fatalf("Noon()=%s want %s", got, noon)
	}
}

func TestLocalDay(t *testing.T) {
	ts := time.Date(2024, time.March, 10, 23, 30, 0, 0, time.UTC)
	if got := LocalDay(ts, time.FixedZone("UTC+2", 2*60*60)).String(); got != "2024-03-11" {
		t.Fatalf("got %s want 2024-03-11", got)
	}
}

func TestExpects(t *testing.T) {
	mon := Day{2024, time.March, 11}
	tue := mon.AddDays(1)

	if !IsExpected(Daily{}, tue) || !IsExpected(nil, tue) {
		t.Fatal("daily and nil frequency should expect every day")
	}
	if !IsExpected(TimesPerWeek{Count: 1}, tue) {
		t.Fatal("times-per-week should expect every day")
	}
	f := SpecificDays{Days: NewWeekdaySet(time.Monday, time.Friday)}
	if !f.Expects(mon) || f.Expects(tue) {
		t.Fatal("specific days should only expect configured weekdays")
	}
	if (SpecificDays{}).Expects(mon) {
		t.Fatal("empty day set should never expect")
	}
}

func TestParseWeekdays(t *testing.T) {
	s, err := ParseWeekdays("5, 1,3,1")
	if err != nil {
		t.Fatalf("ParseWeekdays failed: %v", err)
	}
	if s.String() != "1,3,5" {
		t.Fatalf("got %q want 1,3,5", s.String())
	}
	if s, _ := ParseWeekdays(""); !s.Empty() {
		t.Fatal("blank input should be the empty set")
	}
	for _, bad := range []string{"7", "-1", "mon"} {
		if _, err := ParseWeekdays(bad); err == nil {
			t.Errorf("ParseWeekdays(%q) expected error", bad)
		}
	}
}

func TestFrequencySpec_Parse(t *testing.T) {
	f, err := FrequencySpec{Type: FrequencySpecificDays}.Parse()
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if sd, ok := f.(SpecificDays); !ok || !sd.Days.Empty() {
		t.Fatalf("got %#v, want empty SpecificDays", f)
	}
	if _, err := (FrequencySpec{Type: "HOURLY"}).Parse(); err == nil {
		t.Fatal("expected error for unknown type")
	}
	if f, _ := (FrequencySpec{}).Parse(); f.Type() != FrequencyDaily {
		t.Fatalf("empty spec parsed as %s, want DAILY", f.Type())
	}
}

func TestHabitJSON_FlattensFrequency(t *testing.T) {
	h := Habit{
		ID:        "abc",
		Name:      "gym",
		Type:      Good,
		Frequency: SpecificDays{Days: NewWeekdaySet(time.Monday, time.Wednesday)},
	}
	b, err := json.Marshal(h)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	s := string(b)
	for _, want := range []string{`"frequency_type":"SPECIFIC_DAYS"`, `"frequency_days":"1,3"`, `"habit_type":"GOOD"`} {
		if !strings.Contains(s, want) {
			t.Errorf("%s missing %s", s, want)
		}
	}

	var back Habit
	if err := json.Unmarshal(b, &back); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if back.Name != "gym" || back.Frequency.Type() != FrequencySpecificDays {
		t.Fatalf("got %+v", back)
	}
	if !back.Frequency.Expects(Day{2024, time.March, 13}) {
		t.Fatal("decoded frequency lost its weekdays")
	}
}

func TestStatsJSON_NullLastCompleted(t *testing.T) {
	b, _ := json.Marshal(Stats{})
	if !strings.Contains(string(b), `"last_completed_date":null`) {
		t.Fatalf("got %s", b)
	}
	d := Day{2024, time.March, 10}
	b, _ = json.Marshal(Stats{LastCompletedDate: &d})
	if !strings.Contains(string(b), `"last_completed_date":"2024-03-10"`) {
		t.Fatalf("got %s", b)
	}
}

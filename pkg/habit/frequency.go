package habit

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

type FrequencyType string

const (
	FrequencyDaily        FrequencyType = "DAILY"
	FrequencyTimesPerWeek FrequencyType = "TIMES_PER_WEEK"
	FrequencySpecificDays FrequencyType = "SPECIFIC_DAYS"
)

// Frequency is one of Daily, TimesPerWeek or SpecificDays.
type Frequency interface {
	Type() FrequencyType
	// Expects reports whether a completion is expected on d.
	Expects(d Day) bool
	frequency()
}

type Daily struct{}

func (Daily) Type() FrequencyType { return FrequencyDaily }
func (Daily) Expects(Day) bool    { return true }
func (Daily) frequency()          {}

// TimesPerWeek carries an advisory weekly target. Every day is expected; the count is
// never used to gate days, which keeps historical streaks stable.
type TimesPerWeek struct {
	Count int
}

func (TimesPerWeek) Type() FrequencyType { return FrequencyTimesPerWeek }
func (TimesPerWeek) Expects(Day) bool    { return true }
func (TimesPerWeek) frequency()          {}

type SpecificDays struct {
	Days WeekdaySet
}

func (SpecificDays) Type() FrequencyType { return FrequencySpecificDays }

func (f SpecificDays) Expects(d Day) bool {
	return f.Days.Has(d.Weekday())
}

func (SpecificDays) frequency() {}

// IsExpected applies f to d. A nil frequency behaves as Daily.
func IsExpected(f Frequency, d Day) bool {
	if f == nil {
		return true
	}
	return f.Expects(d)
}

// WeekdaySet is a bitmask of time.Weekday values, bit 0 being Sunday.
type WeekdaySet uint8

func NewWeekdaySet(days ...time.Weekday) WeekdaySet {
	var s WeekdaySet
	for _, d := range days {
		if d >= time.Sunday && d <= time.Saturday {
			s |= 1 << uint(d)
		}
	}
	return s
}

func (s WeekdaySet) Has(d time.Weekday) bool {
	return s&(1<<uint(d)) != 0
}

func (s WeekdaySet) Empty() bool {
	return s&0x7f == 0
}

func (s WeekdaySet) Weekdays() []time.Weekday {
	var out []time.Weekday
	for d := time.Sunday; d <= time.Saturday; d++ {
		if s.Has(d) {
			out = append(out, d)
		}
	}
	return out
}

func (s WeekdaySet) Ints() []int {
	days := s.Weekdays()
	out := make([]int, 0, len(days))
	for _, d := range days {
		out = append(out, int(d))
	}
	return out
}

// String is the comma-joined storage form, e.g. "1,3,5".
func (s WeekdaySet) String() string {
	parts := make([]string, 0, 7)
	for _, d := range s.Ints() {
		parts = append(parts, strconv.Itoa(d))
	}
	return strings.Join(parts, ",")
}

// ParseWeekdays reads the comma-joined form. Blank input is the empty set.
func ParseWeekdays(s string) (WeekdaySet, error) {
	var set WeekdaySet
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		n, err := strconv.Atoi(part)
		if err != nil || n < 0 || n > 6 {
			return 0, fmt.Errorf("invalid weekday %q: want 0-6", part)
		}
		set |= 1 << uint(n)
	}
	return set, nil
}

// FrequencySpec is the flat record form of a Frequency used on the wire and in storage.
type FrequencySpec struct {
	Type  FrequencyType `json:"frequency_type"`
	Value int           `json:"frequency_value,omitempty"`
	Days  string        `json:"frequency_days,omitempty"`
}

func SpecOf(f Frequency) FrequencySpec {
	switch f := f.(type) {
	case Daily:
		return FrequencySpec{Type: FrequencyDaily}
	case TimesPerWeek:
		return FrequencySpec{Type: FrequencyTimesPerWeek, Value: f.Count}
	case SpecificDays:
		return FrequencySpec{Type: FrequencySpecificDays, Days: f.Days.String()}
	default:
		return FrequencySpec{Type: FrequencyDaily}
	}
}

// Parse turns a stored record back into a Frequency. An empty type is Daily and an
// empty day list yields a SpecificDays that never expects anything.
func (s FrequencySpec) Parse() (Frequency, error) {
	switch s.Type {
	case FrequencyDaily, "":
		return Daily{}, nil
	case FrequencyTimesPerWeek:
		return TimesPerWeek{Count: s.Value}, nil
	case FrequencySpecificDays:
		days, err := ParseWeekdays(s.Days)
		if err != nil {
			return nil, err
		}
		return SpecificDays{Days: days}, nil
	default:
		return nil, fmt.Errorf("unknown frequency type %q", s.Type)
	}
}

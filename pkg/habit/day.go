package habit

import (
	"fmt"
	"time"
)

const dayLayout = "2006-01-02"

// Day is a calendar day with no time-of-day and no zone.
type Day struct {
	Year  int
	Month time.Month
	Day   int
}

// DayOf reduces an instant to its calendar day using UTC components. Logs written at
// UTC noon therefore land on the intended day whatever the reader's offset.
func DayOf(t time.Time) Day {
	y, m, d := t.UTC().Date()
	return Day{Year: y, Month: m, Day: d}
}

// LocalDay is the calendar day of t as seen in loc. It is how "today" is derived.
func LocalDay(t time.Time, loc *time.Location) Day {
	if loc == nil {
		loc = time.Local
	}
	y, m, d := t.In(loc).Date()
	return Day{Year: y, Month: m, Day: d}
}

func ParseDay(s string) (Day, error) {
	t, err := time.Parse(dayLayout, s)
	if err != nil {
		return Day{}, fmt.Errorf("invalid date %q: want YYYY-MM-DD", s)
	}
	return DayOf(t), nil
}

func (d Day) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, d.Month, d.Day)
}

func (d Day) IsZero() bool {
	return d == Day{}
}

// Noon returns the UTC-noon instant of d, the timestamp form older clients expect.
func (d Day) Noon() time.Time {
	return time.Date(d.Year, d.Month, d.Day, 12, 0, 0, 0, time.UTC)
}

// AddDays normalises through time.Date, so month and year rollovers are handled.
func (d Day) AddDays(n int) Day {
	return DayOf(time.Date(d.Year, d.Month, d.Day+n, 12, 0, 0, 0, time.UTC))
}

func (d Day) Weekday() time.Weekday {
	return d.Noon().Weekday()
}

func (d Day) Before(o Day) bool {
	return d.Compare(o) < 0
}

func (d Day) After(o Day) bool {
	return d.Compare(o) > 0
}

func (d Day) Compare(o Day) int {
	switch {
	case d.Year != o.Year:
		return cmpInt(d.Year, o.Year)
	case d.Month != o.Month:
		return cmpInt(int(d.Month), int(o.Month))
	default:
		return cmpInt(d.Day, o.Day)
	}
}

func cmpInt(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

func (d Day) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

func (d *Day) UnmarshalText(b []byte) error {
	parsed, err := ParseDay(string(b))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

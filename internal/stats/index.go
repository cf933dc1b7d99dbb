package stats

import "github.com/brk3/cadence/pkg/habit"

// Index answers "was this habit completed on day d" in constant time.
type Index struct {
	days map[habit.Day]struct{}
	last *habit.Day
}

func NewIndex(logs []habit.Log) Index {
	idx := Index{days: make(map[habit.Day]struct{}, len(logs))}
	for i := range logs {
		d := logs[i].Day
		idx.days[d] = struct{}{}
		if idx.last == nil || d.After(*idx.last) {
			last := d
			idx.last = &last
		}
	}
	return idx
}

func (i Index) Has(d habit.Day) bool {
	_, ok := i.days[d]
	return ok
}

func (i Index) Len() int {
	return len(i.days)
}

// Last is the most recent completed day, or nil when there are no logs.
func (i Index) Last() *habit.Day {
	if i.last == nil {
		return nil
	}
	d := *i.last
	return &d
}

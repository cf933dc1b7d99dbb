// Package storagetest holds behaviour every storage.Store implementation must share.
package storagetest

import (
	"errors"
	"testing"
	"time"

	"github.com/brk3/cadence/internal/storage"
	"github.com/brk3/cadence/pkg/habit"
)

// Run exercises a Store produced by open. Each subtest gets a fresh store.
func Run(t *testing.T, open func(t *testing.T) storage.Store) {
	tests := []struct {
		name string
		fn   func(t *testing.T, s storage.Store)
	}{
		{"CreateAndGet", testCreateAndGet},
		{"GetMissing", testGetMissing},
		{"ListSkipsArchived", testListSkipsArchived},
		{"Update", testUpdate},
		{"UpdateMissing", testUpdateMissing},
		{"UserIsolation", testUserIsolation},
		{"ToggleTwiceRestores", testToggleTwiceRestores},
		{"ToggleOnePerDay", testToggleOnePerDay},
		{"ToggleUnknownHabit", testToggleUnknownHabit},
		{"ListLogsRange", testListLogsRange},
		{"DeleteCascades", testDeleteCascades},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s := open(t)
			t.Cleanup(func() {
				if err := s.Close(); err != nil {
					t.Errorf("failed to close store: %v", err)
				}
			})
			tc.fn(t, s)
		})
	}
}

var base = time.Date(2024, time.March, 1, 9, 0, 0, 0, time.UTC)

func newHabit(id, name string, offset int) habit.Habit {
	ts := base.Add(time.Duration(offset) * time.Minute)
	return habit.Habit{
		ID:        id,
		Name:      name,
		Type:      habit.Good,
		Frequency: habit.Daily{},
		CreatedAt: ts,
		UpdatedAt: ts,
	}
}

func mustCreate(t *testing.T, s storage.Store, userID string, h habit.Habit) {
	t.Helper()
	if err := s.CreateHabit(userID, h); err != nil {
		t.Fatalf("CreateHabit(%s) failed: %v", h.ID, err)
	}
}

func mustToggle(t *testing.T, s storage.Store, userID, habitID string, d habit.Day) bool {
	t.Helper()
	done, err := s.ToggleLog(userID, habitID, d)
	if err != nil {
		t.Fatalf("ToggleLog(%s, %s) failed: %v", habitID, d, err)
	}
	return done
}

func testCreateAndGet(t *testing.T, s storage.Store) {
	h := newHabit("h1", "gym", 0)
	h.Description = "lift things"
	h.Color = "#22c55e"
	h.Type = habit.Bad
	h.Frequency = habit.SpecificDays{Days: habit.NewWeekdaySet(time.Monday, time.Friday)}
	mustCreate(t, s, "alice", h)

	got, err := s.GetHabit("alice", "h1")
	if err != nil {
		t.Fatalf("GetHabit failed: %v", err)
	}
	if got.Name != "gym" || got.Description != "lift things" || got.Color != "#22c55e" || got.Type != habit.Bad {
		t.Fatalf("got %+v", got)
	}
	sd, ok := got.Frequency.(habit.SpecificDays)
	if !ok || sd.Days.String() != "1,5" {
		t.Fatalf("frequency = %#v, want SpecificDays 1,5", got.Frequency)
	}
	if !got.CreatedAt.Equal(h.CreatedAt) {
		t.Fatalf("created_at = %s, want %s", got.CreatedAt, h.CreatedAt)
	}
}

func testGetMissing(t *testing.T, s storage.Store) {
	if _, err := s.GetHabit("alice", "nope"); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("got %v, want ErrNotFound", err)
	}
}

func testListSkipsArchived(t *testing.T, s storage.Store) {
	mustCreate(t, s, "alice", newHabit("h2", "read", 1))
	mustCreate(t, s, "alice", newHabit("h1", "walk", 0))
	archived := newHabit("h3", "smoke", 2)
	archived.Archived = true
	mustCreate(t, s, "alice", archived)

	active, err := s.ListHabits("alice", false)
	if err != nil {
		t.Fatalf("ListHabits failed: %v", err)
	}
	if len(active) != 2 || active[0].ID != "h1" || active[1].ID != "h2" {
		t.Fatalf("got %v, want [h1 h2] in creation order", ids(active))
	}

	all, err := s.ListHabits("alice", true)
	if err != nil {
		t.Fatalf("ListHabits failed: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("got %d habits, want 3", len(all))
	}
}

func testUpdate(t *testing.T, s storage.Store) {
	h := newHabit("h1", "read", 0)
	mustCreate(t, s, "alice", h)

	h.Name = "read more"
	h.Frequency = habit.TimesPerWeek{Count: 4}
	h.Archived = true
	if err := s.UpdateHabit("alice", h); err != nil {
		t.Fatalf("UpdateHabit failed: %v", err)
	}
	got, err := s.GetHabit("alice", "h1")
	if err != nil {
		t.Fatalf("GetHabit failed: %v", err)
	}
	tpw, ok := got.Frequency.(habit.TimesPerWeek)
	if got.Name != "read more" || !got.Archived || !ok || tpw.Count != 4 {
		t.Fatalf("got %+v", got)
	}
}

func testUpdateMissing(t *testing.T, s storage.Store) {
	if err := s.UpdateHabit("alice", newHabit("ghost", "x", 0)); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("got %v, want ErrNotFound", err)
	}
}

func testUserIsolation(t *testing.T, s storage.Store) {
	mustCreate(t, s, "alice", newHabit("h1", "guitar", 0))

	bob, err := s.ListHabits("bob", true)
	if err != nil {
		t.Fatalf("ListHabits failed: %v", err)
	}
	if len(bob) != 0 {
		t.Fatalf("bob should see no habits, got %v", ids(bob))
	}
	if _, err := s.GetHabit("bob", "h1"); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("bob GetHabit = %v, want ErrNotFound", err)
	}
	if _, err := s.ToggleLog("bob", "h1", habit.DayOf(base)); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("bob ToggleLog = %v, want ErrNotFound", err)
	}
}

func testToggleTwiceRestores(t *testing.T, s storage.Store) {
	mustCreate(t, s, "alice", newHabit("h1", "read", 0))
	day := habit.Day{Year: 2024, Month: time.March, Day: 10}

	if !mustToggle(t, s, "alice", "h1", day) {
		t.Fatal("first toggle should complete the day")
	}
	logs, err := s.ListLogs("alice", "h1", habit.Day{}, habit.Day{})
	if err != nil {
		t.Fatalf("ListLogs failed: %v", err)
	}
	if len(logs) != 1 || logs[0].Day != day || !logs[0].Completed || logs[0].ID == "" {
		t.Fatalf("got %+v", logs)
	}

	if mustToggle(t, s, "alice", "h1", day) {
		t.Fatal("second toggle should clear the day")
	}
	logs, err = s.ListLogs("alice", "h1", habit.Day{}, habit.Day{})
	if err != nil {
		t.Fatalf("ListLogs failed: %v", err)
	}
	if len(logs) != 0 {
		t.Fatalf("got %d logs after clearing, want 0", len(logs))
	}
}

func testToggleOnePerDay(t *testing.T, s storage.Store) {
	mustCreate(t, s, "alice", newHabit("h1", "read", 0))
	day := habit.Day{Year: 2024, Month: time.March, Day: 10}
	for i := 0; i < 5; i++ {
		mustToggle(t, s, "alice", "h1", day)
	}
	logs, err := s.ListLogs("alice", "h1", habit.Day{}, habit.Day{})
	if err != nil {
		t.Fatalf("ListLogs failed: %v", err)
	}
	if len(logs) != 1 {
		t.Fatalf("got %d logs after odd toggles, want 1", len(logs))
	}
}

func testToggleUnknownHabit(t *testing.T, s storage.Store) {
	if _, err := s.ToggleLog("alice", "ghost", habit.DayOf(base)); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("got %v, want ErrNotFound", err)
	}
}

func testListLogsRange(t *testing.T, s storage.Store) {
	mustCreate(t, s, "alice", newHabit("h1", "read", 0))
	start := habit.Day{Year: 2024, Month: time.February, Day: 27}
	for i := 0; i < 5; i++ {
		mustToggle(t, s, "alice", "h1", start.AddDays(i))
	}

	logs, err := s.ListLogs("alice", "h1", start.AddDays(1), start.AddDays(3))
	if err != nil {
		t.Fatalf("ListLogs failed: %v", err)
	}
	if len(logs) != 3 {
		t.Fatalf("got %d logs, want 3", len(logs))
	}
	if logs[0].Day != start.AddDays(3) || logs[2].Day != start.AddDays(1) {
		t.Fatalf("want newest first, got %s..%s", logs[0].Day, logs[2].Day)
	}

	if _, err := s.ListLogs("alice", "ghost", habit.Day{}, habit.Day{}); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("ListLogs on unknown habit = %v, want ErrNotFound", err)
	}
}

func testDeleteCascades(t *testing.T, s storage.Store) {
	mustCreate(t, s, "alice", newHabit("h1", "read", 0))
	mustToggle(t, s, "alice", "h1", habit.DayOf(base))

	if err := s.DeleteHabit("alice", "h1"); err != nil {
		t.Fatalf("DeleteHabit failed: %v", err)
	}
	if _, err := s.GetHabit("alice", "h1"); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("GetHabit after delete = %v, want ErrNotFound", err)
	}
	if err := s.DeleteHabit("alice", "h1"); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("second DeleteHabit = %v, want ErrNotFound", err)
	}

	// Recreating with the same id must not resurrect old logs.
	mustCreate(t, s, "alice", newHabit("h1", "read", 0))
	logs, err := s.ListLogs("alice", "h1", habit.Day{}, habit.Day{})
	if err != nil {
		t.Fatalf("ListLogs failed: %v", err)
	}
	if len(logs) != 0 {
		t.Fatalf("got %d logs after recreate, want 0", len(logs))
	}
}

func ids(hs []habit.Habit) []string {
	out := make([]string, 0, len(hs))
	for _, h := range hs {
		out = append(out, h.ID)
	}
	return out
}

package bolt

import (
	"path/filepath"
	"testing"

	"github.com/brk3/cadence/internal/storage"
	"github.com/brk3/cadence/internal/storage/storagetest"
	"github.com/brk3/cadence/pkg/habit"
)

func newTestStore(t *testing.T) *Store {
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to open test store: %v", err)
	}
	return store
}

func TestStore(t *testing.T) {
	storagetest.Run(t, func(t *testing.T) storage.Store {
		return newTestStore(t)
	})
}

func TestListHabits_UnknownUserIsEmpty(t *testing.T) {
	store := newTestStore(t)
	defer store.Close()

	habits, err := store.ListHabits("nobody", true)
	if err != nil {
		t.Fatalf("ListHabits failed: %v", err)
	}
	if len(habits) != 0 {
		t.Fatalf("expected empty list, got %d items", len(habits))
	}
}

func TestReopenKeepsLogs(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.db")
	store, err := Open(path)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	day, _ := habit.ParseDay("2024-03-10")
	if err := store.CreateHabit("", habit.Habit{ID: "h1", Name: "read", Frequency: habit.Daily{}}); err != nil {
		t.Fatalf("CreateHabit failed: %v", err)
	}
	if _, err := store.ToggleLog("", "h1", day); err != nil {
		t.Fatalf("ToggleLog failed: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	store, err = Open(path)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	defer store.Close()
	logs, err := store.ListLogs(defaultUserID, "h1", habit.Day{}, habit.Day{})
	if err != nil {
		t.Fatalf("ListLogs failed: %v", err)
	}
	if len(logs) != 1 || logs[0].Day != day {
		t.Fatalf("got %+v, want one log on %s", logs, day)
	}
}

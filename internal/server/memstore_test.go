package server

import (
	"slices"
	"sort"
	"sync"

	"github.com/brk3/cadence/internal/storage"
	"github.com/brk3/cadence/pkg/habit"
)

type memStore struct {
	mu     sync.RWMutex
	habits map[string]map[string]habit.Habit            // user -> id -> habit
	logs   map[string]map[string]map[habit.Day]habit.Log // user -> habit id -> day -> log
}

func newMemStore() *memStore {
	return &memStore{
		habits: map[string]map[string]habit.Habit{},
		logs:   map[string]map[string]map[habit.Day]habit.Log{},
	}
}

func (m *memStore) CreateHabit(userID string, h habit.Habit) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.habits[userID] == nil {
		m.habits[userID] = map[string]habit.Habit{}
	}
	m.habits[userID][h.ID] = h
	return nil
}

func (m *memStore) UpdateHabit(userID string, h habit.Habit) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.habits[userID][h.ID]; !ok {
		return storage.ErrNotFound
	}
	m.habits[userID][h.ID] = h
	return nil
}

func (m *memStore) GetHabit(userID, habitID string) (habit.Habit, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	h, ok := m.habits[userID][habitID]
	if !ok {
		return habit.Habit{}, storage.ErrNotFound
	}
	return h, nil
}

func (m *memStore) ListHabits(userID string, includeArchived bool) ([]habit.Habit, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := []habit.Habit{}
	for _, h := range m.habits[userID] {
		if h.Archived && !includeArchived {
			continue
		}
		out = append(out, h)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (m *memStore) DeleteHabit(userID, habitID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.habits[userID][habitID]; !ok {
		return storage.ErrNotFound
	}
	delete(m.habits[userID], habitID)
	delete(m.logs[userID], habitID)
	return nil
}

func (m *memStore) ListLogs(userID, habitID string, from, to habit.Day) ([]habit.Log, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if _, ok := m.habits[userID][habitID]; !ok {
		return nil, storage.ErrNotFound
	}
	out := []habit.Log{}
	for d, l := range m.logs[userID][habitID] {
		if storage.InRange(d, from, to) {
			out = append(out, l)
		}
	}
	slices.SortFunc(out, func(a, b habit.Log) int { return b.Day.Compare(a.Day) })
	return out, nil
}

func (m *memStore) ToggleLog(userID, habitID string, day habit.Day) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.habits[userID][habitID]; !ok {
		return false, storage.ErrNotFound
	}
	if m.logs[userID] == nil {
		m.logs[userID] = map[string]map[habit.Day]habit.Log{}
	}
	byDay := m.logs[userID][habitID]
	if byDay == nil {
		byDay = map[habit.Day]habit.Log{}
		m.logs[userID][habitID] = byDay
	}
	if _, ok := byDay[day]; ok {
		delete(byDay, day)
		return false, nil
	}
	byDay[day] = habit.Log{ID: habitID + "/" + day.String(), HabitID: habitID, Day: day, Completed: true}
	return true, nil
}

func (m *memStore) Close() error {
	return nil
}

var _ storage.Store = (*memStore)(nil)

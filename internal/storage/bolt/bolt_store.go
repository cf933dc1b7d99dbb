package bolt

import (
	"encoding/json"
	"fmt"
	"slices"
	"time"

	"github.com/brk3/cadence/internal/storage"
	"github.com/brk3/cadence/pkg/habit"
	"github.com/google/uuid"
	"go.etcd.io/bbolt"
)

// Layout:
//
//	users/<user>/habits/<habit id>        -> habit JSON
//	users/<user>/logs/<habit id>/<day>    -> log JSON, day as YYYY-MM-DD
//
// Keying logs by day is what keeps one log per habit per day.
const (
	rootBucket    = "users"
	habitsBucket  = "habits"
	logsBucket    = "logs"
	defaultUserID = "default"
)

type Store struct {
	db *bbolt.DB
}

func Open(path string) (*Store, error) {
	db, err := bbolt.Open(path, 0600, &bbolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("open bolt db %s: %w", path, err)
	}

	if err := db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(rootBucket))
		return err
	}); err != nil {
		_ = db.Close()
		return nil, err
	}

	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func userKey(userID string) []byte {
	if userID == "" {
		userID = defaultUserID
	}
	return []byte(userID)
}

// userBucket creates the user's buckets on demand; tx must be writable.
func userBucket(tx *bbolt.Tx, userID string) (*bbolt.Bucket, error) {
	ub, err := tx.Bucket([]byte(rootBucket)).CreateBucketIfNotExists(userKey(userID))
	if err != nil {
		return nil, err
	}
	if _, err := ub.CreateBucketIfNotExists([]byte(habitsBucket)); err != nil {
		return nil, err
	}
	if _, err := ub.CreateBucketIfNotExists([]byte(logsBucket)); err != nil {
		return nil, err
	}
	return ub, nil
}

// readBucket returns the named child of the user's bucket, or nil when the user has
// never written anything.
func readBucket(tx *bbolt.Tx, userID, name string) *bbolt.Bucket {
	ub := tx.Bucket([]byte(rootBucket)).Bucket(userKey(userID))
	if ub == nil {
		return nil
	}
	return ub.Bucket([]byte(name))
}

func (s *Store) CreateHabit(userID string, h habit.Habit) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		ub, err := userBucket(tx, userID)
		if err != nil {
			return err
		}
		hb := ub.Bucket([]byte(habitsBucket))
		if hb.Get([]byte(h.ID)) != nil {
			return fmt.Errorf("habit %s already exists", h.ID)
		}
		return putHabit(hb, h)
	})
}

func (s *Store) UpdateHabit(userID string, h habit.Habit) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		ub, err := userBucket(tx, userID)
		if err != nil {
			return err
		}
		hb := ub.Bucket([]byte(habitsBucket))
		if hb.Get([]byte(h.ID)) == nil {
			return storage.ErrNotFound
		}
		return putHabit(hb, h)
	})
}

func putHabit(b *bbolt.Bucket, h habit.Habit) error {
	val, err := json.Marshal(h)
	if err != nil {
		return err
	}
	return b.Put([]byte(h.ID), val)
}

func (s *Store) GetHabit(userID, habitID string) (habit.Habit, error) {
	var h habit.Habit
	err := s.db.View(func(tx *bbolt.Tx) error {
		hb := readBucket(tx, userID, habitsBucket)
		if hb == nil {
			return storage.ErrNotFound
		}
		v := hb.Get([]byte(habitID))
		if v == nil {
			return storage.ErrNotFound
		}
		return json.Unmarshal(v, &h)
	})
	return h, err
}

func (s *Store) ListHabits(userID string, includeArchived bool) ([]habit.Habit, error) {
	out := []habit.Habit{}
	err := s.db.View(func(tx *bbolt.Tx) error {
		hb := readBucket(tx, userID, habitsBucket)
		if hb == nil {
			return nil
		}
		return hb.ForEach(func(_, v []byte) error {
			var h habit.Habit
			if err := json.Unmarshal(v, &h); err != nil {
				return err
			}
			if h.Archived && !includeArchived {
				return nil
			}
			out = append(out, h)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	slices.SortStableFunc(out, func(a, b habit.Habit) int {
		return a.CreatedAt.Compare(b.CreatedAt)
	})
	return out, nil
}

func (s *Store) DeleteHabit(userID, habitID string) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		ub, err := userBucket(tx, userID)
		if err != nil {
			return err
		}
		hb := ub.Bucket([]byte(habitsBucket))
		if hb.Get([]byte(habitID)) == nil {
			return storage.ErrNotFound
		}
		if err := hb.Delete([]byte(habitID)); err != nil {
			return err
		}
		lb := ub.Bucket([]byte(logsBucket))
		if lb.Bucket([]byte(habitID)) != nil {
			return lb.DeleteBucket([]byte(habitID))
		}
		return nil
	})
}

func (s *Store) ListLogs(userID, habitID string, from, to habit.Day) ([]habit.Log, error) {
	out := []habit.Log{}
	err := s.db.View(func(tx *bbolt.Tx) error {
		hb := readBucket(tx, userID, habitsBucket)
		if hb == nil || hb.Get([]byte(habitID)) == nil {
			return storage.ErrNotFound
		}
		logs := readBucket(tx, userID, logsBucket)
		if logs == nil {
			return nil
		}
		lb := logs.Bucket([]byte(habitID))
		if lb == nil {
			return nil
		}
		// Day keys sort lexically in date order, so walk backwards for newest first.
		c := lb.Cursor()
		for k, v := c.Last(); k != nil; k, v = c.Prev() {
			var l habit.Log
			if err := json.Unmarshal(v, &l); err != nil {
				return err
			}
			if storage.InRange(l.Day, from, to) {
				out = append(out, l)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Store) ToggleLog(userID, habitID string, day habit.Day) (bool, error) {
	completed := false
	err := s.db.Update(func(tx *bbolt.Tx) error {
		ub, err := userBucket(tx, userID)
		if err != nil {
			return err
		}
		if ub.Bucket([]byte(habitsBucket)).Get([]byte(habitID)) == nil {
			return storage.ErrNotFound
		}
		lb, err := ub.Bucket([]byte(logsBucket)).CreateBucketIfNotExists([]byte(habitID))
		if err != nil {
			return err
		}

		key := []byte(day.String())
		if lb.Get(key) != nil {
			return lb.Delete(key)
		}

		val, err := json.Marshal(habit.Log{
			ID:        uuid.NewString(),
			HabitID:   habitID,
			Day:       day,
			Completed: true,
			CreatedAt: time.Now().UTC(),
		})
		if err != nil {
			return err
		}
		completed = true
		return lb.Put(key, val)
	})
	if err != nil {
		return false, err
	}
	return completed, nil
}

var _ storage.Store = (*Store)(nil)

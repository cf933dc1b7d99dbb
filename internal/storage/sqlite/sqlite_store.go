package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/brk3/cadence/internal/storage"
	"github.com/brk3/cadence/pkg/habit"
	"github.com/google/uuid"
)

// Fixed width so that text ordering matches time ordering.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

const schema = `
CREATE TABLE IF NOT EXISTS habits (
	id              TEXT PRIMARY KEY,
	user_id         TEXT NOT NULL,
	name            TEXT NOT NULL,
	description     TEXT NOT NULL DEFAULT '',
	color           TEXT NOT NULL DEFAULT '',
	icon            TEXT NOT NULL DEFAULT '',
	habit_type      TEXT NOT NULL DEFAULT 'GOOD',
	frequency_type  TEXT NOT NULL DEFAULT 'DAILY',
	frequency_value INTEGER NOT NULL DEFAULT 0,
	frequency_days  TEXT NOT NULL DEFAULT '',
	is_archived     INTEGER NOT NULL DEFAULT 0,
	created_at      TEXT NOT NULL,
	updated_at      TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_habits_user ON habits(user_id, created_at);

CREATE TABLE IF NOT EXISTS habit_logs (
	id         TEXT PRIMARY KEY,
	habit_id   TEXT NOT NULL REFERENCES habits(id) ON DELETE CASCADE,
	day        TEXT NOT NULL,
	completed  INTEGER NOT NULL DEFAULT 1,
	created_at TEXT NOT NULL,
	UNIQUE (habit_id, day)
);
`

const habitColumns = `id, name, description, color, icon, habit_type, frequency_type,
	frequency_value, frequency_days, is_archived, created_at, updated_at`

type Store struct {
	db *sql.DB
}

func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0700); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path+"?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// A single connection serialises writers, which SQLite requires anyway.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to apply schema: %w", err)
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) CreateHabit(userID string, h habit.Habit) error {
	spec := habit.SpecOf(h.Frequency)
	_, err := s.db.Exec(`
		INSERT INTO habits (id, user_id, name, description, color, icon, habit_type,
			frequency_type, frequency_value, frequency_days, is_archived, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		h.ID, userID, h.Name, h.Description, h.Color, h.Icon, string(h.Type),
		string(spec.Type), spec.Value, spec.Days, h.Archived,
		formatTime(h.CreatedAt), formatTime(h.UpdatedAt))
	if err != nil {
		return fmt.Errorf("failed to insert habit: %w", err)
	}
	return nil
}

func (s *Store) UpdateHabit(userID string, h habit.Habit) error {
	spec := habit.SpecOf(h.Frequency)
	result, err := s.db.Exec(`
		UPDATE habits SET name = ?, description = ?, color = ?, icon = ?, habit_type = ?,
			frequency_type = ?, frequency_value = ?, frequency_days = ?, is_archived = ?,
			updated_at = ?
		WHERE id = ? AND user_id = ?`,
		h.Name, h.Description, h.Color, h.Icon, string(h.Type),
		string(spec.Type), spec.Value, spec.Days, h.Archived, formatTime(h.UpdatedAt),
		h.ID, userID)
	if err != nil {
		return fmt.Errorf("failed to update habit: %w", err)
	}
	return requireRow(result)
}

func (s *Store) GetHabit(userID, habitID string) (habit.Habit, error) {
	row := s.db.QueryRow(`SELECT `+habitColumns+` FROM habits WHERE id = ? AND user_id = ?`,
		habitID, userID)
	h, err := scanHabit(row)
	if errors.Is(err, sql.ErrNoRows) {
		return habit.Habit{}, storage.ErrNotFound
	}
	return h, err
}

func (s *Store) ListHabits(userID string, includeArchived bool) ([]habit.Habit, error) {
	query := `SELECT ` + habitColumns + ` FROM habits WHERE user_id = ?`
	if !includeArchived {
		query += ` AND is_archived = 0`
	}
	query += ` ORDER BY created_at, id`

	rows, err := s.db.Query(query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []habit.Habit{}
	for rows.Next() {
		h, err := scanHabit(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, h)
	}
	return out, rows.Err()
}

func (s *Store) DeleteHabit(userID, habitID string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	result, err := tx.Exec(`DELETE FROM habits WHERE id = ? AND user_id = ?`, habitID, userID)
	if err != nil {
		return fmt.Errorf("failed to delete habit: %w", err)
	}
	if err := requireRow(result); err != nil {
		return err
	}
	if _, err := tx.Exec(`DELETE FROM habit_logs WHERE habit_id = ?`, habitID); err != nil {
		return fmt.Errorf("failed to delete habit logs: %w", err)
	}
	return tx.Commit()
}

func (s *Store) ListLogs(userID, habitID string, from, to habit.Day) ([]habit.Log, error) {
	if err := s.ownsHabit(s.db, userID, habitID); err != nil {
		return nil, err
	}

	query := `SELECT id, habit_id, day, completed, created_at FROM habit_logs WHERE habit_id = ?`
	args := []any{habitID}
	if !from.IsZero() {
		query += ` AND day >= ?`
		args = append(args, from.String())
	}
	if !to.IsZero() {
		query += ` AND day <= ?`
		args = append(args, to.String())
	}
	query += ` ORDER BY day DESC`

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []habit.Log{}
	for rows.Next() {
		var l habit.Log
		var day, createdAt string
		if err := rows.Scan(&l.ID, &l.HabitID, &day, &l.Completed, &createdAt); err != nil {
			return nil, err
		}
		if l.Day, err = habit.ParseDay(day); err != nil {
			return nil, fmt.Errorf("failed to parse day for log %s: %w", l.ID, err)
		}
		if l.CreatedAt, err = time.Parse(timeLayout, createdAt); err != nil {
			return nil, fmt.Errorf("failed to parse created_at for log %s: %w", l.ID, err)
		}
		out = append(out, l)
	}
	return out, rows.Err()
}

func (s *Store) ToggleLog(userID, habitID string, day habit.Day) (bool, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return false, err
	}
	defer func() { _ = tx.Rollback() }()

	if err := s.ownsHabit(tx, userID, habitID); err != nil {
		return false, err
	}

	var logID string
	err = tx.QueryRow(`SELECT id FROM habit_logs WHERE habit_id = ? AND day = ?`,
		habitID, day.String()).Scan(&logID)
	completed := false
	switch {
	case err == nil:
		if _, err := tx.Exec(`DELETE FROM habit_logs WHERE id = ?`, logID); err != nil {
			return false, fmt.Errorf("failed to delete log: %w", err)
		}
	case errors.Is(err, sql.ErrNoRows):
		if _, err := tx.Exec(`
			INSERT INTO habit_logs (id, habit_id, day, completed, created_at)
			VALUES (?, ?, ?, 1, ?)`,
			uuid.NewString(), habitID, day.String(), formatTime(time.Now())); err != nil {
			return false, fmt.Errorf("failed to insert log: %w", err)
		}
		completed = true
	default:
		return false, err
	}

	if err := tx.Commit(); err != nil {
		return false, err
	}
	return completed, nil
}

type queryRower interface {
	QueryRow(query string, args ...any) *sql.Row
}

func (s *Store) ownsHabit(q queryRower, userID, habitID string) error {
	var one int
	err := q.QueryRow(`SELECT 1 FROM habits WHERE id = ? AND user_id = ?`, habitID, userID).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return storage.ErrNotFound
	}
	return err
}

type scanner interface {
	Scan(dest ...any) error
}

func scanHabit(row scanner) (habit.Habit, error) {
	var (
		h                    habit.Habit
		habitType            string
		spec                 habit.FrequencySpec
		freqType             string
		createdAt, updatedAt string
	)
	err := row.Scan(&h.ID, &h.Name, &h.Description, &h.Color, &h.Icon, &habitType,
		&freqType, &spec.Value, &spec.Days, &h.Archived, &createdAt, &updatedAt)
	if err != nil {
		return habit.Habit{}, err
	}
	h.Type = habit.HabitType(habitType)
	spec.Type = habit.FrequencyType(freqType)
	if h.Frequency, err = spec.Parse(); err != nil {
		return habit.Habit{}, fmt.Errorf("failed to parse frequency for habit %s: %w", h.ID, err)
	}
	if h.CreatedAt, err = time.Parse(timeLayout, createdAt); err != nil {
		return habit.Habit{}, fmt.Errorf("failed to parse created_at for habit %s: %w", h.ID, err)
	}
	if h.UpdatedAt, err = time.Parse(timeLayout, updatedAt); err != nil {
		return habit.Habit{}, fmt.Errorf("failed to parse updated_at for habit %s: %w", h.ID, err)
	}
	return h, nil
}

func requireRow(result sql.Result) error {
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return storage.ErrNotFound
	}
	return nil
}

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

var _ storage.Store = (*Store)(nil)

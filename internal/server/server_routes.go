package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/brk3/cadence/internal/logger"
	"github.com/brk3/cadence/internal/stats"
	"github.com/brk3/cadence/internal/storage"
	"github.com/brk3/cadence/pkg/habit"
	"github.com/brk3/cadence/pkg/versioninfo"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

func writeJSON(w http.ResponseWriter, code int, v any) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	return json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, code int, msg string) {
	_ = writeJSON(w, code, ErrorResponse{Error: msg})
}

// storageError maps a storage failure to a response; unknown habits are 404s.
func storageError(w http.ResponseWriter, err error, msg string, args ...any) {
	if errors.Is(err, storage.ErrNotFound) {
		writeError(w, http.StatusNotFound, "habit not found")
		return
	}
	logger.Error(msg, append(args, "error", err)...)
	writeError(w, http.StatusInternalServerError, "storage error")
}

func (s *Server) getVersionInfo(w http.ResponseWriter, _ *http.Request) {
	if err := writeJSON(w, http.StatusOK, versioninfo.Current()); err != nil {
		logger.Error("Failed to serialize version info response", "error", err)
	}
}

func (s *Server) createHabit(w http.ResponseWriter, r *http.Request) {
	userID := userIDFromContext(r)
	var req HabitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Warn("Invalid JSON in create habit request", "error", err)
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	req.normalize()
	if err := req.validate(); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	now := s.now().UTC()
	h := habit.Habit{ID: uuid.NewString(), CreatedAt: now, UpdatedAt: now}
	req.applyTo(&h)

	logger.Info("Creating habit", "user_id", userID, "habit_id", h.ID, "name", h.Name, "frequency", req.FrequencyType)
	if err := s.store.CreateHabit(userID, h); err != nil {
		logger.Error("Failed to store habit", "user_id", userID, "habit_id", h.ID, "error", err)
		writeError(w, http.StatusInternalServerError, "database write failed")
		return
	}
	s.refreshActiveHabits(userID)

	if err := writeJSON(w, http.StatusCreated, h); err != nil {
		logger.Error("Failed to serialize create habit response", "user_id", userID, "error", err)
	}
}

func (s *Server) listHabits(w http.ResponseWriter, r *http.Request) {
	userID := userIDFromContext(r)
	includeArchived := r.URL.Query().Get("archived") == "true"

	habits, err := s.store.ListHabits(userID, includeArchived)
	if err != nil {
		storageError(w, err, "Failed to list habits", "user_id", userID)
		return
	}
	logger.Debug("Listed habits", "user_id", userID, "count", len(habits))
	if err := writeJSON(w, http.StatusOK, HabitListResponse{Habits: habits}); err != nil {
		logger.Error("Failed to serialize habit list response", "user_id", userID, "error", err)
	}
}

func (s *Server) getHabit(w http.ResponseWriter, r *http.Request) {
	userID := userIDFromContext(r)
	habitID := chi.URLParam(r, "habit_id")

	h, err := s.store.GetHabit(userID, habitID)
	if err != nil {
		storageError(w, err, "Failed to get habit", "user_id", userID, "habit_id", habitID)
		return
	}
	if err := writeJSON(w, http.StatusOK, h); err != nil {
		logger.Error("Failed to serialize habit response", "user_id", userID, "habit_id", habitID, "error", err)
	}
}

func (s *Server) updateHabit(w http.ResponseWriter, r *http.Request) {
	userID := userIDFromContext(r)
	habitID := chi.URLParam(r, "habit_id")

	h, err := s.store.GetHabit(userID, habitID)
	if err != nil {
		storageError(w, err, "Failed to get habit for update", "user_id", userID, "habit_id", habitID)
		return
	}

	var patch HabitPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		logger.Warn("Invalid JSON in update habit request", "error", err)
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	req := patch.apply(requestFromHabit(h))
	req.normalize()
	if err := req.validate(); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	req.applyTo(&h)
	h.UpdatedAt = s.now().UTC()

	if err := s.store.UpdateHabit(userID, h); err != nil {
		storageError(w, err, "Failed to update habit", "user_id", userID, "habit_id", habitID)
		return
	}
	logger.Info("Habit updated", "user_id", userID, "habit_id", habitID)
	if err := writeJSON(w, http.StatusOK, h); err != nil {
		logger.Error("Failed to serialize habit response", "user_id", userID, "habit_id", habitID, "error", err)
	}
}

func (s *Server) archiveHabit(w http.ResponseWriter, r *http.Request) {
	userID := userIDFromContext(r)
	habitID := chi.URLParam(r, "habit_id")

	h, err := s.store.GetHabit(userID, habitID)
	if err != nil {
		storageError(w, err, "Failed to get habit for archive", "user_id", userID, "habit_id", habitID)
		return
	}
	h.Archived = true
	h.UpdatedAt = s.now().UTC()
	if err := s.store.UpdateHabit(userID, h); err != nil {
		storageError(w, err, "Failed to archive habit", "user_id", userID, "habit_id", habitID)
		return
	}
	logger.Info("Habit archived", "user_id", userID, "habit_id", habitID)
	s.refreshActiveHabits(userID)

	if err := writeJSON(w, http.StatusOK, h); err != nil {
		logger.Error("Failed to serialize habit response", "user_id", userID, "habit_id", habitID, "error", err)
	}
}

func (s *Server) deleteHabit(w http.ResponseWriter, r *http.Request) {
	userID := userIDFromContext(r)
	habitID := chi.URLParam(r, "habit_id")

	logger.Info("Deleting habit", "user_id", userID, "habit_id", habitID)
	if err := s.store.DeleteHabit(userID, habitID); err != nil {
		storageError(w, err, "Failed to delete habit", "user_id", userID, "habit_id", habitID)
		return
	}
	s.refreshActiveHabits(userID)
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) toggleHabit(w http.ResponseWriter, r *http.Request) {
	userID := userIDFromContext(r)
	habitID := chi.URLParam(r, "habit_id")

	var req ToggleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	day, err := habit.ParseDay(req.Date)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	completed, err := s.store.ToggleLog(userID, habitID, day)
	if err != nil {
		storageError(w, err, "Failed to toggle habit log", "user_id", userID, "habit_id", habitID, "date", day)
		return
	}
	recordToggle(completed)
	logger.Info("Habit log toggled", "user_id", userID, "habit_id", habitID, "date", day, "completed", completed)

	resp := ToggleResponse{HabitID: habitID, Date: day, Completed: completed}
	if err := writeJSON(w, http.StatusOK, resp); err != nil {
		logger.Error("Failed to serialize toggle response", "user_id", userID, "habit_id", habitID, "error", err)
	}
}

func (s *Server) listLogs(w http.ResponseWriter, r *http.Request) {
	userID := userIDFromContext(r)
	habitID := chi.URLParam(r, "habit_id")

	var from, to habit.Day
	for param, dst := range map[string]*habit.Day{"from": &from, "to": &to} {
		v := r.URL.Query().Get(param)
		if v == "" {
			continue
		}
		d, err := habit.ParseDay(v)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		*dst = d
	}

	logs, err := s.store.ListLogs(userID, habitID, from, to)
	if err != nil {
		storageError(w, err, "Failed to list habit logs", "user_id", userID, "habit_id", habitID)
		return
	}
	if err := writeJSON(w, http.StatusOK, LogListResponse{HabitID: habitID, Logs: logs}); err != nil {
		logger.Error("Failed to serialize logs response", "user_id", userID, "habit_id", habitID, "error", err)
	}
}

func (s *Server) getHabitStats(w http.ResponseWriter, r *http.Request) {
	userID := userIDFromContext(r)
	habitID := chi.URLParam(r, "habit_id")

	h, logs, err := s.loadHabit(userID, habitID)
	if err != nil {
		storageError(w, err, "Failed to load habit for stats", "user_id", userID, "habit_id", habitID)
		return
	}

	start := time.Now()
	st := stats.Compute(h, logs, s.today())
	statsComputeDuration.Observe(time.Since(start).Seconds())

	if err := writeJSON(w, http.StatusOK, StatsResponse{HabitID: habitID, Stats: st}); err != nil {
		logger.Error("Failed to serialize stats response", "user_id", userID, "habit_id", habitID, "error", err)
	}
}

func (s *Server) getHabitDays(w http.ResponseWriter, r *http.Request) {
	userID := userIDFromContext(r)
	habitID := chi.URLParam(r, "habit_id")

	period, err := stats.ParsePeriod(r.URL.Query().Get("period"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	h, logs, err := s.loadHabit(userID, habitID)
	if err != nil {
		storageError(w, err, "Failed to load habit for days", "user_id", userID, "habit_id", habitID)
		return
	}

	resp := DaysResponse{
		HabitID: habitID,
		Period:  string(period),
		Days:    stats.Days(h, logs, s.today(), period.Days()),
	}
	if err := writeJSON(w, http.StatusOK, resp); err != nil {
		logger.Error("Failed to serialize days response", "user_id", userID, "habit_id", habitID, "error", err)
	}
}

func (s *Server) getAllStats(w http.ResponseWriter, r *http.Request) {
	userID := userIDFromContext(r)

	tracked, err := s.loadTracked(userID)
	if err != nil {
		storageError(w, err, "Failed to load habits for stats", "user_id", userID)
		return
	}
	resp := AllStatsResponse{Stats: stats.ComputeAll(tracked, s.today())}
	if err := writeJSON(w, http.StatusOK, resp); err != nil {
		logger.Error("Failed to serialize all stats response", "user_id", userID, "error", err)
	}
}

func (s *Server) getDashboard(w http.ResponseWriter, r *http.Request) {
	userID := userIDFromContext(r)

	tracked, err := s.loadTracked(userID)
	if err != nil {
		storageError(w, err, "Failed to load habits for dashboard", "user_id", userID)
		return
	}
	today := s.today()
	all := stats.ComputeAll(tracked, today)

	resp := DashboardResponse{
		Date:       today,
		Summary:    stats.Summarize(tracked, all, today),
		Completion: stats.Completion(tracked, all),
		Activity:   stats.Activity(tracked, today, stats.ActivityWindow),
		Heatmap:    stats.Heatmap(tracked, today, stats.HeatmapWindow),
	}
	if err := writeJSON(w, http.StatusOK, resp); err != nil {
		logger.Error("Failed to serialize dashboard response", "user_id", userID, "error", err)
	}
}

func (s *Server) loadHabit(userID, habitID string) (habit.Habit, []habit.Log, error) {
	h, err := s.store.GetHabit(userID, habitID)
	if err != nil {
		return habit.Habit{}, nil, err
	}
	logs, err := s.store.ListLogs(userID, habitID, habit.Day{}, habit.Day{})
	if err != nil {
		return habit.Habit{}, nil, err
	}
	return h, logs, nil
}

// loadTracked fetches every active habit with its logs.
func (s *Server) loadTracked(userID string) ([]stats.Tracked, error) {
	habits, err := s.store.ListHabits(userID, false)
	if err != nil {
		return nil, err
	}
	out := make([]stats.Tracked, 0, len(habits))
	for _, h := range habits {
		logs, err := s.store.ListLogs(userID, h.ID, habit.Day{}, habit.Day{})
		if err != nil {
			return nil, err
		}
		out = append(out, stats.Tracked{Habit: h, Logs: logs})
	}
	return out, nil
}

func (s *Server) refreshActiveHabits(userID string) {
	habits, err := s.store.ListHabits(userID, false)
	if err != nil {
		logger.Warn("Failed to update active habits metric", "user_id", userID, "error", err)
		return
	}
	UpdateActiveHabitsForUser(userID, len(habits))
}

package apiclient

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/brk3/cadence/internal/server"
	"github.com/brk3/cadence/pkg/habit"
)

func TestToggle(t *testing.T) {
	var gotPath, gotDate string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		var req server.ToggleRequest
		_ = json.NewDecoder(r.Body).Decode(&req)
		gotDate = req.Date
		_ = json.NewEncoder(w).Encode(server.ToggleResponse{HabitID: "h1", Completed: true})
	}))
	defer ts.Close()

	c := New(ts.URL + "/")
	done, err := c.Toggle(context.Background(), "h1", habit.Day{Year: 2024, Month: 3, Day: 15})
	if err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if !done {
		t.Fatal("want completed")
	}
	if gotPath != "/habits/h1/toggle" {
		t.Fatalf("path=%q", gotPath)
	}
	if gotDate != "2024-03-15" {
		t.Fatalf("date=%q", gotDate)
	}
}

func TestListHabits_Archived(t *testing.T) {
	var gotQuery string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		_ = json.NewEncoder(w).Encode(server.HabitListResponse{Habits: []habit.Habit{{ID: "a", Name: "run"}}})
	}))
	defer ts.Close()

	habits, err := New(ts.URL).ListHabits(context.Background(), true)
	if err != nil {
		t.Fatal(err)
	}
	if gotQuery != "archived=true" {
		t.Fatalf("query=%q", gotQuery)
	}
	if len(habits) != 1 || habits[0].Name != "run" {
		t.Fatalf("habits=%v", habits)
	}
}

func TestErrors(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasSuffix(r.URL.Path, "/missing") {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(server.ErrorResponse{Error: "invalid name: failed required validation"})
	}))
	defer ts.Close()
	c := New(ts.URL)

	if _, err := c.GetHabit(context.Background(), "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("err=%v want ErrNotFound", err)
	}
	_, err := c.CreateHabit(context.Background(), server.HabitRequest{FrequencyType: "DAILY"})
	if err == nil || !strings.Contains(err.Error(), "invalid name") {
		t.Fatalf("err=%v want server message", err)
	}
}

func TestDeleteNoContent(t *testing.T) {
	var gotMethod string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		w.WriteHeader(http.StatusNoContent)
	}))
	defer ts.Close()

	if err := New(ts.URL).DeleteHabit(context.Background(), "h1"); err != nil {
		t.Fatal(err)
	}
	if gotMethod != http.MethodDelete {
		t.Fatalf("method=%s", gotMethod)
	}
}

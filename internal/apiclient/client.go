package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/brk3/cadence/internal/server"
	"github.com/brk3/cadence/pkg/habit"
	"github.com/brk3/cadence/pkg/versioninfo"
)

var ErrNotFound = errors.New("habit not found")

type Client struct {
	BaseURL string
	HTTP    *http.Client
}

func New(base string) *Client {
	return &Client{
		BaseURL: strings.TrimRight(base, "/"),
		HTTP:    http.DefaultClient,
	}
}

func (c *Client) ListHabits(ctx context.Context, includeArchived bool) ([]habit.Habit, error) {
	path := "/habits/"
	if includeArchived {
		path += "?archived=true"
	}
	var resp server.HabitListResponse
	if err := c.do(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return nil, fmt.Errorf("list habits: %w", err)
	}
	return resp.Habits, nil
}

func (c *Client) GetHabit(ctx context.Context, id string) (habit.Habit, error) {
	var h habit.Habit
	if err := c.do(ctx, http.MethodGet, habitPath(id), nil, &h); err != nil {
		return habit.Habit{}, fmt.Errorf("get habit %s: %w", id, err)
	}
	return h, nil
}

func (c *Client) CreateHabit(ctx context.Context, req server.HabitRequest) (habit.Habit, error) {
	var h habit.Habit
	if err := c.do(ctx, http.MethodPost, "/habits/", req, &h); err != nil {
		return habit.Habit{}, fmt.Errorf("create habit %q: %w", req.Name, err)
	}
	return h, nil
}

func (c *Client) ArchiveHabit(ctx context.Context, id string) (habit.Habit, error) {
	var h habit.Habit
	if err := c.do(ctx, http.MethodPost, habitPath(id)+"/archive", nil, &h); err != nil {
		return habit.Habit{}, fmt.Errorf("archive habit %s: %w", id, err)
	}
	return h, nil
}

func (c *Client) DeleteHabit(ctx context.Context, id string) error {
	if err := c.do(ctx, http.MethodDelete, habitPath(id), nil, nil); err != nil {
		return fmt.Errorf("delete habit %s: %w", id, err)
	}
	return nil
}

// Toggle flips the habit's completion for day and returns the new state.
func (c *Client) Toggle(ctx context.Context, id string, day habit.Day) (bool, error) {
	var resp server.ToggleResponse
	if err := c.do(ctx, http.MethodPost, habitPath(id)+"/toggle", server.ToggleRequest{Date: day.String()}, &resp); err != nil {
		return false, fmt.Errorf("toggle habit %s on %s: %w", id, day, err)
	}
	return resp.Completed, nil
}

func (c *Client) GetHabitStats(ctx context.Context, id string) (habit.Stats, error) {
	var resp server.StatsResponse
	if err := c.do(ctx, http.MethodGet, habitPath(id)+"/stats", nil, &resp); err != nil {
		return habit.Stats{}, fmt.Errorf("stats %s: %w", id, err)
	}
	return resp.Stats, nil
}

func (c *Client) GetAllStats(ctx context.Context) (map[string]habit.Stats, error) {
	var resp server.AllStatsResponse
	if err := c.do(ctx, http.MethodGet, "/stats", nil, &resp); err != nil {
		return nil, fmt.Errorf("all stats: %w", err)
	}
	return resp.Stats, nil
}

func (c *Client) GetHabitDays(ctx context.Context, id, period string) ([]habit.DayStatus, error) {
	var resp server.DaysResponse
	path := habitPath(id) + "/days?period=" + url.QueryEscape(period)
	if err := c.do(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return nil, fmt.Errorf("days %s: %w", id, err)
	}
	return resp.Days, nil
}

func (c *Client) GetDashboard(ctx context.Context) (*server.DashboardResponse, error) {
	var resp server.DashboardResponse
	if err := c.do(ctx, http.MethodGet, "/dashboard", nil, &resp); err != nil {
		return nil, fmt.Errorf("dashboard: %w", err)
	}
	return &resp, nil
}

func (c *Client) Version(ctx context.Context) (versioninfo.VersionInfo, error) {
	var v versioninfo.VersionInfo
	if err := c.do(ctx, http.MethodGet, "/version", nil, &v); err != nil {
		return versioninfo.VersionInfo{}, fmt.Errorf("version: %w", err)
	}
	return v, nil
}

func habitPath(id string) string {
	return "/habits/" + url.PathEscape(id)
}

// do sends body as JSON and decodes a 2xx response into out when out is non-nil.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return err
		}
		rd = bytes.NewReader(b)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, rd)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	res, err := c.HTTP.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	if res.StatusCode == http.StatusNotFound {
		return ErrNotFound
	}
	if res.StatusCode < 200 || res.StatusCode > 299 {
		var e server.ErrorResponse
		if err := json.NewDecoder(res.Body).Decode(&e); err == nil && e.Error != "" {
			return fmt.Errorf("%s: %s", res.Status, e.Error)
		}
		return errors.New(res.Status)
	}
	if out == nil {
		return nil
	}
	return json.NewDecoder(res.Body).Decode(out)
}

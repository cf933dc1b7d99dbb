package cmd

import (
	"bytes"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/brk3/cadence/internal/config"
	"github.com/brk3/cadence/internal/server"
	"github.com/brk3/cadence/internal/storage/bolt"
	"github.com/brk3/cadence/pkg/habit"
)

func newTestAPI(t *testing.T) {
	t.Helper()
	store, err := bolt.Open(filepath.Join(t.TempDir(), "habits.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	c := config.Default()
	c.Timezone = "UTC"
	s, err := server.New(&c, store)
	if err != nil {
		t.Fatal(err)
	}
	ts := httptest.NewServer(s.Router())
	t.Cleanup(ts.Close)

	t.Setenv("HABITS_CONFIG", "")
	t.Setenv("HABITS_API_BASE", ts.URL)
	t.Setenv("HABITS_TIMEZONE", "UTC")
	t.Setenv("HABITS_LOG_LEVEL", "error")
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func mustRun(t *testing.T, args ...string) string {
	t.Helper()
	out, err := run(t, args...)
	if err != nil {
		t.Fatalf("habits %s: %v\n%s", strings.Join(args, " "), err, out)
	}
	return out
}

func TestCommands_EndToEnd(t *testing.T) {
	newTestAPI(t)
	yesterday := habit.DayOf(time.Now()).AddDays(-1).String()

	out := mustRun(t, "list")
	if !strings.Contains(out, "No habits yet") {
		t.Fatalf("empty list output=%q", out)
	}

	out = mustRun(t, "add", "reading")
	if !strings.Contains(out, "Created reading") || !strings.Contains(out, "daily") {
		t.Fatalf("add output=%q", out)
	}
	out = mustRun(t, "add", "gym", "--days", "1,3,5")
	if !strings.Contains(out, "Mon Wed Fri") {
		t.Fatalf("add gym output=%q", out)
	}

	out = mustRun(t, "check", "READING", yesterday)
	if !strings.Contains(out, "reading done for "+yesterday) {
		t.Fatalf("check output=%q", out)
	}

	out = mustRun(t, "stats", "reading")
	if !strings.Contains(out, "Current streak:  1") || !strings.Contains(out, "Last completed:  "+yesterday) {
		t.Fatalf("stats output=%q", out)
	}

	out = mustRun(t, "list")
	if !strings.Contains(out, "reading") || !strings.Contains(out, "gym") {
		t.Fatalf("list output=%q", out)
	}

	out = mustRun(t, "show", "reading", "--period", "week")
	if !strings.Contains(out, "●") || !strings.Contains(out, "streak 1") {
		t.Fatalf("show output=%q", out)
	}

	out = mustRun(t, "check", "reading", yesterday)
	if !strings.Contains(out, "cleared") {
		t.Fatalf("second check output=%q", out)
	}

	out = mustRun(t, "dashboard")
	if !strings.Contains(out, "0 of 2 habits done today") {
		t.Fatalf("dashboard output=%q", out)
	}

	mustRun(t, "archive", "gym")
	out = mustRun(t, "list")
	if strings.Contains(out, "gym") {
		t.Fatalf("archived habit listed: %q", out)
	}

	if _, err := run(t, "delete", "reading"); err == nil {
		t.Fatal("delete without --yes should fail")
	}
	mustRun(t, "delete", "reading", "--yes")
	if _, err := run(t, "stats", "reading"); err == nil {
		t.Fatal("stats on deleted habit should fail")
	}

	out = mustRun(t, "version")
	if !strings.Contains(out, "Server Version: dev") {
		t.Fatalf("version output=%q", out)
	}
}

func TestCheck_InvalidDate(t *testing.T) {
	newTestAPI(t)
	if _, err := run(t, "check", "reading", "tomorrow"); err == nil {
		t.Fatal("want error for invalid date")
	}
}

func TestNudge_RequiresResendKey(t *testing.T) {
	newTestAPI(t)
	t.Setenv("HABITS_RESEND_API_KEY", "")
	if _, err := run(t, "nudge"); err == nil || !strings.Contains(err.Error(), "resend_api_key") {
		t.Fatalf("err=%v want missing key error", err)
	}
}

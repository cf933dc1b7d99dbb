package logger

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"
)

func TestSetupJSON(t *testing.T) {
	var buf bytes.Buffer
	if err := Setup(&buf, "debug", "json"); err != nil {
		t.Fatalf("Setup failed: %v", err)
	}
	Debug("toggled", "habit_id", "h1", "completed", true)

	var rec map[string]any
	if err := json.Unmarshal(buf.Bytes(), &rec); err != nil {
		t.Fatalf("expected a JSON record, got %q: %v", buf.String(), err)
	}
	if rec["msg"] != "toggled" || rec["habit_id"] != "h1" {
		t.Fatalf("unexpected record: %v", rec)
	}
}

func TestSetupFiltersLevel(t *testing.T) {
	var buf bytes.Buffer
	if err := Setup(&buf, "warn", "text"); err != nil {
		t.Fatalf("Setup failed: %v", err)
	}
	Info("hidden")
	Warn("shown")
	if strings.Contains(buf.String(), "hidden") || !strings.Contains(buf.String(), "shown") {
		t.Fatalf("unexpected output %q", buf.String())
	}
}

func TestSetupRejectsBadInput(t *testing.T) {
	var buf bytes.Buffer
	if err := Setup(&buf, "loud", "text"); err == nil {
		t.Fatal("expected error for unknown level")
	}
	if err := Setup(&buf, "info", "xml"); err == nil {
		t.Fatal("expected error for unknown format")
	}
}

func TestParseLevel(t *testing.T) {
	lvl, err := ParseLevel("ERROR")
	if err != nil || lvl != slog.LevelError {
		t.Fatalf("got %v, %v", lvl, err)
	}
}

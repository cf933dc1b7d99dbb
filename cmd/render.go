package cmd

import (
	"strings"
	"time"

	"github.com/brk3/cadence/internal/stats"
	"github.com/brk3/cadence/pkg/habit"
	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205"))

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("252"))

	doneStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	missedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("203"))
	pendingStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("220"))
	mutedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	todayStyle   = lipgloss.NewStyle().Underline(true)

	heatStyles = []lipgloss.Style{
		mutedStyle,
		lipgloss.NewStyle().Foreground(lipgloss.Color("22")),
		lipgloss.NewStyle().Foreground(lipgloss.Color("28")),
		lipgloss.NewStyle().Foreground(lipgloss.Color("34")),
		lipgloss.NewStyle().Foreground(lipgloss.Color("46")),
	}
)

var gridWeekdays = []time.Weekday{
	time.Monday, time.Tuesday, time.Wednesday, time.Thursday, time.Friday, time.Saturday, time.Sunday,
}

// column places Monday first.
func column(d time.Weekday) int {
	return (int(d) + 6) % 7
}

func cell(d habit.DayStatus) string {
	var s string
	switch {
	case d.IsFuture:
		s = " "
	case !d.IsExpected:
		if d.Completed {
			s = doneStyle.Render("●")
		} else {
			s = mutedStyle.Render("·")
		}
	case d.Completed:
		s = doneStyle.Render("●")
	case d.IsToday:
		s = pendingStyle.Render("◌")
	default:
		s = missedStyle.Render("○")
	}
	if d.IsToday {
		s = todayStyle.Render(s)
	}
	return s
}

// renderGrid lays days out as calendar weeks, Monday first, oldest row on top.
func renderGrid(days []habit.DayStatus) string {
	var b strings.Builder
	for i, wd := range gridWeekdays {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(headerStyle.Render(wd.String()[:2]))
	}
	if len(days) == 0 {
		return b.String()
	}

	b.WriteByte('\n')
	b.WriteString(strings.Repeat("   ", column(days[0].Date.Weekday())))
	for i, d := range days {
		col := column(d.Date.Weekday())
		if col == 0 && i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(cell(d))
		if col < 6 && i < len(days)-1 {
			b.WriteString("  ")
		}
	}
	return b.String()
}

// renderBar draws pct as a bar of width cells.
func renderBar(pct, width int) string {
	pct = min(max(pct, 0), 100)
	filled := (pct*width + 50) / 100
	return doneStyle.Render(strings.Repeat("█", filled)) + mutedStyle.Render(strings.Repeat("░", width-filled))
}

// renderHeatmap draws one block per day, a row per week, intensity shaded.
func renderHeatmap(days []stats.HeatmapDay) string {
	var b strings.Builder
	b.WriteString(strings.Repeat("  ", column(days[0].Date.Weekday())))
	for i, d := range days {
		col := column(d.Date.Weekday())
		if col == 0 && i > 0 {
			b.WriteByte('\n')
		}
		level := min(max(d.Intensity, 0), len(heatStyles)-1)
		b.WriteString(heatStyles[level].Render("■"))
		if col < 6 && i < len(days)-1 {
			b.WriteByte(' ')
		}
	}
	return b.String()
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}

package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/Veraticus/timetable/internal/model"
)

func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(SubtleStyle).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return TableHeaderStyle
			}
			return TableCellStyle
		}).
		Headers(headers...)
}

func orDash(s string) string {
	if strings.TrimSpace(s) == "" {
		return "-"
	}
	return s
}

// SlotTable renders normalized slots, one row per slot.
func SlotTable(slots []model.Slot) string {
	t := newTable("Code", "Name", "Location", "Days", "Time")
	for _, s := range slots {
		t.Row(s.ClassCode, orDash(s.ClassName), orDash(s.Location),
			strings.Join(s.Days.Codes(), " "), s.Start+"-"+s.End)
	}
	return t.Render()
}

// ClassTable renders stored classes.
func ClassTable(classes []model.ClassRecord) string {
	t := newTable("Code", "Name", "Location", "Days", "Time")
	for _, c := range classes {
		t.Row(c.ClassCode, orDash(c.ClassName), orDash(c.Location),
			strings.Join(c.DaysOfWeek, " "), c.StartTime+"-"+c.EndTime)
	}
	return t.Render()
}

// EventTable renders audit events in the order given.
func EventTable(events []model.Event) string {
	t := newTable("When", "Step", "Status", "Details")
	for _, e := range events {
		status := SuccessStyle.Render(e.Status)
		if e.Status != "success" {
			status = ErrorStyle.Render(e.Status)
		}
		t.Row(e.CreatedAt.Local().Format("2006-01-02 15:04"), e.Kind, status, orDash(e.Message))
	}
	return t.Render()
}

// SessionList renders one line per session.
func SessionList(sessions []model.Session) string {
	lines := make([]string, 0, len(sessions))
	for _, s := range sessions {
		line := fmt.Sprintf("%s %s-%s  %s",
			ClockIcon,
			s.Start.Format("15:04"),
			s.End.Format("15:04"),
			CodeStyle.Render(s.Class.ClassCode))
		if s.Class.ClassName != "" {
			line += " " + s.Class.ClassName
		}
		if s.Class.Location != "" {
			line += SubtleStyle.Render(" @ " + s.Class.Location)
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}

// PreviewLines renders extracted rows as they came from the model.
func PreviewLines(items []model.RawSlotItem) string {
	lines := make([]string, 0, len(items))
	for _, it := range items {
		days := it.Days.Text
		if it.Days.IsList {
			days = strings.Join(it.Days.Tokens, ",")
		}

		when := it.Time
		if when == "" {
			when = it.TimeSpan
		}
		if when == "" {
			when = placeholder(it.StartTime) + "-" + placeholder(it.EndTime)
		}

		lines = append(lines, fmt.Sprintf("- %s %s [%s]", placeholder(it.ClassCode), when, days))
	}
	return strings.Join(lines, "\n")
}

func placeholder(s string) string {
	if s == "" {
		return "?"
	}
	return s
}

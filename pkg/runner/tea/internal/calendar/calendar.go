// Package calendar renders the Monday-first week strip above the planner.
package calendar

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss/v2"

	"tableflip.dev/daybook/pkg/schedule"
)

// Day describes a single day rendered in the strip.
type Day struct {
	Date       schedule.Date
	Pending    int
	IsToday    bool
	IsSelected bool
}

// Options controls strip styling.
type Options struct {
	HeaderStyle   lipgloss.Style
	EmptyStyle    lipgloss.Style
	PendingStyle  lipgloss.Style
	TodayStyle    lipgloss.Style
	SelectedStyle lipgloss.Style
	ShowHeader    bool
}

// Week builds the strip for the week containing selected.
func Week(selected, today schedule.Date, pending func(schedule.Date) int) []Day {
	week := schedule.WeekOf(selected)
	days := make([]Day, 0, len(week))
	for _, d := range week {
		n := 0
		if pending != nil {
			n = pending(d)
		}
		days = append(days, Day{
			Date:       d,
			Pending:    n,
			IsToday:    d == today,
			IsSelected: d == selected,
		})
	}
	return days
}

// Render produces the strip: an optional weekday header and one row of
// day numbers.
func Render(days []Day, opts Options) string {
	if len(days) == 0 {
		return ""
	}

	var lines []string
	if opts.ShowHeader {
		var names []string
		for _, d := range days {
			names = append(names, d.Date.Weekday().String()[:2])
		}
		lines = append(lines, opts.HeaderStyle.Render(strings.Join(names, " ")))
	}

	cells := make([]string, 0, len(days))
	for _, d := range days {
		cells = append(cells, renderDay(d, opts))
	}
	lines = append(lines, strings.Join(cells, " "))
	return strings.Join(lines, "\n")
}

func renderDay(info Day, opts Options) string {
	text := fmt.Sprintf("%2d", info.Date.Time().Day())

	style := opts.EmptyStyle
	if info.Pending > 0 {
		style = opts.PendingStyle
	}
	if info.IsToday {
		style = style.Inherit(opts.TodayStyle)
	}
	if info.IsSelected {
		style = style.Inherit(opts.SelectedStyle)
	}
	return style.Render(text)
}

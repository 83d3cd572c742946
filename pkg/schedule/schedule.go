// Package schedule projects schedule tags onto concrete calendar dates.
package schedule

import (
	"fmt"
	"strings"
)

// Tag is the relative schedule attached to a todo item.
type Tag string

const (
	// None means the item is not scheduled.
	None Tag = ""
	// Today schedules the item for the current date.
	Today Tag = "today"
	// Tomorrow schedules the item for the next date.
	Tomorrow Tag = "tomorrow"
	// ThisWeek schedules the item for every day of the current Monday-first week.
	ThisWeek Tag = "this-week"
)

// TagConfig carries the display attributes of a tag.
type TagConfig struct {
	Label string
	Color string
}

var tagConfigs = map[Tag]TagConfig{
	Today:    {Label: "Today", Color: "#ef4444"},
	Tomorrow: {Label: "Tomorrow", Color: "#f97316"},
	ThisWeek: {Label: "This week", Color: "#8b5cf6"},
}

// Tags returns the schedule tags in display order.
func Tags() []Tag {
	return []Tag{Today, Tomorrow, ThisWeek}
}

// ParseTag converts user input to a Tag. "none" and "" clear the schedule.
func ParseTag(raw string) (Tag, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", "none", "clear":
		return None, nil
	case "today":
		return Today, nil
	case "tomorrow":
		return Tomorrow, nil
	case "this-week", "week", "thisweek":
		return ThisWeek, nil
	}
	return None, fmt.Errorf("schedule: unknown tag %q", raw)
}

// Valid reports whether t is one of the fixed tags.
func (t Tag) Valid() bool {
	_, ok := tagConfigs[t]
	return ok
}

// Label returns the display label of t.
func (t Tag) Label() string {
	if c, ok := tagConfigs[t]; ok {
		return c.Label
	}
	return string(t)
}

// Color returns the hex display color of t.
func (t Tag) Color() string {
	return tagConfigs[t].Color
}

func (t Tag) String() string {
	return string(t)
}

// Project expands tag into the ordered dates it covers, given today.
// Unknown tags and None project to no dates.
func Project(tag Tag, today Date) []Date {
	switch tag {
	case Today:
		return []Date{today}
	case Tomorrow:
		return []Date{today.AddDays(1)}
	case ThisWeek:
		return WeekOf(today)
	default:
		return nil
	}
}

// Covers reports whether date is one of the dates tag projects to.
func Covers(tag Tag, today, date Date) bool {
	for _, d := range Project(tag, today) {
		if d == date {
			return true
		}
	}
	return false
}

package schedule

import (
	"fmt"
	"time"
)

const layoutISO = "2006-01-02"

// Date is a local wall-clock calendar date in ISO form (YYYY-MM-DD).
type Date string

// DateOf returns the calendar date of now in now's location.
func DateOf(now time.Time) Date {
	return Date(now.Format(layoutISO))
}

// ParseDate validates an ISO date string.
func ParseDate(raw string) (Date, error) {
	t, err := time.Parse(layoutISO, raw)
	if err != nil {
		return "", fmt.Errorf("schedule: invalid date %q: %w", raw, err)
	}
	return Date(t.Format(layoutISO)), nil
}

// MustDate parses raw and panics on error. Intended for tests.
func MustDate(raw string) Date {
	d, err := ParseDate(raw)
	if err != nil {
		panic(err)
	}
	return d
}

// IsZero reports whether d is unset.
func (d Date) IsZero() bool {
	return d == ""
}

func (d Date) String() string {
	return string(d)
}

// civil returns d at noon UTC; arithmetic there never crosses a DST edge.
func (d Date) civil() time.Time {
	t, err := time.Parse(layoutISO, string(d))
	if err != nil {
		return time.Time{}
	}
	return t.Add(12 * time.Hour)
}

// Time returns local midnight of d.
func (d Date) Time() time.Time {
	c := d.civil()
	return time.Date(c.Year(), c.Month(), c.Day(), 0, 0, 0, 0, time.Local)
}

// AddDays returns d shifted by n calendar days.
func (d Date) AddDays(n int) Date {
	return Date(d.civil().AddDate(0, 0, n).Format(layoutISO))
}

// Weekday returns the day of the week of d.
func (d Date) Weekday() time.Weekday {
	return d.civil().Weekday()
}

// Before reports whether d is earlier than other.
func (d Date) Before(other Date) bool {
	return d < other
}

// Contains reports whether the local calendar date of t is d.
func (d Date) Contains(t time.Time) bool {
	if t.IsZero() {
		return false
	}
	return DateOf(t.Local()) == d
}

// WeekOf returns the seven dates of the Monday-first week containing d.
func WeekOf(d Date) []Date {
	monday := d.AddDays(-((int(d.Weekday()) + 6) % 7))
	week := make([]Date, 7)
	for i := range week {
		week[i] = monday.AddDays(i)
	}
	return week
}

// Describe renders d relative to today: "Today", "Tomorrow", or e.g. "Wednesday 13 March".
func Describe(d, today Date) string {
	switch d {
	case today:
		return "Today"
	case today.AddDays(1):
		return "Tomorrow"
	case today.AddDays(-1):
		return "Yesterday"
	}
	c := d.civil()
	if c.Year() != today.civil().Year() {
		return c.Format("Monday 2 January 2006")
	}
	return c.Format("Monday 2 January")
}

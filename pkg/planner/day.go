// Package planner merges planner items and scheduled todos into a per-date view.
package planner

import (
	"sort"

	"tableflip.dev/daybook/pkg/category"
	"tableflip.dev/daybook/pkg/entry"
	"tableflip.dev/daybook/pkg/schedule"
	"tableflip.dev/daybook/pkg/state"
)

const (
	// FirstHour is the first hour row shown by default.
	FirstHour = 7
	// LastHour is the last hour row shown by default.
	LastHour = 22
)

// DefaultHours returns the hour rows 7:00 through 22:00.
func DefaultHours() []int {
	return HourRange(FirstHour, LastHour)
}

// HourRange returns the hours from first to last inclusive, clamped to 0..23.
func HourRange(first, last int) []int {
	if first < 0 {
		first = 0
	}
	if last > 23 {
		last = 23
	}
	if last < first {
		return nil
	}
	hours := make([]int, 0, last-first+1)
	for h := first; h <= last; h++ {
		hours = append(hours, h)
	}
	return hours
}

// Day is the aggregated view of one date.
type Day struct {
	Date                schedule.Date
	PlannerByHour       map[int][]entry.PlannerItem
	ScheduledUnassigned []entry.TodoItem
	ScheduledByHour     map[int][]entry.TodoItem
}

// Aggregate builds the view of date. today anchors schedule projection.
// Every item lands in at most one group.
func Aggregate(snap *state.Snapshot, date, today schedule.Date) Day {
	d := Day{
		Date:            date,
		PlannerByHour:   make(map[int][]entry.PlannerItem),
		ScheduledByHour: make(map[int][]entry.TodoItem),
	}
	if snap == nil {
		return d
	}

	for _, p := range snap.Planner {
		if p.Date == date {
			d.PlannerByHour[p.Hour] = append(d.PlannerByHour[p.Hour], p)
		}
	}

	for _, cat := range category.All() {
		for _, item := range snap.Lists[cat] {
			if !item.Scheduled() || !schedule.Covers(item.Schedule, today, date) {
				continue
			}
			if item.ScheduledHour == nil {
				d.ScheduledUnassigned = append(d.ScheduledUnassigned, item)
			} else {
				h := *item.ScheduledHour
				d.ScheduledByHour[h] = append(d.ScheduledByHour[h], item)
			}
		}
	}
	return d
}

// PendingCount returns how many live items the day holds.
func (d Day) PendingCount() int {
	n := len(d.ScheduledUnassigned)
	for _, items := range d.PlannerByHour {
		n += len(items)
	}
	for _, items := range d.ScheduledByHour {
		n += len(items)
	}
	return n
}

// Empty reports whether the day holds no live items.
func (d Day) Empty() bool {
	return d.PendingCount() == 0
}

// Hours returns every hour that holds at least one item, ascending.
func (d Day) Hours() []int {
	set := map[int]struct{}{}
	for h := range d.PlannerByHour {
		set[h] = struct{}{}
	}
	for h := range d.ScheduledByHour {
		set[h] = struct{}{}
	}
	hours := make([]int, 0, len(set))
	for h := range set {
		hours = append(hours, h)
	}
	sort.Ints(hours)
	return hours
}

// Slot is one hour row of a rendered day.
type Slot struct {
	Hour      int
	Planner   []entry.PlannerItem
	Scheduled []entry.TodoItem
}

// Slots returns one row per displayed hour, followed by rows for any
// occupied hour outside that range so nothing is hidden.
func (d Day) Slots(hours []int) []Slot {
	shown := make(map[int]struct{}, len(hours))
	all := append([]int{}, hours...)
	for _, h := range hours {
		shown[h] = struct{}{}
	}
	for _, h := range d.Hours() {
		if _, ok := shown[h]; !ok {
			all = append(all, h)
		}
	}
	sort.Ints(all)

	slots := make([]Slot, 0, len(all))
	for _, h := range all {
		slots = append(slots, Slot{
			Hour:      h,
			Planner:   d.PlannerByHour[h],
			Scheduled: d.ScheduledByHour[h],
		})
	}
	return slots
}

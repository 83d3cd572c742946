// Package lifecycle moves items between their live containers and the archive.
package lifecycle

import (
	"sort"
	"time"

	"tableflip.dev/daybook/pkg/category"
	"tableflip.dev/daybook/pkg/entry"
	"tableflip.dev/daybook/pkg/planner"
	"tableflip.dev/daybook/pkg/schedule"
	"tableflip.dev/daybook/pkg/state"
)

// Mutator is the subset of the store the manager drives.
type Mutator interface {
	ToggleTodo(cat category.ID, id string) bool
	TogglePlanner(id string) bool
	Restore(id string) bool
}

// Manager completes and restores items.
type Manager struct {
	store Mutator
}

// New returns a Manager over store.
func New(store Mutator) *Manager {
	return &Manager{store: store}
}

// CompleteTodo archives a todo item with a completion stamp.
func (m *Manager) CompleteTodo(cat category.ID, id string) bool {
	return m.store.ToggleTodo(cat, id)
}

// CompletePlanner archives a planner item with a completion stamp.
func (m *Manager) CompletePlanner(id string) bool {
	return m.store.TogglePlanner(id)
}

// Restore returns an archived item to the container it came from.
func (m *Manager) Restore(id string) bool {
	return m.store.Restore(id)
}

// AllDone reports whether selected is today, nothing is left on today's
// plan, and something was completed today. An empty day with no completions
// is not "all done".
func AllDone(snap *state.Snapshot, selected, today schedule.Date) bool {
	if snap == nil || selected != today {
		return false
	}
	if !planner.Aggregate(snap, today, today).Empty() {
		return false
	}
	for _, a := range snap.Archive {
		at := a.CompletedAt()
		if !at.IsZero() && schedule.DateOf(at.Local()) == today {
			return true
		}
	}
	return false
}

// ArchiveDay is the archive entries completed on one local date.
type ArchiveDay struct {
	Date    schedule.Date
	Entries []entry.ArchiveEntry
}

// ArchiveByDay groups the archive by local completion date, newest date
// first. Entries keep their archive order within a date. Entries without a
// completion time are grouped under the zero date, last.
func ArchiveByDay(snap *state.Snapshot) []ArchiveDay {
	if snap == nil {
		return nil
	}
	index := map[schedule.Date]int{}
	var days []ArchiveDay
	for _, a := range snap.Archive {
		d := completionDate(a.CompletedAt())
		i, ok := index[d]
		if !ok {
			i = len(days)
			index[d] = i
			days = append(days, ArchiveDay{Date: d})
		}
		days[i].Entries = append(days[i].Entries, a)
	}
	sort.SliceStable(days, func(i, j int) bool {
		if days[i].Date.IsZero() != days[j].Date.IsZero() {
			return days[j].Date.IsZero()
		}
		return days[j].Date.Before(days[i].Date)
	})
	return days
}

func completionDate(t time.Time) schedule.Date {
	if t.IsZero() {
		return ""
	}
	return schedule.DateOf(t.Local())
}

// Package entry defines the todo, planner and archive items.
package entry

import (
	"encoding/json"
	"fmt"
	"time"

	"tableflip.dev/daybook/pkg/category"
	"tableflip.dev/daybook/pkg/schedule"
)

// TodoItem is a task belonging to exactly one category.
type TodoItem struct {
	ID            string        `json:"id"`
	Text          string        `json:"text"`
	Completed     bool          `json:"completed"`
	Category      category.ID   `json:"category"`
	CreatedAt     Timestamp     `json:"createdAt"`
	CompletedAt   *Timestamp    `json:"completedAt,omitempty"`
	Schedule      schedule.Tag  `json:"schedule,omitempty"`
	ScheduleSetOn schedule.Date `json:"scheduleSetOn,omitempty"`
	// ScheduledHour binds a scheduled item to an hour slot; nil means unassigned.
	ScheduledHour *int `json:"scheduledHour,omitempty"`
}

// Scheduled reports whether the item carries a schedule tag.
func (t TodoItem) Scheduled() bool {
	return t.Schedule != schedule.None
}

// PlannerItem is a task bound to one date and hour.
type PlannerItem struct {
	ID          string        `json:"id"`
	Text        string        `json:"text"`
	Date        schedule.Date `json:"date"`
	Hour        int           `json:"hour"`
	Completed   bool          `json:"completed"`
	CreatedAt   Timestamp     `json:"createdAt"`
	CompletedAt *Timestamp    `json:"completedAt,omitempty"`
}

// Origin names the live container an archived item came from.
type Origin string

const (
	// OriginCategory marks an archived TodoItem.
	OriginCategory Origin = "category"
	// OriginPlanner marks an archived PlannerItem.
	OriginPlanner Origin = "planner"
)

// ArchiveEntry is a completed item of either origin. Exactly one of Todo and
// Planner is set, matching Origin.
type ArchiveEntry struct {
	Origin  Origin       `json:"origin"`
	Todo    *TodoItem    `json:"todo,omitempty"`
	Planner *PlannerItem `json:"planner,omitempty"`
}

// ArchiveTodo stamps t completed at now and wraps it.
func ArchiveTodo(t TodoItem, now time.Time) ArchiveEntry {
	ts := Now(now)
	t.Completed = true
	t.CompletedAt = &ts
	return ArchiveEntry{Origin: OriginCategory, Todo: &t}
}

// ArchivePlanner stamps p completed at now and wraps it.
func ArchivePlanner(p PlannerItem, now time.Time) ArchiveEntry {
	ts := Now(now)
	p.Completed = true
	p.CompletedAt = &ts
	return ArchiveEntry{Origin: OriginPlanner, Planner: &p}
}

// ID returns the wrapped item's identifier.
func (a ArchiveEntry) ID() string {
	switch {
	case a.Todo != nil:
		return a.Todo.ID
	case a.Planner != nil:
		return a.Planner.ID
	}
	return ""
}

// Text returns the wrapped item's text.
func (a ArchiveEntry) Text() string {
	switch {
	case a.Todo != nil:
		return a.Todo.Text
	case a.Planner != nil:
		return a.Planner.Text
	}
	return ""
}

// CompletedAt returns the completion time, or the zero time when unset.
func (a ArchiveEntry) CompletedAt() time.Time {
	var ts *Timestamp
	switch {
	case a.Todo != nil:
		ts = a.Todo.CompletedAt
	case a.Planner != nil:
		ts = a.Planner.CompletedAt
	}
	if ts == nil {
		return time.Time{}
	}
	return ts.Time
}

// UnmarshalJSON accepts the tagged form and the legacy bare item form, where
// the origin is inferred from a category (or list) field versus a date and hour.
func (a *ArchiveEntry) UnmarshalJSON(b []byte) error {
	type tagged ArchiveEntry
	var t tagged
	if err := json.Unmarshal(b, &t); err != nil {
		return err
	}
	if t.Origin != "" {
		*a = ArchiveEntry(t)
		return a.validate()
	}

	var probe map[string]json.RawMessage
	if err := json.Unmarshal(b, &probe); err != nil {
		return err
	}
	_, hasCategory := probe["category"]
	list, hasList := probe["list"]
	_, hasDate := probe["date"]
	_, hasHour := probe["hour"]
	switch {
	case hasCategory || hasList:
		var todo TodoItem
		if err := json.Unmarshal(b, &todo); err != nil {
			return err
		}
		if todo.Category == "" && hasList {
			if err := json.Unmarshal(list, &todo.Category); err != nil {
				return err
			}
		}
		*a = ArchiveEntry{Origin: OriginCategory, Todo: &todo}
	case hasDate && hasHour:
		var p PlannerItem
		if err := json.Unmarshal(b, &p); err != nil {
			return err
		}
		*a = ArchiveEntry{Origin: OriginPlanner, Planner: &p}
	default:
		return fmt.Errorf("entry: archive entry has no recognisable origin")
	}
	return nil
}

func (a ArchiveEntry) validate() error {
	switch a.Origin {
	case OriginCategory:
		if a.Todo == nil {
			return fmt.Errorf("entry: category archive entry without todo")
		}
	case OriginPlanner:
		if a.Planner == nil {
			return fmt.Errorf("entry: planner archive entry without planner item")
		}
	default:
		return fmt.Errorf("entry: unknown archive origin %q", a.Origin)
	}
	return nil
}
